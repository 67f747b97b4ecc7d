package config

import (
	"testing"
	"time"
)

func TestNewConfig_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	cfg, err := NewConfig()
	if err != nil {
		t.Fatalf("NewConfig failed: %v", err)
	}

	if cfg.Port != "8080" {
		t.Errorf("expected default port 8080, got %q", cfg.Port)
	}
	if cfg.DBPath != "./todos.db" {
		t.Errorf("expected default db path, got %q", cfg.DBPath)
	}
	if cfg.TokenTTL != 20*time.Minute {
		t.Errorf("expected default token ttl 20m, got %v", cfg.TokenTTL)
	}
	if cfg.RedisAddr != "" {
		t.Errorf("expected redis disabled by default, got %q", cfg.RedisAddr)
	}
}

func TestNewConfig_RequiresSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	if _, err := NewConfig(); err == nil {
		t.Error("expected error when JWT_SECRET is missing")
	}
}

func TestNewConfig_TokenTTL(t *testing.T) {
	tests := []struct {
		name    string
		ttl     string
		want    time.Duration
		wantErr bool
	}{
		{"custom ttl", "1h", time.Hour, false},
		{"garbage ttl", "soon", 0, true},
		{"negative ttl", "-5m", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("JWT_SECRET", "test-secret")
			t.Setenv("TOKEN_TTL", tt.ttl)

			cfg, err := NewConfig()
			if tt.wantErr {
				if err == nil {
					t.Errorf("expected error for TOKEN_TTL=%q", tt.ttl)
				}
				return
			}
			if err != nil {
				t.Fatalf("NewConfig failed: %v", err)
			}
			if cfg.TokenTTL != tt.want {
				t.Errorf("expected ttl %v, got %v", tt.want, cfg.TokenTTL)
			}
		})
	}
}
