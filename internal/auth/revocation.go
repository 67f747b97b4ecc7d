package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("auth.revocation")

// RevocationStore records token ids (jti claims) that were invalidated
// before their natural expiry. Entries only need to live as long as the
// token would have.
type RevocationStore interface {
	Revoke(ctx context.Context, jti string, ttl time.Duration) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

type redisRevocationStore struct {
	rdb *redis.Client
}

// NewRevocationStore creates a new Redis-based RevocationStore.
func NewRevocationStore(rdb *redis.Client) RevocationStore {
	return &redisRevocationStore{rdb: rdb}
}

// Revoke denylists the token id for ttl. Tokens that have already expired
// need no entry, so a non-positive ttl is a no-op.
func (s *redisRevocationStore) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	ctx, span := tracer.Start(ctx, "RevocationStore.Revoke")
	defer span.End()

	if ttl <= 0 {
		return nil
	}
	key := fmt.Sprintf("revoked:%s", jti)
	if err := s.rdb.Set(ctx, key, "1", ttl).Err(); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	return nil
}

// IsRevoked reports whether the token id has been denylisted.
func (s *redisRevocationStore) IsRevoked(ctx context.Context, jti string) (bool, error) {
	ctx, span := tracer.Start(ctx, "RevocationStore.IsRevoked")
	defer span.End()

	key := fmt.Sprintf("revoked:%s", jti)
	_, err := s.rdb.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, fmt.Errorf("failed to check token revocation: %w", err)
	}
	return true, nil
}
