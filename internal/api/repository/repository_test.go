package repository

import (
	"context"
	"testing"

	"todoapp/internal/api/models"
	"todoapp/internal/db"

	"github.com/jmoiron/sqlx"
)

// openTestDB returns an isolated in-memory database with the schema
// applied. A single connection keeps every query on the same memory store.
func openTestDB(t *testing.T) *sqlx.DB {
	t.Helper()
	pool, err := db.Connect(":memory:")
	if err != nil {
		t.Fatalf("failed to open in-memory db: %v", err)
	}
	pool.SetMaxOpenConns(1)
	if err := db.InitializeSchema(pool); err != nil {
		t.Fatalf("failed to initialize schema: %v", err)
	}
	t.Cleanup(func() { pool.Close() })
	return pool
}

func seedUser(t *testing.T, repo UserRepository, username string) *models.User {
	t.Helper()
	user := &models.User{
		FirstName:      "Test",
		LastName:       "User",
		Email:          username + "@example.com",
		Username:       username,
		IsActive:       true,
		Role:           models.RoleUser,
		HashedPassword: "not-a-real-hash",
	}
	if err := repo.CreateUser(context.Background(), user); err != nil {
		t.Fatalf("failed to seed user %s: %v", username, err)
	}
	return user
}

func TestUserRepository_CreateAndGet(t *testing.T) {
	pool := openTestDB(t)
	repo := NewUserRepository(pool)
	ctx := context.Background()

	alice := seedUser(t, repo, "alice")
	if alice.ID == 0 {
		t.Fatal("expected CreateUser to assign an id")
	}

	got, err := repo.GetUserByUsername(ctx, "alice")
	if err != nil {
		t.Fatalf("GetUserByUsername failed: %v", err)
	}
	if got == nil {
		t.Fatal("expected to find alice")
	}
	if got.ID != alice.ID || got.Email != "alice@example.com" || !got.IsActive {
		t.Errorf("unexpected user row: %+v", got)
	}

	byID, err := repo.GetUserByID(ctx, alice.ID)
	if err != nil {
		t.Fatalf("GetUserByID failed: %v", err)
	}
	if byID == nil || byID.Username != "alice" {
		t.Errorf("expected alice by id, got %+v", byID)
	}
}

func TestUserRepository_GetMissingUser(t *testing.T) {
	pool := openTestDB(t)
	repo := NewUserRepository(pool)

	got, err := repo.GetUserByUsername(context.Background(), "nobody")
	if err != nil {
		t.Fatalf("expected no error for missing user, got %v", err)
	}
	if got != nil {
		t.Errorf("expected nil for missing user, got %+v", got)
	}
}

func TestUserRepository_DuplicateUsername(t *testing.T) {
	pool := openTestDB(t)
	repo := NewUserRepository(pool)

	seedUser(t, repo, "alice")

	dup := &models.User{
		FirstName:      "Other",
		LastName:       "Alice",
		Email:          "other@example.com",
		Username:       "alice",
		IsActive:       true,
		Role:           models.RoleUser,
		HashedPassword: "hash",
	}
	if err := repo.CreateUser(context.Background(), dup); err == nil {
		t.Error("expected unique constraint violation for duplicate username")
	}
}

func TestUserRepository_UpdatePassword(t *testing.T) {
	pool := openTestDB(t)
	repo := NewUserRepository(pool)
	ctx := context.Background()

	alice := seedUser(t, repo, "alice")

	if err := repo.UpdatePassword(ctx, alice.ID, "new-hash"); err != nil {
		t.Fatalf("UpdatePassword failed: %v", err)
	}

	got, err := repo.GetUserByID(ctx, alice.ID)
	if err != nil {
		t.Fatalf("GetUserByID failed: %v", err)
	}
	if got.HashedPassword != "new-hash" {
		t.Errorf("expected updated hash, got %q", got.HashedPassword)
	}
}
