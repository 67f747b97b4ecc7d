package repository

import (
	"context"
	"testing"

	"todoapp/internal/api/models"
)

func seedTodo(t *testing.T, repo TodoRepository, ownerID int64, title string) *models.Todo {
	t.Helper()
	todo := &models.Todo{
		Title:       title,
		Description: "a description",
		Priority:    3,
		Complete:    false,
		OwnerID:     ownerID,
	}
	if err := repo.Create(context.Background(), todo); err != nil {
		t.Fatalf("failed to seed todo %q: %v", title, err)
	}
	return todo
}

func TestTodoRepository_CreateAndFind(t *testing.T) {
	pool := openTestDB(t)
	users := NewUserRepository(pool)
	todos := NewTodoRepository(pool)
	ctx := context.Background()

	alice := seedUser(t, users, "alice")
	created := seedTodo(t, todos, alice.ID, "buy milk")
	if created.ID == 0 {
		t.Fatal("expected Create to assign an id")
	}

	got, err := todos.FindOwned(ctx, created.ID, alice.ID)
	if err != nil {
		t.Fatalf("FindOwned failed: %v", err)
	}
	if got == nil {
		t.Fatal("expected to find the created todo")
	}
	if got.Title != "buy milk" || got.Priority != 3 || got.Complete || got.OwnerID != alice.ID {
		t.Errorf("round trip mismatch: %+v", got)
	}
}

func TestTodoRepository_OwnershipFilter(t *testing.T) {
	pool := openTestDB(t)
	users := NewUserRepository(pool)
	todos := NewTodoRepository(pool)
	ctx := context.Background()

	alice := seedUser(t, users, "alice")
	bob := seedUser(t, users, "bob")

	aliceTodo := seedTodo(t, todos, alice.ID, "alice task")
	seedTodo(t, todos, bob.ID, "bob task")

	// Bob cannot see alice's todo; absence and foreign ownership look the same.
	got, err := todos.FindOwned(ctx, aliceTodo.ID, bob.ID)
	if err != nil {
		t.Fatalf("FindOwned failed: %v", err)
	}
	if got != nil {
		t.Errorf("bob must not see alice's todo, got %+v", got)
	}

	aliceList, err := todos.ListByOwner(ctx, alice.ID)
	if err != nil {
		t.Fatalf("ListByOwner failed: %v", err)
	}
	if len(aliceList) != 1 || aliceList[0].Title != "alice task" {
		t.Errorf("expected only alice's todo, got %+v", aliceList)
	}

	bobList, err := todos.ListByOwner(ctx, bob.ID)
	if err != nil {
		t.Fatalf("ListByOwner failed: %v", err)
	}
	if len(bobList) != 1 || bobList[0].Title != "bob task" {
		t.Errorf("expected only bob's todo, got %+v", bobList)
	}
}

func TestTodoRepository_ListOrder(t *testing.T) {
	pool := openTestDB(t)
	users := NewUserRepository(pool)
	todos := NewTodoRepository(pool)

	alice := seedUser(t, users, "alice")
	first := seedTodo(t, todos, alice.ID, "first")
	second := seedTodo(t, todos, alice.ID, "second")

	list, err := todos.ListByOwner(context.Background(), alice.ID)
	if err != nil {
		t.Fatalf("ListByOwner failed: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 todos, got %d", len(list))
	}
	if list[0].ID != first.ID || list[1].ID != second.ID {
		t.Errorf("expected insertion order by id, got %v then %v", list[0].ID, list[1].ID)
	}
}

func TestTodoRepository_Update(t *testing.T) {
	pool := openTestDB(t)
	users := NewUserRepository(pool)
	todos := NewTodoRepository(pool)
	ctx := context.Background()

	alice := seedUser(t, users, "alice")
	bob := seedUser(t, users, "bob")
	created := seedTodo(t, todos, alice.ID, "buy milk")

	// Update by a non-owner reports not found and changes nothing.
	found, err := todos.Update(ctx, &models.Todo{
		ID: created.ID, Title: "stolen", Description: "stolen", Priority: 1, OwnerID: bob.ID,
	})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if found {
		t.Error("expected update by non-owner to report not found")
	}
	unchanged, err := todos.FindOwned(ctx, created.ID, alice.ID)
	if err != nil {
		t.Fatalf("FindOwned failed: %v", err)
	}
	if unchanged.Title != "buy milk" {
		t.Errorf("record changed by non-owner update: %+v", unchanged)
	}

	// Update by the owner overwrites all mutable fields.
	found, err = todos.Update(ctx, &models.Todo{
		ID:          created.ID,
		Title:       "buy oat milk",
		Description: "the other kind",
		Priority:    7,
		Complete:    true,
		OwnerID:     alice.ID,
	})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if !found {
		t.Fatal("expected owner update to succeed")
	}
	updated, err := todos.FindOwned(ctx, created.ID, alice.ID)
	if err != nil {
		t.Fatalf("FindOwned failed: %v", err)
	}
	if updated.Title != "buy oat milk" || updated.Description != "the other kind" ||
		updated.Priority != 7 || !updated.Complete {
		t.Errorf("update not applied: %+v", updated)
	}
}

func TestTodoRepository_Delete(t *testing.T) {
	pool := openTestDB(t)
	users := NewUserRepository(pool)
	todos := NewTodoRepository(pool)
	ctx := context.Background()

	alice := seedUser(t, users, "alice")
	bob := seedUser(t, users, "bob")
	created := seedTodo(t, todos, alice.ID, "buy milk")

	found, err := todos.Delete(ctx, created.ID, bob.ID)
	if err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if found {
		t.Error("expected delete by non-owner to report not found")
	}

	found, err = todos.Delete(ctx, created.ID, alice.ID)
	if err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if !found {
		t.Fatal("expected owner delete to succeed")
	}

	got, err := todos.FindOwned(ctx, created.ID, alice.ID)
	if err != nil {
		t.Fatalf("FindOwned failed: %v", err)
	}
	if got != nil {
		t.Errorf("todo still present after delete: %+v", got)
	}

	found, err = todos.Delete(ctx, created.ID, alice.ID)
	if err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if found {
		t.Error("expected second delete to report not found")
	}
}
