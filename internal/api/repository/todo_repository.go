package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"todoapp/internal/api/models"

	"github.com/jmoiron/sqlx"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("repository.todo")

// TodoRepository defines the interface for todo data operations. Every
// method takes the owner id and never reads or writes another user's rows.
type TodoRepository interface {
	ListByOwner(ctx context.Context, ownerID int64) ([]models.Todo, error)
	FindOwned(ctx context.Context, id, ownerID int64) (*models.Todo, error)
	Create(ctx context.Context, todo *models.Todo) error
	Update(ctx context.Context, todo *models.Todo) (bool, error)
	Delete(ctx context.Context, id, ownerID int64) (bool, error)
}

type sqliteTodoRepository struct {
	db *sqlx.DB
}

// NewTodoRepository creates a new SQLite-based TodoRepository.
func NewTodoRepository(db *sqlx.DB) TodoRepository {
	return &sqliteTodoRepository{db: db}
}

// ListByOwner returns all todos owned by ownerID, ordered by id.
func (r *sqliteTodoRepository) ListByOwner(ctx context.Context, ownerID int64) ([]models.Todo, error) {
	ctx, span := tracer.Start(ctx, "TodoRepository.ListByOwner")
	defer span.End()

	todos := []models.Todo{}
	query := `SELECT id, title, description, priority, complete, owner_id
		FROM todos WHERE owner_id = ? ORDER BY id`
	if err := r.db.SelectContext(ctx, &todos, query, ownerID); err != nil {
		return nil, fmt.Errorf("failed to list todos: %w", err)
	}
	return todos, nil
}

// FindOwned returns the todo with the given id if ownerID owns it, nil
// otherwise. A todo owned by someone else looks the same as a missing one.
func (r *sqliteTodoRepository) FindOwned(ctx context.Context, id, ownerID int64) (*models.Todo, error) {
	ctx, span := tracer.Start(ctx, "TodoRepository.FindOwned")
	defer span.End()

	var todo models.Todo
	query := `SELECT id, title, description, priority, complete, owner_id
		FROM todos WHERE id = ? AND owner_id = ?`
	err := r.db.GetContext(ctx, &todo, query, id, ownerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get todo: %w", err)
	}
	return &todo, nil
}

// Create inserts a new todo and fills in the assigned id.
func (r *sqliteTodoRepository) Create(ctx context.Context, todo *models.Todo) error {
	ctx, span := tracer.Start(ctx, "TodoRepository.Create")
	defer span.End()

	query := `INSERT INTO todos (title, description, priority, complete, owner_id)
		VALUES (?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, query,
		todo.Title, todo.Description, todo.Priority, todo.Complete, todo.OwnerID)
	if err != nil {
		return fmt.Errorf("failed to create todo: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read new todo id: %w", err)
	}
	todo.ID = id
	return nil
}

// Update overwrites the mutable fields of the todo identified by todo.ID,
// provided todo.OwnerID owns it. The ownership check and the write run in
// one transaction so a concurrent delete cannot slip in between. Returns
// false when no owned row exists.
func (r *sqliteTodoRepository) Update(ctx context.Context, todo *models.Todo) (bool, error) {
	ctx, span := tracer.Start(ctx, "TodoRepository.Update")
	defer span.End()

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var existingID int64
	err = tx.GetContext(ctx, &existingID,
		`SELECT id FROM todos WHERE id = ? AND owner_id = ?`, todo.ID, todo.OwnerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("failed to check todo ownership: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE todos SET title = ?, description = ?, priority = ?, complete = ? WHERE id = ?`,
		todo.Title, todo.Description, todo.Priority, todo.Complete, todo.ID)
	if err != nil {
		return false, fmt.Errorf("failed to update todo: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("failed to commit todo update: %w", err)
	}
	return true, nil
}

// Delete removes the todo identified by id, provided ownerID owns it, using
// the same transactional check-then-act discipline as Update. Returns false
// when no owned row exists.
func (r *sqliteTodoRepository) Delete(ctx context.Context, id, ownerID int64) (bool, error) {
	ctx, span := tracer.Start(ctx, "TodoRepository.Delete")
	defer span.End()

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var existingID int64
	err = tx.GetContext(ctx, &existingID,
		`SELECT id FROM todos WHERE id = ? AND owner_id = ?`, id, ownerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("failed to check todo ownership: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM todos WHERE id = ?`, id); err != nil {
		return false, fmt.Errorf("failed to delete todo: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("failed to commit todo delete: %w", err)
	}
	return true, nil
}
