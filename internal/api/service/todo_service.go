package service

import (
	"context"
	"fmt"

	"todoapp/internal/api/models"
	"todoapp/internal/api/repository"
	"todoapp/internal/hub"
	"todoapp/internal/validator"
)

// EventPublisher receives a notification for every successful todo
// mutation. *hub.Hub satisfies it; a nil publisher disables notifications.
type EventPublisher interface {
	Publish(userID int64, event hub.TodoEvent)
}

// TodoService defines the interface for todo business logic. Every method
// requires the caller's verified identity and only ever touches the
// caller's own records.
type TodoService interface {
	List(ctx context.Context, identity *models.Identity) ([]models.Todo, error)
	Get(ctx context.Context, identity *models.Identity, id int64) (*models.Todo, error)
	Create(ctx context.Context, identity *models.Identity, req *models.TodoRequest) (*models.Todo, error)
	Update(ctx context.Context, identity *models.Identity, id int64, req *models.TodoRequest) (*models.Todo, error)
	Delete(ctx context.Context, identity *models.Identity, id int64) error
}

type todoService struct {
	todoRepo  repository.TodoRepository
	publisher EventPublisher
}

// NewTodoService creates a new TodoService. publisher may be nil.
func NewTodoService(todoRepo repository.TodoRepository, publisher EventPublisher) TodoService {
	return &todoService{todoRepo: todoRepo, publisher: publisher}
}

// List returns all todos owned by the caller.
func (s *todoService) List(ctx context.Context, identity *models.Identity) ([]models.Todo, error) {
	return s.todoRepo.ListByOwner(ctx, identity.UserID)
}

// Get returns the todo only if the caller owns it. A todo owned by someone
// else is reported as not found.
func (s *todoService) Get(ctx context.Context, identity *models.Identity, id int64) (*models.Todo, error) {
	todo, err := s.todoRepo.FindOwned(ctx, id, identity.UserID)
	if err != nil {
		return nil, err
	}
	if todo == nil {
		return nil, ErrTodoNotFound
	}
	return todo, nil
}

// Create validates the payload and persists a new todo owned by the caller.
func (s *todoService) Create(ctx context.Context, identity *models.Identity, req *models.TodoRequest) (*models.Todo, error) {
	if err := validator.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	todo := &models.Todo{
		Title:       req.Title,
		Description: req.Description,
		Priority:    req.Priority,
		Complete:    req.Complete,
		OwnerID:     identity.UserID,
	}

	if err := s.todoRepo.Create(ctx, todo); err != nil {
		return nil, err
	}

	s.notify(identity.UserID, hub.ActionCreated, *todo)
	return todo, nil
}

// Update overwrites all mutable fields of an owned todo.
func (s *todoService) Update(ctx context.Context, identity *models.Identity, id int64, req *models.TodoRequest) (*models.Todo, error) {
	if err := validator.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	todo := &models.Todo{
		ID:          id,
		Title:       req.Title,
		Description: req.Description,
		Priority:    req.Priority,
		Complete:    req.Complete,
		OwnerID:     identity.UserID,
	}

	found, err := s.todoRepo.Update(ctx, todo)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrTodoNotFound
	}

	s.notify(identity.UserID, hub.ActionUpdated, *todo)
	return todo, nil
}

// Delete permanently removes an owned todo.
func (s *todoService) Delete(ctx context.Context, identity *models.Identity, id int64) error {
	found, err := s.todoRepo.Delete(ctx, id, identity.UserID)
	if err != nil {
		return err
	}
	if !found {
		return ErrTodoNotFound
	}

	s.notify(identity.UserID, hub.ActionDeleted, models.Todo{ID: id, OwnerID: identity.UserID})
	return nil
}

func (s *todoService) notify(userID int64, action string, todo models.Todo) {
	if s.publisher == nil {
		return
	}
	s.publisher.Publish(userID, hub.TodoEvent{Action: action, Todo: todo})
}
