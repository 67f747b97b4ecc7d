package controller

import (
	"errors"
	"net/http"
	"strconv"

	"todoapp/internal/api/middleware"
	"todoapp/internal/api/models"
	"todoapp/internal/api/response"
	"todoapp/internal/api/service"

	"github.com/gin-gonic/gin"
)

// TodoController handles todo CRUD HTTP requests. Ownership is enforced by
// the service; a todo the caller does not own is indistinguishable from
// one that does not exist.
type TodoController struct {
	todoService service.TodoService
}

// NewTodoController creates a new TodoController.
func NewTodoController(todoService service.TodoService) *TodoController {
	return &TodoController{
		todoService: todoService,
	}
}

// List returns all of the caller's todos.
func (tc *TodoController) List(c *gin.Context) {
	identity := middleware.CurrentIdentity(c)
	if identity == nil {
		response.ErrorResponse(c, http.StatusUnauthorized, "not authenticated")
		return
	}

	todos, err := tc.todoService.List(c.Request.Context(), identity)
	if err != nil {
		response.ErrorResponse(c, http.StatusInternalServerError, "failed to list todos")
		return
	}

	response.SuccessResponseList(c, todos)
}

// Get returns a single owned todo by id.
func (tc *TodoController) Get(c *gin.Context) {
	identity := middleware.CurrentIdentity(c)
	if identity == nil {
		response.ErrorResponse(c, http.StatusUnauthorized, "not authenticated")
		return
	}

	id, ok := todoID(c)
	if !ok {
		return
	}

	todo, err := tc.todoService.Get(c.Request.Context(), identity, id)
	if err != nil {
		if errors.Is(err, service.ErrTodoNotFound) {
			response.ErrorResponse(c, http.StatusNotFound, err.Error())
			return
		}
		response.ErrorResponse(c, http.StatusInternalServerError, "failed to get todo")
		return
	}

	response.SuccessResponse(c, todo)
}

// Create persists a new todo owned by the caller.
func (tc *TodoController) Create(c *gin.Context) {
	identity := middleware.CurrentIdentity(c)
	if identity == nil {
		response.ErrorResponse(c, http.StatusUnauthorized, "not authenticated")
		return
	}

	var req models.TodoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	todo, err := tc.todoService.Create(c.Request.Context(), identity, &req)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			response.ErrorResponse(c, http.StatusBadRequest, err.Error())
			return
		}
		response.ErrorResponse(c, http.StatusInternalServerError, "failed to create todo")
		return
	}

	response.CreatedResponse(c, todo)
}

// Update overwrites all mutable fields of an owned todo.
func (tc *TodoController) Update(c *gin.Context) {
	identity := middleware.CurrentIdentity(c)
	if identity == nil {
		response.ErrorResponse(c, http.StatusUnauthorized, "not authenticated")
		return
	}

	id, ok := todoID(c)
	if !ok {
		return
	}

	var req models.TodoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	if _, err := tc.todoService.Update(c.Request.Context(), identity, id, &req); err != nil {
		switch {
		case errors.Is(err, service.ErrTodoNotFound):
			response.ErrorResponse(c, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrValidation):
			response.ErrorResponse(c, http.StatusBadRequest, err.Error())
		default:
			response.ErrorResponse(c, http.StatusInternalServerError, "failed to update todo")
		}
		return
	}

	response.NoContentResponse(c)
}

// Delete permanently removes an owned todo.
func (tc *TodoController) Delete(c *gin.Context) {
	identity := middleware.CurrentIdentity(c)
	if identity == nil {
		response.ErrorResponse(c, http.StatusUnauthorized, "not authenticated")
		return
	}

	id, ok := todoID(c)
	if !ok {
		return
	}

	if err := tc.todoService.Delete(c.Request.Context(), identity, id); err != nil {
		if errors.Is(err, service.ErrTodoNotFound) {
			response.ErrorResponse(c, http.StatusNotFound, err.Error())
			return
		}
		response.ErrorResponse(c, http.StatusInternalServerError, "failed to delete todo")
		return
	}

	response.NoContentResponse(c)
}

func todoID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ErrorResponse(c, http.StatusBadRequest, "invalid todo id")
		return 0, false
	}
	return id, true
}
