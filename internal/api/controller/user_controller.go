package controller

import (
	"errors"
	"net/http"

	"todoapp/internal/api/middleware"
	"todoapp/internal/api/models"
	"todoapp/internal/api/response"
	"todoapp/internal/api/service"

	"github.com/gin-gonic/gin"
)

// UserController handles requests about the authenticated user itself.
type UserController struct {
	authService service.AuthService
}

// NewUserController creates a new UserController.
func NewUserController(authService service.AuthService) *UserController {
	return &UserController{
		authService: authService,
	}
}

// Me returns the caller's own user record.
func (uc *UserController) Me(c *gin.Context) {
	identity := middleware.CurrentIdentity(c)
	if identity == nil {
		response.ErrorResponse(c, http.StatusUnauthorized, "not authenticated")
		return
	}

	user, err := uc.authService.GetUser(c.Request.Context(), identity.UserID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			response.ErrorResponse(c, http.StatusNotFound, err.Error())
			return
		}
		response.ErrorResponse(c, http.StatusInternalServerError, "failed to load user")
		return
	}

	response.SuccessResponse(c, user)
}

// ChangePassword replaces the caller's password after verifying the
// current one.
func (uc *UserController) ChangePassword(c *gin.Context) {
	identity := middleware.CurrentIdentity(c)
	if identity == nil {
		response.ErrorResponse(c, http.StatusUnauthorized, "not authenticated")
		return
	}

	var req models.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := uc.authService.ChangePassword(c.Request.Context(), identity.UserID, &req); err != nil {
		switch {
		case errors.Is(err, service.ErrBadPassword):
			response.ErrorResponse(c, http.StatusUnauthorized, "current password is incorrect")
		case errors.Is(err, service.ErrValidation):
			response.ErrorResponse(c, http.StatusBadRequest, err.Error())
		default:
			response.ErrorResponse(c, http.StatusInternalServerError, "failed to change password")
		}
		return
	}

	response.NoContentResponse(c)
}
