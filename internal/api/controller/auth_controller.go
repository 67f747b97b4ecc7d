package controller

import (
	"errors"
	"net/http"
	"strings"

	"todoapp/internal/api/models"
	"todoapp/internal/api/response"
	"todoapp/internal/api/service"

	"github.com/gin-gonic/gin"
)

// AuthController handles registration, login and logout HTTP requests.
type AuthController struct {
	authService service.AuthService
}

// NewAuthController creates a new AuthController.
func NewAuthController(authService service.AuthService) *AuthController {
	return &AuthController{
		authService: authService,
	}
}

// Register handles the user registration endpoint.
func (ac *AuthController) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	user, err := ac.authService.Register(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserExists):
			response.ErrorResponse(c, http.StatusConflict, err.Error())
		case errors.Is(err, service.ErrValidation):
			response.ErrorResponse(c, http.StatusBadRequest, err.Error())
		default:
			response.ErrorResponse(c, http.StatusInternalServerError, "failed to register user")
		}
		return
	}

	response.CreatedResponse(c, user)
}

// Login handles the user login endpoint. Unknown usernames and wrong
// passwords get the same answer.
func (ac *AuthController) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	token, err := ac.authService.Login(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) || errors.Is(err, service.ErrBadPassword) {
			response.ErrorResponse(c, http.StatusUnauthorized, "invalid username or password")
			return
		}
		response.ErrorResponse(c, http.StatusInternalServerError, "failed to log in")
		return
	}

	response.SuccessResponse(c, models.LoginResponse{Token: token})
}

// Logout revokes the presented token for the rest of its lifetime.
func (ac *AuthController) Logout(c *gin.Context) {
	header := c.GetHeader("Authorization")
	tokenString, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || tokenString == "" {
		response.ErrorResponse(c, http.StatusUnauthorized, "missing bearer token")
		return
	}

	if err := ac.authService.Revoke(c.Request.Context(), tokenString); err != nil {
		switch {
		case errors.Is(err, service.ErrRevocationUnavailable):
			response.ErrorResponse(c, http.StatusServiceUnavailable, err.Error())
		case errors.Is(err, service.ErrTokenInvalid):
			response.ErrorResponse(c, http.StatusUnauthorized, "invalid token")
		default:
			response.ErrorResponse(c, http.StatusInternalServerError, "failed to log out")
		}
		return
	}

	response.NoContentResponse(c)
}
