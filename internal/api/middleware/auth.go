package middleware

import (
	"errors"
	"net/http"
	"strings"

	"todoapp/internal/api/models"
	"todoapp/internal/api/response"
	"todoapp/internal/api/service"

	"github.com/gin-gonic/gin"
)

const identityKey = "identity"

// Auth returns a gin middleware that verifies the bearer token on every
// request and stores the caller's identity in the context. Requests with a
// missing, malformed, expired or revoked token are rejected before any
// handler runs.
func Auth(authService service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		tokenString, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || tokenString == "" {
			response.ErrorResponse(c, http.StatusUnauthorized, "missing bearer token")
			c.Abort()
			return
		}

		identity, err := authService.VerifyToken(c.Request.Context(), tokenString)
		if err != nil {
			response.ErrorResponse(c, http.StatusUnauthorized, verifyMessage(err))
			c.Abort()
			return
		}

		c.Set(identityKey, identity)
		c.Next()
	}
}

func verifyMessage(err error) string {
	switch {
	case errors.Is(err, service.ErrTokenExpired):
		return "token expired"
	case errors.Is(err, service.ErrTokenRevoked):
		return "token revoked"
	default:
		return "invalid token"
	}
}

// CurrentIdentity returns the identity stored by Auth, or nil when the
// request never passed through it.
func CurrentIdentity(c *gin.Context) *models.Identity {
	v, ok := c.Get(identityKey)
	if !ok {
		return nil
	}
	identity, ok := v.(*models.Identity)
	if !ok {
		return nil
	}
	return identity
}
