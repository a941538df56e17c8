package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/taskboard/taskboard-api/internal/constants"
	apierrors "github.com/taskboard/taskboard-api/internal/errors"
	"github.com/taskboard/taskboard-api/internal/models"
	"github.com/taskboard/taskboard-api/internal/services"
)

// RequireAuth authenticates the request via a Bearer access token and
// stores the caller's identity in the context. Missing, malformed,
// expired and otherwise invalid tokens each produce a distinct error
// code.
func RequireAuth(tokens *services.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			apierrors.UnauthorizedWithCode(c, apierrors.ErrCodeUnauthorized, "Missing access token")
			c.Abort()
			return
		}

		tokenStr, ok := strings.CutPrefix(header, "Bearer ")
		if !ok {
			apierrors.UnauthorizedWithCode(c, apierrors.ErrCodeTokenInvalid, "Invalid authorization header")
			c.Abort()
			return
		}

		claims, err := tokens.VerifyAccess(tokenStr)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrTokenExpired):
				apierrors.UnauthorizedWithCode(c, apierrors.ErrCodeTokenExpired, "Access token has expired")
			case errors.Is(err, services.ErrTokenMalformed):
				apierrors.UnauthorizedWithCode(c, apierrors.ErrCodeTokenMalformed, "Malformed access token")
			default:
				apierrors.UnauthorizedWithCode(c, apierrors.ErrCodeTokenInvalid, "Invalid access token")
			}
			c.Abort()
			return
		}

		userID, err := claims.UserID()
		if err != nil {
			apierrors.UnauthorizedWithCode(c, apierrors.ErrCodeTokenInvalid, "Invalid access token")
			c.Abort()
			return
		}

		role, ok := models.ParseRole(claims.Role)
		if !ok {
			apierrors.UnauthorizedWithCode(c, apierrors.ErrCodeTokenInvalid, "Invalid access token")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyUserID, userID)
		c.Set(constants.ContextKeyUserRole, role)
		c.Next()
	}
}

// GetUserID retrieves the current user ID from context
func GetUserID(c *gin.Context) (uint64, bool) {
	value, exists := c.Get(constants.ContextKeyUserID)
	if !exists {
		return 0, false
	}

	userID, ok := value.(uint64)
	return userID, ok
}

// GetUserRole retrieves the current user role from context
func GetUserRole(c *gin.Context) (models.Role, bool) {
	value, exists := c.Get(constants.ContextKeyUserRole)
	if !exists {
		return "", false
	}

	role, ok := value.(models.Role)
	return role, ok
}
