package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/taskboard/taskboard-api/internal/authz"
	apierrors "github.com/taskboard/taskboard-api/internal/errors"
)

// RequirePermission gates a route on the role policy. It must run
// after RequireAuth so the role is available in the context.
func RequirePermission(resource authz.Resource, action authz.Action) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, ok := GetUserRole(c)
		if !ok {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		if !authz.CanAccess(role, resource, action) {
			apierrors.Forbidden(c, "")
			c.Abort()
			return
		}

		c.Next()
	}
}
