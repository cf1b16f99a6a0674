package middleware

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"authbackend/internal/apperr"
	"authbackend/internal/models"
)

// RequireRoles restricts a route to users whose role is in allowedRoles.
// Must run after Authenticate.
func RequireRoles(allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil {
			Fail(c, apperr.Unauthorized("Unauthorized access"))
			return
		}

		if user.Role == "" {
			Fail(c, apperr.Forbidden(fmt.Sprintf("Access denied for user %q. Role is missing.", user.UserName)))
			return
		}

		for _, role := range allowedRoles {
			if user.Role == role {
				c.Next()
				return
			}
		}

		Fail(c, apperr.Forbidden(fmt.Sprintf("Access denied for role %q. Insufficient permissions.", user.Role)))
	}
}

// RequireAdmin restricts a route to admin users.
func RequireAdmin() gin.HandlerFunc {
	return RequireRoles(models.RoleAdmin)
}
