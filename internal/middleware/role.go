package middleware

import (
	"net/http"

	domainUser "logitrack/internal/domain/user"
	"logitrack/pkg/utils"

	"github.com/gin-gonic/gin"
)

// RoleMiddleware gates a route group on the caller's role. Ownership
// checks happen deeper, in the authorization guard; this only rejects
// roles that can never reach the operation.
func RoleMiddleware(allowedRoles ...domainUser.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity := GetIdentity(c)
		if identity == nil {
			utils.ErrorResponse(c, http.StatusUnauthorized, "Authentication required")
			c.Abort()
			return
		}

		for _, allowedRole := range allowedRoles {
			if identity.Role == allowedRole {
				c.Next()
				return
			}
		}

		utils.ErrorResponse(c, http.StatusForbidden, "Insufficient permissions")
		c.Abort()
	}
}

func AdminOnly() gin.HandlerFunc {
	return RoleMiddleware(domainUser.RoleAdmin)
}

func DriverOnly() gin.HandlerFunc {
	return RoleMiddleware(domainUser.RoleDriver)
}
