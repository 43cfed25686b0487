package middleware

import (
	"net/http"
	"strings"

	"logitrack/internal/config"
	domainUser "logitrack/internal/domain/user"
	"logitrack/pkg/utils"

	"github.com/gin-gonic/gin"
)

const identityKey = "identity"

// AuthMiddleware resolves the bearer access token into an Identity and
// stores it in the request context. Requests without a valid token never
// reach a protected handler.
func AuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.ErrorResponse(c, http.StatusUnauthorized, "Authorization header required")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			utils.ErrorResponse(c, http.StatusUnauthorized, "Invalid authorization header format")
			c.Abort()
			return
		}

		claims, err := utils.ValidateToken(parts[1], cfg.JWT.Secret)
		if err != nil {
			utils.ErrorResponse(c, http.StatusUnauthorized, "Invalid or expired token")
			c.Abort()
			return
		}

		role, err := domainUser.ParseRole(claims.Role)
		if err != nil {
			utils.ErrorResponse(c, http.StatusUnauthorized, "Invalid or expired token")
			c.Abort()
			return
		}

		c.Set(identityKey, &domainUser.Identity{
			UserID: claims.UserID,
			Role:   role,
		})

		c.Next()
	}
}

// GetIdentity retrieves the resolved caller from the Gin context. Nil
// means the request was not authenticated.
func GetIdentity(c *gin.Context) *domainUser.Identity {
	value, exists := c.Get(identityKey)
	if !exists {
		return nil
	}
	identity, ok := value.(*domainUser.Identity)
	if !ok {
		return nil
	}
	return identity
}
