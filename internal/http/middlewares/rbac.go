package middlewares

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RequireAdmin must run after RequireAuth. A missing identity context is an
// authentication failure (401), not a privilege failure (403): authorization
// is never evaluated against an unresolved identity.
func (m *AuthMiddleware) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		isAdmin, ok := IsAdminFromContext(c)

		if !ok {
			abortUnauthorized(c)
			return
		}

		if !isAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "Forbidden"})
			return
		}

		c.Next()
	}
}
