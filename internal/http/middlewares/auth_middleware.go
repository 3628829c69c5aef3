package middlewares

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/abdmnsor/MOVIES-API/internal/config"
	"github.com/abdmnsor/MOVIES-API/internal/domain/user"
	"github.com/gin-gonic/gin"
)

// Keep these interfaces small so tests can fake them easily.

type TokenVerifier interface {
	Verify(token string) (string, error)
}

type UserResolver interface {
	GetByID(ctx context.Context, id string) (user.User, error)
}

type AuthMiddleware struct {
	jwt   TokenVerifier
	users UserResolver
}

func NewAuthMiddleware(jwt TokenVerifier, users UserResolver) *AuthMiddleware {
	return &AuthMiddleware{jwt: jwt, users: users}
}

const (
	ctxUserIDKey  = "auth.userID"
	ctxIsAdminKey = "auth.isAdmin"
)

func abortUnauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
}

// RequireAuth extracts the bearer token, verifies it and resolves the embedded
// user id against the store. A token for a user that no longer exists is
// treated exactly like an invalid token: the request never reaches a handler.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			abortUnauthorized(c)
			return
		}

		raw := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer"))
		if raw == "" {
			abortUnauthorized(c)
			return
		}

		userID, err := m.jwt.Verify(raw)
		if err != nil {
			abortUnauthorized(c)
			return
		}

		cctx, cancel := config.WithTimeout(2 * time.Second)
		defer cancel()

		u, err := m.users.GetByID(cctx, userID)
		if err != nil {
			// unknown user id or store failure: fail closed
			abortUnauthorized(c)
			return
		}

		// Stash the resolved identity on the context for this request only
		SetIdentity(c, u.ID, u.IsAdmin)

		c.Next()
	}
}

// SetIdentity records the resolved caller on the request context.
func SetIdentity(c *gin.Context, userID string, isAdmin bool) {
	c.Set(ctxUserIDKey, userID)
	c.Set(ctxIsAdminKey, isAdmin)
}

// Helpers so handlers don't need to know the magic keys.

func UserIDFromContext(c *gin.Context) (string, bool) {
	v, ok := c.Get(ctxUserIDKey)
	if !ok {
		return "", false
	}
	id, ok := v.(string)
	return id, ok
}

func IsAdminFromContext(c *gin.Context) (bool, bool) {
	v, ok := c.Get(ctxIsAdminKey)
	if !ok {
		return false, false
	}
	isAdmin, ok := v.(bool)
	return isAdmin, ok
}
