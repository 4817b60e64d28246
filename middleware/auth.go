package middleware

import (
	"context"
	"net/http"
	"strings"

	"gearbook/models"
	"gearbook/utils"

	"github.com/gin-gonic/gin"
)

// Context keys set by the auth guards.
const (
	ContextUserIDKey  = "userID"
	ContextSessionKey = "session"
)

// TokenVerifier checks a bearer token and resolves the session behind it.
// The concrete implementation lives in the user service so guards can be
// tested with a stub.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (string, models.Session, error)
}

// bearerToken extracts the token from the Authorization header.
func bearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return ""
	}
	return strings.TrimPrefix(authHeader, "Bearer ")
}

// RequireAuth rejects requests without a valid session. On success the user
// ID and session are stored on the gin context for handlers downstream.
func RequireAuth(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			utils.JSONError(c, http.StatusUnauthorized, "Authentication required", "missing bearer token")
			c.Abort()
			return
		}

		userID, session, err := verifier.Verify(c.Request.Context(), token)
		if err != nil {
			utils.JSONError(c, http.StatusUnauthorized, "Invalid or expired session", err.Error())
			c.Abort()
			return
		}

		c.Set(ContextUserIDKey, userID)
		c.Set(ContextSessionKey, session)
		c.Next()
	}
}

// RequireRoles rejects authenticated requests whose role is not in the given
// set. It must run after RequireAuth.
func RequireRoles(roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, ok := SessionFrom(c)
		if !ok {
			utils.JSONError(c, http.StatusUnauthorized, "Authentication required", "no session in context")
			c.Abort()
			return
		}
		if !session.HasRole(roles...) {
			utils.JSONError(c, http.StatusForbidden, "Insufficient permissions", "role not allowed for this resource")
			c.Abort()
			return
		}
		c.Next()
	}
}

// UserIDFrom returns the authenticated user's ID from the gin context.
func UserIDFrom(c *gin.Context) (string, bool) {
	val, exists := c.Get(ContextUserIDKey)
	if !exists {
		return "", false
	}
	id, ok := val.(string)
	return id, ok && id != ""
}

// SessionFrom returns the authenticated session from the gin context.
func SessionFrom(c *gin.Context) (models.Session, bool) {
	val, exists := c.Get(ContextSessionKey)
	if !exists {
		return models.Session{}, false
	}
	session, ok := val.(models.Session)
	return session, ok
}
