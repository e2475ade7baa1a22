// Package authmw provides the Gin middleware gating authenticated routes.
package authmw

import (
	"context"
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"

	"jobtrack_backend/internal/platform/token"
)

// ContextUserID is the gin context key under which the authenticated user's ID is stored.
const ContextUserID = "userID"

// SessionCookie is the name of the session token cookie.
const SessionCookie = "session_token"

// SessionResolver maps a session token to the owning user ID.
// Following Go convention: interfaces are defined by the consumer (middleware), not the provider (usecase).
type SessionResolver interface {
	ResolveSession(ctx context.Context, sessionID string) (uint, error)
}

// AuthRequired returns a Gin middleware that restricts access to
// authenticated users. Identity comes from the session cookie for browser
// clients, or from an Authorization bearer token for API clients. On success
// the user ID is stored in the gin context; handlers pass it explicitly to
// every store call.
func AuthRequired(sessions SessionResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 1. Session cookie first
		if cookie, err := c.Cookie(SessionCookie); err == nil && cookie != "" {
			userID, err := sessions.ResolveSession(c.Request.Context(), cookie)
			if err == nil {
				c.Set(ContextUserID, userID)
				c.Next()
				return
			}
			// Fall through: an API client may still carry a bearer token.
		}

		// 2. Bearer token
		auth := c.GetHeader("Authorization")
		if !strings.HasPrefix(auth, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}
		tokenStr := strings.TrimPrefix(auth, "Bearer ")

		secret := os.Getenv(token.EnvKeyJWTSecret)
		if secret == "" {
			// Server misconfiguration (JWT_SECRET not set)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "server misconfigured"})
			return
		}

		userID, err := token.ParseUserID(tokenStr, []byte(secret))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		c.Set(ContextUserID, userID)
		c.Next()
	}
}

// UserID extracts the authenticated user's ID from the gin context.
// The boolean is false when the middleware did not run.
func UserID(c *gin.Context) (uint, bool) {
	v, ok := c.Get(ContextUserID)
	if !ok {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok
}
