package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"bazaar-orders/internal/session"
)

const (
	sessionCookie = "session"
	ctxUserIdKey  = "userId"
)

// RequireAuth resolves the session cookie to a user id and aborts with 401
// when there is none. Role-based gating happens in the clients; the API only
// distinguishes authenticated from anonymous.
func RequireAuth(sessions *session.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(sessionCookie)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Not authenticated"})
			return
		}
		userId, ok := sessions.Get(token)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Not authenticated"})
			return
		}
		c.Set(ctxUserIdKey, userId)
		c.Next()
	}
}
