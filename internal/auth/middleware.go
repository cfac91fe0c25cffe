package auth

import (
	"net/http"

	dom "github.com/MrTochi/focus-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

// SessionCookieName is the cookie the session token travels in.
const SessionCookieName = "token"

const (
	contextKeyUserID = "user_id"
	contextKeyRole   = "role"
)

// UserIDFromContext returns the current user ID set by RequireSession. 0 if not set.
func UserIDFromContext(c *gin.Context) int64 {
	v, ok := c.Get(contextKeyUserID)
	if !ok {
		return 0
	}
	id, ok := v.(int64)
	if !ok {
		return 0
	}
	return id
}

// RoleFromContext returns the current user role set by RequireSession.
func RoleFromContext(c *gin.Context) dom.Role {
	v, ok := c.Get(contextKeyRole)
	if !ok {
		return ""
	}
	role, ok := v.(dom.Role)
	if !ok {
		return ""
	}
	return role
}

// RequireSession returns a middleware that verifies the session cookie and
// sets the caller's id and role in context. Missing or invalid -> 403.
func RequireSession(tokens *Tokens) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, err := c.Cookie(SessionCookieName)
		if err != nil || tokenString == "" {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "Authorization required", "success": false})
			return
		}
		claims, err := tokens.Verify(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "Invalid or expired session", "success": false})
			return
		}
		c.Set(contextKeyUserID, claims.UserID)
		c.Set(contextKeyRole, claims.Role)
		c.Next()
	}
}
