package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	sessionIDKey = "sessionId"
	// DefaultSessionID is used when the client does not send X-Session-Id.
	DefaultSessionID = "default"
	maxSessionIDLen  = 128
)

// Session resolves the caller's session from the X-Session-Id header.
func Session() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := strings.TrimSpace(c.GetHeader("X-Session-Id"))
		if id == "" || len(id) > maxSessionIDLen || strings.ContainsAny(id, "\r\n") {
			id = DefaultSessionID
		}
		c.Set(sessionIDKey, id)
		c.Next()
	}
}

// SessionIDFromContext returns the session set by Session, or the default.
func SessionIDFromContext(c *gin.Context) string {
	if c == nil {
		return DefaultSessionID
	}
	if id := c.GetString(sessionIDKey); id != "" {
		return id
	}
	return DefaultSessionID
}
