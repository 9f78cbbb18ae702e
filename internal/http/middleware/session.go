package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/smartkiosk/console/internal/session"
)

const (
	operatorKey = "currentOperator"
	tokenKey    = "sessionToken"
)

// Session checks "Authorization: Bearer <token>", resolves it against the
// session gate and sets the operator name in the gin context.
func Session(gate *session.Gate) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing auth header"})
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid auth header"})
			return
		}

		name, err := gate.Resolve(c.Request.Context(), parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "no active session"})
			return
		}
		c.Set(operatorKey, name)
		c.Set(tokenKey, parts[1])
		c.Next()
	}
}

// CurrentOperator retrieves the operator name set by Session.
func CurrentOperator(c *gin.Context) (string, bool) {
	name, exists := c.Get(operatorKey)
	if !exists {
		return "", false
	}
	s, ok := name.(string)
	return s, ok
}

// SessionToken retrieves the raw bearer token set by Session.
func SessionToken(c *gin.Context) (string, bool) {
	tok, exists := c.Get(tokenKey)
	if !exists {
		return "", false
	}
	s, ok := tok.(string)
	return s, ok
}
