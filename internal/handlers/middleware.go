package handlers

import (
	"net/http"
	"strings"

	"pathxpress/internal/apperrors"
	"pathxpress/internal/redis"
	"pathxpress/internal/services"

	"github.com/gin-gonic/gin"
)

const sessionKey = "session"

// RequireAuth resolves the bearer token into a session and stores it
// on the request context.
func RequireAuth(userService services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token := strings.TrimPrefix(header, "Bearer ")
		if token == "" || token == header {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}

		session, err := userService.GetSession(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired session"})
			return
		}

		c.Set(sessionKey, session)
		c.Next()
	}
}

// RequireAdmin gates admin-portal endpoints.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := currentSession(c)
		if session == nil || session.Role != "admin" {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin access required"})
			return
		}
		c.Next()
	}
}

func currentSession(c *gin.Context) *redis.SessionData {
	value, exists := c.Get(sessionKey)
	if !exists {
		return nil
	}
	session, ok := value.(*redis.SessionData)
	if !ok {
		return nil
	}
	return session
}

// authorizeClient rejects a client-portal user reaching for another
// client's data. Admins pass through.
func authorizeClient(c *gin.Context, clientID uint) error {
	session := currentSession(c)
	if session == nil {
		return apperrors.Forbidden("not authenticated")
	}
	if session.Role == "admin" {
		return nil
	}
	if session.ClientID == nil || *session.ClientID != clientID {
		return apperrors.Forbidden("access to another client's data is not allowed")
	}
	return nil
}
