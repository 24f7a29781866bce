package middleware

import (
	"net/http"
	"strings"

	"github.com/bbois1999/gun-event/utils"

	"github.com/gin-gonic/gin"
)

const (
	// ContextUserID is the gin context key for the authenticated user id.
	ContextUserID = "userID"
	// ContextUserEmail is the authenticated user's email, when present.
	ContextUserEmail = "userEmail"
)

// SessionAuth authenticates requests from the session cookie, falling back
// to a bearer token for non-browser clients. Either way the token is the
// same signed session shape.
func SessionAuth(sessions *utils.SessionManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr, err := c.Cookie(utils.SessionCookieName)
		if err != nil || tokenStr == "" {
			authHeader := strings.TrimSpace(c.GetHeader("Authorization"))
			if strings.HasPrefix(authHeader, "Bearer ") {
				tokenStr = strings.TrimPrefix(authHeader, "Bearer ")
			}
		}
		if tokenStr == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			c.Abort()
			return
		}

		claims, err := sessions.Verify(tokenStr)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			c.Abort()
			return
		}

		c.Set(ContextUserID, claims.ID)
		c.Set(ContextUserEmail, claims.Email)
		c.Next()
	}
}

// OptionalSessionAuth sets the user id when a valid session is present but
// never rejects the request. Used on public routes whose response varies for
// logged-in viewers.
func OptionalSessionAuth(sessions *utils.SessionManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr, err := c.Cookie(utils.SessionCookieName)
		if err != nil || tokenStr == "" {
			authHeader := strings.TrimSpace(c.GetHeader("Authorization"))
			if strings.HasPrefix(authHeader, "Bearer ") {
				tokenStr = strings.TrimPrefix(authHeader, "Bearer ")
			}
		}
		if tokenStr != "" {
			if claims, err := sessions.Verify(tokenStr); err == nil {
				c.Set(ContextUserID, claims.ID)
				c.Set(ContextUserEmail, claims.Email)
			}
		}
		c.Next()
	}
}

// CurrentUserID returns the authenticated user id set by SessionAuth.
func CurrentUserID(c *gin.Context) string {
	if v, ok := c.Get(ContextUserID); ok {
		if id, ok := v.(string); ok {
			return id
		}
	}
	return ""
}
