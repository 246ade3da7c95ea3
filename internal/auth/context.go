package auth

import "github.com/gin-gonic/gin"

// Context keys set by AuthRequired.
const (
	ctxUserID    = "userID"
	ctxUserEmail = "userEmail"
)

// GetUserID returns the authenticated user's ID, or empty string when the
// request carries no valid token.
func GetUserID(c *gin.Context) string {
	return stringFromContext(c, ctxUserID)
}

// GetUserEmail returns the authenticated user's email, or empty string.
func GetUserEmail(c *gin.Context) string {
	return stringFromContext(c, ctxUserEmail)
}

func stringFromContext(c *gin.Context, key string) string {
	if v, ok := c.Get(key); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}
