package middleware

import "github.com/gin-gonic/gin"

// userIDKey is the context key carrying the authenticated user's ID set by
// AuthMiddleware. Handlers receive it as an explicit capability value, not
// ambient mutable state.
const userIDKey = contextKey("userID")

// GetUserIDFromContext retrieves the authenticated user ID from the request
// context. The second return reports whether it was present.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	userID, ok := c.Request.Context().Value(userIDKey).(string)
	if !ok || userID == "" {
		return "", false
	}
	return userID, true
}
