package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
)

// userIDKey is the key used to store the authenticated operator's ID.
const userIDKey = contextKey("userID")

// authMethodKey records which middleware authenticated the request.
const authMethodKey = contextKey("authMethod")

const (
	AuthMethodJWT      = "jwt"
	AuthMethodAPIToken = "api_token"
)

// WithUserID returns a copy of ctx carrying the authenticated operator id.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// GetUserIDFromContext retrieves the authenticated operator ID from the Gin context.
// It returns the ID and a boolean indicating if it was found.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	if userIDVal, exists := c.Get(string(userIDKey)); exists {
		userID, ok := userIDVal.(string)
		return userID, ok
	}
	// check in the request context as well
	if userID, ok := c.Request.Context().Value(userIDKey).(string); ok {
		return userID, true
	}
	return "", false
}

func setAuthenticated(c *gin.Context, userID, method string) {
	c.Set(string(userIDKey), userID)
	c.Set(string(authMethodKey), method)
	c.Request = c.Request.WithContext(WithUserID(c.Request.Context(), userID))
}
