package middleware

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/SscSPs/pos_ledger_app/internal/core/ports/services"
)

// APITokenAuth authenticates POS terminals by their x-api-key header. Requests
// without a valid key continue to the JWT check.
func APITokenAuth(tokenSvc services.APITokenSvc) gin.HandlerFunc {
	return func(c *gin.Context) {
		if tokenSvc == nil || isPublicRoute(c.Request.URL.Path) {
			c.Next()
			return
		}

		apiKey := c.GetHeader("x-api-key")
		if apiKey == "" {
			c.Next()
			return
		}

		terminalID, err := tokenSvc.ValidateToken(c.Request.Context(), apiKey)
		if err != nil {
			GetLoggerFromCtx(c.Request.Context()).Warn("API token rejected", slog.String("error", err.Error()))
			c.Next()
			return
		}

		setAuthenticated(c, terminalID, AuthMethodAPIToken)
		enriched := GetLoggerFromCtx(c.Request.Context()).With(slog.String("user_id", terminalID))
		c.Request = c.Request.WithContext(WithLogger(c.Request.Context(), enriched))
		c.Next()
	}
}

// isPublicRoute checks if the given path is a public route that doesn't require authentication
func isPublicRoute(path string) bool {
	publicRoutes := []string{
		"/health",
		"/api/v1/health",
		"/auth/google/exchange",
	}

	for _, route := range publicRoutes {
		if path == route {
			return true
		}
	}

	return false
}
