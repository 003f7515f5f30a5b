package services

import (
	"context"
	"time"

	"github.com/SscSPs/pos_ledger_app/internal/core/domain"
	"golang.org/x/oauth2"
)

// TokenSvcFacade issues the application's own access tokens.
type TokenSvcFacade interface {
	GenerateAccessToken(ctx context.Context, operator *domain.Operator) (string, time.Time, error)
}

// GoogleOAuthHandlerSvcFacade wraps the external identity provider.
type GoogleOAuthHandlerSvcFacade interface {
	// GenerateStateString creates a random CSRF state for the OAuth flow.
	GenerateStateString(ctx context.Context) (string, error)
	// GetGoogleLoginURL returns the URL to redirect the operator to for Google login.
	GetGoogleLoginURL(ctx context.Context, state string) string
	// ExchangeCodeForToken exchanges an OAuth authorization code for a token.
	ExchangeCodeForToken(ctx context.Context, code string) (*oauth2.Token, error)
	// ValidateGoogleIDToken validates an ID token and returns the identified operator.
	ValidateGoogleIDToken(ctx context.Context, idTokenString string) (*domain.Operator, error)
}

// APITokenSvc validates x-api-key credentials of POS terminals.
type APITokenSvc interface {
	// ValidateToken returns the terminal id the token belongs to.
	ValidateToken(ctx context.Context, tokenString string) (string, error)
}
