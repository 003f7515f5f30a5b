package services

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/idtoken"

	"github.com/SscSPs/pos_ledger_app/internal/apperrors"
	"github.com/SscSPs/pos_ledger_app/internal/core/domain"
	portssvc "github.com/SscSPs/pos_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/pos_ledger_app/internal/platform/config"
	"github.com/SscSPs/pos_ledger_app/internal/utils"
)

// tokenService issues the application's JWT access tokens.
type tokenService struct {
	cfg *config.Config
}

// NewTokenService creates a new instance of tokenService.
func NewTokenService(cfg *config.Config) portssvc.TokenSvcFacade {
	return &tokenService{cfg: cfg}
}

// GenerateAccessToken creates a new JWT access token for the given operator.
func (s *tokenService) GenerateAccessToken(ctx context.Context, operator *domain.Operator) (string, time.Time, error) {
	if operator == nil || operator.ID == "" {
		return "", time.Time{}, fmt.Errorf("%w: operator id is required", apperrors.ErrValidation)
	}
	expiryTime := time.Now().Add(s.cfg.JWTExpiryDuration)
	accessToken, err := utils.GenerateJWT(operator.ID, s.cfg.JWTSecret, s.cfg.JWTExpiryDuration, s.cfg.JWTIssuer)
	if err != nil {
		return "", time.Time{}, err
	}
	return accessToken, expiryTime, nil
}

// --- GoogleOAuthHandlerSvcFacade Implementation ---

// idTokenValidator matches idtoken.Validate so tests can replace it.
type idTokenValidator func(ctx context.Context, idToken string, audience string) (*idtoken.Payload, error)

type googleOAuthHandlerService struct {
	cfg          *config.Config
	oauth2Config *oauth2.Config
	validate     idTokenValidator
}

// NewGoogleOAuthHandlerService creates a new instance of googleOAuthHandlerService.
func NewGoogleOAuthHandlerService(cfg *config.Config) portssvc.GoogleOAuthHandlerSvcFacade {
	return &googleOAuthHandlerService{
		cfg: cfg,
		oauth2Config: &oauth2.Config{
			ClientID:     cfg.GoogleClientID,
			ClientSecret: cfg.GoogleClientSecret,
			RedirectURL:  cfg.GoogleRedirectURL,
			Scopes:       []string{"openid", "https://www.googleapis.com/auth/userinfo.email", "https://www.googleapis.com/auth/userinfo.profile"},
			Endpoint:     google.Endpoint,
		},
		validate: idtoken.Validate,
	}
}

// GenerateStateString creates a secure random string to be used as a CSRF token for OAuth flow.
func (s *googleOAuthHandlerService) GenerateStateString(ctx context.Context) (string, error) {
	state, err := utils.RandomToken(24)
	if err != nil {
		return "", fmt.Errorf("failed to generate state string for OAuth: %w", err)
	}
	return state, nil
}

// GetGoogleLoginURL returns the URL to redirect the operator to for Google login.
func (s *googleOAuthHandlerService) GetGoogleLoginURL(ctx context.Context, state string) string {
	return s.oauth2Config.AuthCodeURL(state)
}

// ExchangeCodeForToken exchanges an OAuth authorization code for a token.
func (s *googleOAuthHandlerService) ExchangeCodeForToken(ctx context.Context, code string) (*oauth2.Token, error) {
	token, err := s.oauth2Config.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to exchange oauth code for token: %v", apperrors.ErrUnauthorized, err)
	}
	return token, nil
}

// ValidateGoogleIDToken validates an ID token received from Google and maps it to an operator.
func (s *googleOAuthHandlerService) ValidateGoogleIDToken(ctx context.Context, idTokenString string) (*domain.Operator, error) {
	if s.cfg.GoogleClientID == "" {
		return nil, fmt.Errorf("%w: google client ID is not configured", apperrors.ErrUnavailable)
	}

	payload, err := s.validate(ctx, idTokenString, s.cfg.GoogleClientID)
	if err != nil {
		return nil, fmt.Errorf("%w: google ID token validation failed: %v", apperrors.ErrUnauthorized, err)
	}

	operator := &domain.Operator{ID: payload.Subject}
	if email, ok := payload.Claims["email"].(string); ok {
		operator.Email = email
	}
	if name, ok := payload.Claims["name"].(string); ok {
		operator.Name = name
	}
	return operator, nil
}

// --- APITokenSvc Implementation ---

// ErrInvalidAPIToken is returned for unknown or malformed terminal keys.
var ErrInvalidAPIToken = fmt.Errorf("%w: invalid api token", apperrors.ErrUnauthorized)

// apiTokenService validates the shared terminal key against its bcrypt hash.
type apiTokenService struct {
	tokenHash  string
	terminalID string
}

// NewAPITokenService creates the terminal key validator. An empty hash disables
// API token access.
func NewAPITokenService(tokenHash string) portssvc.APITokenSvc {
	return &apiTokenService{tokenHash: tokenHash, terminalID: "pos-terminal"}
}

// ValidateToken returns the terminal id when tokenString matches the configured hash.
func (s *apiTokenService) ValidateToken(ctx context.Context, tokenString string) (string, error) {
	if tokenString == "" || s.tokenHash == "" {
		return "", ErrInvalidAPIToken
	}
	if !utils.CheckAPIKeyHash(tokenString, s.tokenHash) {
		return "", ErrInvalidAPIToken
	}
	return s.terminalID, nil
}
