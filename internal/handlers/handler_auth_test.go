package handlers_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"golang.org/x/oauth2"

	"github.com/SscSPs/pos_ledger_app/internal/apperrors"
	"github.com/SscSPs/pos_ledger_app/internal/core/domain"
	portssvc "github.com/SscSPs/pos_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/pos_ledger_app/internal/dto"
	"github.com/SscSPs/pos_ledger_app/internal/handlers"
	"github.com/SscSPs/pos_ledger_app/internal/platform/config"
)

type MockGoogleOAuthService struct {
	mock.Mock
}

func (m *MockGoogleOAuthService) GenerateStateString(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *MockGoogleOAuthService) GetGoogleLoginURL(ctx context.Context, state string) string {
	return m.Called(ctx, state).String(0)
}

func (m *MockGoogleOAuthService) ExchangeCodeForToken(ctx context.Context, code string) (*oauth2.Token, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*oauth2.Token), args.Error(1)
}

func (m *MockGoogleOAuthService) ValidateGoogleIDToken(ctx context.Context, idTokenString string) (*domain.Operator, error) {
	args := m.Called(ctx, idTokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Operator), args.Error(1)
}

var _ portssvc.GoogleOAuthHandlerSvcFacade = (*MockGoogleOAuthService)(nil)

type MockTokenService struct {
	mock.Mock
}

func (m *MockTokenService) GenerateAccessToken(ctx context.Context, operator *domain.Operator) (string, time.Time, error) {
	args := m.Called(ctx, operator)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

var _ portssvc.TokenSvcFacade = (*MockTokenService)(nil)

type AuthHandlerTestSuite struct {
	suite.Suite
	router     *gin.Engine
	mockGoogle *MockGoogleOAuthService
	mockTokens *MockTokenService
}

func (suite *AuthHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.mockGoogle = new(MockGoogleOAuthService)
	suite.mockTokens = new(MockTokenService)

	cfg := &config.Config{IsProduction: true, JWTSecret: testJWTSecret, Location: time.UTC}
	handlers.RegisterRoutes(suite.router, cfg, &portssvc.ServiceContainer{
		GoogleOAuth:  suite.mockGoogle,
		TokenService: suite.mockTokens,
	}, nil)
}

func TestAuthHandler(t *testing.T) {
	suite.Run(t, new(AuthHandlerTestSuite))
}

func (suite *AuthHandlerTestSuite) exchange(code string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(http.MethodPost, "/auth/google/exchange", strings.NewReader(fmt.Sprintf(`{"code":%q}`, code)))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *AuthHandlerTestSuite) TestExchange_IssuesToken() {
	operator := &domain.Operator{ID: "google-123", Email: "owner@example.com"}
	expires := time.Date(2024, 3, 10, 10, 0, 0, 0, time.UTC)
	token := (&oauth2.Token{AccessToken: "google-access"}).WithExtra(map[string]any{"id_token": "id-token"})

	suite.mockGoogle.On("ExchangeCodeForToken", mock.Anything, "good-code").Return(token, nil).Once()
	suite.mockGoogle.On("ValidateGoogleIDToken", mock.Anything, "id-token").Return(operator, nil).Once()
	suite.mockTokens.On("GenerateAccessToken", mock.Anything, operator).Return("app-jwt", expires, nil).Once()

	w := suite.exchange("good-code")

	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	var resp dto.ExchangeCodeResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("app-jwt", resp.Token)
	suite.True(expires.Equal(resp.ExpiresAt))
	suite.mockGoogle.AssertExpectations(suite.T())
	suite.mockTokens.AssertExpectations(suite.T())
}

func (suite *AuthHandlerTestSuite) TestExchange_InvalidGrant() {
	suite.mockGoogle.On("ExchangeCodeForToken", mock.Anything, "stale").
		Return(nil, fmt.Errorf("%w: oauth2: \"invalid_grant\"", apperrors.ErrUnauthorized)).Once()

	w := suite.exchange("stale")

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockTokens.AssertNotCalled(suite.T(), "GenerateAccessToken", mock.Anything, mock.Anything)
}

func (suite *AuthHandlerTestSuite) TestExchange_MissingIDToken() {
	suite.mockGoogle.On("ExchangeCodeForToken", mock.Anything, "no-id").Return(&oauth2.Token{AccessToken: "x"}, nil).Once()

	w := suite.exchange("no-id")

	suite.Equal(http.StatusInternalServerError, w.Code)
	suite.mockGoogle.AssertNotCalled(suite.T(), "ValidateGoogleIDToken", mock.Anything, mock.Anything)
}

func (suite *AuthHandlerTestSuite) TestExchange_RequiresCode() {
	w := suite.exchange("")
	suite.Equal(http.StatusBadRequest, w.Code)
}
