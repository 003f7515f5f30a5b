package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/SscSPs/pos_ledger_app/internal/apperrors"
	"github.com/SscSPs/pos_ledger_app/internal/core/domain"
	portssvc "github.com/SscSPs/pos_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/pos_ledger_app/internal/core/services"
	"github.com/SscSPs/pos_ledger_app/internal/dto"
	"github.com/SscSPs/pos_ledger_app/internal/handlers"
	"github.com/SscSPs/pos_ledger_app/internal/middleware"
	"github.com/SscSPs/pos_ledger_app/internal/utils"
	"github.com/SscSPs/pos_ledger_app/internal/utils/pagination"
)

const testJWTSecret = "test-secret-key-that-is-long-enough"

// --- Mock LedgerService ---
type MockLedgerService struct {
	mock.Mock
}

func (m *MockLedgerService) GetTransaction(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockLedgerService) ListTransactions(ctx context.Context, filter domain.TransactionFilter) ([]domain.Transaction, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

func (m *MockLedgerService) RecordTransaction(ctx context.Context, draft domain.TransactionDraft) (domain.Transaction, domain.ImpactResult) {
	args := m.Called(ctx, draft)
	return args.Get(0).(domain.Transaction), args.Get(1).(domain.ImpactResult)
}

func (m *MockLedgerService) UpdateTransaction(ctx context.Context, transactionID string, draft domain.TransactionDraft) (domain.Transaction, domain.ImpactResult, error) {
	args := m.Called(ctx, transactionID, draft)
	return args.Get(0).(domain.Transaction), args.Get(1).(domain.ImpactResult), args.Error(2)
}

func (m *MockLedgerService) DeleteTransaction(ctx context.Context, transactionID string) (domain.ImpactResult, error) {
	args := m.Called(ctx, transactionID)
	return args.Get(0).(domain.ImpactResult), args.Error(1)
}

var _ portssvc.LedgerSvcFacade = (*MockLedgerService)(nil)

// --- Mock DaySessionService ---
type MockDaySessionService struct {
	mock.Mock
}

func (m *MockDaySessionService) CurrentSession(ctx context.Context) (*domain.DaySession, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DaySession), args.Error(1)
}

func (m *MockDaySessionService) GetSession(ctx context.Context, date string) (*domain.DaySession, error) {
	args := m.Called(ctx, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DaySession), args.Error(1)
}

func (m *MockDaySessionService) ListSessions(ctx context.Context) ([]domain.DaySession, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DaySession), args.Error(1)
}

func (m *MockDaySessionService) ExpectedClosing(ctx context.Context, date string) (decimal.Decimal, error) {
	args := m.Called(ctx, date)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockDaySessionService) RequireOpenDay(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockDaySessionService) Today() string {
	return m.Called().String(0)
}

func (m *MockDaySessionService) OpenDay(ctx context.Context, openingBalance decimal.Decimal) (*domain.DaySession, error) {
	args := m.Called(ctx, openingBalance)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DaySession), args.Error(1)
}

func (m *MockDaySessionService) CloseDay(ctx context.Context, actualClosing decimal.Decimal) (*domain.DaySession, error) {
	args := m.Called(ctx, actualClosing)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DaySession), args.Error(1)
}

var _ portssvc.DaySessionSvcFacade = (*MockDaySessionService)(nil)

// generateTestToken creates a signed JWT for the given operator.
func generateTestToken(t *testing.T, operatorID string) string {
	token, err := utils.GenerateJWT(operatorID, testJWTSecret, time.Hour, "pos-ledger-test")
	if err != nil {
		t.Fatalf("failed to sign test token: %v", err)
	}
	return token
}

func newJSONRequest(t *testing.T, method, url string, body any) *http.Request {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("failed to encode body: %v", err)
		}
	}
	req, _ := http.NewRequest(method, url, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+generateTestToken(t, "operator-1"))
	return req
}

// --- Test Suite ---
type TransactionHandlerTestSuite struct {
	suite.Suite
	router      *gin.Engine
	mockLedger  *MockLedgerService
	mockSession *MockDaySessionService
}

func (suite *TransactionHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.router.Use(middleware.AuthMiddleware(testJWTSecret))

	suite.mockLedger = new(MockLedgerService)
	suite.mockSession = new(MockDaySessionService)

	v1 := suite.router.Group("/api/v1")
	handlers.RegisterTransactionRoutes(v1, suite.mockLedger, suite.mockSession, time.UTC)
}

func TestTransactionHandler(t *testing.T) {
	suite.Run(t, new(TransactionHandlerTestSuite))
}

func (suite *TransactionHandlerTestSuite) TestRecord_SaleRequiresOpenDay() {
	suite.mockSession.On("RequireOpenDay", mock.Anything).Return(services.ErrNoOpenSession).Once()

	req := newJSONRequest(suite.T(), http.MethodPost, "/api/v1/transactions", map[string]any{
		"type": "SALE", "amount": 100, "paymentMethod": "CASH",
	})
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusConflict, w.Code)
	suite.mockLedger.AssertNotCalled(suite.T(), "RecordTransaction", mock.Anything, mock.Anything)
	suite.mockSession.AssertExpectations(suite.T())
}

func (suite *TransactionHandlerTestSuite) TestRecord_ExpenseSkipsDayGate() {
	tx := domain.Transaction{ID: "tx-1", Type: domain.Expense, Amount: decimal.NewFromInt(25), PaymentMethod: domain.PaymentCash}
	impact := domain.ImpactResult{TransactionID: "tx-1"}
	suite.mockLedger.On("RecordTransaction", mock.Anything, mock.MatchedBy(func(d domain.TransactionDraft) bool {
		return d.Type == domain.Expense && d.Amount == "25" && d.PaymentMethod == domain.PaymentCash
	})).Return(tx, impact).Once()

	req := newJSONRequest(suite.T(), http.MethodPost, "/api/v1/transactions", map[string]any{
		"type": "EXPENSE", "amount": "25", "paymentMethod": "CASH",
	})
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.RecordTransactionResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("tx-1", resp.Transaction.ID)
	suite.Equal("tx-1", resp.Impact.TransactionID)
	suite.mockSession.AssertNotCalled(suite.T(), "RequireOpenDay", mock.Anything)
	suite.mockLedger.AssertExpectations(suite.T())
}

func (suite *TransactionHandlerTestSuite) TestRecord_RejectsUnknownType() {
	req := newJSONRequest(suite.T(), http.MethodPost, "/api/v1/transactions", map[string]any{
		"type": "REFUND", "amount": 10,
	})
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *TransactionHandlerTestSuite) TestRecord_RejectsNegativeQuantity() {
	req := newJSONRequest(suite.T(), http.MethodPost, "/api/v1/transactions", map[string]any{
		"type": "EXPENSE", "amount": 10, "paymentMethod": "CASH",
		"items": []map[string]any{{"productId": "p1", "quantity": -3}},
	})
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockLedger.AssertNotCalled(suite.T(), "RecordTransaction", mock.Anything, mock.Anything)
}

func (suite *TransactionHandlerTestSuite) TestRecord_RequiresToken() {
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/transactions", bytes.NewBufferString(`{"type":"EXPENSE"}`))
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
}

func (suite *TransactionHandlerTestSuite) TestGet_NotFound() {
	suite.mockLedger.On("GetTransaction", mock.Anything, "missing").
		Return(nil, fmt.Errorf("%w: transaction missing", apperrors.ErrNotFound)).Once()

	req := newJSONRequest(suite.T(), http.MethodGet, "/api/v1/transactions/missing", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusNotFound, w.Code)
	suite.mockLedger.AssertExpectations(suite.T())
}

func (suite *TransactionHandlerTestSuite) TestList_Paginates() {
	base := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	page := []domain.Transaction{
		{ID: "t3", Type: domain.Sale, Date: base},
		{ID: "t2", Type: domain.Sale, Date: base.Add(-time.Hour)},
		{ID: "t1", Type: domain.Sale, Date: base.Add(-2 * time.Hour)},
	}
	suite.mockLedger.On("ListTransactions", mock.Anything, mock.MatchedBy(func(f domain.TransactionFilter) bool {
		return f.Limit == 3 && f.Type == domain.Sale && f.From != nil && f.AfterID == ""
	})).Return(page, nil).Once()

	req := newJSONRequest(suite.T(), http.MethodGet, "/api/v1/transactions?type=SALE&limit=2&from=2024-03-10", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Require().Equal(http.StatusOK, w.Code)
	var resp dto.ListTransactionsResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Len(resp.Transactions, 2)
	suite.Require().NotNil(resp.NextToken)

	suite.mockLedger.On("ListTransactions", mock.Anything, mock.MatchedBy(func(f domain.TransactionFilter) bool {
		return f.AfterID == "t2"
	})).Return(page[2:], nil).Once()

	req = newJSONRequest(suite.T(), http.MethodGet, "/api/v1/transactions?type=SALE&limit=2&nextToken="+*resp.NextToken, nil)
	w = httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Require().Equal(http.StatusOK, w.Code)
	var second dto.ListTransactionsResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &second))
	suite.Len(second.Transactions, 1)
	suite.Nil(second.NextToken)
	suite.mockLedger.AssertExpectations(suite.T())
}

func (suite *TransactionHandlerTestSuite) TestList_StaleTokenIsBadRequest() {
	suite.mockLedger.On("ListTransactions", mock.Anything, mock.MatchedBy(func(f domain.TransactionFilter) bool {
		return f.AfterID == "gone"
	})).Return(nil, fmt.Errorf("%w: page anchor gone is no longer in the log", apperrors.ErrValidation)).Once()

	token := pagination.EncodeToken("gone", time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC))
	req := newJSONRequest(suite.T(), http.MethodGet, "/api/v1/transactions?nextToken="+url.QueryEscape(token), nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockLedger.AssertExpectations(suite.T())
}

func (suite *TransactionHandlerTestSuite) TestList_InvalidDate() {
	req := newJSONRequest(suite.T(), http.MethodGet, "/api/v1/transactions?from=yesterday", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockLedger.AssertNotCalled(suite.T(), "ListTransactions", mock.Anything, mock.Anything)
}

func (suite *TransactionHandlerTestSuite) TestDelete_ReturnsCompensation() {
	impact := domain.ImpactResult{TransactionID: "tx-9"}
	suite.mockLedger.On("DeleteTransaction", mock.Anything, "tx-9").Return(impact, nil).Once()

	req := newJSONRequest(suite.T(), http.MethodDelete, "/api/v1/transactions/tx-9", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)
	suite.mockLedger.AssertExpectations(suite.T())
}
