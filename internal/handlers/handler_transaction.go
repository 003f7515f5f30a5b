package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/SscSPs/pos_ledger_app/internal/apperrors"
	"github.com/SscSPs/pos_ledger_app/internal/core/domain"
	portssvc "github.com/SscSPs/pos_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/pos_ledger_app/internal/dto"
	"github.com/SscSPs/pos_ledger_app/internal/middleware"
	"github.com/SscSPs/pos_ledger_app/internal/utils/pagination"
)

// transactionHandler handles HTTP requests for the transaction log.
type transactionHandler struct {
	ledger   portssvc.LedgerSvcFacade
	sessions portssvc.DaySessionReaderSvc
	location *time.Location
}

// RegisterTransactionRoutes registers the transaction routes. Sales are refused
// unless today's day session is open.
func RegisterTransactionRoutes(rg *gin.RouterGroup, ledger portssvc.LedgerSvcFacade, sessions portssvc.DaySessionReaderSvc, loc *time.Location) {
	if loc == nil {
		loc = time.Local
	}
	h := &transactionHandler{ledger: ledger, sessions: sessions, location: loc}

	transactions := rg.Group("/transactions")
	{
		transactions.POST("", h.recordTransaction)
		transactions.GET("", h.listTransactions)
		transactions.GET("/:transactionID", h.getTransaction)
		transactions.PUT("/:transactionID", h.updateTransaction)
		transactions.DELETE("/:transactionID", h.deleteTransaction)
	}
}

// requireOpenDayForSale answers 409 and returns false when a sale is submitted
// without an open day session.
func (h *transactionHandler) requireOpenDayForSale(c *gin.Context, txType domain.TransactionType) bool {
	if txType != domain.Sale {
		return true
	}
	if err := h.sessions.RequireOpenDay(c.Request.Context()); err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			err = apperrors.NewAppError(http.StatusConflict, "open the day before recording sales", err)
		}
		respondError(c, err, "Failed to check day session")
		return false
	}
	return true
}

// recordTransaction godoc
// @Summary Record a transaction
// @Description Logs a sale, purchase, expense, credit payment or transfer and applies its impact on accounts, customer credit and stock. Malformed amounts are recorded as zero.
// @Tags transactions
// @Accept  json
// @Produce  json
// @Param   transaction body dto.TransactionRequest true "Transaction descriptor"
// @Success 201 {object} dto.RecordTransactionResponse
// @Failure 400 {object} ErrorResponse "Invalid input format"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 409 {object} ErrorResponse "No open day session for a sale"
// @Security BearerAuth
// @Router /transactions [post]
func (h *transactionHandler) recordTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.TransactionRequest
	if !bindJSON(c, &req, "RecordTransaction") {
		return
	}
	if !h.requireOpenDayForSale(c, req.Type) {
		return
	}

	logger.Info("Received request to record transaction", slog.String("type", string(req.Type)), slog.String("payment_method", string(req.PaymentMethod)))
	tx, impact := h.ledger.RecordTransaction(c.Request.Context(), req.ToDraft())

	c.JSON(http.StatusCreated, dto.RecordTransactionResponse{
		Transaction: dto.ToTransactionResponse(tx),
		Impact:      impact,
	})
}

// getTransaction godoc
// @Summary Get a transaction by ID
// @Tags transactions
// @Produce  json
// @Param   transactionID path string true "Transaction ID"
// @Success 200 {object} dto.TransactionResponse
// @Failure 404 {object} ErrorResponse "Transaction not found"
// @Security BearerAuth
// @Router /transactions/{transactionID} [get]
func (h *transactionHandler) getTransaction(c *gin.Context) {
	tx, err := h.ledger.GetTransaction(c.Request.Context(), c.Param("transactionID"))
	if err != nil {
		respondError(c, err, "Failed to retrieve transaction")
		return
	}
	c.JSON(http.StatusOK, dto.ToTransactionResponse(*tx))
}

// listTransactions godoc
// @Summary List transactions
// @Description Lists the log newest first, with optional filters and token based pagination.
// @Tags transactions
// @Produce  json
// @Param   type query string false "Transaction type"
// @Param   customerId query string false "Customer ID"
// @Param   from query string false "Inclusive lower bound (RFC 3339 or YYYY-MM-DD)"
// @Param   to query string false "Exclusive upper bound (RFC 3339 or YYYY-MM-DD)"
// @Param   limit query int false "Page size" default(50)
// @Param   nextToken query string false "Token from the previous page"
// @Success 200 {object} dto.ListTransactionsResponse
// @Failure 400 {object} ErrorResponse "Invalid query parameters"
// @Security BearerAuth
// @Router /transactions [get]
func (h *transactionHandler) listTransactions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ListTransactionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query params for ListTransactions", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}
	if params.Limit <= 0 {
		params.Limit = 50
	}

	filter := domain.TransactionFilter{Type: params.Type, CustomerID: params.CustomerID, Limit: params.Limit + 1}
	var err error
	if filter.From, err = parseTimeParam(params.From, h.location); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid from: " + err.Error()})
		return
	}
	if filter.To, err = parseTimeParam(params.To, h.location); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid to: " + err.Error()})
		return
	}
	if params.NextToken != "" {
		lastID, _, err := pagination.DecodeToken(params.NextToken)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
			return
		}
		filter.AfterID = lastID
	}

	txs, err := h.ledger.ListTransactions(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err, "Failed to list transactions")
		return
	}

	resp := dto.ListTransactionsResponse{}
	if len(txs) > params.Limit {
		txs = txs[:params.Limit]
		last := txs[len(txs)-1]
		token := pagination.EncodeToken(last.ID, last.Date)
		resp.NextToken = &token
	}
	resp.Transactions = dto.ToTransactionResponses(txs)
	c.JSON(http.StatusOK, resp)
}

// updateTransaction godoc
// @Summary Edit a transaction
// @Description Reverses the stored transaction's impact, replaces it and applies the new impact.
// @Tags transactions
// @Accept  json
// @Produce  json
// @Param   transactionID path string true "Transaction ID"
// @Param   transaction body dto.TransactionRequest true "Replacement descriptor"
// @Success 200 {object} dto.RecordTransactionResponse
// @Failure 400 {object} ErrorResponse "Invalid input format"
// @Failure 404 {object} ErrorResponse "Transaction not found"
// @Failure 409 {object} ErrorResponse "No open day session for a sale"
// @Security BearerAuth
// @Router /transactions/{transactionID} [put]
func (h *transactionHandler) updateTransaction(c *gin.Context) {
	var req dto.TransactionRequest
	if !bindJSON(c, &req, "UpdateTransaction") {
		return
	}
	if !h.requireOpenDayForSale(c, req.Type) {
		return
	}

	tx, impact, err := h.ledger.UpdateTransaction(c.Request.Context(), c.Param("transactionID"), req.ToDraft())
	if err != nil {
		respondError(c, err, "Failed to update transaction")
		return
	}
	c.JSON(http.StatusOK, dto.RecordTransactionResponse{
		Transaction: dto.ToTransactionResponse(tx),
		Impact:      impact,
	})
}

// deleteTransaction godoc
// @Summary Delete a transaction
// @Description Reverses the transaction's impact and removes it from the log.
// @Tags transactions
// @Produce  json
// @Param   transactionID path string true "Transaction ID"
// @Success 200 {object} domain.ImpactResult
// @Failure 404 {object} ErrorResponse "Transaction not found"
// @Security BearerAuth
// @Router /transactions/{transactionID} [delete]
func (h *transactionHandler) deleteTransaction(c *gin.Context) {
	impact, err := h.ledger.DeleteTransaction(c.Request.Context(), c.Param("transactionID"))
	if err != nil {
		respondError(c, err, "Failed to delete transaction")
		return
	}
	c.JSON(http.StatusOK, impact)
}

// parseTimeParam accepts an RFC 3339 timestamp or a calendar date in loc.
// Blank input means no bound.
func parseTimeParam(raw string, loc *time.Location) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return &t, nil
	}
	t, err := domain.ParseDateKey(raw, loc)
	if err != nil {
		return nil, apperrors.NewBadRequestError(fmt.Sprintf("%q is neither RFC 3339 nor YYYY-MM-DD", raw))
	}
	return &t, nil
}
