package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SscSPs/pos_ledger_app/internal/core/domain"
	portssvc "github.com/SscSPs/pos_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/pos_ledger_app/internal/dto"
	"github.com/SscSPs/pos_ledger_app/internal/middleware"
)

type recurringExpenseHandler struct {
	expenses portssvc.RecurringExpenseSvc
}

func registerRecurringExpenseRoutes(rg *gin.RouterGroup, expenses portssvc.RecurringExpenseSvc) {
	h := &recurringExpenseHandler{expenses: expenses}

	re := rg.Group("/recurring-expenses")
	{
		re.GET("", h.listRecurringExpenses)
		re.POST("", h.upsertRecurringExpense)
		re.POST("/post-due", h.postDue)
		re.PUT("/:id", h.upsertRecurringExpense)
		re.DELETE("/:id", h.deleteRecurringExpense)
	}
}

// listRecurringExpenses godoc
// @Summary List recurring expenses
// @Tags recurring-expenses
// @Produce  json
// @Success 200 {array} domain.RecurringExpense
// @Security BearerAuth
// @Router /recurring-expenses [get]
func (h *recurringExpenseHandler) listRecurringExpenses(c *gin.Context) {
	expenses, err := h.expenses.ListRecurringExpenses(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to list recurring expenses")
		return
	}
	c.JSON(http.StatusOK, expenses)
}

// upsertRecurringExpense godoc
// @Summary Create or update a recurring expense
// @Tags recurring-expenses
// @Accept  json
// @Produce  json
// @Param   id path string false "Recurring expense ID (PUT only)"
// @Param   expense body domain.RecurringExpense true "Recurring expense"
// @Success 200 {object} domain.RecurringExpense
// @Success 201 {object} domain.RecurringExpense
// @Failure 400 {object} ErrorResponse "Validation error"
// @Security BearerAuth
// @Router /recurring-expenses [post]
// @Router /recurring-expenses/{id} [put]
func (h *recurringExpenseHandler) upsertRecurringExpense(c *gin.Context) {
	var expense domain.RecurringExpense
	if !bindJSON(c, &expense, "UpsertRecurringExpense") {
		return
	}
	if id := c.Param("id"); id != "" {
		expense.ID = id
	}
	saved, err := h.expenses.UpsertRecurringExpense(c.Request.Context(), expense)
	if err != nil {
		respondError(c, err, "Failed to save recurring expense")
		return
	}
	c.JSON(savedStatus(c), saved)
}

// deleteRecurringExpense godoc
// @Summary Delete a recurring expense
// @Description Already posted expenses stay in the ledger.
// @Tags recurring-expenses
// @Param   id path string true "Recurring expense ID"
// @Success 204 "No Content"
// @Failure 404 {object} ErrorResponse "Recurring expense not found"
// @Security BearerAuth
// @Router /recurring-expenses/{id} [delete]
func (h *recurringExpenseHandler) deleteRecurringExpense(c *gin.Context) {
	if err := h.expenses.DeleteRecurringExpense(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err, "Failed to delete recurring expense")
		return
	}
	c.Status(http.StatusNoContent)
}

// postDue godoc
// @Summary Post due recurring expenses
// @Description Records one EXPENSE per elapsed period of every active entry due on or before today.
// @Tags recurring-expenses
// @Produce  json
// @Success 200 {object} dto.PostDueResponse
// @Security BearerAuth
// @Router /recurring-expenses/post-due [post]
func (h *recurringExpenseHandler) postDue(c *gin.Context) {
	posted, err := h.expenses.PostDueRecurringExpenses(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to post recurring expenses")
		return
	}
	if len(posted) > 0 {
		middleware.GetLoggerFromCtx(c.Request.Context()).Info("Posted recurring expenses", slog.Int("count", len(posted)))
	}
	c.JSON(http.StatusOK, dto.PostDueResponse{Posted: dto.ToTransactionResponses(posted)})
}
