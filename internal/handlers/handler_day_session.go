package handlers

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/SscSPs/pos_ledger_app/internal/core/domain"
	portssvc "github.com/SscSPs/pos_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/pos_ledger_app/internal/dto"
	"github.com/SscSPs/pos_ledger_app/internal/middleware"
)

// adviceTimeout bounds a call to the advisory text collaborator.
const adviceTimeout = 10 * time.Second

// daySessionHandler handles the cash-drawer open/close lifecycle.
type daySessionHandler struct {
	sessions portssvc.DaySessionSvcFacade
	reports  portssvc.ReportSvc
	advisor  portssvc.AdvisorSvc
}

// RegisterDaySessionRoutes registers the day session routes.
func RegisterDaySessionRoutes(rg *gin.RouterGroup, sessions portssvc.DaySessionSvcFacade, reports portssvc.ReportSvc, advisor portssvc.AdvisorSvc) {
	h := &daySessionHandler{sessions: sessions, reports: reports, advisor: advisor}

	daySessions := rg.Group("/day-sessions")
	{
		daySessions.POST("/open", h.openDay)
		daySessions.POST("/close", h.closeDay)
		daySessions.GET("", h.listSessions)
		daySessions.GET("/current", h.currentSession)
		daySessions.GET("/:date", h.getSession)
		daySessions.GET("/:date/summary", h.daySummary)
		daySessions.GET("/:date/advice", h.dayAdvice)
	}
}

// openDay godoc
// @Summary Open today's day session
// @Description Creates or replaces today's session and sets the cash drawer balance to the declared float.
// @Tags day-sessions
// @Accept  json
// @Produce  json
// @Param   request body dto.OpenDayRequest true "Opening float"
// @Success 201 {object} dto.DaySessionResponse
// @Failure 400 {object} ErrorResponse "Invalid input"
// @Security BearerAuth
// @Router /day-sessions/open [post]
func (h *daySessionHandler) openDay(c *gin.Context) {
	var req dto.OpenDayRequest
	if !bindJSON(c, &req, "OpenDay") {
		return
	}
	session, err := h.sessions.OpenDay(c.Request.Context(), req.OpeningBalance)
	if err != nil {
		respondError(c, err, "Failed to open day")
		return
	}
	c.JSON(http.StatusCreated, dto.ToDaySessionResponse(*session))
}

// closeDay godoc
// @Summary Close today's day session
// @Description Records the counted cash and closes today's open session. The variance is reported, never booked.
// @Tags day-sessions
// @Accept  json
// @Produce  json
// @Param   request body dto.CloseDayRequest true "Counted cash"
// @Success 200 {object} dto.DaySessionResponse
// @Failure 400 {object} ErrorResponse "Invalid input"
// @Failure 409 {object} ErrorResponse "No open session today"
// @Security BearerAuth
// @Router /day-sessions/close [post]
func (h *daySessionHandler) closeDay(c *gin.Context) {
	var req dto.CloseDayRequest
	if !bindJSON(c, &req, "CloseDay") {
		return
	}
	session, err := h.sessions.CloseDay(c.Request.Context(), req.ActualClosing)
	if err != nil {
		respondError(c, err, "Failed to close day")
		return
	}
	c.JSON(http.StatusOK, dto.ToDaySessionResponse(*session))
}

// listSessions godoc
// @Summary List day sessions
// @Tags day-sessions
// @Produce  json
// @Success 200 {object} dto.ListDaySessionsResponse
// @Security BearerAuth
// @Router /day-sessions [get]
func (h *daySessionHandler) listSessions(c *gin.Context) {
	sessions, err := h.sessions.ListSessions(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to list day sessions")
		return
	}
	resp := dto.ListDaySessionsResponse{Sessions: make([]dto.DaySessionResponse, len(sessions))}
	for i, s := range sessions {
		resp.Sessions[i] = dto.ToDaySessionResponse(s)
	}
	c.JSON(http.StatusOK, resp)
}

// currentSession godoc
// @Summary Get today's day session
// @Tags day-sessions
// @Produce  json
// @Success 200 {object} dto.DaySessionResponse
// @Failure 404 {object} ErrorResponse "No session today"
// @Security BearerAuth
// @Router /day-sessions/current [get]
func (h *daySessionHandler) currentSession(c *gin.Context) {
	session, err := h.sessions.CurrentSession(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to retrieve current day session")
		return
	}
	c.JSON(http.StatusOK, dto.ToDaySessionResponse(*session))
}

// getSession godoc
// @Summary Get the day session of a date
// @Tags day-sessions
// @Produce  json
// @Param   date path string true "Date (YYYY-MM-DD)"
// @Success 200 {object} dto.DaySessionResponse
// @Failure 400 {object} ErrorResponse "Invalid date"
// @Failure 404 {object} ErrorResponse "Session not found"
// @Security BearerAuth
// @Router /day-sessions/{date} [get]
func (h *daySessionHandler) getSession(c *gin.Context) {
	session, err := h.sessions.GetSession(c.Request.Context(), c.Param("date"))
	if err != nil {
		respondError(c, err, "Failed to retrieve day session")
		return
	}
	c.JSON(http.StatusOK, dto.ToDaySessionResponse(*session))
}

// daySummary godoc
// @Summary Summarize a day
// @Description Totals per type and payment method plus the live cash reconciliation of a date.
// @Tags day-sessions
// @Produce  json
// @Param   date path string true "Date (YYYY-MM-DD)"
// @Success 200 {object} domain.DaySummary
// @Failure 400 {object} ErrorResponse "Invalid date"
// @Security BearerAuth
// @Router /day-sessions/{date}/summary [get]
func (h *daySessionHandler) daySummary(c *gin.Context) {
	summary, err := h.reports.DaySummary(c.Request.Context(), c.Param("date"))
	if err != nil {
		respondError(c, err, "Failed to summarize day")
		return
	}
	c.JSON(http.StatusOK, summary)
}

// dayAdvice godoc
// @Summary Get advisory notes for a day
// @Description Asks the advisory collaborator to comment on the day summary. When it is unavailable the response says so; it never fails the request.
// @Tags day-sessions
// @Produce  json
// @Param   date path string true "Date (YYYY-MM-DD)"
// @Success 200 {object} dto.AdviceResponse
// @Failure 400 {object} ErrorResponse "Invalid date"
// @Security BearerAuth
// @Router /day-sessions/{date}/advice [get]
func (h *daySessionHandler) dayAdvice(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	summary, err := h.reports.DaySummary(c.Request.Context(), c.Param("date"))
	if err != nil {
		respondError(c, err, "Failed to summarize day")
		return
	}

	resp := dto.AdviceResponse{Date: summary.Date}
	ctx, cancel := context.WithTimeout(c.Request.Context(), adviceTimeout)
	defer cancel()
	advice, err := h.advisor.Advise(ctx, advicePrompt(summary))
	if err != nil {
		logger.Warn("Advisor unavailable", slog.String("date", summary.Date), slog.String("error", err.Error()))
		c.JSON(http.StatusOK, resp)
		return
	}
	resp.Available = true
	resp.Advice = advice
	c.JSON(http.StatusOK, resp)
}

func advicePrompt(summary *domain.DaySummary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Business day %s: %d transactions.\n", summary.Date, summary.TransactionCount)

	types := make([]string, 0, len(summary.TotalsByType))
	for t := range summary.TotalsByType {
		types = append(types, string(t))
	}
	sort.Strings(types)
	for _, t := range types {
		fmt.Fprintf(&b, "- %s total: %s\n", t, summary.TotalsByType[domain.TransactionType(t)].StringFixed(2))
	}
	fmt.Fprintf(&b, "Discounts given: %s\n", summary.DiscountTotal.StringFixed(2))
	if summary.Session != nil {
		fmt.Fprintf(&b, "Cash drawer opened with %s, expected closing %s",
			summary.Session.OpeningBalance.StringFixed(2), summary.ExpectedClosing.StringFixed(2))
		if summary.Session.ActualClosing != nil {
			fmt.Fprintf(&b, ", counted %s (variance %s)", summary.Session.ActualClosing.StringFixed(2), summary.Variance.StringFixed(2))
		}
		b.WriteString(".\n")
	}
	b.WriteString("Give two or three short, practical suggestions for the shop owner.")
	return b.String()
}
