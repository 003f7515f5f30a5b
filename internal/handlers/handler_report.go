package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	portssvc "github.com/SscSPs/pos_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/pos_ledger_app/internal/dto"
	"github.com/SscSPs/pos_ledger_app/internal/middleware"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type reportHandler struct {
	reports  portssvc.ReportSvc
	location *time.Location
}

// registerReportRoutes registers the export routes.
func registerReportRoutes(rg *gin.RouterGroup, reports portssvc.ReportSvc, loc *time.Location) {
	h := &reportHandler{reports: reports, location: loc}

	rg.GET("/reports/transactions.xlsx", h.exportTransactions)
}

// exportTransactions godoc
// @Summary Export transactions as an Excel workbook
// @Description Exports transactions dated in [from, to). When to is omitted the export covers the single day starting at from.
// @Tags reports
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param   from query string true "Start (YYYY-MM-DD or RFC 3339), inclusive"
// @Param   to query string false "End (YYYY-MM-DD or RFC 3339), exclusive"
// @Success 200 {file} file
// @Failure 400 {object} ErrorResponse "Invalid range"
// @Security BearerAuth
// @Router /reports/transactions.xlsx [get]
func (h *reportHandler) exportTransactions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ExportTransactionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Invalid query parameters for ExportTransactions", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}
	if params.From == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "from is required"})
		return
	}
	from, err := parseTimeParam(params.From, h.location)
	if err != nil {
		respondError(c, err, "Invalid from")
		return
	}
	to, err := parseTimeParam(params.To, h.location)
	if err != nil {
		respondError(c, err, "Invalid to")
		return
	}
	end := from.AddDate(0, 0, 1)
	if to != nil {
		end = *to
	}

	data, err := h.reports.ExportTransactionsXLSX(c.Request.Context(), *from, end)
	if err != nil {
		respondError(c, err, "Failed to export transactions")
		return
	}

	filename := fmt.Sprintf("transactions_%s.xlsx", params.From)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, xlsxContentType, data)
}
