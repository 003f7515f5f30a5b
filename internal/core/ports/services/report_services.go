package services

import (
	"context"
	"time"

	"github.com/SscSPs/pos_ledger_app/internal/core/domain"
)

// ReportSvc produces derived views over the ledger.
type ReportSvc interface {
	// DaySummary aggregates one date's transactions and its session reconciliation.
	DaySummary(ctx context.Context, date string) (*domain.DaySummary, error)

	// ExportTransactionsXLSX renders transactions dated in [from, to) as a workbook.
	ExportTransactionsXLSX(ctx context.Context, from, to time.Time) ([]byte, error)
}
