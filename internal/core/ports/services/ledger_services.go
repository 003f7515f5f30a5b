package services

import (
	"context"

	"github.com/SscSPs/pos_ledger_app/internal/core/domain"
)

// LedgerReaderSvc defines read operations on the transaction log.
type LedgerReaderSvc interface {
	// GetTransaction retrieves a transaction by id.
	GetTransaction(ctx context.Context, transactionID string) (*domain.Transaction, error)

	// ListTransactions returns log entries, newest first, matching the filter.
	ListTransactions(ctx context.Context, filter domain.TransactionFilter) ([]domain.Transaction, error)
}

// LedgerWriterSvc defines the commands that change the log and apply its impact.
type LedgerWriterSvc interface {
	// RecordTransaction normalizes the draft, appends it to the log and applies its
	// impact on accounts, customer credit and stock. It never fails; effects that
	// could not be applied are reported in the result.
	RecordTransaction(ctx context.Context, draft domain.TransactionDraft) (domain.Transaction, domain.ImpactResult)

	// UpdateTransaction reverses the stored transaction's impact, replaces it and
	// applies the new impact.
	UpdateTransaction(ctx context.Context, transactionID string, draft domain.TransactionDraft) (domain.Transaction, domain.ImpactResult, error)

	// DeleteTransaction reverses the transaction's impact and removes it from the log.
	DeleteTransaction(ctx context.Context, transactionID string) (domain.ImpactResult, error)
}

// LedgerSvcFacade combines all ledger service interfaces.
type LedgerSvcFacade interface {
	LedgerReaderSvc
	LedgerWriterSvc
}
