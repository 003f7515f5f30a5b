package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SscSPs/pos_ledger_app/internal/apperrors"
	"github.com/SscSPs/pos_ledger_app/internal/core/domain"
	portssvc "github.com/SscSPs/pos_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/pos_ledger_app/internal/core/state"
)

// ledgerService records business events and applies their impact.
type ledgerService struct {
	BaseService
	store  *state.Store
	engine *ledgerEngine
}

// NewLedgerService creates the ledger over store. bankAccountID is the account used
// for non-cash payments that name no account.
func NewLedgerService(store *state.Store, bankAccountID string, options ...ServiceOption) portssvc.LedgerSvcFacade {
	s := &ledgerService{BaseService: newBaseService(options...), store: store}
	s.engine = newLedgerEngine(bankAccountID, &s.BaseService)
	return s
}

var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

func (s *ledgerService) RecordTransaction(ctx context.Context, draft domain.TransactionDraft) (domain.Transaction, domain.ImpactResult) {
	var (
		tx     domain.Transaction
		result domain.ImpactResult
	)
	_ = s.store.Update(func(st *domain.AppState) error {
		tx, result = s.engine.record(st, draft)
		return nil
	})
	s.logImpact(ctx, "Transaction recorded", tx, result)
	return tx, result
}

func (s *ledgerService) UpdateTransaction(ctx context.Context, transactionID string, draft domain.TransactionDraft) (domain.Transaction, domain.ImpactResult, error) {
	var (
		tx     domain.Transaction
		result domain.ImpactResult
	)
	err := s.store.Update(func(st *domain.AppState) error {
		idx := st.TransactionIndex(transactionID)
		if idx < 0 {
			return fmt.Errorf("%w: transaction %s", apperrors.ErrNotFound, transactionID)
		}
		tx, result = s.engine.replace(st, idx, draft)
		return nil
	})
	if err != nil {
		return domain.Transaction{}, domain.ImpactResult{}, err
	}
	s.logImpact(ctx, "Transaction updated", tx, result)
	return tx, result, nil
}

func (s *ledgerService) DeleteTransaction(ctx context.Context, transactionID string) (domain.ImpactResult, error) {
	var result domain.ImpactResult
	err := s.store.Update(func(st *domain.AppState) error {
		idx := st.TransactionIndex(transactionID)
		if idx < 0 {
			return fmt.Errorf("%w: transaction %s", apperrors.ErrNotFound, transactionID)
		}
		result = s.engine.remove(st, idx)
		return nil
	})
	if err != nil {
		return domain.ImpactResult{}, err
	}
	s.LogInfo(ctx, "Transaction deleted", slog.String("transaction_id", transactionID), slog.Int("reversed", len(result.Reversed)))
	return result, nil
}

func (s *ledgerService) GetTransaction(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	var (
		tx    domain.Transaction
		found bool
	)
	s.store.View(func(st *domain.AppState) {
		if idx := st.TransactionIndex(transactionID); idx >= 0 {
			tx = cloneTransaction(st.Transactions[idx])
			found = true
		}
	})
	if !found {
		return nil, fmt.Errorf("%w: transaction %s", apperrors.ErrNotFound, transactionID)
	}
	return &tx, nil
}

func (s *ledgerService) ListTransactions(ctx context.Context, filter domain.TransactionFilter) ([]domain.Transaction, error) {
	out := make([]domain.Transaction, 0)
	staleAnchor := false
	s.store.View(func(st *domain.AppState) {
		start := 0
		if filter.AfterID != "" {
			idx := st.TransactionIndex(filter.AfterID)
			if idx < 0 {
				staleAnchor = true
				return
			}
			start = idx + 1
		}
		for _, tx := range st.Transactions[start:] {
			if !filter.Matches(tx) {
				continue
			}
			out = append(out, cloneTransaction(tx))
			if filter.Limit > 0 && len(out) >= filter.Limit {
				return
			}
		}
	})
	if staleAnchor {
		return nil, fmt.Errorf("%w: page anchor %s is no longer in the log, restart the listing", apperrors.ErrValidation, filter.AfterID)
	}
	return out, nil
}

func (s *ledgerService) logImpact(ctx context.Context, msg string, tx domain.Transaction, result domain.ImpactResult) {
	logger := s.GetLogger(ctx)
	logger.Info(msg,
		slog.String("transaction_id", tx.ID),
		slog.String("type", string(tx.Type)),
		slog.String("amount", tx.Amount.String()),
		slog.Int("applied", len(result.Applied())),
		slog.Int("reversed", len(result.Reversed)),
	)
	if result.AmountCoerced || result.DiscountCoerced {
		logger.Warn("Malformed money input coerced to zero",
			slog.String("transaction_id", tx.ID),
			slog.Bool("amount_coerced", result.AmountCoerced),
			slog.Bool("discount_coerced", result.DiscountCoerced),
		)
	}
	for _, e := range result.Skipped() {
		logger.Warn("Transaction effect skipped",
			slog.String("transaction_id", tx.ID),
			slog.String("kind", string(e.Kind)),
			slog.String("target_id", e.TargetID),
			slog.String("reason", string(e.SkipReason)),
		)
	}
}

func cloneTransaction(tx domain.Transaction) domain.Transaction {
	tx.Items = append([]domain.TransactionItem(nil), tx.Items...)
	tx.AppliedEffects = append([]domain.Effect(nil), tx.AppliedEffects...)
	return tx
}
