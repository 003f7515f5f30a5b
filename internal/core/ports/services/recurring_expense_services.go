package services

import (
	"context"

	"github.com/SscSPs/pos_ledger_app/internal/core/domain"
)

// RecurringExpenseSvc manages scheduled expenses and posts them when due.
type RecurringExpenseSvc interface {
	ListRecurringExpenses(ctx context.Context) ([]domain.RecurringExpense, error)
	UpsertRecurringExpense(ctx context.Context, expense domain.RecurringExpense) (*domain.RecurringExpense, error)
	DeleteRecurringExpense(ctx context.Context, expenseID string) error

	// PostDueRecurringExpenses records one EXPENSE per elapsed period of every
	// active entry due on or before today and returns the recorded transactions.
	PostDueRecurringExpenses(ctx context.Context) ([]domain.Transaction, error)
}
