package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/go-playground/validator/v10"

	"github.com/SscSPs/pos_ledger_app/internal/apperrors"
	"github.com/SscSPs/pos_ledger_app/internal/core/domain"
	portssvc "github.com/SscSPs/pos_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/pos_ledger_app/internal/core/state"
)

// maxCatchUpPeriods bounds how many missed periods one entry posts in a single run.
const maxCatchUpPeriods = 400

type recurringExpenseService struct {
	BaseService
	store    *state.Store
	engine   *ledgerEngine
	validate *validator.Validate
}

// NewRecurringExpenseService creates the scheduler of recurring expenses.
func NewRecurringExpenseService(store *state.Store, bankAccountID string, options ...ServiceOption) portssvc.RecurringExpenseSvc {
	s := &recurringExpenseService{BaseService: newBaseService(options...), store: store, validate: validator.New()}
	s.engine = newLedgerEngine(bankAccountID, &s.BaseService)
	return s
}

var _ portssvc.RecurringExpenseSvc = (*recurringExpenseService)(nil)

func (s *recurringExpenseService) ListRecurringExpenses(ctx context.Context) ([]domain.RecurringExpense, error) {
	var out []domain.RecurringExpense
	s.store.View(func(st *domain.AppState) {
		out = append([]domain.RecurringExpense{}, st.RecurringExpenses...)
	})
	return out, nil
}

func (s *recurringExpenseService) UpsertRecurringExpense(ctx context.Context, expense domain.RecurringExpense) (*domain.RecurringExpense, error) {
	if err := s.validate.Struct(expense); err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}
	if !expense.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation)
	}
	expense.ID = orNewID(expense.ID)
	if expense.DayOfMonth == 0 && expense.Frequency == domain.Monthly {
		if due, err := domain.ParseDateKey(expense.NextDueDate, s.location); err == nil {
			expense.DayOfMonth = due.Day()
		}
	}
	_ = s.store.Update(func(st *domain.AppState) error {
		st.RecurringExpenses = upsert(st.RecurringExpenses, expense, recurringID, func(_, incoming domain.RecurringExpense) domain.RecurringExpense {
			return incoming
		})
		return nil
	})
	s.LogInfo(ctx, "Recurring expense saved", slog.String("recurring_expense_id", expense.ID), slog.String("next_due", expense.NextDueDate))
	return &expense, nil
}

func (s *recurringExpenseService) DeleteRecurringExpense(ctx context.Context, id string) error {
	return s.store.Update(func(st *domain.AppState) error {
		var ok bool
		if st.RecurringExpenses, ok = removeByID(st.RecurringExpenses, id, recurringID); !ok {
			return fmt.Errorf("%w: recurring expense %s", apperrors.ErrNotFound, id)
		}
		return nil
	})
}

func (s *recurringExpenseService) PostDueRecurringExpenses(ctx context.Context) ([]domain.Transaction, error) {
	today := s.Today()
	posted := make([]domain.Transaction, 0)
	_ = s.store.Update(func(st *domain.AppState) error {
		for i := range st.RecurringExpenses {
			expense := &st.RecurringExpenses[i]
			if !expense.Active {
				continue
			}
			due, err := domain.ParseDateKey(expense.NextDueDate, s.location)
			if err != nil {
				s.LogError(ctx, err, "Recurring expense has an invalid due date", slog.String("recurring_expense_id", expense.ID))
				continue
			}
			if expense.Frequency == domain.Monthly && expense.DayOfMonth == 0 {
				expense.DayOfMonth = due.Day()
			}
			for n := 0; n < maxCatchUpPeriods && s.DateKey(due) <= today; n++ {
				date := due
				tx, result := s.engine.record(st, domain.TransactionDraft{
					Date:          &date,
					Type:          domain.Expense,
					Amount:        expense.Amount.String(),
					PaymentMethod: expense.PaymentMethod,
					AccountID:     expense.AccountID,
					Note:          expense.Name,
				})
				posted = append(posted, tx)
				if skipped := result.Skipped(); len(skipped) > 0 {
					s.GetLogger(ctx).Warn("Recurring expense posted with skipped effects",
						slog.String("recurring_expense_id", expense.ID),
						slog.String("transaction_id", tx.ID),
						slog.String("reason", string(skipped[0].SkipReason)),
					)
				}
				due = expense.Frequency.Next(due, expense.DayOfMonth)
			}
			expense.NextDueDate = s.DateKey(due)
		}
		return nil
	})
	if len(posted) > 0 {
		s.LogInfo(ctx, "Recurring expenses posted", slog.Int("count", len(posted)), slog.String("date", today))
	}
	return posted, nil
}
