package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/SscSPs/pos_ledger_app/internal/apperrors"
	"github.com/SscSPs/pos_ledger_app/internal/core/domain"
	portssvc "github.com/SscSPs/pos_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/pos_ledger_app/internal/core/state"
	"github.com/shopspring/decimal"
)

var (
	// ErrNoOpenSession is returned when a command needs today's session to be open.
	ErrNoOpenSession = fmt.Errorf("%w: no open day session for today", apperrors.ErrConflict)
	// ErrInvalidDate is returned for date keys not in YYYY-MM-DD form.
	ErrInvalidDate = fmt.Errorf("%w: date must be YYYY-MM-DD", apperrors.ErrValidation)
)

// daySessionService runs the cash-drawer open/close lifecycle.
type daySessionService struct {
	BaseService
	store         *state.Store
	bankAccountID string
}

// NewDaySessionService creates the day-session reconciler over store.
func NewDaySessionService(store *state.Store, bankAccountID string, options ...ServiceOption) portssvc.DaySessionSvcFacade {
	if bankAccountID == "" {
		bankAccountID = domain.DefaultBankAccountID
	}
	return &daySessionService{BaseService: newBaseService(options...), store: store, bankAccountID: bankAccountID}
}

var _ portssvc.DaySessionSvcFacade = (*daySessionService)(nil)

func (s *daySessionService) OpenDay(ctx context.Context, openingBalance decimal.Decimal) (*domain.DaySession, error) {
	if openingBalance.IsNegative() {
		return nil, fmt.Errorf("%w: opening balance must not be negative", apperrors.ErrValidation)
	}
	now := s.Now()
	session := domain.DaySession{
		Date:            s.DateKey(now),
		OpeningBalance:  openingBalance,
		ExpectedClosing: openingBalance,
		Status:          domain.SessionOpen,
		OpenedAt:        now,
	}
	err := s.store.Update(func(st *domain.AppState) error {
		cash := st.Account(domain.CashAccountID)
		if cash == nil {
			st.Accounts = append(st.Accounts, domain.Account{ID: domain.CashAccountID, Name: "Cash Drawer", Kind: domain.AccountCash})
			cash = st.Account(domain.CashAccountID)
		}
		cash.Balance = openingBalance

		if existing := st.DaySession(session.Date); existing != nil {
			*existing = session
		} else {
			st.DaySessions = append(st.DaySessions, session)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.LogInfo(ctx, "Day session opened", slog.String("date", session.Date), slog.String("opening_balance", openingBalance.String()))
	return &session, nil
}

func (s *daySessionService) CloseDay(ctx context.Context, actualClosing decimal.Decimal) (*domain.DaySession, error) {
	today := s.Today()
	var closed domain.DaySession
	err := s.store.Update(func(st *domain.AppState) error {
		session := st.DaySession(today)
		if session == nil || session.Status != domain.SessionOpen {
			return ErrNoOpenSession
		}
		now := s.Now()
		actual := actualClosing
		session.ExpectedClosing = s.expectedClosing(st, *session)
		session.ActualClosing = &actual
		session.ClosedAt = &now
		session.Status = domain.SessionClosed
		closed = *session
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.LogInfo(ctx, "Day session closed",
		slog.String("date", closed.Date),
		slog.String("expected_closing", closed.ExpectedClosing.String()),
		slog.String("actual_closing", actualClosing.String()),
		slog.String("variance", closed.Variance().String()),
	)
	return &closed, nil
}

func (s *daySessionService) ExpectedClosing(ctx context.Context, date string) (decimal.Decimal, error) {
	if date == "" {
		date = s.Today()
	}
	if _, err := domain.ParseDateKey(date, s.location); err != nil {
		return decimal.Zero, ErrInvalidDate
	}
	var (
		expected decimal.Decimal
		found    bool
	)
	s.store.View(func(st *domain.AppState) {
		if session := st.DaySession(date); session != nil {
			expected = s.expectedClosing(st, *session)
			found = true
		}
	})
	if !found {
		return decimal.Zero, fmt.Errorf("%w: day session %s", apperrors.ErrNotFound, date)
	}
	return expected, nil
}

// expectedClosing is the session's opening float plus the cash movements logged
// on its date.
func (s *daySessionService) expectedClosing(st *domain.AppState, session domain.DaySession) decimal.Decimal {
	return session.OpeningBalance.Add(CashMovement(st.Transactions, session.Date, s.bankAccountID, s.DateKey))
}

// withLiveExpected refreshes the expected figure of an open session. A closed
// session keeps the figure it was reconciled with.
func (s *daySessionService) withLiveExpected(st *domain.AppState, session domain.DaySession) domain.DaySession {
	if session.Status == domain.SessionOpen {
		session.ExpectedClosing = s.expectedClosing(st, session)
	}
	return session
}

// CashMovement sums the signed cash-drawer flow of every transaction dated on
// date, as decided by dateKey.
func CashMovement(txs []domain.Transaction, date, bankAccountID string, dateKey func(t time.Time) string) decimal.Decimal {
	total := decimal.Zero
	for _, tx := range txs {
		if dateKey(tx.Date) != date {
			continue
		}
		total = total.Add(cashDelta(tx, bankAccountID))
	}
	return total
}

func cashDelta(tx domain.Transaction, bankAccountID string) decimal.Decimal {
	switch tx.Type {
	case domain.Transfer:
		delta := decimal.Zero
		if tx.DestinationAccountID == domain.CashAccountID {
			delta = delta.Add(tx.Amount)
		}
		if tx.AccountID == domain.CashAccountID {
			delta = delta.Sub(tx.Amount)
		}
		return delta
	case domain.Sale, domain.CreditPayment, domain.Expense, domain.Purchase:
		if tx.PaymentMethod != domain.PaymentCash || ResolveAccountID(tx, bankAccountID) != domain.CashAccountID {
			return decimal.Zero
		}
		if tx.Type.IsInflow() {
			return tx.Amount
		}
		return tx.Amount.Neg()
	default:
		return decimal.Zero
	}
}

func (s *daySessionService) CurrentSession(ctx context.Context) (*domain.DaySession, error) {
	return s.GetSession(ctx, s.Today())
}

func (s *daySessionService) GetSession(ctx context.Context, date string) (*domain.DaySession, error) {
	if _, err := domain.ParseDateKey(date, s.location); err != nil {
		return nil, ErrInvalidDate
	}
	var (
		session domain.DaySession
		found   bool
	)
	s.store.View(func(st *domain.AppState) {
		if existing := st.DaySession(date); existing != nil {
			session = s.withLiveExpected(st, *existing)
			found = true
		}
	})
	if !found {
		return nil, fmt.Errorf("%w: day session %s", apperrors.ErrNotFound, date)
	}
	return &session, nil
}

func (s *daySessionService) ListSessions(ctx context.Context) ([]domain.DaySession, error) {
	var sessions []domain.DaySession
	s.store.View(func(st *domain.AppState) {
		sessions = make([]domain.DaySession, 0, len(st.DaySessions))
		for _, session := range st.DaySessions {
			sessions = append(sessions, s.withLiveExpected(st, session))
		}
	})
	sort.Slice(sessions, func(i, j int) bool { return sessions[i].Date > sessions[j].Date })
	return sessions, nil
}

func (s *daySessionService) RequireOpenDay(ctx context.Context) error {
	session, err := s.CurrentSession(ctx)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return ErrNoOpenSession
		}
		return err
	}
	if session.Status != domain.SessionOpen {
		return ErrNoOpenSession
	}
	return nil
}
