package services

import (
	"context"

	"github.com/SscSPs/pos_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// DaySessionReaderSvc defines read operations on day sessions.
type DaySessionReaderSvc interface {
	// CurrentSession returns today's session, or apperrors.ErrNotFound.
	CurrentSession(ctx context.Context) (*domain.DaySession, error)

	// GetSession returns the session of a YYYY-MM-DD date.
	GetSession(ctx context.Context, date string) (*domain.DaySession, error)

	// ListSessions returns all sessions, newest date first.
	ListSessions(ctx context.Context) ([]domain.DaySession, error)

	// ExpectedClosing recomputes the expected drawer balance of a date from the log.
	ExpectedClosing(ctx context.Context, date string) (decimal.Decimal, error)

	// RequireOpenDay fails with ErrNoOpenSession unless today's session is open.
	RequireOpenDay(ctx context.Context) error

	// Today returns the YYYY-MM-DD key of the current store date.
	Today() string
}

// DaySessionWriterSvc defines the commands of the cash-drawer day lifecycle.
type DaySessionWriterSvc interface {
	// OpenDay creates or replaces today's session and resets the cash account to the float.
	OpenDay(ctx context.Context, openingBalance decimal.Decimal) (*domain.DaySession, error)

	// CloseDay records the counted cash on today's open session and closes it.
	CloseDay(ctx context.Context, actualClosing decimal.Decimal) (*domain.DaySession, error)
}

// DaySessionSvcFacade combines all day session service interfaces.
type DaySessionSvcFacade interface {
	DaySessionReaderSvc
	DaySessionWriterSvc
}
