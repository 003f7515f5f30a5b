package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DaySessionStatus is the state of a cash-drawer day session.
type DaySessionStatus string

const (
	SessionOpen   DaySessionStatus = "OPEN"
	SessionClosed DaySessionStatus = "CLOSED"
)

// DaySession is the cash-drawer record of one calendar date, keyed by Date.
// ExpectedClosing holds the opening float while the day is open and the
// reconciled figure once it is closed; live values are always recomputed.
type DaySession struct {
	Date            string           `json:"date"`
	OpeningBalance  decimal.Decimal  `json:"openingBalance"`
	ExpectedClosing decimal.Decimal  `json:"expectedClosing"`
	ActualClosing   *decimal.Decimal `json:"actualClosing,omitempty"`
	Status          DaySessionStatus `json:"status"`
	OpenedAt        time.Time        `json:"openedAt"`
	ClosedAt        *time.Time       `json:"closedAt,omitempty"`
}

// Variance is actual minus expected closing; zero until the session is closed.
func (s DaySession) Variance() decimal.Decimal {
	if s.ActualClosing == nil {
		return decimal.Zero
	}
	return s.ActualClosing.Sub(s.ExpectedClosing)
}
