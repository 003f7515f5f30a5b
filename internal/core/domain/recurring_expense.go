package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Frequency is how often a recurring expense falls due.
type Frequency string

const (
	Daily   Frequency = "DAILY"
	Weekly  Frequency = "WEEKLY"
	Monthly Frequency = "MONTHLY"
)

// Next returns the due date one period after t. Monthly periods land on
// dayOfMonth, clamped to the last day of the month; dayOfMonth <= 0 uses t's day.
func (f Frequency) Next(t time.Time, dayOfMonth int) time.Time {
	switch f {
	case Daily:
		return t.AddDate(0, 0, 1)
	case Weekly:
		return t.AddDate(0, 0, 7)
	default:
		if dayOfMonth <= 0 {
			dayOfMonth = t.Day()
		}
		y, m, _ := t.Date()
		first := time.Date(y, m+1, 1, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
		last := time.Date(y, m+2, 0, 0, 0, 0, 0, t.Location()).Day()
		return first.AddDate(0, 0, min(dayOfMonth, last)-1)
	}
}

// RecurringExpense is a scheduled outflow (rent, salaries, utilities) posted
// as an EXPENSE transaction each time it falls due.
type RecurringExpense struct {
	ID            string          `json:"id"`
	Name          string          `json:"name" validate:"required"`
	Amount        decimal.Decimal `json:"amount"`
	Frequency     Frequency       `json:"frequency" validate:"required,oneof=DAILY WEEKLY MONTHLY"`
	NextDueDate   string          `json:"nextDueDate" validate:"required,datetime=2006-01-02"`
	// DayOfMonth anchors MONTHLY entries so a 31st keeps falling on month ends.
	DayOfMonth int `json:"dayOfMonth,omitempty" validate:"omitempty,min=1,max=31"`
	PaymentMethod PaymentMethod   `json:"paymentMethod" validate:"required,oneof=CASH BANK CARD CREDIT CHEQUE"`
	AccountID     string          `json:"accountId,omitempty"`
	Active        bool            `json:"active"`
}
