package domain

import "github.com/shopspring/decimal"

// DaySummary is the derived end-of-day view of one date.
type DaySummary struct {
	Date             string                              `json:"date"`
	Session          *DaySession                         `json:"session,omitempty"`
	ExpectedClosing  decimal.Decimal                     `json:"expectedClosing"`
	Variance         decimal.Decimal                     `json:"variance"`
	TransactionCount int                                 `json:"transactionCount"`
	TotalsByType     map[TransactionType]decimal.Decimal `json:"totalsByType"`
	TotalsByMethod   map[PaymentMethod]decimal.Decimal   `json:"totalsByMethod"`
	DiscountTotal    decimal.Decimal                     `json:"discountTotal"`
}
