package domain

import "github.com/shopspring/decimal"

// Customer is a credit account holder. TotalCredit is the outstanding amount the
// customer owes the business; CreditLimit is advisory only.
type Customer struct {
	ID          string          `json:"id"`
	Name        string          `json:"name" validate:"required"`
	Phone       string          `json:"phone,omitempty"`
	Email       string          `json:"email,omitempty" validate:"omitempty,email"`
	Address     string          `json:"address,omitempty"`
	CreditLimit decimal.Decimal `json:"creditLimit"`
	TotalCredit decimal.Decimal `json:"totalCredit"`
}

// OverLimit reports whether the outstanding credit exceeds a positive credit limit.
func (c Customer) OverLimit() bool {
	return c.CreditLimit.IsPositive() && c.TotalCredit.GreaterThan(c.CreditLimit)
}
