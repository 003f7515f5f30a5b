package domain

import (
	"github.com/shopspring/decimal"
)

// CashAccountID is the well-known id of the physical cash drawer account.
const CashAccountID = "cash"

// DefaultBankAccountID is the bank account used when a non-cash payment names no account.
const DefaultBankAccountID = "bank"

// AccountKind distinguishes the cash drawer from bank accounts.
type AccountKind string

const (
	AccountCash AccountKind = "CASH"
	AccountBank AccountKind = "BANK"
)

// Account is a liquidity node. Its balance is only changed by the ledger engine
// and by opening a day session.
type Account struct {
	ID      string          `json:"id"`
	Name    string          `json:"name" validate:"required"`
	Kind    AccountKind     `json:"kind" validate:"required,oneof=CASH BANK"`
	Balance decimal.Decimal `json:"balance"`
}
