package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType is the business event a Transaction records.
type TransactionType string

const (
	Sale          TransactionType = "SALE"
	Purchase      TransactionType = "PURCHASE"
	Expense       TransactionType = "EXPENSE"
	CreditPayment TransactionType = "CREDIT_PAYMENT"
	Transfer      TransactionType = "TRANSFER"
)

// AllTransactionTypes lists every supported transaction type.
func AllTransactionTypes() []TransactionType {
	return []TransactionType{Sale, Purchase, Expense, CreditPayment, Transfer}
}

// Valid reports whether t is one of the supported transaction types.
func (t TransactionType) Valid() bool {
	switch t {
	case Sale, Purchase, Expense, CreditPayment, Transfer:
		return true
	}
	return false
}

// IsInflow reports whether money of this type flows into the business.
// SALE and CREDIT_PAYMENT are inflows; everything else is an outflow.
func (t TransactionType) IsInflow() bool {
	return t == Sale || t == CreditPayment
}

// PaymentMethod describes how a transaction was settled.
type PaymentMethod string

const (
	PaymentCash   PaymentMethod = "CASH"
	PaymentBank   PaymentMethod = "BANK"
	PaymentCard   PaymentMethod = "CARD"
	PaymentCredit PaymentMethod = "CREDIT"
	PaymentCheque PaymentMethod = "CHEQUE"
)

// AllPaymentMethods lists every supported payment method.
func AllPaymentMethods() []PaymentMethod {
	return []PaymentMethod{PaymentCash, PaymentBank, PaymentCard, PaymentCredit, PaymentCheque}
}

// Valid reports whether m is one of the supported payment methods.
func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentCash, PaymentBank, PaymentCard, PaymentCredit, PaymentCheque:
		return true
	}
	return false
}

// IsDeferred reports whether the method postpones the cash movement.
// Deferred methods never touch a liquidity account when recorded.
func (m PaymentMethod) IsDeferred() bool {
	return m == PaymentCredit || m == PaymentCheque
}

// TransactionItem is a single product line on a transaction.
type TransactionItem struct {
	ProductID string          `json:"productId"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
}

// Transaction is the record of a single business event. Its impact on accounts,
// customers and stock is applied once, when it is recorded.
type Transaction struct {
	ID                   string            `json:"id"`
	Date                 time.Time         `json:"date"`
	Type                 TransactionType   `json:"type"`
	Amount               decimal.Decimal   `json:"amount"`
	Discount             decimal.Decimal   `json:"discount"`
	PaymentMethod        PaymentMethod     `json:"paymentMethod"`
	AccountID            string            `json:"accountId,omitempty"`
	DestinationAccountID string            `json:"destinationAccountId,omitempty"`
	CustomerID           string            `json:"customerId,omitempty"`
	VendorID             string            `json:"vendorId,omitempty"`
	Items                []TransactionItem `json:"items,omitempty"`
	ChequeNumber         string            `json:"chequeNumber,omitempty"`
	ChequeDate           *time.Time        `json:"chequeDate,omitempty"`
	Note                 string            `json:"note,omitempty"`
	AppliedEffects       []Effect          `json:"appliedEffects,omitempty"`
	// EffectsRecorded is set once AppliedEffects holds exactly what landed, even
	// when nothing did. Entries without it predate effect recording.
	EffectsRecorded bool `json:"effectsRecorded,omitempty"`
}

// TransactionDraft is the partial descriptor submitted by callers. Amount and
// Discount are raw text so malformed input can be coerced instead of rejected.
type TransactionDraft struct {
	ID                   string
	Date                 *time.Time
	Type                 TransactionType
	Amount               string
	Discount             string
	PaymentMethod        PaymentMethod
	AccountID            string
	DestinationAccountID string
	CustomerID           string
	VendorID             string
	Items                []TransactionItem
	ChequeNumber         string
	ChequeDate           *time.Time
	Note                 string
}

// TransactionFilter narrows a transaction listing. Zero values mean "any".
// AfterID resumes a listing after the entry with that id.
type TransactionFilter struct {
	Type       TransactionType
	CustomerID string
	From       *time.Time
	To         *time.Time
	Limit      int
	AfterID    string
}

// Matches reports whether tx passes every set criterion of the filter.
func (f TransactionFilter) Matches(tx Transaction) bool {
	if f.Type != "" && tx.Type != f.Type {
		return false
	}
	if f.CustomerID != "" && tx.CustomerID != f.CustomerID {
		return false
	}
	if f.From != nil && tx.Date.Before(*f.From) {
		return false
	}
	if f.To != nil && !tx.Date.Before(*f.To) {
		return false
	}
	return true
}
