package domain

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// AppState is the entire business state. Its JSON form is the persisted snapshot.
type AppState struct {
	Products          []Product          `json:"products"`
	Categories        []Category         `json:"categories"`
	Transactions      []Transaction      `json:"transactions"`
	Accounts          []Account          `json:"accounts"`
	PurchaseOrders    []PurchaseOrder    `json:"purchaseOrders"`
	Vendors           []Vendor           `json:"vendors"`
	Customers         []Customer         `json:"customers"`
	UserProfile       UserProfile        `json:"userProfile"`
	RecurringExpenses []RecurringExpense `json:"recurringExpenses"`
	POSSession        json.RawMessage    `json:"posSession,omitempty"`
	DaySessions       []DaySession       `json:"daySessions"`
}

// DefaultState returns the state used on first start or when a snapshot cannot be
// loaded: the cash drawer and the default bank account, both at zero.
func DefaultState(bankAccountID string) AppState {
	if bankAccountID == "" {
		bankAccountID = DefaultBankAccountID
	}
	return AppState{
		Products:   []Product{},
		Categories: []Category{},
		Accounts: []Account{
			{ID: CashAccountID, Name: "Cash Drawer", Kind: AccountCash, Balance: decimal.Zero},
			{ID: bankAccountID, Name: "Bank", Kind: AccountBank, Balance: decimal.Zero},
		},
		Transactions:      []Transaction{},
		PurchaseOrders:    []PurchaseOrder{},
		Vendors:           []Vendor{},
		Customers:         []Customer{},
		RecurringExpenses: []RecurringExpense{},
		DaySessions:       []DaySession{},
	}
}

// Account returns a pointer into the accounts slice, or nil when id is unknown.
func (s *AppState) Account(id string) *Account {
	for i := range s.Accounts {
		if s.Accounts[i].ID == id {
			return &s.Accounts[i]
		}
	}
	return nil
}

// Customer returns a pointer into the customers slice, or nil when id is unknown.
func (s *AppState) Customer(id string) *Customer {
	for i := range s.Customers {
		if s.Customers[i].ID == id {
			return &s.Customers[i]
		}
	}
	return nil
}

// Product returns a pointer into the products slice, or nil when id is unknown.
func (s *AppState) Product(id string) *Product {
	for i := range s.Products {
		if s.Products[i].ID == id {
			return &s.Products[i]
		}
	}
	return nil
}

// TransactionIndex returns the log position of the transaction with id, or -1.
func (s *AppState) TransactionIndex(id string) int {
	for i := range s.Transactions {
		if s.Transactions[i].ID == id {
			return i
		}
	}
	return -1
}

// DaySession returns a pointer to the session for date, or nil.
func (s *AppState) DaySession(date string) *DaySession {
	for i := range s.DaySessions {
		if s.DaySessions[i].Date == date {
			return &s.DaySessions[i]
		}
	}
	return nil
}

// Clone returns a deep copy so callers can read it without holding a lock.
// Collections are never nil in the copy, so the snapshot always holds arrays.
func (s *AppState) Clone() AppState {
	out := *s
	out.Products = cloneSlice(s.Products)
	out.Categories = cloneSlice(s.Categories)
	out.Accounts = cloneSlice(s.Accounts)
	out.Vendors = cloneSlice(s.Vendors)
	out.Customers = cloneSlice(s.Customers)
	out.RecurringExpenses = cloneSlice(s.RecurringExpenses)
	out.DaySessions = cloneSlice(s.DaySessions)
	out.POSSession = append(json.RawMessage(nil), s.POSSession...)

	out.Transactions = make([]Transaction, len(s.Transactions))
	for i, tx := range s.Transactions {
		tx.Items = append([]TransactionItem(nil), tx.Items...)
		tx.AppliedEffects = append([]Effect(nil), tx.AppliedEffects...)
		out.Transactions[i] = tx
	}
	out.PurchaseOrders = make([]PurchaseOrder, len(s.PurchaseOrders))
	for i, po := range s.PurchaseOrders {
		po.Items = append([]PurchaseOrderItem(nil), po.Items...)
		out.PurchaseOrders[i] = po
	}
	return out
}

func cloneSlice[T any](in []T) []T {
	out := make([]T, len(in))
	copy(out, in)
	return out
}
