package domain_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/SscSPs/pos_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransactionType_IsInflow(t *testing.T) {
	tests := []struct {
		txType domain.TransactionType
		want   bool
	}{
		{domain.Sale, true},
		{domain.CreditPayment, true},
		{domain.Purchase, false},
		{domain.Expense, false},
		{domain.Transfer, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.txType), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.txType.IsInflow())
			assert.True(t, tt.txType.Valid())
		})
	}
	assert.False(t, domain.TransactionType("REFUND").Valid())
}

func TestPaymentMethod_IsDeferred(t *testing.T) {
	for _, m := range domain.AllPaymentMethods() {
		want := m == domain.PaymentCredit || m == domain.PaymentCheque
		assert.Equal(t, want, m.IsDeferred(), "method %s", m)
	}
	assert.False(t, domain.PaymentMethod("BITCOIN").Valid())
}

func TestTransactionFilter_Matches(t *testing.T) {
	day := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	from := day.Add(-time.Hour)
	to := day.Add(time.Hour)
	tx := domain.Transaction{Type: domain.Sale, CustomerID: "c1", Date: day}

	tests := []struct {
		name   string
		filter domain.TransactionFilter
		want   bool
	}{
		{"empty filter", domain.TransactionFilter{}, true},
		{"type match", domain.TransactionFilter{Type: domain.Sale}, true},
		{"type mismatch", domain.TransactionFilter{Type: domain.Expense}, false},
		{"customer mismatch", domain.TransactionFilter{CustomerID: "c2"}, false},
		{"inside window", domain.TransactionFilter{From: &from, To: &to}, true},
		{"before window", domain.TransactionFilter{From: &to}, false},
		{"to is exclusive", domain.TransactionFilter{To: &day}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.filter.Matches(tx))
		})
	}
}

func TestPurchaseOrder_ItemsTotal(t *testing.T) {
	po := domain.PurchaseOrder{Items: []domain.PurchaseOrderItem{
		{ProductID: "p1", Quantity: 3, Cost: decimal.NewFromFloat(2.5)},
		{ProductID: "p2", Quantity: 2, Cost: decimal.NewFromInt(10)},
	}}
	assert.True(t, decimal.NewFromFloat(27.5).Equal(po.ItemsTotal()))
}

func TestDaySession_Variance(t *testing.T) {
	s := domain.DaySession{ExpectedClosing: decimal.NewFromInt(1300)}
	assert.True(t, s.Variance().IsZero())

	actual := decimal.NewFromInt(1250)
	s.ActualClosing = &actual
	assert.Equal(t, "-50", s.Variance().String())
}

func TestFrequency_Next(t *testing.T) {
	start := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "2024-02-01", domain.Daily.Next(start, 0).Format(domain.DateLayout))
	assert.Equal(t, "2024-02-07", domain.Weekly.Next(start, 0).Format(domain.DateLayout))

	feb := domain.Monthly.Next(start, 31)
	assert.Equal(t, "2024-02-29", feb.Format(domain.DateLayout), "clamped to the end of a leap February")
	assert.Equal(t, "2024-03-31", domain.Monthly.Next(feb, 31).Format(domain.DateLayout), "anchor day comes back after a short month")
	assert.Equal(t, "2023-02-28", domain.Monthly.Next(time.Date(2023, 1, 31, 0, 0, 0, 0, time.UTC), 0).Format(domain.DateLayout))
	assert.Equal(t, "2025-01-15", domain.Monthly.Next(time.Date(2024, 12, 15, 0, 0, 0, 0, time.UTC), 15).Format(domain.DateLayout))
}

func TestAppState_CloneIsIndependent(t *testing.T) {
	s := domain.DefaultState("")
	s.Transactions = append(s.Transactions, domain.Transaction{ID: "t1", Items: []domain.TransactionItem{{ProductID: "p1", Quantity: 1}}})

	c := s.Clone()
	c.Accounts[0].Balance = decimal.NewFromInt(5)
	c.Transactions[0].Items[0].Quantity = 9

	assert.True(t, s.Accounts[0].Balance.IsZero())
	assert.Equal(t, 1, s.Transactions[0].Items[0].Quantity)
	assert.NotNil(t, s.Account(domain.CashAccountID))
	assert.NotNil(t, s.Account(domain.DefaultBankAccountID))
	assert.Nil(t, s.Account("missing"))
}

func TestAppState_CloneWritesEmptyArrays(t *testing.T) {
	var empty domain.AppState

	raw, err := json.Marshal(empty.Clone())
	require.NoError(t, err)

	var fields map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw, &fields))
	for _, key := range []string{"products", "categories", "transactions", "accounts", "purchaseOrders", "vendors", "customers", "recurringExpenses", "daySessions"} {
		assert.Equal(t, "[]", string(fields[key]), key)
	}
}
