package services_test

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/SscSPs/pos_ledger_app/internal/core/domain"
	"github.com/SscSPs/pos_ledger_app/internal/core/services"
	"github.com/SscSPs/pos_ledger_app/internal/core/state"
)

const bankID = "bank"

var fixedNow = time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)

func testOptions() []services.ServiceOption {
	return []services.ServiceOption{
		services.WithClock(func() time.Time { return fixedNow }),
		services.WithLocation(time.UTC),
	}
}

// seededStore returns a store with the default accounts, one customer and one
// product with ten units in stock.
func seededStore() *state.Store {
	st := domain.DefaultState(bankID)
	st.Customers = append(st.Customers, domain.Customer{ID: "c1", Name: "Asha", CreditLimit: dec("500")})
	st.Products = append(st.Products, domain.Product{ID: "p1", SKU: "SKU-1", Name: "Rice 1kg", Price: dec("50"), Cost: dec("40"), Stock: 10, LowStockThreshold: 3})
	return state.NewStore(st)
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func balance(store *state.Store, accountID string) decimal.Decimal {
	var out decimal.Decimal
	store.View(func(st *domain.AppState) {
		if acc := st.Account(accountID); acc != nil {
			out = acc.Balance
		}
	})
	return out
}

func credit(store *state.Store, customerID string) decimal.Decimal {
	var out decimal.Decimal
	store.View(func(st *domain.AppState) {
		if c := st.Customer(customerID); c != nil {
			out = c.TotalCredit
		}
	})
	return out
}

func stock(store *state.Store, productID string) int {
	out := 0
	store.View(func(st *domain.AppState) {
		if p := st.Product(productID); p != nil {
			out = p.Stock
		}
	})
	return out
}

func liquidity(store *state.Store) decimal.Decimal {
	total := decimal.Zero
	store.View(func(st *domain.AppState) {
		for _, acc := range st.Accounts {
			total = total.Add(acc.Balance)
		}
	})
	return total
}

func setBalance(store *state.Store, accountID string, amount decimal.Decimal) {
	_ = store.Update(func(st *domain.AppState) error {
		st.Account(accountID).Balance = amount
		return nil
	})
}

func at(hour int) *time.Time {
	t := time.Date(fixedNow.Year(), fixedNow.Month(), fixedNow.Day(), hour, 0, 0, 0, time.UTC)
	return &t
}
