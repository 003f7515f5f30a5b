package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/SscSPs/pos_ledger_app/internal/apperrors"
	"github.com/SscSPs/pos_ledger_app/internal/core/domain"
	portssvc "github.com/SscSPs/pos_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/pos_ledger_app/internal/core/state"
)

// catalogService maintains the master data the ledger refers to. Running totals
// (balance, outstanding credit, stock) belong to the ledger and are only taken
// from the caller when a record is first created.
type catalogService struct {
	BaseService
	store         *state.Store
	validate      *validator.Validate
	bankAccountID string
}

// NewCatalogService creates a catalog service over store.
func NewCatalogService(store *state.Store, bankAccountID string, options ...ServiceOption) portssvc.CatalogSvcFacade {
	if bankAccountID == "" {
		bankAccountID = domain.DefaultBankAccountID
	}
	return &catalogService{
		BaseService:   newBaseService(options...),
		store:         store,
		validate:      validator.New(),
		bankAccountID: bankAccountID,
	}
}

var _ portssvc.CatalogSvcFacade = (*catalogService)(nil)

func (s *catalogService) check(v any) error {
	if err := s.validate.Struct(v); err != nil {
		return fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}
	return nil
}

// upsert replaces the record with the same id, or appends it. merge receives the
// stored record and the incoming one and returns what to keep.
func upsert[T any](items []T, item T, id func(T) string, merge func(stored, incoming T) T) []T {
	for i := range items {
		if id(items[i]) == id(item) {
			items[i] = merge(items[i], item)
			return items
		}
	}
	return append(items, item)
}

func removeByID[T any](items []T, targetID string, id func(T) string) ([]T, bool) {
	for i := range items {
		if id(items[i]) == targetID {
			return append(items[:i], items[i+1:]...), true
		}
	}
	return items, false
}

func findByID[T any](items []T, targetID string, id func(T) string) (T, bool) {
	for _, item := range items {
		if id(item) == targetID {
			return item, true
		}
	}
	var zero T
	return zero, false
}

func orNewID(id string) string {
	if id == "" {
		return uuid.NewString()
	}
	return id
}

func accountID(a domain.Account) string { return a.ID }
func customerID(c domain.Customer) string { return c.ID }
func productID(p domain.Product) string { return p.ID }
func categoryID(c domain.Category) string { return c.ID }
func vendorID(v domain.Vendor) string { return v.ID }
func recurringID(r domain.RecurringExpense) string { return r.ID }

// --- Accounts ---

func (s *catalogService) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	var out []domain.Account
	s.store.View(func(st *domain.AppState) {
		out = append([]domain.Account{}, st.Accounts...)
	})
	return out, nil
}

func (s *catalogService) GetAccount(ctx context.Context, id string) (*domain.Account, error) {
	var (
		account domain.Account
		found   bool
	)
	s.store.View(func(st *domain.AppState) {
		account, found = findByID(st.Accounts, id, accountID)
	})
	if !found {
		return nil, fmt.Errorf("%w: account %s", apperrors.ErrNotFound, id)
	}
	return &account, nil
}

func (s *catalogService) UpsertAccount(ctx context.Context, account domain.Account) (*domain.Account, error) {
	if err := s.check(account); err != nil {
		return nil, err
	}
	account.ID = orNewID(account.ID)
	var saved domain.Account
	_ = s.store.Update(func(st *domain.AppState) error {
		st.Accounts = upsert(st.Accounts, account, accountID, func(stored, incoming domain.Account) domain.Account {
			incoming.Balance = stored.Balance
			return incoming
		})
		saved = *st.Account(account.ID)
		return nil
	})
	s.LogInfo(ctx, "Account saved", slog.String("account_id", saved.ID))
	return &saved, nil
}

func (s *catalogService) DeleteAccount(ctx context.Context, id string) error {
	if id == domain.CashAccountID || id == s.bankAccountID {
		return fmt.Errorf("%w: account %s is required and cannot be deleted", apperrors.ErrValidation, id)
	}
	return s.store.Update(func(st *domain.AppState) error {
		var ok bool
		if st.Accounts, ok = removeByID(st.Accounts, id, accountID); !ok {
			return fmt.Errorf("%w: account %s", apperrors.ErrNotFound, id)
		}
		return nil
	})
}

// --- Customers ---

func (s *catalogService) ListCustomers(ctx context.Context) ([]domain.Customer, error) {
	var out []domain.Customer
	s.store.View(func(st *domain.AppState) {
		out = append([]domain.Customer{}, st.Customers...)
	})
	return out, nil
}

func (s *catalogService) GetCustomer(ctx context.Context, id string) (*domain.Customer, error) {
	var (
		customer domain.Customer
		found    bool
	)
	s.store.View(func(st *domain.AppState) {
		customer, found = findByID(st.Customers, id, customerID)
	})
	if !found {
		return nil, fmt.Errorf("%w: customer %s", apperrors.ErrNotFound, id)
	}
	return &customer, nil
}

func (s *catalogService) UpsertCustomer(ctx context.Context, customer domain.Customer) (*domain.Customer, error) {
	if err := s.check(customer); err != nil {
		return nil, err
	}
	if customer.CreditLimit.IsNegative() {
		return nil, fmt.Errorf("%w: credit limit must not be negative", apperrors.ErrValidation)
	}
	customer.ID = orNewID(customer.ID)
	var saved domain.Customer
	_ = s.store.Update(func(st *domain.AppState) error {
		st.Customers = upsert(st.Customers, customer, customerID, func(stored, incoming domain.Customer) domain.Customer {
			incoming.TotalCredit = stored.TotalCredit
			return incoming
		})
		saved = *st.Customer(customer.ID)
		return nil
	})
	s.LogInfo(ctx, "Customer saved", slog.String("customer_id", saved.ID))
	return &saved, nil
}

func (s *catalogService) DeleteCustomer(ctx context.Context, id string) error {
	return s.store.Update(func(st *domain.AppState) error {
		var ok bool
		if st.Customers, ok = removeByID(st.Customers, id, customerID); !ok {
			return fmt.Errorf("%w: customer %s", apperrors.ErrNotFound, id)
		}
		return nil
	})
}

// --- Products & categories ---

func (s *catalogService) ListProducts(ctx context.Context) ([]domain.Product, error) {
	var out []domain.Product
	s.store.View(func(st *domain.AppState) {
		out = append([]domain.Product{}, st.Products...)
	})
	return out, nil
}

func (s *catalogService) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	var (
		product domain.Product
		found   bool
	)
	s.store.View(func(st *domain.AppState) {
		product, found = findByID(st.Products, id, productID)
	})
	if !found {
		return nil, fmt.Errorf("%w: product %s", apperrors.ErrNotFound, id)
	}
	return &product, nil
}

func (s *catalogService) UpsertProduct(ctx context.Context, product domain.Product) (*domain.Product, error) {
	if err := s.check(product); err != nil {
		return nil, err
	}
	if product.Price.IsNegative() || product.Cost.IsNegative() {
		return nil, fmt.Errorf("%w: price and cost must not be negative", apperrors.ErrValidation)
	}
	product.ID = orNewID(product.ID)
	var saved domain.Product
	_ = s.store.Update(func(st *domain.AppState) error {
		st.Products = upsert(st.Products, product, productID, func(stored, incoming domain.Product) domain.Product {
			incoming.Stock = stored.Stock
			return incoming
		})
		saved = *st.Product(product.ID)
		return nil
	})
	s.LogInfo(ctx, "Product saved", slog.String("product_id", saved.ID), slog.String("sku", saved.SKU))
	return &saved, nil
}

func (s *catalogService) DeleteProduct(ctx context.Context, id string) error {
	return s.store.Update(func(st *domain.AppState) error {
		var ok bool
		if st.Products, ok = removeByID(st.Products, id, productID); !ok {
			return fmt.Errorf("%w: product %s", apperrors.ErrNotFound, id)
		}
		return nil
	})
}

func (s *catalogService) LowStockProducts(ctx context.Context) ([]domain.Product, error) {
	out := make([]domain.Product, 0)
	s.store.View(func(st *domain.AppState) {
		for _, p := range st.Products {
			if p.IsLowStock() {
				out = append(out, p)
			}
		}
	})
	return out, nil
}

func (s *catalogService) ListCategories(ctx context.Context) ([]domain.Category, error) {
	var out []domain.Category
	s.store.View(func(st *domain.AppState) {
		out = append([]domain.Category{}, st.Categories...)
	})
	return out, nil
}

func (s *catalogService) UpsertCategory(ctx context.Context, category domain.Category) (*domain.Category, error) {
	if err := s.check(category); err != nil {
		return nil, err
	}
	category.ID = orNewID(category.ID)
	_ = s.store.Update(func(st *domain.AppState) error {
		st.Categories = upsert(st.Categories, category, categoryID, func(_, incoming domain.Category) domain.Category {
			return incoming
		})
		return nil
	})
	return &category, nil
}

// DeleteCategory removes the category and detaches the products filed under it.
func (s *catalogService) DeleteCategory(ctx context.Context, id string) error {
	return s.store.Update(func(st *domain.AppState) error {
		var ok bool
		if st.Categories, ok = removeByID(st.Categories, id, categoryID); !ok {
			return fmt.Errorf("%w: category %s", apperrors.ErrNotFound, id)
		}
		for i := range st.Products {
			if st.Products[i].CategoryID == id {
				st.Products[i].CategoryID = ""
			}
		}
		return nil
	})
}

// --- Vendors ---

func (s *catalogService) ListVendors(ctx context.Context) ([]domain.Vendor, error) {
	var out []domain.Vendor
	s.store.View(func(st *domain.AppState) {
		out = append([]domain.Vendor{}, st.Vendors...)
	})
	return out, nil
}

func (s *catalogService) GetVendor(ctx context.Context, id string) (*domain.Vendor, error) {
	var (
		vendor domain.Vendor
		found  bool
	)
	s.store.View(func(st *domain.AppState) {
		vendor, found = findByID(st.Vendors, id, vendorID)
	})
	if !found {
		return nil, fmt.Errorf("%w: vendor %s", apperrors.ErrNotFound, id)
	}
	return &vendor, nil
}

func (s *catalogService) UpsertVendor(ctx context.Context, vendor domain.Vendor) (*domain.Vendor, error) {
	if err := s.check(vendor); err != nil {
		return nil, err
	}
	vendor.ID = orNewID(vendor.ID)
	_ = s.store.Update(func(st *domain.AppState) error {
		st.Vendors = upsert(st.Vendors, vendor, vendorID, func(_, incoming domain.Vendor) domain.Vendor {
			return incoming
		})
		return nil
	})
	s.LogInfo(ctx, "Vendor saved", slog.String("vendor_id", vendor.ID))
	return &vendor, nil
}

func (s *catalogService) DeleteVendor(ctx context.Context, id string) error {
	return s.store.Update(func(st *domain.AppState) error {
		var ok bool
		if st.Vendors, ok = removeByID(st.Vendors, id, vendorID); !ok {
			return fmt.Errorf("%w: vendor %s", apperrors.ErrNotFound, id)
		}
		return nil
	})
}

// --- Profile ---

func (s *catalogService) GetProfile(ctx context.Context) (domain.UserProfile, error) {
	var profile domain.UserProfile
	s.store.View(func(st *domain.AppState) {
		profile = st.UserProfile
	})
	return profile, nil
}

func (s *catalogService) UpdateProfile(ctx context.Context, profile domain.UserProfile) (domain.UserProfile, error) {
	if err := s.check(profile); err != nil {
		return domain.UserProfile{}, err
	}
	_ = s.store.Update(func(st *domain.AppState) error {
		st.UserProfile = profile
		return nil
	})
	return profile, nil
}

func (s *catalogService) State(ctx context.Context) (domain.AppState, error) {
	return s.store.Snapshot(), nil
}
