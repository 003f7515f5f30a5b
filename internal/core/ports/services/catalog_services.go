package services

import (
	"context"

	"github.com/SscSPs/pos_ledger_app/internal/core/domain"
)

// AccountCatalogSvc manages liquidity accounts. Balances are never written here
// except as the initial balance of a new account.
type AccountCatalogSvc interface {
	ListAccounts(ctx context.Context) ([]domain.Account, error)
	GetAccount(ctx context.Context, accountID string) (*domain.Account, error)
	UpsertAccount(ctx context.Context, account domain.Account) (*domain.Account, error)
	DeleteAccount(ctx context.Context, accountID string) error
}

// CustomerCatalogSvc manages credit customers.
type CustomerCatalogSvc interface {
	ListCustomers(ctx context.Context) ([]domain.Customer, error)
	GetCustomer(ctx context.Context, customerID string) (*domain.Customer, error)
	UpsertCustomer(ctx context.Context, customer domain.Customer) (*domain.Customer, error)
	DeleteCustomer(ctx context.Context, customerID string) error
}

// ProductCatalogSvc manages products and their categories.
type ProductCatalogSvc interface {
	ListProducts(ctx context.Context) ([]domain.Product, error)
	GetProduct(ctx context.Context, productID string) (*domain.Product, error)
	UpsertProduct(ctx context.Context, product domain.Product) (*domain.Product, error)
	DeleteProduct(ctx context.Context, productID string) error
	// LowStockProducts returns products at or below their low stock threshold.
	LowStockProducts(ctx context.Context) ([]domain.Product, error)

	ListCategories(ctx context.Context) ([]domain.Category, error)
	UpsertCategory(ctx context.Context, category domain.Category) (*domain.Category, error)
	DeleteCategory(ctx context.Context, categoryID string) error
}

// VendorCatalogSvc manages vendors.
type VendorCatalogSvc interface {
	ListVendors(ctx context.Context) ([]domain.Vendor, error)
	GetVendor(ctx context.Context, vendorID string) (*domain.Vendor, error)
	UpsertVendor(ctx context.Context, vendor domain.Vendor) (*domain.Vendor, error)
	DeleteVendor(ctx context.Context, vendorID string) error
}

// ProfileSvc manages the business profile and the opaque POS session blob.
type ProfileSvc interface {
	GetProfile(ctx context.Context) (domain.UserProfile, error)
	UpdateProfile(ctx context.Context, profile domain.UserProfile) (domain.UserProfile, error)
	// State returns a read-only copy of the whole entity store.
	State(ctx context.Context) (domain.AppState, error)
}

// CatalogSvcFacade combines all catalog service interfaces.
type CatalogSvcFacade interface {
	AccountCatalogSvc
	CustomerCatalogSvc
	ProductCatalogSvc
	VendorCatalogSvc
	ProfileSvc
}
