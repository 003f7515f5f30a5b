package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/SscSPs/pos_ledger_app/internal/apperrors"
	"github.com/SscSPs/pos_ledger_app/internal/core/domain"
	portssvc "github.com/SscSPs/pos_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/pos_ledger_app/internal/core/services"
	"github.com/SscSPs/pos_ledger_app/internal/core/state"
)

type CatalogServiceTestSuite struct {
	suite.Suite
	ctx     context.Context
	store   *state.Store
	service portssvc.CatalogSvcFacade
}

func (s *CatalogServiceTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = seededStore()
	s.service = services.NewCatalogService(s.store, bankID, testOptions()...)
}

func TestCatalogService(t *testing.T) {
	suite.Run(t, new(CatalogServiceTestSuite))
}

func (s *CatalogServiceTestSuite) TestUpsertAccount_KeepsLedgerBalance() {
	created, err := s.service.UpsertAccount(s.ctx, domain.Account{Name: "Savings", Kind: domain.AccountBank, Balance: dec("900")})
	s.Require().NoError(err)
	s.NotEmpty(created.ID)
	s.True(dec("900").Equal(created.Balance), "a new account takes its initial balance")

	updated, err := s.service.UpsertAccount(s.ctx, domain.Account{ID: created.ID, Name: "Savings 2", Kind: domain.AccountBank, Balance: dec("1")})
	s.Require().NoError(err)
	s.Equal("Savings 2", updated.Name)
	s.True(dec("900").Equal(updated.Balance), "an edit never rewrites the balance")
}

func (s *CatalogServiceTestSuite) TestUpsertAccount_Validation() {
	_, err := s.service.UpsertAccount(s.ctx, domain.Account{Name: "Vault", Kind: "SAFE"})
	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *CatalogServiceTestSuite) TestDeleteAccount_RequiredAccounts() {
	s.ErrorIs(s.service.DeleteAccount(s.ctx, domain.CashAccountID), apperrors.ErrValidation)
	s.ErrorIs(s.service.DeleteAccount(s.ctx, bankID), apperrors.ErrValidation)
	s.ErrorIs(s.service.DeleteAccount(s.ctx, "nope"), apperrors.ErrNotFound)

	extra, err := s.service.UpsertAccount(s.ctx, domain.Account{Name: "Petty", Kind: domain.AccountCash})
	s.Require().NoError(err)
	s.NoError(s.service.DeleteAccount(s.ctx, extra.ID))

	accounts, err := s.service.ListAccounts(s.ctx)
	s.Require().NoError(err)
	s.Len(accounts, 2)
}

func (s *CatalogServiceTestSuite) TestUpsertCustomer_KeepsOutstandingCredit() {
	_ = s.store.Update(func(st *domain.AppState) error {
		st.Customer("c1").TotalCredit = dec("120")
		return nil
	})

	updated, err := s.service.UpsertCustomer(s.ctx, domain.Customer{ID: "c1", Name: "Asha K", CreditLimit: dec("100")})
	s.Require().NoError(err)
	s.True(dec("120").Equal(updated.TotalCredit))
	s.True(updated.OverLimit())

	_, err = s.service.UpsertCustomer(s.ctx, domain.Customer{Name: "Bad", CreditLimit: dec("-5")})
	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *CatalogServiceTestSuite) TestUpsertProduct_KeepsStock() {
	updated, err := s.service.UpsertProduct(s.ctx, domain.Product{ID: "p1", Name: "Rice 1kg", Price: dec("55"), Stock: 999, LowStockThreshold: 3})
	s.Require().NoError(err)
	s.Equal(10, updated.Stock)
	s.True(dec("55").Equal(updated.Price))

	_, err = s.service.UpsertProduct(s.ctx, domain.Product{Name: "Free", Price: dec("-1")})
	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *CatalogServiceTestSuite) TestLowStockProducts() {
	_, err := s.service.UpsertProduct(s.ctx, domain.Product{ID: "p2", Name: "Salt", Stock: 2, LowStockThreshold: 5})
	s.Require().NoError(err)

	low, err := s.service.LowStockProducts(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(low, 1)
	s.Equal("p2", low[0].ID)
}

func (s *CatalogServiceTestSuite) TestDeleteCategory_DetachesProducts() {
	category, err := s.service.UpsertCategory(s.ctx, domain.Category{Name: "Grains"})
	s.Require().NoError(err)
	_, err = s.service.UpsertProduct(s.ctx, domain.Product{ID: "p1", Name: "Rice 1kg", CategoryID: category.ID})
	s.Require().NoError(err)

	s.Require().NoError(s.service.DeleteCategory(s.ctx, category.ID))

	product, err := s.service.GetProduct(s.ctx, "p1")
	s.Require().NoError(err)
	s.Empty(product.CategoryID)
	s.ErrorIs(s.service.DeleteCategory(s.ctx, category.ID), apperrors.ErrNotFound)
}

func (s *CatalogServiceTestSuite) TestVendors() {
	vendor, err := s.service.UpsertVendor(s.ctx, domain.Vendor{Name: "Wholesale Co", Email: "sales@example.com"})
	s.Require().NoError(err)

	got, err := s.service.GetVendor(s.ctx, vendor.ID)
	s.Require().NoError(err)
	s.Equal("Wholesale Co", got.Name)

	_, err = s.service.UpsertVendor(s.ctx, domain.Vendor{Name: "Bad", Email: "not-an-email"})
	s.ErrorIs(err, apperrors.ErrValidation)

	s.Require().NoError(s.service.DeleteVendor(s.ctx, vendor.ID))
	_, err = s.service.GetVendor(s.ctx, vendor.ID)
	s.ErrorIs(err, apperrors.ErrNotFound)
}

func (s *CatalogServiceTestSuite) TestProfileAndState() {
	_, err := s.service.UpdateProfile(s.ctx, domain.UserProfile{BusinessName: "Corner Shop", Currency: "INR"})
	s.Require().NoError(err)

	profile, err := s.service.GetProfile(s.ctx)
	s.Require().NoError(err)
	s.Equal("Corner Shop", profile.BusinessName)

	st, err := s.service.State(s.ctx)
	s.Require().NoError(err)
	s.Equal("Corner Shop", st.UserProfile.BusinessName)
	s.Len(st.Customers, 1)

	// the copy is detached from the live store
	st.Customers[0].Name = "changed"
	customer, err := s.service.GetCustomer(s.ctx, "c1")
	s.Require().NoError(err)
	s.Equal("Asha", customer.Name)
}
