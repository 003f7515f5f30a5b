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

type PurchaseOrderServiceTestSuite struct {
	suite.Suite
	ctx     context.Context
	store   *state.Store
	service portssvc.PurchaseOrderSvcFacade
}

func (s *PurchaseOrderServiceTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = seededStore()
	s.service = services.NewPurchaseOrderService(s.store, bankID, testOptions()...)
}

func TestPurchaseOrderService(t *testing.T) {
	suite.Run(t, new(PurchaseOrderServiceTestSuite))
}

func (s *PurchaseOrderServiceTestSuite) newOrder() *domain.PurchaseOrder {
	po, err := s.service.CreatePurchaseOrder(s.ctx, domain.PurchaseOrder{
		VendorID: "v1",
		Items:    []domain.PurchaseOrderItem{{ProductID: "p1", Quantity: 5, Cost: dec("40")}},
	})
	s.Require().NoError(err)
	return po
}

func (s *PurchaseOrderServiceTestSuite) TestCreate_Defaults() {
	po := s.newOrder()

	s.NotEmpty(po.ID)
	s.Equal(domain.PODraft, po.Status)
	s.Equal(domain.PaymentCash, po.PaymentMethod)
	s.True(dec("200").Equal(po.TotalAmount), "total is computed from the items")
	s.True(fixedNow.Equal(po.Date))
	s.Equal(10, stock(s.store, "p1"), "creating an order does not touch stock")
}

func (s *PurchaseOrderServiceTestSuite) TestCreate_Validation() {
	cases := map[string]domain.PurchaseOrder{
		"no vendor":     {Items: []domain.PurchaseOrderItem{{ProductID: "p1", Quantity: 1}}},
		"no items":      {VendorID: "v1"},
		"zero quantity": {VendorID: "v1", Items: []domain.PurchaseOrderItem{{ProductID: "p1"}}},
		"negative cost": {VendorID: "v1", Items: []domain.PurchaseOrderItem{{ProductID: "p1", Quantity: 1, Cost: dec("-1")}}},
		"received":      {VendorID: "v1", Status: domain.POReceived, Items: []domain.PurchaseOrderItem{{ProductID: "p1", Quantity: 1}}},
		"bad method":    {VendorID: "v1", PaymentMethod: "BARTER", Items: []domain.PurchaseOrderItem{{ProductID: "p1", Quantity: 1}}},
	}
	for name, po := range cases {
		_, err := s.service.CreatePurchaseOrder(s.ctx, po)
		s.ErrorIs(err, apperrors.ErrValidation, name)
	}
}

func (s *PurchaseOrderServiceTestSuite) TestReceive_RecordsPurchase() {
	setBalance(s.store, domain.CashAccountID, dec("500"))
	po := s.newOrder()

	received, result, err := s.service.ReceivePurchaseOrder(s.ctx, po.ID)
	s.Require().NoError(err)
	s.Equal(domain.POReceived, received.Status)
	s.NotNil(received.ReceivedAt)
	s.Equal(result.TransactionID, received.TransactionID)
	s.Empty(result.Skipped())

	s.Equal(15, stock(s.store, "p1"))
	s.True(dec("300").Equal(balance(s.store, domain.CashAccountID)))

	var tx *domain.Transaction
	s.store.View(func(st *domain.AppState) {
		if idx := st.TransactionIndex(received.TransactionID); idx >= 0 {
			copied := st.Transactions[idx]
			tx = &copied
		}
	})
	s.Require().NotNil(tx)
	s.Equal(domain.Purchase, tx.Type)
	s.Equal("v1", tx.VendorID)
}

func (s *PurchaseOrderServiceTestSuite) TestReceive_OnlyOnce() {
	po := s.newOrder()
	_, _, err := s.service.ReceivePurchaseOrder(s.ctx, po.ID)
	s.Require().NoError(err)

	_, _, err = s.service.ReceivePurchaseOrder(s.ctx, po.ID)
	s.ErrorIs(err, apperrors.ErrConflict)
	s.Equal(15, stock(s.store, "p1"))

	_, _, err = s.service.ReceivePurchaseOrder(s.ctx, "missing")
	s.ErrorIs(err, apperrors.ErrNotFound)
}

func (s *PurchaseOrderServiceTestSuite) TestUpdateStatus() {
	po := s.newOrder()

	pending, err := s.service.UpdatePurchaseOrderStatus(s.ctx, po.ID, domain.POPending)
	s.Require().NoError(err)
	s.Equal(domain.POPending, pending.Status)

	_, err = s.service.UpdatePurchaseOrderStatus(s.ctx, po.ID, domain.PODraft)
	s.ErrorIs(err, apperrors.ErrConflict)

	_, err = s.service.UpdatePurchaseOrderStatus(s.ctx, po.ID, domain.POReceived)
	s.ErrorIs(err, apperrors.ErrValidation, "receiving has its own operation")

	cancelled, err := s.service.UpdatePurchaseOrderStatus(s.ctx, po.ID, domain.POCancelled)
	s.Require().NoError(err)
	s.Equal(domain.POCancelled, cancelled.Status)

	_, _, err = s.service.ReceivePurchaseOrder(s.ctx, po.ID)
	s.ErrorIs(err, apperrors.ErrConflict)
}

func (s *PurchaseOrderServiceTestSuite) TestList_FiltersByStatus() {
	first := s.newOrder()
	s.newOrder()
	_, err := s.service.UpdatePurchaseOrderStatus(s.ctx, first.ID, domain.POCancelled)
	s.Require().NoError(err)

	all, err := s.service.ListPurchaseOrders(s.ctx, "")
	s.Require().NoError(err)
	s.Len(all, 2)

	cancelled, err := s.service.ListPurchaseOrders(s.ctx, domain.POCancelled)
	s.Require().NoError(err)
	s.Require().Len(cancelled, 1)
	s.Equal(first.ID, cancelled[0].ID)
}
