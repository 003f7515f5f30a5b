package services

import (
	"context"

	"github.com/SscSPs/pos_ledger_app/internal/core/domain"
)

// PurchaseOrderReaderSvc defines read operations for purchase orders.
type PurchaseOrderReaderSvc interface {
	GetPurchaseOrder(ctx context.Context, purchaseOrderID string) (*domain.PurchaseOrder, error)
	ListPurchaseOrders(ctx context.Context, status domain.PurchaseOrderStatus) ([]domain.PurchaseOrder, error)
}

// PurchaseOrderWriterSvc defines write operations for purchase orders.
type PurchaseOrderWriterSvc interface {
	// CreatePurchaseOrder stores a new DRAFT or PENDING order.
	CreatePurchaseOrder(ctx context.Context, po domain.PurchaseOrder) (*domain.PurchaseOrder, error)

	// UpdatePurchaseOrderStatus moves an open order to PENDING or CANCELLED.
	UpdatePurchaseOrderStatus(ctx context.Context, purchaseOrderID string, status domain.PurchaseOrderStatus) (*domain.PurchaseOrder, error)

	// ReceivePurchaseOrder records the PURCHASE transaction for an open order and marks it RECEIVED.
	ReceivePurchaseOrder(ctx context.Context, purchaseOrderID string) (*domain.PurchaseOrder, domain.ImpactResult, error)
}

// PurchaseOrderSvcFacade combines all purchase order service interfaces.
type PurchaseOrderSvcFacade interface {
	PurchaseOrderReaderSvc
	PurchaseOrderWriterSvc
}
