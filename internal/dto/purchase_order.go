package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/SscSPs/pos_ledger_app/internal/core/domain"
)

// PurchaseOrderItemRequest is one requested product line.
type PurchaseOrderItemRequest struct {
	ProductID string          `json:"productId" binding:"required"`
	Quantity  int             `json:"quantity" binding:"required,gt=0"`
	Cost      decimal.Decimal `json:"cost" swaggertype:"string"`
}

// CreatePurchaseOrderRequest defines the data needed to create a purchase order.
// A zero TotalAmount is computed from the items.
type CreatePurchaseOrderRequest struct {
	Date          *time.Time                 `json:"date"`
	VendorID      string                     `json:"vendorId" binding:"required"`
	Items         []PurchaseOrderItemRequest `json:"items" binding:"required,min=1,dive"`
	Status        domain.PurchaseOrderStatus `json:"status" binding:"omitempty,oneof=DRAFT PENDING"`
	TotalAmount   decimal.Decimal            `json:"totalAmount" swaggertype:"string"`
	PaymentMethod domain.PaymentMethod       `json:"paymentMethod" binding:"omitempty,oneof=CASH BANK CARD CREDIT CHEQUE"`
	AccountID     string                     `json:"accountId"`
}

// ToDomain converts the request into a new purchase order.
func (r CreatePurchaseOrderRequest) ToDomain() domain.PurchaseOrder {
	po := domain.PurchaseOrder{
		VendorID:      r.VendorID,
		Status:        r.Status,
		TotalAmount:   r.TotalAmount,
		PaymentMethod: r.PaymentMethod,
		AccountID:     r.AccountID,
		Items:         make([]domain.PurchaseOrderItem, 0, len(r.Items)),
	}
	if r.Date != nil {
		po.Date = *r.Date
	}
	for _, item := range r.Items {
		po.Items = append(po.Items, domain.PurchaseOrderItem{ProductID: item.ProductID, Quantity: item.Quantity, Cost: item.Cost})
	}
	return po
}

// UpdatePurchaseOrderStatusRequest moves an open order between states.
type UpdatePurchaseOrderStatusRequest struct {
	Status domain.PurchaseOrderStatus `json:"status" binding:"required,oneof=DRAFT PENDING CANCELLED"`
}

// ListPurchaseOrdersParams filters the purchase order listing.
type ListPurchaseOrdersParams struct {
	Status domain.PurchaseOrderStatus `form:"status" binding:"omitempty,oneof=DRAFT PENDING RECEIVED CANCELLED"`
}

// ReceivePurchaseOrderResponse is returned when an order is received.
type ReceivePurchaseOrderResponse struct {
	PurchaseOrder domain.PurchaseOrder `json:"purchaseOrder"`
	Impact        domain.ImpactResult  `json:"impact"`
}
