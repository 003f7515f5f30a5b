package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PurchaseOrderStatus is the lifecycle state of a purchase order.
type PurchaseOrderStatus string

const (
	PODraft     PurchaseOrderStatus = "DRAFT"
	POPending   PurchaseOrderStatus = "PENDING"
	POReceived  PurchaseOrderStatus = "RECEIVED"
	POCancelled PurchaseOrderStatus = "CANCELLED"
)

// IsOpen reports whether the order can still be edited, cancelled or received.
func (s PurchaseOrderStatus) IsOpen() bool {
	return s == PODraft || s == POPending
}

// PurchaseOrderItem is one product line requested from a vendor.
type PurchaseOrderItem struct {
	ProductID string          `json:"productId" validate:"required"`
	Quantity  int             `json:"quantity" validate:"gt=0"`
	Cost      decimal.Decimal `json:"cost"`
}

// PurchaseOrder is a vendor intake request. Receiving it records a PURCHASE
// transaction; the order itself never touches balances or stock.
type PurchaseOrder struct {
	ID            string              `json:"id"`
	Date          time.Time           `json:"date"`
	VendorID      string              `json:"vendorId"`
	Items         []PurchaseOrderItem `json:"items"`
	Status        PurchaseOrderStatus `json:"status"`
	TotalAmount   decimal.Decimal     `json:"totalAmount"`
	PaymentMethod PaymentMethod       `json:"paymentMethod"`
	AccountID     string              `json:"accountId,omitempty"`
	ReceivedAt    *time.Time          `json:"receivedAt,omitempty"`
	TransactionID string              `json:"transactionId,omitempty"`
}

// ItemsTotal sums quantity times cost over all items.
func (po PurchaseOrder) ItemsTotal() decimal.Decimal {
	total := decimal.Zero
	for _, item := range po.Items {
		total = total.Add(item.Cost.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return total
}
