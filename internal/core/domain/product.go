package domain

import "github.com/shopspring/decimal"

// Product is an inventory unit. Stock may go negative when oversold.
type Product struct {
	ID                string          `json:"id"`
	SKU               string          `json:"sku"`
	Name              string          `json:"name" validate:"required"`
	CategoryID        string          `json:"categoryId,omitempty"`
	VendorID          string          `json:"vendorId,omitempty"`
	Cost              decimal.Decimal `json:"cost"`
	Price             decimal.Decimal `json:"price"`
	Stock             int             `json:"stock"`
	LowStockThreshold int             `json:"lowStockThreshold" validate:"gte=0"`
}

// IsLowStock reports whether stock has fallen to or below the threshold.
func (p Product) IsLowStock() bool {
	return p.Stock <= p.LowStockThreshold
}

// Category groups products.
type Category struct {
	ID          string `json:"id"`
	Name        string `json:"name" validate:"required"`
	Description string `json:"description,omitempty"`
}

// Vendor supplies products.
type Vendor struct {
	ID      string `json:"id"`
	Name    string `json:"name" validate:"required"`
	Phone   string `json:"phone,omitempty"`
	Email   string `json:"email,omitempty" validate:"omitempty,email"`
	Address string `json:"address,omitempty"`
}
