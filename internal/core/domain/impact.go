package domain

import "github.com/shopspring/decimal"

// EffectKind names the collection an effect mutates.
type EffectKind string

const (
	EffectAccountBalance EffectKind = "ACCOUNT_BALANCE"
	EffectCustomerCredit EffectKind = "CUSTOMER_CREDIT"
	EffectProductStock   EffectKind = "PRODUCT_STOCK"
)

// SkipReason explains why an effect was not applied.
type SkipReason string

const (
	SkipMissingAccount  SkipReason = "missing_account"
	SkipUnknownAccount  SkipReason = "unknown_account"
	SkipUnknownCustomer SkipReason = "unknown_customer"
	SkipUnknownProduct  SkipReason = "unknown_product"
	SkipUnsupportedType SkipReason = "unsupported_type"
)

// Effect is one signed delta against one target record.
type Effect struct {
	Kind       EffectKind      `json:"kind"`
	TargetID   string          `json:"targetId"`
	Delta      decimal.Decimal `json:"delta"`
	Applied    bool            `json:"applied"`
	SkipReason SkipReason      `json:"skipReason,omitempty"`
}

// Negate returns the compensating effect, reset to unapplied.
func (e Effect) Negate() Effect {
	return Effect{Kind: e.Kind, TargetID: e.TargetID, Delta: e.Delta.Neg(), SkipReason: e.SkipReason}
}

// ImpactResult reports what recording a transaction did to the store.
// Reversed holds the compensating effects of an edit or delete.
type ImpactResult struct {
	TransactionID   string   `json:"transactionId"`
	AmountCoerced   bool     `json:"amountCoerced"`
	DiscountCoerced bool     `json:"discountCoerced"`
	Effects         []Effect `json:"effects"`
	Reversed        []Effect `json:"reversed,omitempty"`
}

// Applied returns the effects that mutated the store.
func (r ImpactResult) Applied() []Effect {
	out := make([]Effect, 0, len(r.Effects))
	for _, e := range r.Effects {
		if e.Applied {
			out = append(out, e)
		}
	}
	return out
}

// Skipped returns the effects that were computed but could not be applied.
func (r ImpactResult) Skipped() []Effect {
	out := make([]Effect, 0)
	for _, e := range r.Effects {
		if !e.Applied {
			out = append(out, e)
		}
	}
	return out
}
