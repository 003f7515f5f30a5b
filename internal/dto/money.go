package dto

import (
	"bytes"
	"encoding/json"

	"github.com/shopspring/decimal"
)

// RawAmount keeps a money field as the text the client sent. It accepts JSON
// numbers and strings alike and never fails to decode, so malformed values reach
// the ledger and are coerced there instead of rejecting the whole request.
type RawAmount string

// UnmarshalJSON implements json.Unmarshaler.
func (a *RawAmount) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if bytes.Equal(trimmed, []byte("null")) {
		*a = ""
		return nil
	}
	var s string
	if err := json.Unmarshal(trimmed, &s); err == nil {
		*a = RawAmount(s)
		return nil
	}
	*a = RawAmount(trimmed)
	return nil
}

// Decimal parses the amount, returning zero for blank or malformed text.
func (a RawAmount) Decimal() decimal.Decimal {
	d, err := decimal.NewFromString(string(a))
	if err != nil {
		return decimal.Zero
	}
	return d
}
