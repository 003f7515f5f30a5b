package dto_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SscSPs/pos_ledger_app/internal/core/domain"
	"github.com/SscSPs/pos_ledger_app/internal/dto"
)

func TestRawAmount_AcceptsNumbersStringsAndGarbage(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"number", `{"type":"SALE","amount":500.25}`, "500.25"},
		{"string", `{"type":"SALE","amount":"42"}`, "42"},
		{"malformed string", `{"type":"SALE","amount":"abc"}`, "abc"},
		{"boolean", `{"type":"SALE","amount":true}`, "true"},
		{"null", `{"type":"SALE","amount":null}`, ""},
		{"absent", `{"type":"SALE"}`, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req dto.TransactionRequest
			require.NoError(t, json.Unmarshal([]byte(tt.body), &req))
			assert.Equal(t, tt.want, string(req.Amount))
		})
	}
}

func TestTransactionRequest_ToDraft(t *testing.T) {
	var req dto.TransactionRequest
	body := `{"type":"SALE","amount":"100","discount":5,"paymentMethod":"CASH",
		"items":[{"productId":"p1","quantity":2,"price":"oops"},{"productId":"p2","quantity":1,"price":50}]}`
	require.NoError(t, json.Unmarshal([]byte(body), &req))

	draft := req.ToDraft()
	assert.Equal(t, domain.Sale, draft.Type)
	assert.Equal(t, "100", draft.Amount)
	assert.Equal(t, "5", draft.Discount)
	require.Len(t, draft.Items, 2)
	assert.True(t, draft.Items[0].Price.IsZero(), "a malformed item price is informational and becomes zero")
	assert.Equal(t, "50", draft.Items[1].Price.String())
}
