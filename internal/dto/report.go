package dto

import "github.com/SscSPs/pos_ledger_app/internal/core/domain"

// ExportTransactionsParams bounds the transaction export. Dates are YYYY-MM-DD;
// From is inclusive and To exclusive.
type ExportTransactionsParams struct {
	From string `form:"from"`
	To   string `form:"to"`
}

// PostDueResponse lists the expenses posted by a recurring expense run.
type PostDueResponse struct {
	Posted []TransactionResponse `json:"posted"`
}

// StateResponse is the whole entity store, in the persisted snapshot layout.
type StateResponse struct {
	State domain.AppState `json:"state"`
}
