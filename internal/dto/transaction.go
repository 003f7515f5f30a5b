package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/SscSPs/pos_ledger_app/internal/core/domain"
)

// TransactionItemRequest is one product line of a transaction request.
type TransactionItemRequest struct {
	ProductID string    `json:"productId" binding:"required"`
	Quantity  int       `json:"quantity" binding:"min=0"`
	Price     RawAmount `json:"price" swaggertype:"string"`
}

// TransactionRequest is the partial transaction descriptor a client submits.
// Amount and Discount may be JSON numbers or strings.
type TransactionRequest struct {
	ID                   string                   `json:"id"`
	Date                 *time.Time               `json:"date"`
	Type                 domain.TransactionType   `json:"type" binding:"required,oneof=SALE PURCHASE EXPENSE CREDIT_PAYMENT TRANSFER"`
	Amount               RawAmount                `json:"amount" swaggertype:"string"`
	Discount             RawAmount                `json:"discount" swaggertype:"string"`
	PaymentMethod        domain.PaymentMethod     `json:"paymentMethod" binding:"omitempty,oneof=CASH BANK CARD CREDIT CHEQUE"`
	AccountID            string                   `json:"accountId"`
	DestinationAccountID string                   `json:"destinationAccountId"`
	CustomerID           string                   `json:"customerId"`
	VendorID             string                   `json:"vendorId"`
	Items                []TransactionItemRequest `json:"items" binding:"omitempty,dive"`
	ChequeNumber         string                   `json:"chequeNumber"`
	ChequeDate           *time.Time               `json:"chequeDate"`
	Note                 string                   `json:"note"`
}

// ToDraft converts the request into the ledger's draft type.
func (r TransactionRequest) ToDraft() domain.TransactionDraft {
	var items []domain.TransactionItem
	if len(r.Items) > 0 {
		items = make([]domain.TransactionItem, 0, len(r.Items))
		for _, item := range r.Items {
			items = append(items, domain.TransactionItem{
				ProductID: item.ProductID,
				Quantity:  item.Quantity,
				Price:     item.Price.Decimal(),
			})
		}
	}
	return domain.TransactionDraft{
		ID:                   r.ID,
		Date:                 r.Date,
		Type:                 r.Type,
		Amount:               string(r.Amount),
		Discount:             string(r.Discount),
		PaymentMethod:        r.PaymentMethod,
		AccountID:            r.AccountID,
		DestinationAccountID: r.DestinationAccountID,
		CustomerID:           r.CustomerID,
		VendorID:             r.VendorID,
		Items:                items,
		ChequeNumber:         r.ChequeNumber,
		ChequeDate:           r.ChequeDate,
		Note:                 r.Note,
	}
}

// TransactionItemResponse is one product line of a transaction.
type TransactionItemResponse struct {
	ProductID string          `json:"productId"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
}

// TransactionResponse defines the data returned for a transaction.
type TransactionResponse struct {
	ID                   string                    `json:"id"`
	Date                 time.Time                 `json:"date"`
	Type                 domain.TransactionType    `json:"type"`
	Amount               decimal.Decimal           `json:"amount"`
	Discount             decimal.Decimal           `json:"discount"`
	PaymentMethod        domain.PaymentMethod      `json:"paymentMethod"`
	AccountID            string                    `json:"accountId,omitempty"`
	DestinationAccountID string                    `json:"destinationAccountId,omitempty"`
	CustomerID           string                    `json:"customerId,omitempty"`
	VendorID             string                    `json:"vendorId,omitempty"`
	Items                []TransactionItemResponse `json:"items,omitempty"`
	ChequeNumber         string                    `json:"chequeNumber,omitempty"`
	ChequeDate           *time.Time                `json:"chequeDate,omitempty"`
	Note                 string                    `json:"note,omitempty"`
}

// ToTransactionResponse converts a domain.Transaction to its response DTO.
func ToTransactionResponse(tx domain.Transaction) TransactionResponse {
	resp := TransactionResponse{
		ID:                   tx.ID,
		Date:                 tx.Date,
		Type:                 tx.Type,
		Amount:               tx.Amount,
		Discount:             tx.Discount,
		PaymentMethod:        tx.PaymentMethod,
		AccountID:            tx.AccountID,
		DestinationAccountID: tx.DestinationAccountID,
		CustomerID:           tx.CustomerID,
		VendorID:             tx.VendorID,
		ChequeNumber:         tx.ChequeNumber,
		ChequeDate:           tx.ChequeDate,
		Note:                 tx.Note,
	}
	for _, item := range tx.Items {
		resp.Items = append(resp.Items, TransactionItemResponse{ProductID: item.ProductID, Quantity: item.Quantity, Price: item.Price})
	}
	return resp
}

// ToTransactionResponses converts a slice of domain transactions.
func ToTransactionResponses(txs []domain.Transaction) []TransactionResponse {
	out := make([]TransactionResponse, len(txs))
	for i, tx := range txs {
		out[i] = ToTransactionResponse(tx)
	}
	return out
}

// RecordTransactionResponse is returned by the record and update endpoints.
// Impact lists every effect with whether it was applied or why it was skipped.
type RecordTransactionResponse struct {
	Transaction TransactionResponse `json:"transaction"`
	Impact      domain.ImpactResult `json:"impact"`
}

// ListTransactionsParams defines the query parameters for listing transactions.
// From and To accept RFC 3339 timestamps or YYYY-MM-DD dates.
type ListTransactionsParams struct {
	Type       domain.TransactionType `form:"type" binding:"omitempty,oneof=SALE PURCHASE EXPENSE CREDIT_PAYMENT TRANSFER"`
	CustomerID string                 `form:"customerId"`
	From       string                 `form:"from"`
	To         string                 `form:"to"`
	Limit      int                    `form:"limit,default=50" binding:"omitempty,min=1,max=500"`
	NextToken  string                 `form:"nextToken"`
}

// ListTransactionsResponse wraps a page of transactions.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	NextToken    *string               `json:"nextToken,omitempty"`
}
