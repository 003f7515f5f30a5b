package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/go-playground/validator/v10"

	"github.com/SscSPs/pos_ledger_app/internal/apperrors"
	"github.com/SscSPs/pos_ledger_app/internal/core/domain"
	portssvc "github.com/SscSPs/pos_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/pos_ledger_app/internal/core/state"
)

// purchaseOrderService manages vendor intake orders.
type purchaseOrderService struct {
	BaseService
	store    *state.Store
	engine   *ledgerEngine
	validate *validator.Validate
}

// NewPurchaseOrderService creates a purchase order service. Receiving an order
// records its PURCHASE through the same engine the ledger uses.
func NewPurchaseOrderService(store *state.Store, bankAccountID string, options ...ServiceOption) portssvc.PurchaseOrderSvcFacade {
	s := &purchaseOrderService{BaseService: newBaseService(options...), store: store, validate: validator.New()}
	s.engine = newLedgerEngine(bankAccountID, &s.BaseService)
	return s
}

var _ portssvc.PurchaseOrderSvcFacade = (*purchaseOrderService)(nil)

func purchaseOrderIndex(st *domain.AppState, id string) int {
	for i := range st.PurchaseOrders {
		if st.PurchaseOrders[i].ID == id {
			return i
		}
	}
	return -1
}

func clonePurchaseOrder(po domain.PurchaseOrder) domain.PurchaseOrder {
	po.Items = append([]domain.PurchaseOrderItem(nil), po.Items...)
	return po
}

func (s *purchaseOrderService) GetPurchaseOrder(ctx context.Context, id string) (*domain.PurchaseOrder, error) {
	var (
		po    domain.PurchaseOrder
		found bool
	)
	s.store.View(func(st *domain.AppState) {
		if idx := purchaseOrderIndex(st, id); idx >= 0 {
			po = clonePurchaseOrder(st.PurchaseOrders[idx])
			found = true
		}
	})
	if !found {
		return nil, fmt.Errorf("%w: purchase order %s", apperrors.ErrNotFound, id)
	}
	return &po, nil
}

// ListPurchaseOrders returns orders newest first. An empty status lists all.
func (s *purchaseOrderService) ListPurchaseOrders(ctx context.Context, status domain.PurchaseOrderStatus) ([]domain.PurchaseOrder, error) {
	out := make([]domain.PurchaseOrder, 0)
	s.store.View(func(st *domain.AppState) {
		for _, po := range st.PurchaseOrders {
			if status == "" || po.Status == status {
				out = append(out, clonePurchaseOrder(po))
			}
		}
	})
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, nil
}

func (s *purchaseOrderService) CreatePurchaseOrder(ctx context.Context, po domain.PurchaseOrder) (*domain.PurchaseOrder, error) {
	if po.VendorID == "" {
		return nil, fmt.Errorf("%w: vendorId is required", apperrors.ErrValidation)
	}
	if len(po.Items) == 0 {
		return nil, fmt.Errorf("%w: a purchase order needs at least one item", apperrors.ErrValidation)
	}
	for _, item := range po.Items {
		if err := s.validate.Struct(item); err != nil {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
		}
		if item.Cost.IsNegative() {
			return nil, fmt.Errorf("%w: item cost must not be negative", apperrors.ErrValidation)
		}
	}
	switch po.Status {
	case "":
		po.Status = domain.PODraft
	case domain.PODraft, domain.POPending:
	default:
		return nil, fmt.Errorf("%w: a new purchase order must be DRAFT or PENDING", apperrors.ErrValidation)
	}
	if po.PaymentMethod == "" {
		po.PaymentMethod = domain.PaymentCash
	}
	if !po.PaymentMethod.Valid() {
		return nil, fmt.Errorf("%w: unknown payment method %q", apperrors.ErrValidation, po.PaymentMethod)
	}
	if po.TotalAmount.IsZero() {
		po.TotalAmount = po.ItemsTotal()
	}
	if po.Date.IsZero() {
		po.Date = s.Now()
	}
	po.ID = orNewID(po.ID)
	po.ReceivedAt = nil
	po.TransactionID = ""

	err := s.store.Update(func(st *domain.AppState) error {
		if purchaseOrderIndex(st, po.ID) >= 0 {
			return fmt.Errorf("%w: purchase order %s", apperrors.ErrDuplicate, po.ID)
		}
		st.PurchaseOrders = append(st.PurchaseOrders, clonePurchaseOrder(po))
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.LogInfo(ctx, "Purchase order created", slog.String("purchase_order_id", po.ID), slog.String("total", po.TotalAmount.String()))
	return &po, nil
}

// UpdatePurchaseOrderStatus allows DRAFT to PENDING and any open order to CANCELLED.
func (s *purchaseOrderService) UpdatePurchaseOrderStatus(ctx context.Context, id string, status domain.PurchaseOrderStatus) (*domain.PurchaseOrder, error) {
	if status != domain.POPending && status != domain.POCancelled && status != domain.PODraft {
		return nil, fmt.Errorf("%w: status %q cannot be set directly", apperrors.ErrValidation, status)
	}
	var updated domain.PurchaseOrder
	err := s.store.Update(func(st *domain.AppState) error {
		idx := purchaseOrderIndex(st, id)
		if idx < 0 {
			return fmt.Errorf("%w: purchase order %s", apperrors.ErrNotFound, id)
		}
		po := &st.PurchaseOrders[idx]
		if !po.Status.IsOpen() {
			return fmt.Errorf("%w: purchase order %s is %s", apperrors.ErrConflict, id, po.Status)
		}
		if status == domain.PODraft && po.Status == domain.POPending {
			return fmt.Errorf("%w: a pending purchase order cannot return to draft", apperrors.ErrConflict)
		}
		po.Status = status
		updated = clonePurchaseOrder(*po)
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.LogInfo(ctx, "Purchase order status changed", slog.String("purchase_order_id", id), slog.String("status", string(status)))
	return &updated, nil
}

func (s *purchaseOrderService) ReceivePurchaseOrder(ctx context.Context, id string) (*domain.PurchaseOrder, domain.ImpactResult, error) {
	var (
		received domain.PurchaseOrder
		result   domain.ImpactResult
	)
	err := s.store.Update(func(st *domain.AppState) error {
		idx := purchaseOrderIndex(st, id)
		if idx < 0 {
			return fmt.Errorf("%w: purchase order %s", apperrors.ErrNotFound, id)
		}
		po := st.PurchaseOrders[idx]
		if !po.Status.IsOpen() {
			return fmt.Errorf("%w: purchase order %s is %s", apperrors.ErrConflict, id, po.Status)
		}

		items := make([]domain.TransactionItem, 0, len(po.Items))
		for _, item := range po.Items {
			items = append(items, domain.TransactionItem{ProductID: item.ProductID, Quantity: item.Quantity, Price: item.Cost})
		}
		var tx domain.Transaction
		tx, result = s.engine.record(st, domain.TransactionDraft{
			Type:          domain.Purchase,
			Amount:        po.TotalAmount.String(),
			PaymentMethod: po.PaymentMethod,
			AccountID:     po.AccountID,
			VendorID:      po.VendorID,
			Items:         items,
			Note:          "Purchase order " + po.ID,
		})

		now := s.Now()
		target := &st.PurchaseOrders[idx]
		target.Status = domain.POReceived
		target.ReceivedAt = &now
		target.TransactionID = tx.ID
		received = clonePurchaseOrder(*target)
		return nil
	})
	if err != nil {
		return nil, domain.ImpactResult{}, err
	}
	s.LogInfo(ctx, "Purchase order received",
		slog.String("purchase_order_id", id),
		slog.String("transaction_id", received.TransactionID),
		slog.Int("skipped", len(result.Skipped())),
	)
	return &received, result, nil
}
