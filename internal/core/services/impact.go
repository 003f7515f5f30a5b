package services

import (
	"strings"

	"github.com/SscSPs/pos_ledger_app/internal/core/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ResolveAccountID returns the liquidity account a non-transfer transaction moves
// money through: its own account, else cash for CASH, else the default bank.
func ResolveAccountID(tx domain.Transaction, bankAccountID string) string {
	if tx.AccountID != "" {
		return tx.AccountID
	}
	if tx.PaymentMethod == domain.PaymentCash {
		return domain.CashAccountID
	}
	return bankAccountID
}

// ComputeImpact derives the effect set of tx from its own fields. It never reads
// the store; applyImpact decides which effects can land.
func ComputeImpact(tx domain.Transaction, bankAccountID string) []domain.Effect {
	effects := make([]domain.Effect, 0, 2+len(tx.Items))
	effects = append(effects, accountEffects(tx, bankAccountID)...)
	if e, ok := customerEffect(tx); ok {
		effects = append(effects, e)
	}
	return append(effects, stockEffects(tx)...)
}

func accountEffects(tx domain.Transaction, bankAccountID string) []domain.Effect {
	switch tx.Type {
	case domain.Transfer:
		var reason domain.SkipReason
		if tx.AccountID == "" || tx.DestinationAccountID == "" {
			reason = domain.SkipMissingAccount
		}
		return []domain.Effect{
			{Kind: domain.EffectAccountBalance, TargetID: tx.AccountID, Delta: tx.Amount.Neg(), SkipReason: reason},
			{Kind: domain.EffectAccountBalance, TargetID: tx.DestinationAccountID, Delta: tx.Amount, SkipReason: reason},
		}
	case domain.Sale, domain.CreditPayment, domain.Expense, domain.Purchase:
		if tx.PaymentMethod.IsDeferred() {
			return nil
		}
		delta := tx.Amount
		if !tx.Type.IsInflow() {
			delta = delta.Neg()
		}
		return []domain.Effect{
			{Kind: domain.EffectAccountBalance, TargetID: ResolveAccountID(tx, bankAccountID), Delta: delta},
		}
	default:
		return []domain.Effect{
			{Kind: domain.EffectAccountBalance, TargetID: tx.AccountID, Delta: decimal.Zero, SkipReason: domain.SkipUnsupportedType},
		}
	}
}

func customerEffect(tx domain.Transaction) (domain.Effect, bool) {
	if tx.CustomerID == "" {
		return domain.Effect{}, false
	}
	switch tx.Type {
	case domain.Sale:
		if tx.PaymentMethod != domain.PaymentCredit {
			return domain.Effect{}, false
		}
		return domain.Effect{Kind: domain.EffectCustomerCredit, TargetID: tx.CustomerID, Delta: tx.Amount}, true
	case domain.CreditPayment:
		return domain.Effect{Kind: domain.EffectCustomerCredit, TargetID: tx.CustomerID, Delta: tx.Amount.Neg()}, true
	case domain.Purchase, domain.Expense, domain.Transfer:
		return domain.Effect{}, false
	default:
		return domain.Effect{}, false
	}
}

func stockEffects(tx domain.Transaction) []domain.Effect {
	if len(tx.Items) == 0 {
		return nil
	}
	var reason domain.SkipReason
	if !tx.Type.Valid() {
		reason = domain.SkipUnsupportedType
	}
	effects := make([]domain.Effect, 0, len(tx.Items))
	for _, item := range tx.Items {
		delta := decimal.NewFromInt(int64(item.Quantity))
		if tx.Type == domain.Sale {
			delta = delta.Neg()
		}
		effects = append(effects, domain.Effect{
			Kind:       domain.EffectProductStock,
			TargetID:   item.ProductID,
			Delta:      delta,
			SkipReason: reason,
		})
	}
	return effects
}

// applyImpact lands every effect whose target exists and returns the effects with
// Applied or SkipReason filled in. Transfer legs land together or not at all.
func applyImpact(st *domain.AppState, tx domain.Transaction, effects []domain.Effect) []domain.Effect {
	out := make([]domain.Effect, len(effects))
	copy(out, effects)

	for i := range out {
		if out[i].SkipReason != "" {
			continue
		}
		switch out[i].Kind {
		case domain.EffectAccountBalance:
			if st.Account(out[i].TargetID) == nil {
				out[i].SkipReason = domain.SkipUnknownAccount
			}
		case domain.EffectCustomerCredit:
			if st.Customer(out[i].TargetID) == nil {
				out[i].SkipReason = domain.SkipUnknownCustomer
			}
		case domain.EffectProductStock:
			if st.Product(out[i].TargetID) == nil {
				out[i].SkipReason = domain.SkipUnknownProduct
			}
		}
	}

	if tx.Type == domain.Transfer {
		var reason domain.SkipReason
		for _, e := range out {
			if e.Kind == domain.EffectAccountBalance && e.SkipReason != "" {
				reason = e.SkipReason
				break
			}
		}
		if reason != "" {
			for i := range out {
				if out[i].Kind == domain.EffectAccountBalance && out[i].SkipReason == "" {
					out[i].SkipReason = reason
				}
			}
		}
	}

	for i := range out {
		if out[i].SkipReason != "" {
			continue
		}
		switch out[i].Kind {
		case domain.EffectAccountBalance:
			acc := st.Account(out[i].TargetID)
			acc.Balance = acc.Balance.Add(out[i].Delta)
		case domain.EffectCustomerCredit:
			c := st.Customer(out[i].TargetID)
			c.TotalCredit = c.TotalCredit.Add(out[i].Delta)
		case domain.EffectProductStock:
			p := st.Product(out[i].TargetID)
			p.Stock += int(out[i].Delta.IntPart())
		}
		out[i].Applied = true
	}
	return out
}

// compensation returns the effects that undo a logged transaction. Transactions
// with recorded effects are undone exactly, so an effect that never landed is
// never reversed. Entries from before effect recording fall back to recomputing
// from the snapshot.
func compensation(tx domain.Transaction, bankAccountID string) []domain.Effect {
	if !tx.EffectsRecorded {
		source := ComputeImpact(tx, bankAccountID)
		out := make([]domain.Effect, 0, len(source))
		for _, e := range source {
			out = append(out, e.Negate())
		}
		return out
	}
	out := make([]domain.Effect, 0, len(tx.AppliedEffects))
	for _, e := range tx.AppliedEffects {
		if e.Applied {
			out = append(out, e.Negate())
		}
	}
	return out
}

func appliedOnly(effects []domain.Effect) []domain.Effect {
	out := make([]domain.Effect, 0, len(effects))
	for _, e := range effects {
		if e.Applied {
			out = append(out, e)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// coerceAmount parses raw money text. Blank input is a plain zero; anything
// non-numeric or negative becomes zero and is reported as coerced.
func coerceAmount(raw string) (decimal.Decimal, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(raw)
	if err != nil || d.IsNegative() {
		return decimal.Zero, true
	}
	return d, false
}

// ledgerEngine normalizes drafts and commits them into a state under the caller's
// write lock. Services that spawn transactions share it so the spawn is atomic
// with their own change.
type ledgerEngine struct {
	bankAccountID string
	base          *BaseService
	newID         func() string
}

func newLedgerEngine(bankAccountID string, base *BaseService) *ledgerEngine {
	if bankAccountID == "" {
		bankAccountID = domain.DefaultBankAccountID
	}
	return &ledgerEngine{bankAccountID: bankAccountID, base: base, newID: uuid.NewString}
}

func (e *ledgerEngine) normalize(draft domain.TransactionDraft) (domain.Transaction, domain.ImpactResult) {
	amount, amountCoerced := coerceAmount(draft.Amount)
	discount, discountCoerced := coerceAmount(draft.Discount)
	date := e.base.Now()
	if draft.Date != nil && !draft.Date.IsZero() {
		date = *draft.Date
	}
	tx := domain.Transaction{
		ID:                   draft.ID,
		Date:                 date,
		Type:                 draft.Type,
		Amount:               amount,
		Discount:             discount,
		PaymentMethod:        draft.PaymentMethod,
		AccountID:            draft.AccountID,
		DestinationAccountID: draft.DestinationAccountID,
		CustomerID:           draft.CustomerID,
		VendorID:             draft.VendorID,
		Items:                append([]domain.TransactionItem(nil), draft.Items...),
		ChequeNumber:         draft.ChequeNumber,
		ChequeDate:           draft.ChequeDate,
		Note:                 draft.Note,
	}
	return tx, domain.ImpactResult{AmountCoerced: amountCoerced, DiscountCoerced: discountCoerced}
}

// record normalizes draft, prepends it to the log and applies its effects.
func (e *ledgerEngine) record(st *domain.AppState, draft domain.TransactionDraft) (domain.Transaction, domain.ImpactResult) {
	tx, result := e.normalize(draft)
	if tx.ID == "" || st.TransactionIndex(tx.ID) >= 0 {
		tx.ID = e.newID()
	}
	result.Effects = applyImpact(st, tx, ComputeImpact(tx, e.bankAccountID))
	tx.AppliedEffects = appliedOnly(result.Effects)
	tx.EffectsRecorded = true
	result.TransactionID = tx.ID
	st.Transactions = append([]domain.Transaction{tx}, st.Transactions...)
	return tx, result
}

// replace undoes the transaction at idx and applies draft in its place, keeping id
// and log position. A draft without a date keeps the original date.
func (e *ledgerEngine) replace(st *domain.AppState, idx int, draft domain.TransactionDraft) (domain.Transaction, domain.ImpactResult) {
	old := st.Transactions[idx]
	reversed := applyImpact(st, old, compensation(old, e.bankAccountID))

	if draft.Date == nil || draft.Date.IsZero() {
		draft.Date = &old.Date
	}
	tx, result := e.normalize(draft)
	tx.ID = old.ID
	result.Effects = applyImpact(st, tx, ComputeImpact(tx, e.bankAccountID))
	result.Reversed = reversed
	result.TransactionID = tx.ID
	tx.AppliedEffects = appliedOnly(result.Effects)
	tx.EffectsRecorded = true
	st.Transactions[idx] = tx
	return tx, result
}

// remove undoes the transaction at idx and drops it from the log.
func (e *ledgerEngine) remove(st *domain.AppState, idx int) domain.ImpactResult {
	old := st.Transactions[idx]
	reversed := applyImpact(st, old, compensation(old, e.bankAccountID))
	st.Transactions = append(st.Transactions[:idx], st.Transactions[idx+1:]...)
	return domain.ImpactResult{TransactionID: old.ID, Effects: []domain.Effect{}, Reversed: reversed}
}
