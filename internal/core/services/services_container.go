package services

import (
	"github.com/SscSPs/pos_ledger_app/internal/core/domain"
	portssvc "github.com/SscSPs/pos_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/pos_ledger_app/internal/core/state"
	"github.com/SscSPs/pos_ledger_app/internal/platform/config"
)

// NewServiceContainer wires every service over the shared entity store.
func NewServiceContainer(cfg *config.Config, store *state.Store, advisor portssvc.AdvisorSvc, options ...ServiceOption) *portssvc.ServiceContainer {
	bankID := cfg.DefaultBankAccountID
	if bankID == "" {
		bankID = domain.DefaultBankAccountID
	}
	if advisor == nil {
		advisor = NewUnavailableAdvisor()
	}
	options = append([]ServiceOption{WithLocation(cfg.Location)}, options...)

	return &portssvc.ServiceContainer{
		Ledger:           NewLedgerService(store, bankID, options...),
		DaySession:       NewDaySessionService(store, bankID, options...),
		Catalog:          NewCatalogService(store, bankID, options...),
		PurchaseOrder:    NewPurchaseOrderService(store, bankID, options...),
		RecurringExpense: NewRecurringExpenseService(store, bankID, options...),
		Report:           NewReportService(store, bankID, options...),
		Advisor:          advisor,
		TokenService:     NewTokenService(cfg),
		GoogleOAuth:      NewGoogleOAuthHandlerService(cfg),
		APIToken:         NewAPITokenService(cfg.APITokenHash),
	}
}
