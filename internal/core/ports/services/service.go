package services

// ServiceContainer holds instances of all the application services.
// It is built once in main and handed to the handlers.
type ServiceContainer struct {
	Ledger           LedgerSvcFacade
	DaySession       DaySessionSvcFacade
	Catalog          CatalogSvcFacade
	PurchaseOrder    PurchaseOrderSvcFacade
	RecurringExpense RecurringExpenseSvc
	Report           ReportSvc
	Advisor          AdvisorSvc
	TokenService     TokenSvcFacade
	GoogleOAuth      GoogleOAuthHandlerSvcFacade
	APIToken         APITokenSvc
}
