package services

// ServiceContainer holds instances of all the application services.
// This is the main entry point for accessing service functionality and
// is used throughout the application, particularly in the handlers.
type ServiceContainer struct {
	Auth        AuthSvc
	Google      GoogleOAuthSvcFacade
	User        UserSvcFacade
	Account     AccountSvcFacade
	Transaction TransactionSvcFacade
	Currency    CurrencySvcFacade
	Category    CategorySvcFacade
	Receipt     ReceiptSvcFacade
	Seeder      SeederSvc
}
