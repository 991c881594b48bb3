package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	TxManager       TransactionManager
	UserRepo        UserRepositoryFacade
	CurrencyRepo    CurrencyRepositoryFacade
	CategoryRepo    CategoryRepositoryFacade
	AccountRepo     AccountRepositoryWithTx
	TransactionRepo TransactionRepositoryWithTx
	ReceiptRepo     ReceiptRepositoryFacade
}
