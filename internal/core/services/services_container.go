package services

import (
	portsrepo "github.com/SscSPs/budget_tracker_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/budget_tracker_app/internal/core/ports/services"
	"github.com/SscSPs/budget_tracker_app/internal/platform/config"
)

// NewServiceContainer creates a new service container with all services initialized
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	authSvc := NewAuthService(cfg.JWTSecret, cfg.JWTExpiryDuration, cfg.JWTIssuer)
	googleSvc := NewGoogleOAuthService(cfg)

	userSvc := NewUserService(repos.TxManager, repos.UserRepo, repos.CurrencyRepo, repos.AccountRepo, authSvc,
		WithGoogleOAuth(googleSvc))
	accountSvc := NewAccountService(repos.TxManager, repos.AccountRepo, repos.CurrencyRepo, repos.TransactionRepo)
	txnSvc := NewTransactionService(repos.TxManager, repos.TransactionRepo, repos.AccountRepo, repos.CategoryRepo,
		WithLedgerLocation(cfg.LedgerLocation))

	return &portssvc.ServiceContainer{
		Auth:        authSvc,
		Google:      googleSvc,
		User:        userSvc,
		Account:     accountSvc,
		Transaction: txnSvc,
		Currency:    NewCurrencyService(repos.CurrencyRepo),
		Category:    NewCategoryService(repos.CategoryRepo),
		Receipt:     NewReceiptService(repos.ReceiptRepo, repos.TransactionRepo),
		Seeder:      NewSeederService(repos.CurrencyRepo, repos.CategoryRepo),
	}
}
