package services

import (
	"context"

	"github.com/SscSPs/budget_tracker_app/internal/core/domain"
	"github.com/SscSPs/budget_tracker_app/internal/dto"
)

// AccountReaderSvc defines read operations for account data
type AccountReaderSvc interface {
	// GetAccountByID retrieves an account owned by userID.
	GetAccountByID(ctx context.Context, userID int64, accountID int64) (*domain.Account, error)

	// ListAccounts retrieves every account owned by userID.
	ListAccounts(ctx context.Context, userID int64) ([]domain.Account, error)
}

// AccountWriterSvc defines write operations for account data
type AccountWriterSvc interface {
	// CreateAccount persists a new zero-balance account.
	CreateAccount(ctx context.Context, userID int64, req dto.CreateAccountRequest) (*domain.Account, error)

	// DeleteAccount removes an account together with its transactions.
	DeleteAccount(ctx context.Context, userID int64, accountID int64) error
}

// AccountSvcFacade combines all account-related service interfaces
type AccountSvcFacade interface {
	AccountReaderSvc
	AccountWriterSvc
}
