package repositories

import (
	"context"

	"github.com/SscSPs/budget_tracker_app/internal/core/domain"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// AccountReader defines read operations for account data
type AccountReader interface {
	// FindAccountByID retrieves an account owned by userID with its currency joined.
	// Accounts of other users are reported as apperrors.ErrNotFound.
	FindAccountByID(ctx context.Context, userID int64, accountID int64) (*domain.Account, error)

	// ListAccountsByUser retrieves every account of userID ordered by ID, currency joined.
	ListAccountsByUser(ctx context.Context, userID int64) ([]domain.Account, error)
}

// AccountWriter defines write operations for account data
type AccountWriter interface {
	// InsertAccount persists a new account with a zero balance.
	InsertAccount(ctx context.Context, account domain.Account) (*domain.Account, error)

	// InsertAccountInTx persists a new account inside an open transaction.
	InsertAccountInTx(ctx context.Context, tx pgx.Tx, account domain.Account) (*domain.Account, error)

	// DeleteAccountInTx deletes an account. Its transactions must already be gone.
	DeleteAccountInTx(ctx context.Context, tx pgx.Tx, userID int64, accountID int64) error
}

// AccountTransactionSupport defines operations that support balance mutation
type AccountTransactionSupport interface {
	// FindAccountByIDForUpdate selects an owned account and locks it for the rest of the transaction.
	FindAccountByIDForUpdate(ctx context.Context, tx pgx.Tx, userID int64, accountID int64) (*domain.Account, error)

	// AdjustBalancesInTx adds each delta to the matching account balance with a single atomic
	// increment per account. Returns apperrors.ErrNotFound if an account no longer exists.
	AdjustBalancesInTx(ctx context.Context, tx pgx.Tx, balanceChanges map[int64]decimal.Decimal) error
}

// AccountRepositoryFacade combines all account-related repository interfaces
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
	AccountTransactionSupport
}

// AccountRepositoryWithTx extends AccountRepositoryFacade with transaction capabilities
type AccountRepositoryWithTx interface {
	AccountRepositoryFacade
	TransactionManager
}
