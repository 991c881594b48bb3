package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/budget_tracker_app/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// TransactionReader defines read operations for transaction data
type TransactionReader interface {
	// FindTransactionByID retrieves an owned transaction with its category joined.
	FindTransactionByID(ctx context.Context, userID int64, transactionID int64) (*domain.Transaction, error)

	// ListTransactions returns a page of the user's transactions newest first
	// (created_at DESC, id DESC). Month/year match the calendar date of created_at in loc.
	ListTransactions(ctx context.Context, userID int64, filter domain.TransactionFilter, loc *time.Location, page domain.PageRequest) ([]domain.Transaction, error)
}

// TransactionWriter defines write operations for transaction data
type TransactionWriter interface {
	// InsertTransactionInTx persists a new transaction and returns it with its ID and timestamp.
	InsertTransactionInTx(ctx context.Context, tx pgx.Tx, txn domain.Transaction) (*domain.Transaction, error)

	// UpdateTransactionInTx overwrites the mutable fields of an existing transaction.
	UpdateTransactionInTx(ctx context.Context, tx pgx.Tx, txn domain.Transaction) error

	// DeleteTransactionInTx removes a transaction.
	DeleteTransactionInTx(ctx context.Context, tx pgx.Tx, userID int64, transactionID int64) error

	// DeleteTransactionsByAccountInTx removes every transaction bound to accountID.
	DeleteTransactionsByAccountInTx(ctx context.Context, tx pgx.Tx, accountID int64) (int64, error)
}

// TransactionLocker defines locking reads used before mutation
type TransactionLocker interface {
	// FindTransactionByIDForUpdate selects an owned transaction and locks its row.
	FindTransactionByIDForUpdate(ctx context.Context, tx pgx.Tx, userID int64, transactionID int64) (*domain.Transaction, error)
}

// TransactionRepositoryFacade combines all transaction-related repository interfaces
type TransactionRepositoryFacade interface {
	TransactionReader
	TransactionWriter
	TransactionLocker
}

// TransactionRepositoryWithTx extends TransactionRepositoryFacade with transaction capabilities
type TransactionRepositoryWithTx interface {
	TransactionRepositoryFacade
	TransactionManager
}
