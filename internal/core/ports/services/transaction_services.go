package services

import (
	"context"

	"github.com/SscSPs/budget_tracker_app/internal/core/domain"
	"github.com/SscSPs/budget_tracker_app/internal/dto"
)

// TransactionReaderSvc defines read operations for transaction data
type TransactionReaderSvc interface {
	// GetTransactionByID retrieves an owned transaction with its category.
	GetTransactionByID(ctx context.Context, userID int64, transactionID int64) (*domain.Transaction, error)

	// ListTransactions returns one page of the user's transactions newest first and the
	// offset of the next page, which is nil when the page is the last one.
	ListTransactions(ctx context.Context, userID int64, filter domain.TransactionFilter, page domain.PageRequest) ([]domain.Transaction, *int, error)
}

// TransactionWriterSvc defines balance-mutating operations
type TransactionWriterSvc interface {
	// CreateTransaction records a transaction and applies its effect to the account balance.
	CreateTransaction(ctx context.Context, userID int64, req dto.CreateTransactionRequest) (*domain.Transaction, error)

	// UpdateTransaction overwrites a transaction and moves its balance effect accordingly.
	UpdateTransaction(ctx context.Context, userID int64, transactionID int64, req dto.UpdateTransactionRequest) (*domain.Transaction, error)

	// DeleteTransaction removes a transaction and reverses its balance effect.
	DeleteTransaction(ctx context.Context, userID int64, transactionID int64) error
}

// TransactionSvcFacade combines all transaction-related service interfaces
type TransactionSvcFacade interface {
	TransactionReaderSvc
	TransactionWriterSvc
}
