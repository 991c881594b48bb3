package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/SscSPs/budget_tracker_app/internal/apperrors"
	"github.com/SscSPs/budget_tracker_app/internal/core/domain"
	portsrepo "github.com/SscSPs/budget_tracker_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/budget_tracker_app/internal/core/ports/services"
	"github.com/SscSPs/budget_tracker_app/internal/dto"
	"github.com/SscSPs/budget_tracker_app/internal/utils/accounting"
	"github.com/SscSPs/budget_tracker_app/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
)

// TransactionService records income and expenses and keeps every account balance equal
// to the sum of the effects of its transactions.
type TransactionService struct {
	BaseService
	txManager    portsrepo.TransactionManager
	txnRepo      portsrepo.TransactionRepositoryFacade
	accountRepo  portsrepo.AccountTransactionSupport
	categoryRepo portsrepo.CategoryReader
	location     *time.Location
}

// TransactionServiceOption configures a TransactionService.
type TransactionServiceOption func(*TransactionService)

// WithLedgerLocation sets the zone in which month/year filters are evaluated. Defaults to UTC.
func WithLedgerLocation(loc *time.Location) TransactionServiceOption {
	return func(s *TransactionService) {
		if loc != nil {
			s.location = loc
		}
	}
}

// NewTransactionService creates a new TransactionService.
func NewTransactionService(
	txManager portsrepo.TransactionManager,
	txnRepo portsrepo.TransactionRepositoryFacade,
	accountRepo portsrepo.AccountTransactionSupport,
	categoryRepo portsrepo.CategoryReader,
	opts ...TransactionServiceOption,
) *TransactionService {
	s := &TransactionService{
		txManager:    txManager,
		txnRepo:      txnRepo,
		accountRepo:  accountRepo,
		categoryRepo: categoryRepo,
		location:     time.UTC,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ portssvc.TransactionSvcFacade = (*TransactionService)(nil)

// CreateTransaction inserts the transaction and adds its effect to the account balance.
func (s *TransactionService) CreateTransaction(ctx context.Context, userID int64, req dto.CreateTransactionRequest) (*domain.Transaction, error) {
	txn := req.ToDomain(userID)
	if err := txn.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrValidation, err)
	}

	tx, err := s.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer s.txManager.Rollback(ctx, tx)

	if _, err := s.accountRepo.FindAccountByIDForUpdate(ctx, tx, userID, txn.AccountID); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to lock account", slog.Int64("account_id", txn.AccountID))
		}
		return nil, err
	}

	category, err := s.visibleCategory(ctx, userID, txn.CategoryID)
	if err != nil {
		return nil, err
	}

	saved, err := s.txnRepo.InsertTransactionInTx(ctx, tx, txn)
	if err != nil {
		s.LogError(ctx, err, "Failed to insert transaction", slog.Int64("account_id", txn.AccountID))
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}

	if err := s.accountRepo.AdjustBalancesInTx(ctx, tx, accounting.PostingChanges(*saved)); err != nil {
		s.LogError(ctx, err, "Failed to apply transaction to balance", slog.Int64("account_id", saved.AccountID))
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}

	if err := s.txManager.Commit(ctx, tx); err != nil {
		return nil, err
	}

	saved.Category = category
	s.LogInfo(ctx, "Transaction created", slog.Int64("transaction_id", saved.TransactionID), slog.Int64("account_id", saved.AccountID))
	return saved, nil
}

// GetTransactionByID retrieves an owned transaction with its category.
func (s *TransactionService) GetTransactionByID(ctx context.Context, userID int64, transactionID int64) (*domain.Transaction, error) {
	txn, err := s.txnRepo.FindTransactionByID(ctx, userID, transactionID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find transaction by ID", slog.Int64("transaction_id", transactionID))
		}
		return nil, err
	}
	return txn, nil
}

// ListTransactions returns one page of the user's transactions newest first.
func (s *TransactionService) ListTransactions(ctx context.Context, userID int64, filter domain.TransactionFilter, page domain.PageRequest) ([]domain.Transaction, *int, error) {
	if filter.Month != nil && (*filter.Month < 1 || *filter.Month > 12) {
		return nil, nil, fmt.Errorf("%w: month must be between 1 and 12, got %d", apperrors.ErrValidation, *filter.Month)
	}
	offset, limit, err := pagination.Normalize(page.Offset, page.Limit)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}

	txns, err := s.txnRepo.ListTransactions(ctx, userID, filter, s.location, domain.PageRequest{Offset: offset, Limit: limit})
	if err != nil {
		s.LogError(ctx, err, "Failed to list transactions", slog.Int64("user_id", userID))
		return nil, nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	if txns == nil {
		txns = []domain.Transaction{}
	}
	return txns, pagination.NextOffset(offset, limit, len(txns)), nil
}

// UpdateTransaction overwrites every mutable field of the transaction and moves its effect.
// When the account changes, the old effect leaves the old account and the new effect lands
// on the new one; on the same account only the net difference is applied.
func (s *TransactionService) UpdateTransaction(ctx context.Context, userID int64, transactionID int64, req dto.UpdateTransactionRequest) (*domain.Transaction, error) {
	updated := req.ToDomain(userID)
	if err := updated.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrValidation, err)
	}

	tx, err := s.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer s.txManager.Rollback(ctx, tx)

	old, err := s.txnRepo.FindTransactionByIDForUpdate(ctx, tx, userID, transactionID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to lock transaction", slog.Int64("transaction_id", transactionID))
		}
		return nil, err
	}
	updated.TransactionID = old.TransactionID
	updated.CreatedAt = old.CreatedAt

	oldAccountExists, err := s.lockAccounts(ctx, tx, userID, old.AccountID, updated.AccountID)
	if err != nil {
		return nil, err
	}

	category, err := s.visibleCategory(ctx, userID, updated.CategoryID)
	if err != nil {
		return nil, err
	}

	changes := accounting.ReassignmentChanges(*old, updated)
	if !oldAccountExists {
		s.LogWarn(ctx, "Previous account missing, skipping reversal", slog.Int64("account_id", old.AccountID))
		delete(changes, old.AccountID)
	}

	if err := s.txnRepo.UpdateTransactionInTx(ctx, tx, updated); err != nil {
		s.LogError(ctx, err, "Failed to update transaction", slog.Int64("transaction_id", transactionID))
		return nil, fmt.Errorf("failed to update transaction: %w", err)
	}

	if err := s.accountRepo.AdjustBalancesInTx(ctx, tx, changes.NonZero()); err != nil {
		s.LogError(ctx, err, "Failed to move transaction effect", slog.Int64("transaction_id", transactionID))
		return nil, fmt.Errorf("failed to update transaction: %w", err)
	}

	if err := s.txManager.Commit(ctx, tx); err != nil {
		return nil, err
	}

	updated.Category = category
	s.LogInfo(ctx, "Transaction updated", slog.Int64("transaction_id", transactionID))
	return &updated, nil
}

// DeleteTransaction removes the transaction and subtracts its effect from the account balance.
func (s *TransactionService) DeleteTransaction(ctx context.Context, userID int64, transactionID int64) error {
	tx, err := s.txManager.Begin(ctx)
	if err != nil {
		return err
	}
	defer s.txManager.Rollback(ctx, tx)

	old, err := s.txnRepo.FindTransactionByIDForUpdate(ctx, tx, userID, transactionID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to lock transaction", slog.Int64("transaction_id", transactionID))
		}
		return err
	}

	changes := accounting.BalanceChanges{}
	_, err = s.accountRepo.FindAccountByIDForUpdate(ctx, tx, userID, old.AccountID)
	switch {
	case err == nil:
		changes = accounting.ReversalChanges(*old)
	case errors.Is(err, apperrors.ErrNotFound):
		s.LogWarn(ctx, "Account missing, skipping reversal", slog.Int64("account_id", old.AccountID))
	default:
		return fmt.Errorf("failed to delete transaction: %w", err)
	}

	if err := s.accountRepo.AdjustBalancesInTx(ctx, tx, changes); err != nil {
		s.LogError(ctx, err, "Failed to reverse transaction effect", slog.Int64("transaction_id", transactionID))
		return fmt.Errorf("failed to delete transaction: %w", err)
	}

	if err := s.txnRepo.DeleteTransactionInTx(ctx, tx, userID, transactionID); err != nil {
		s.LogError(ctx, err, "Failed to delete transaction", slog.Int64("transaction_id", transactionID))
		return fmt.Errorf("failed to delete transaction: %w", err)
	}

	if err := s.txManager.Commit(ctx, tx); err != nil {
		return err
	}

	s.LogInfo(ctx, "Transaction deleted", slog.Int64("transaction_id", transactionID))
	return nil
}

// lockAccounts locks the old and new accounts of an update in ascending ID order. The new
// account must exist and be owned; a missing old account is reported through the bool.
func (s *TransactionService) lockAccounts(ctx context.Context, tx pgx.Tx, userID, oldAccountID, newAccountID int64) (bool, error) {
	ids := []int64{oldAccountID}
	if newAccountID != oldAccountID {
		ids = append(ids, newAccountID)
	}
	slices.Sort(ids)

	oldExists := true
	for _, id := range ids {
		_, err := s.accountRepo.FindAccountByIDForUpdate(ctx, tx, userID, id)
		if err == nil {
			continue
		}
		if !errors.Is(err, apperrors.ErrNotFound) {
			return false, fmt.Errorf("failed to lock account %d: %w", id, err)
		}
		if id == newAccountID {
			return false, fmt.Errorf("%w: account %d does not exist", apperrors.ErrInvalidReference, id)
		}
		oldExists = false
	}
	return oldExists, nil
}

// visibleCategory returns the category if it is shared or owned by userID.
func (s *TransactionService) visibleCategory(ctx context.Context, userID, categoryID int64) (*domain.Category, error) {
	category, err := s.categoryRepo.FindCategoryByID(ctx, categoryID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: category %d does not exist", apperrors.ErrInvalidReference, categoryID)
		}
		return nil, fmt.Errorf("failed to look up category: %w", err)
	}
	if !category.VisibleTo(userID) {
		return nil, fmt.Errorf("%w: category %d does not exist", apperrors.ErrInvalidReference, categoryID)
	}
	return category, nil
}
