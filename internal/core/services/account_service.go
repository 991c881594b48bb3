package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SscSPs/budget_tracker_app/internal/apperrors"
	"github.com/SscSPs/budget_tracker_app/internal/core/domain"
	portsrepo "github.com/SscSPs/budget_tracker_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/budget_tracker_app/internal/core/ports/services"
	"github.com/SscSPs/budget_tracker_app/internal/dto"
	"github.com/shopspring/decimal"
)

// AccountService manages a user's accounts.
type AccountService struct {
	BaseService
	txManager    portsrepo.TransactionManager
	accountRepo  portsrepo.AccountRepositoryFacade
	currencyRepo portsrepo.CurrencyReader
	txnRepo      portsrepo.TransactionWriter
}

// NewAccountService creates a new AccountService.
func NewAccountService(
	txManager portsrepo.TransactionManager,
	accountRepo portsrepo.AccountRepositoryFacade,
	currencyRepo portsrepo.CurrencyReader,
	txnRepo portsrepo.TransactionWriter,
) *AccountService {
	return &AccountService{
		txManager:    txManager,
		accountRepo:  accountRepo,
		currencyRepo: currencyRepo,
		txnRepo:      txnRepo,
	}
}

var _ portssvc.AccountSvcFacade = (*AccountService)(nil)

// CreateAccount persists a zero-balance account in an existing currency.
func (s *AccountService) CreateAccount(ctx context.Context, userID int64, req dto.CreateAccountRequest) (*domain.Account, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: account name must not be empty", apperrors.ErrValidation)
	}

	currency, err := s.currencyRepo.FindCurrencyByID(ctx, req.CurrencyCodeID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: currency %d does not exist", apperrors.ErrInvalidReference, req.CurrencyCodeID)
		}
		s.LogError(ctx, err, "Failed to look up currency for new account", slog.Int64("currency_id", req.CurrencyCodeID))
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	account, err := s.accountRepo.InsertAccount(ctx, domain.Account{
		UserID:     userID,
		CurrencyID: currency.CurrencyID,
		Name:       name,
		Balance:    decimal.Zero,
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to save account in repository", slog.Int64("user_id", userID))
		return nil, fmt.Errorf("failed to create account: %w", err)
	}
	account.Currency = currency

	s.LogInfo(ctx, "Account created", slog.Int64("account_id", account.AccountID), slog.Int64("user_id", userID))
	return account, nil
}

// GetAccountByID retrieves an owned account with its currency.
func (s *AccountService) GetAccountByID(ctx context.Context, userID int64, accountID int64) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, userID, accountID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find account by ID in repository", slog.Int64("account_id", accountID))
		}
		return nil, err
	}
	return account, nil
}

// ListAccounts retrieves every account of the user ordered by ID.
func (s *AccountService) ListAccounts(ctx context.Context, userID int64) ([]domain.Account, error) {
	accounts, err := s.accountRepo.ListAccountsByUser(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list accounts from repository", slog.Int64("user_id", userID))
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	if accounts == nil {
		return []domain.Account{}, nil
	}
	s.LogDebug(ctx, "Accounts listed", slog.Int("count", len(accounts)))
	return accounts, nil
}

// DeleteAccount removes an account and all of its transactions in one database transaction.
func (s *AccountService) DeleteAccount(ctx context.Context, userID int64, accountID int64) error {
	tx, err := s.txManager.Begin(ctx)
	if err != nil {
		return err
	}
	defer s.txManager.Rollback(ctx, tx)

	if _, err := s.accountRepo.FindAccountByIDForUpdate(ctx, tx, userID, accountID); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to lock account for deletion", slog.Int64("account_id", accountID))
		}
		return err
	}

	removed, err := s.txnRepo.DeleteTransactionsByAccountInTx(ctx, tx, accountID)
	if err != nil {
		s.LogError(ctx, err, "Failed to delete account transactions", slog.Int64("account_id", accountID))
		return fmt.Errorf("failed to delete account: %w", err)
	}

	if err := s.accountRepo.DeleteAccountInTx(ctx, tx, userID, accountID); err != nil {
		s.LogError(ctx, err, "Failed to delete account", slog.Int64("account_id", accountID))
		return fmt.Errorf("failed to delete account: %w", err)
	}

	if err := s.txManager.Commit(ctx, tx); err != nil {
		return err
	}

	s.LogInfo(ctx, "Account deleted", slog.Int64("account_id", accountID), slog.Int64("transactions_removed", removed))
	return nil
}
