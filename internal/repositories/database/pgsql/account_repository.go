package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/budget_tracker_app/internal/apperrors"
	"github.com/SscSPs/budget_tracker_app/internal/core/domain"
	portsrepo "github.com/SscSPs/budget_tracker_app/internal/core/ports/repositories"
	"github.com/SscSPs/budget_tracker_app/internal/models"
	"github.com/SscSPs/budget_tracker_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

const (
	accountColumns = `a.id, a.user_id, a.currency_id, a.name, a.balance, a.created_at`

	accountWithCurrencySelect = `
		SELECT ` + accountColumns + `,
		       c.code AS currency_code, c.name AS currency_name, c.symbol AS currency_symbol
		FROM accounts a
		JOIN currencies c ON c.id = a.currency_id`
)

type PgxAccountRepository struct {
	BaseRepository
}

// newPgxAccountRepository creates a new repository for account data.
func newPgxAccountRepository(pool *pgxpool.Pool) *PgxAccountRepository {
	return &PgxAccountRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxAccountRepository implements portsrepo.AccountRepositoryWithTx
var _ portsrepo.AccountRepositoryWithTx = (*PgxAccountRepository)(nil)

// FindAccountByID retrieves an owned account with its currency.
func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, userID int64, accountID int64) (*domain.Account, error) {
	rows, err := r.Pool.Query(ctx, accountWithCurrencySelect+` WHERE a.id = $1 AND a.user_id = $2`, accountID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query account %d: %w", accountID, err)
	}
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.AccountWithCurrency])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: account %d", apperrors.ErrNotFound, accountID)
		}
		return nil, fmt.Errorf("failed to scan account %d: %w", accountID, err)
	}
	acc := mapping.ToDomainAccountWithCurrency(m)
	return &acc, nil
}

// ListAccountsByUser retrieves all accounts of a user ordered by ID.
func (r *PgxAccountRepository) ListAccountsByUser(ctx context.Context, userID int64) ([]domain.Account, error) {
	rows, err := r.Pool.Query(ctx, accountWithCurrencySelect+` WHERE a.user_id = $1 ORDER BY a.id`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts for user %d: %w", userID, err)
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.AccountWithCurrency])
	if err != nil {
		return nil, fmt.Errorf("failed to scan accounts: %w", err)
	}
	return mapping.ToDomainAccountWithCurrencySlice(ms), nil
}

func insertAccount(ctx context.Context, q querier, account domain.Account) (*domain.Account, error) {
	m := mapping.ToModelAccount(account)
	rows, err := q.Query(ctx, `
		INSERT INTO accounts AS a (user_id, currency_id, name, balance)
		VALUES ($1, $2, $3, 0)
		RETURNING `+accountColumns, m.UserID, m.CurrencyID, m.Name)
	if err != nil {
		return nil, fmt.Errorf("failed to insert account: %w", err)
	}
	saved, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.Account])
	if err != nil {
		if isForeignKeyViolation(err) {
			return nil, fmt.Errorf("%w: currency %d or user %d does not exist", apperrors.ErrInvalidReference, m.CurrencyID, m.UserID)
		}
		return nil, fmt.Errorf("failed to insert account: %w", err)
	}
	acc := mapping.ToDomainAccount(saved)
	return &acc, nil
}

// InsertAccount persists a new zero-balance account.
func (r *PgxAccountRepository) InsertAccount(ctx context.Context, account domain.Account) (*domain.Account, error) {
	return insertAccount(ctx, r.Pool, account)
}

// InsertAccountInTx persists a new zero-balance account within tx.
func (r *PgxAccountRepository) InsertAccountInTx(ctx context.Context, tx pgx.Tx, account domain.Account) (*domain.Account, error) {
	return insertAccount(ctx, tx, account)
}

// DeleteAccountInTx deletes an owned account.
func (r *PgxAccountRepository) DeleteAccountInTx(ctx context.Context, tx pgx.Tx, userID int64, accountID int64) error {
	ct, err := tx.Exec(ctx, `DELETE FROM accounts WHERE id = $1 AND user_id = $2`, accountID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete account %d: %w", accountID, err)
	}
	if ct.RowsAffected() == 0 {
		return fmt.Errorf("%w: account %d", apperrors.ErrNotFound, accountID)
	}
	return nil
}

// FindAccountByIDForUpdate selects an owned account and locks its row.
func (r *PgxAccountRepository) FindAccountByIDForUpdate(ctx context.Context, tx pgx.Tx, userID int64, accountID int64) (*domain.Account, error) {
	rows, err := tx.Query(ctx, `
		SELECT `+accountColumns+`
		FROM accounts a
		WHERE a.id = $1 AND a.user_id = $2
		FOR UPDATE`, accountID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to lock account %d: %w", accountID, err)
	}
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.Account])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: account %d", apperrors.ErrNotFound, accountID)
		}
		return nil, fmt.Errorf("failed to scan account %d: %w", accountID, err)
	}
	acc := mapping.ToDomainAccount(m)
	return &acc, nil
}

// AdjustBalancesInTx applies each delta with one atomic increment per account.
func (r *PgxAccountRepository) AdjustBalancesInTx(ctx context.Context, tx pgx.Tx, balanceChanges map[int64]decimal.Decimal) error {
	if len(balanceChanges) == 0 {
		return nil
	}

	query := `
		UPDATE accounts
		SET balance = COALESCE(balance, 0) + $2
		WHERE id = $1;
	`

	batch := &pgx.Batch{}
	accountIDs := make([]int64, 0, len(balanceChanges))
	for accountID, delta := range balanceChanges {
		if !delta.IsZero() {
			batch.Queue(query, accountID, delta)
			accountIDs = append(accountIDs, accountID)
		}
	}

	if batch.Len() == 0 {
		return nil
	}

	br := tx.SendBatch(ctx, batch)
	var batchErr error
	for i := 0; i < batch.Len(); i++ {
		ct, err := br.Exec()
		if err != nil {
			if batchErr == nil {
				batchErr = fmt.Errorf("failed to update balance for account %d: %w", accountIDs[i], err)
			}
		} else if ct.RowsAffected() == 0 {
			if batchErr == nil {
				batchErr = fmt.Errorf("%w: account %d not found during balance update", apperrors.ErrNotFound, accountIDs[i])
			}
		}
	}

	if err := br.Close(); err != nil && batchErr == nil {
		batchErr = fmt.Errorf("failed to close balance update batch: %w", err)
	}
	return batchErr
}
