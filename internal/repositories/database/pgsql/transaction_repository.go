package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/SscSPs/budget_tracker_app/internal/apperrors"
	"github.com/SscSPs/budget_tracker_app/internal/core/domain"
	portsrepo "github.com/SscSPs/budget_tracker_app/internal/core/ports/repositories"
	"github.com/SscSPs/budget_tracker_app/internal/models"
	"github.com/SscSPs/budget_tracker_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	transactionColumns = `t.id, t.user_id, t.account_id, t.category_id, t.amount, t.type, t.source, t.description, t.created_at`

	transactionWithCategorySelect = `
		SELECT ` + transactionColumns + `,
		       c.name AS category_name, c.icon AS category_icon, c.type AS category_type, c.user_id AS category_user_id
		FROM transactions t
		JOIN categories c ON c.id = t.category_id`
)

type PgxTransactionRepository struct {
	BaseRepository
}

func newPgxTransactionRepository(pool *pgxpool.Pool) *PgxTransactionRepository {
	return &PgxTransactionRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.TransactionRepositoryWithTx = (*PgxTransactionRepository)(nil)

// FindTransactionByID retrieves an owned transaction with its category.
func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, userID int64, transactionID int64) (*domain.Transaction, error) {
	rows, err := r.Pool.Query(ctx, transactionWithCategorySelect+` WHERE t.id = $1 AND t.user_id = $2`, transactionID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query transaction %d: %w", transactionID, err)
	}
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.TransactionWithCategory])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: transaction %d", apperrors.ErrNotFound, transactionID)
		}
		return nil, fmt.Errorf("failed to scan transaction %d: %w", transactionID, err)
	}
	txn := mapping.ToDomainTransactionWithCategory(m)
	return &txn, nil
}

// ListTransactions returns a page of a user's transactions newest first.
// The month/year filter compares the calendar date of created_at in loc.
func (r *PgxTransactionRepository) ListTransactions(ctx context.Context, userID int64, filter domain.TransactionFilter, loc *time.Location, page domain.PageRequest) ([]domain.Transaction, error) {
	if loc == nil {
		loc = time.UTC
	}
	query := transactionWithCategorySelect + ` WHERE t.user_id = $1`
	args := []any{userID}

	if filter.Month != nil {
		args = append(args, loc.String(), *filter.Month)
		query += fmt.Sprintf(` AND EXTRACT(MONTH FROM t.created_at AT TIME ZONE $%d) = $%d`, len(args)-1, len(args))
	}
	if filter.Year != nil {
		args = append(args, loc.String(), *filter.Year)
		query += fmt.Sprintf(` AND EXTRACT(YEAR FROM t.created_at AT TIME ZONE $%d) = $%d`, len(args)-1, len(args))
	}

	args = append(args, page.Limit, page.Offset)
	query += fmt.Sprintf(` ORDER BY t.created_at DESC, t.id DESC LIMIT $%d OFFSET $%d`, len(args)-1, len(args))

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions for user %d: %w", userID, err)
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.TransactionWithCategory])
	if err != nil {
		return nil, fmt.Errorf("failed to scan transactions: %w", err)
	}
	return mapping.ToDomainTransactionWithCategorySlice(ms), nil
}

// FindTransactionByIDForUpdate selects an owned transaction and locks its row.
func (r *PgxTransactionRepository) FindTransactionByIDForUpdate(ctx context.Context, tx pgx.Tx, userID int64, transactionID int64) (*domain.Transaction, error) {
	rows, err := tx.Query(ctx, `
		SELECT `+transactionColumns+`
		FROM transactions t
		WHERE t.id = $1 AND t.user_id = $2
		FOR UPDATE`, transactionID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to lock transaction %d: %w", transactionID, err)
	}
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.Transaction])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: transaction %d", apperrors.ErrNotFound, transactionID)
		}
		return nil, fmt.Errorf("failed to scan transaction %d: %w", transactionID, err)
	}
	txn := mapping.ToDomainTransaction(m)
	return &txn, nil
}

// InsertTransactionInTx inserts a transaction row.
func (r *PgxTransactionRepository) InsertTransactionInTx(ctx context.Context, tx pgx.Tx, txn domain.Transaction) (*domain.Transaction, error) {
	m := mapping.ToModelTransaction(txn)
	rows, err := tx.Query(ctx, `
		INSERT INTO transactions AS t (user_id, account_id, category_id, amount, type, source, description)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING `+transactionColumns,
		m.UserID, m.AccountID, m.CategoryID, m.Amount, m.Type, m.Source, m.Description)
	if err != nil {
		return nil, fmt.Errorf("failed to insert transaction: %w", err)
	}
	saved, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.Transaction])
	if err != nil {
		if isForeignKeyViolation(err) {
			return nil, fmt.Errorf("%w: account or category does not exist", apperrors.ErrInvalidReference)
		}
		return nil, fmt.Errorf("failed to insert transaction: %w", err)
	}
	result := mapping.ToDomainTransaction(saved)
	return &result, nil
}

// UpdateTransactionInTx overwrites account, category, amount, type, source and description.
func (r *PgxTransactionRepository) UpdateTransactionInTx(ctx context.Context, tx pgx.Tx, txn domain.Transaction) error {
	m := mapping.ToModelTransaction(txn)
	ct, err := tx.Exec(ctx, `
		UPDATE transactions
		SET account_id = $3, category_id = $4, amount = $5, type = $6, source = $7, description = $8
		WHERE id = $1 AND user_id = $2`,
		m.TransactionID, m.UserID, m.AccountID, m.CategoryID, m.Amount, m.Type, m.Source, m.Description)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: account or category does not exist", apperrors.ErrInvalidReference)
		}
		return fmt.Errorf("failed to update transaction %d: %w", txn.TransactionID, err)
	}
	if ct.RowsAffected() == 0 {
		return fmt.Errorf("%w: transaction %d", apperrors.ErrNotFound, txn.TransactionID)
	}
	return nil
}

// DeleteTransactionInTx removes an owned transaction.
func (r *PgxTransactionRepository) DeleteTransactionInTx(ctx context.Context, tx pgx.Tx, userID int64, transactionID int64) error {
	ct, err := tx.Exec(ctx, `DELETE FROM transactions WHERE id = $1 AND user_id = $2`, transactionID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete transaction %d: %w", transactionID, err)
	}
	if ct.RowsAffected() == 0 {
		return fmt.Errorf("%w: transaction %d", apperrors.ErrNotFound, transactionID)
	}
	return nil
}

// DeleteTransactionsByAccountInTx removes every transaction of an account.
func (r *PgxTransactionRepository) DeleteTransactionsByAccountInTx(ctx context.Context, tx pgx.Tx, accountID int64) (int64, error) {
	ct, err := tx.Exec(ctx, `DELETE FROM transactions WHERE account_id = $1`, accountID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete transactions of account %d: %w", accountID, err)
	}
	return ct.RowsAffected(), nil
}
