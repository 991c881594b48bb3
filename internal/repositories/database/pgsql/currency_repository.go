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
)

type PgxCurrencyRepository struct {
	BaseRepository
}

func newPgxCurrencyRepository(pool *pgxpool.Pool) *PgxCurrencyRepository {
	return &PgxCurrencyRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.CurrencyRepositoryFacade = (*PgxCurrencyRepository)(nil)

func findCurrency(ctx context.Context, q querier, where string, arg any) (*domain.Currency, error) {
	rows, err := q.Query(ctx, `SELECT id, code, name, symbol FROM currencies WHERE `+where, arg)
	if err != nil {
		return nil, fmt.Errorf("failed to query currency: %w", err)
	}
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.Currency])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan currency: %w", err)
	}
	c := mapping.ToDomainCurrency(m)
	return &c, nil
}

// FindCurrencyByID retrieves a currency by ID.
func (r *PgxCurrencyRepository) FindCurrencyByID(ctx context.Context, currencyID int64) (*domain.Currency, error) {
	return findCurrency(ctx, r.Pool, "id = $1", currencyID)
}

// FindCurrencyByCodeInTx retrieves a currency by code within tx.
func (r *PgxCurrencyRepository) FindCurrencyByCodeInTx(ctx context.Context, tx pgx.Tx, code domain.CurrencyCode) (*domain.Currency, error) {
	return findCurrency(ctx, tx, "code = $1", string(code))
}

// ListCurrencies returns every currency ordered by code.
func (r *PgxCurrencyRepository) ListCurrencies(ctx context.Context) ([]domain.Currency, error) {
	rows, err := r.Pool.Query(ctx, `SELECT id, code, name, symbol FROM currencies ORDER BY code`)
	if err != nil {
		return nil, fmt.Errorf("failed to list currencies: %w", err)
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Currency])
	if err != nil {
		return nil, fmt.Errorf("failed to scan currencies: %w", err)
	}
	return mapping.ToDomainCurrencySlice(ms), nil
}

// InsertMissingCurrencies inserts absent codes in a single batch; existing rows are left untouched.
func (r *PgxCurrencyRepository) InsertMissingCurrencies(ctx context.Context, currencies []domain.Currency) (int, error) {
	if len(currencies) == 0 {
		return 0, nil
	}
	query := `
		INSERT INTO currencies (code, name, symbol)
		VALUES ($1, $2, $3)
		ON CONFLICT (code) DO NOTHING;
	`
	batch := &pgx.Batch{}
	for _, c := range currencies {
		batch.Queue(query, string(c.Code), c.Name, c.Symbol)
	}

	tx, err := r.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer r.Rollback(ctx, tx)

	br := tx.SendBatch(ctx, batch)
	added := 0
	var batchErr error
	for i := 0; i < batch.Len(); i++ {
		ct, err := br.Exec()
		if err != nil {
			if batchErr == nil {
				batchErr = fmt.Errorf("failed to insert currency %s: %w", currencies[i].Code, err)
			}
			continue
		}
		added += int(ct.RowsAffected())
	}
	if err := br.Close(); err != nil && batchErr == nil {
		batchErr = fmt.Errorf("failed to close currency batch: %w", err)
	}
	if batchErr != nil {
		return 0, batchErr
	}
	if err := r.Commit(ctx, tx); err != nil {
		return 0, err
	}
	return added, nil
}
