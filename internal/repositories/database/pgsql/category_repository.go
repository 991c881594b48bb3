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

const categoryColumns = `id, name, icon, type, user_id`

type PgxCategoryRepository struct {
	BaseRepository
}

func newPgxCategoryRepository(pool *pgxpool.Pool) *PgxCategoryRepository {
	return &PgxCategoryRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.CategoryRepositoryFacade = (*PgxCategoryRepository)(nil)

// FindCategoryByID retrieves a category regardless of owner.
func (r *PgxCategoryRepository) FindCategoryByID(ctx context.Context, categoryID int64) (*domain.Category, error) {
	rows, err := r.Pool.Query(ctx, `SELECT `+categoryColumns+` FROM categories WHERE id = $1`, categoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to query category %d: %w", categoryID, err)
	}
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.Category])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan category %d: %w", categoryID, err)
	}
	c := mapping.ToDomainCategory(m)
	return &c, nil
}

// ListCategoriesForUser returns shared categories and those owned by userID.
func (r *PgxCategoryRepository) ListCategoriesForUser(ctx context.Context, userID int64, categoryType *domain.CategoryType) ([]domain.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE (user_id IS NULL OR user_id = $1)`
	args := []any{userID}
	if categoryType != nil {
		query += ` AND type = $2`
		args = append(args, string(*categoryType))
	}
	query += ` ORDER BY name, id`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Category])
	if err != nil {
		return nil, fmt.Errorf("failed to scan categories: %w", err)
	}
	return mapping.ToDomainCategorySlice(ms), nil
}

// SaveCategory inserts a user-owned category.
func (r *PgxCategoryRepository) SaveCategory(ctx context.Context, category domain.Category) (*domain.Category, error) {
	m := mapping.ToModelCategory(category)
	rows, err := r.Pool.Query(ctx, `
		INSERT INTO categories (name, icon, type, user_id)
		VALUES ($1, $2, $3, $4)
		RETURNING `+categoryColumns, m.Name, m.Icon, m.Type, m.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to insert category: %w", err)
	}
	saved, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.Category])
	if err != nil {
		if isForeignKeyViolation(err) {
			return nil, fmt.Errorf("%w: owner does not exist", apperrors.ErrInvalidReference)
		}
		return nil, fmt.Errorf("failed to insert category: %w", err)
	}
	c := mapping.ToDomainCategory(saved)
	return &c, nil
}

// UpsertSharedCategories matches shared categories by name, inserting the absent ones
// and correcting drifted icons. Unchanged rows return nothing from the upsert.
func (r *PgxCategoryRepository) UpsertSharedCategories(ctx context.Context, categories []domain.Category) (int, int, error) {
	if len(categories) == 0 {
		return 0, 0, nil
	}
	query := `
		INSERT INTO categories (name, icon, type, user_id)
		VALUES ($1, $2, $3, NULL)
		ON CONFLICT (name) WHERE user_id IS NULL
		DO UPDATE SET icon = EXCLUDED.icon
		WHERE categories.icon IS DISTINCT FROM EXCLUDED.icon
		RETURNING (xmax = 0) AS inserted;
	`
	batch := &pgx.Batch{}
	for _, c := range categories {
		batch.Queue(query, c.Name, c.Icon, string(c.Type))
	}

	tx, err := r.Begin(ctx)
	if err != nil {
		return 0, 0, err
	}
	defer r.Rollback(ctx, tx)

	br := tx.SendBatch(ctx, batch)
	inserted, updated := 0, 0
	var batchErr error
	for i := 0; i < batch.Len(); i++ {
		var wasInserted bool
		err := br.QueryRow().Scan(&wasInserted)
		switch {
		case errors.Is(err, pgx.ErrNoRows):
			// icon already matches
		case err != nil:
			if batchErr == nil {
				batchErr = fmt.Errorf("failed to upsert category %q: %w", categories[i].Name, err)
			}
		case wasInserted:
			inserted++
		default:
			updated++
		}
	}
	if err := br.Close(); err != nil && batchErr == nil {
		batchErr = fmt.Errorf("failed to close category batch: %w", err)
	}
	if batchErr != nil {
		return 0, 0, batchErr
	}
	if err := r.Commit(ctx, tx); err != nil {
		return 0, 0, err
	}
	return inserted, updated, nil
}
