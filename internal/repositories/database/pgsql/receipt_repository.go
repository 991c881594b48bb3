package pgsql

import (
	"context"
	"fmt"

	"github.com/SscSPs/budget_tracker_app/internal/apperrors"
	"github.com/SscSPs/budget_tracker_app/internal/core/domain"
	portsrepo "github.com/SscSPs/budget_tracker_app/internal/core/ports/repositories"
	"github.com/SscSPs/budget_tracker_app/internal/models"
	"github.com/SscSPs/budget_tracker_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const receiptColumns = `id, user_id, transaction_id, image_url, raw_ocr_output, is_verified, created_at`

type PgxReceiptRepository struct {
	BaseRepository
}

func newPgxReceiptRepository(pool *pgxpool.Pool) *PgxReceiptRepository {
	return &PgxReceiptRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ReceiptRepositoryFacade = (*PgxReceiptRepository)(nil)

// SaveReceipt inserts receipt metadata.
func (r *PgxReceiptRepository) SaveReceipt(ctx context.Context, receipt domain.Receipt) (*domain.Receipt, error) {
	m := mapping.ToModelReceipt(receipt)
	var rawOCR any
	if len(m.RawOCROutput) > 0 {
		rawOCR = string(m.RawOCROutput)
	}
	rows, err := r.Pool.Query(ctx, `
		INSERT INTO receipts (user_id, transaction_id, image_url, raw_ocr_output, is_verified)
		VALUES ($1, $2, $3, $4::jsonb, $5)
		RETURNING `+receiptColumns, m.UserID, m.TransactionID, m.ImageURL, rawOCR, m.IsVerified)
	if err != nil {
		return nil, fmt.Errorf("failed to insert receipt: %w", err)
	}
	saved, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.Receipt])
	if err != nil {
		if isForeignKeyViolation(err) {
			return nil, fmt.Errorf("%w: transaction does not exist", apperrors.ErrInvalidReference)
		}
		return nil, fmt.Errorf("failed to insert receipt: %w", err)
	}
	result := mapping.ToDomainReceipt(saved)
	return &result, nil
}

// ListReceiptsByUser returns a user's receipts newest first.
func (r *PgxReceiptRepository) ListReceiptsByUser(ctx context.Context, userID int64) ([]domain.Receipt, error) {
	rows, err := r.Pool.Query(ctx, `SELECT `+receiptColumns+` FROM receipts WHERE user_id = $1 ORDER BY created_at DESC, id DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list receipts for user %d: %w", userID, err)
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Receipt])
	if err != nil {
		return nil, fmt.Errorf("failed to scan receipts: %w", err)
	}
	return mapping.ToDomainReceiptSlice(ms), nil
}
