package repositories

import (
	"context"

	"github.com/SscSPs/budget_tracker_app/internal/core/domain"
)

// ReceiptRepositoryFacade defines the receipt store
type ReceiptRepositoryFacade interface {
	// SaveReceipt persists a receipt and returns it with its ID.
	SaveReceipt(ctx context.Context, receipt domain.Receipt) (*domain.Receipt, error)

	// ListReceiptsByUser returns the user's receipts newest first.
	ListReceiptsByUser(ctx context.Context, userID int64) ([]domain.Receipt, error)
}
