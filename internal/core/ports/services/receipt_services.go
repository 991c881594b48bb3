package services

import (
	"context"

	"github.com/SscSPs/budget_tracker_app/internal/core/domain"
	"github.com/SscSPs/budget_tracker_app/internal/dto"
)

// ReceiptSvcFacade defines operations on receipt metadata
type ReceiptSvcFacade interface {
	// CreateReceipt stores receipt metadata, optionally linked to an owned transaction.
	CreateReceipt(ctx context.Context, userID int64, req dto.CreateReceiptRequest) (*domain.Receipt, error)

	// ListReceipts returns the user's receipts newest first.
	ListReceipts(ctx context.Context, userID int64) ([]domain.Receipt, error)
}
