package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/SscSPs/budget_tracker_app/internal/apperrors"
	"github.com/SscSPs/budget_tracker_app/internal/core/domain"
	portsrepo "github.com/SscSPs/budget_tracker_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/budget_tracker_app/internal/core/ports/services"
	"github.com/SscSPs/budget_tracker_app/internal/dto"
)

// ReceiptService stores receipt metadata. Receipts never touch balances.
type ReceiptService struct {
	BaseService
	repo    portsrepo.ReceiptRepositoryFacade
	txnRepo portsrepo.TransactionReader
}

// NewReceiptService creates a new ReceiptService.
func NewReceiptService(repo portsrepo.ReceiptRepositoryFacade, txnRepo portsrepo.TransactionReader) *ReceiptService {
	return &ReceiptService{repo: repo, txnRepo: txnRepo}
}

var _ portssvc.ReceiptSvcFacade = (*ReceiptService)(nil)

// CreateReceipt stores a receipt, optionally linked to a transaction the user owns.
func (s *ReceiptService) CreateReceipt(ctx context.Context, userID int64, req dto.CreateReceiptRequest) (*domain.Receipt, error) {
	if len(req.RawOCROutput) > 0 && !json.Valid(req.RawOCROutput) {
		return nil, fmt.Errorf("%w: raw_ocr_output must be valid JSON", apperrors.ErrValidation)
	}

	if req.TransactionID != nil {
		if _, err := s.txnRepo.FindTransactionByID(ctx, userID, *req.TransactionID); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("%w: transaction %d does not exist", apperrors.ErrInvalidReference, *req.TransactionID)
			}
			return nil, fmt.Errorf("failed to create receipt: %w", err)
		}
	}

	receipt, err := s.repo.SaveReceipt(ctx, domain.Receipt{
		UserID:        userID,
		TransactionID: req.TransactionID,
		ImageURL:      req.ImageURL,
		RawOCROutput:  req.RawOCROutput,
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to save receipt", slog.Int64("user_id", userID))
		return nil, fmt.Errorf("failed to create receipt: %w", err)
	}
	return receipt, nil
}

// ListReceipts returns the user's receipts newest first.
func (s *ReceiptService) ListReceipts(ctx context.Context, userID int64) ([]domain.Receipt, error) {
	receipts, err := s.repo.ListReceiptsByUser(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list receipts", slog.Int64("user_id", userID))
		return nil, fmt.Errorf("failed to list receipts: %w", err)
	}
	if receipts == nil {
		return []domain.Receipt{}, nil
	}
	return receipts, nil
}
