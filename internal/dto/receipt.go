package dto

import (
	"encoding/json"
	"time"

	"github.com/SscSPs/budget_tracker_app/internal/core/domain"
)

// CreateReceiptRequest defines the metadata of a scanned receipt.
type CreateReceiptRequest struct {
	TransactionID *int64          `json:"transaction_id" binding:"omitempty,gt=0"`
	ImageURL      *string         `json:"image_url" binding:"omitempty,url"`
	RawOCROutput  json.RawMessage `json:"raw_ocr_output"`
}

// ReceiptResponse defines the data returned for a receipt.
type ReceiptResponse struct {
	ReceiptID     int64           `json:"id"`
	TransactionID *int64          `json:"transaction_id,omitempty"`
	ImageURL      *string         `json:"image_url,omitempty"`
	RawOCROutput  json.RawMessage `json:"raw_ocr_output,omitempty"`
	IsVerified    bool            `json:"is_verified"`
	CreatedAt     time.Time       `json:"created_at"`
}

// ToReceiptResponse converts a domain.Receipt to ReceiptResponse DTO
func ToReceiptResponse(r domain.Receipt) ReceiptResponse {
	return ReceiptResponse{
		ReceiptID:     r.ReceiptID,
		TransactionID: r.TransactionID,
		ImageURL:      r.ImageURL,
		RawOCROutput:  r.RawOCROutput,
		IsVerified:    r.IsVerified,
		CreatedAt:     r.CreatedAt,
	}
}

// ToListReceiptResponse converts a slice of domain.Receipt
func ToListReceiptResponse(receipts []domain.Receipt) []ReceiptResponse {
	res := make([]ReceiptResponse, len(receipts))
	for i, r := range receipts {
		res[i] = ToReceiptResponse(r)
	}
	return res
}
