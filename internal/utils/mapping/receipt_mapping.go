package mapping

import (
	"encoding/json"

	"github.com/SscSPs/budget_tracker_app/internal/core/domain"
	"github.com/SscSPs/budget_tracker_app/internal/models"
)

// ToModelReceipt converts a domain Receipt to a model Receipt
func ToModelReceipt(d domain.Receipt) models.Receipt {
	return models.Receipt{
		ReceiptID:     d.ReceiptID,
		UserID:        d.UserID,
		TransactionID: d.TransactionID,
		ImageURL:      d.ImageURL,
		RawOCROutput:  []byte(d.RawOCROutput),
		IsVerified:    d.IsVerified,
		CreatedAt:     d.CreatedAt,
	}
}

// ToDomainReceipt converts a model Receipt to a domain Receipt
func ToDomainReceipt(m models.Receipt) domain.Receipt {
	return domain.Receipt{
		ReceiptID:     m.ReceiptID,
		UserID:        m.UserID,
		TransactionID: m.TransactionID,
		ImageURL:      m.ImageURL,
		RawOCROutput:  json.RawMessage(m.RawOCROutput),
		IsVerified:    m.IsVerified,
		CreatedAt:     m.CreatedAt,
	}
}

// ToDomainReceiptSlice converts a slice of model Receipts to a slice of domain Receipts
func ToDomainReceiptSlice(ms []models.Receipt) []domain.Receipt {
	ds := make([]domain.Receipt, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainReceipt(m)
	}
	return ds
}
