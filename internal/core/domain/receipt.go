package domain

import (
	"encoding/json"
	"time"
)

// Receipt stores scanned receipt metadata. It never affects balances.
type Receipt struct {
	ReceiptID     int64           `json:"id"`
	UserID        int64           `json:"userID"`
	TransactionID *int64          `json:"transactionID,omitempty"`
	ImageURL      *string         `json:"imageURL,omitempty"`
	RawOCROutput  json.RawMessage `json:"rawOCROutput,omitempty"`
	IsVerified    bool            `json:"isVerified"`
	CreatedAt     time.Time       `json:"createdAt"`
}
