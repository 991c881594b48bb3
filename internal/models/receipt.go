package models

import "time"

// Receipt is a row of the receipts table.
type Receipt struct {
	ReceiptID     int64     `db:"id"`
	UserID        int64     `db:"user_id"`
	TransactionID *int64    `db:"transaction_id"`
	ImageURL      *string   `db:"image_url"`
	RawOCROutput  []byte    `db:"raw_ocr_output"`
	IsVerified    bool      `db:"is_verified"`
	CreatedAt     time.Time `db:"created_at"`
}
