package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is a row of the transactions table.
type Transaction struct {
	TransactionID int64           `db:"id"`
	UserID        int64           `db:"user_id"`
	AccountID     int64           `db:"account_id"`
	CategoryID    int64           `db:"category_id"`
	Amount        decimal.Decimal `db:"amount"`
	Type          string          `db:"type"`
	Source        string          `db:"source"`
	Description   *string         `db:"description"`
	CreatedAt     time.Time       `db:"created_at"`
}

// TransactionWithCategory is a transaction row joined with its category.
type TransactionWithCategory struct {
	Transaction
	CategoryName   string `db:"category_name"`
	CategoryIcon   string `db:"category_icon"`
	CategoryType   string `db:"category_type"`
	CategoryUserID *int64 `db:"category_user_id"`
}
