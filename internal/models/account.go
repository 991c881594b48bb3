package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Account is a row of the accounts table.
type Account struct {
	AccountID  int64           `db:"id"`
	UserID     int64           `db:"user_id"`
	CurrencyID int64           `db:"currency_id"`
	Name       string          `db:"name"`
	Balance    decimal.Decimal `db:"balance"`
	CreatedAt  time.Time       `db:"created_at"`
}

// AccountWithCurrency is an account row joined with its currency.
type AccountWithCurrency struct {
	Account
	CurrencyCode   string `db:"currency_code"`
	CurrencyName   string `db:"currency_name"`
	CurrencySymbol string `db:"currency_symbol"`
}
