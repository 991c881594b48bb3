package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DefaultAccountName is the name of the account created at registration.
const DefaultAccountName = "Main Account"

// DefaultAccountCurrency is the currency of the account created at registration.
const DefaultAccountCurrency = UAH

// Account is a named, currency-denominated balance bucket owned by a user.
// Balance always equals the sum of the effects of the transactions bound to it.
type Account struct {
	AccountID  int64           `json:"id"`
	UserID     int64           `json:"userID"`
	CurrencyID int64           `json:"currencyID"`
	Name       string          `json:"name"`
	Balance    decimal.Decimal `json:"balance"`
	CreatedAt  time.Time       `json:"createdAt"`
	Currency   *Currency       `json:"currency,omitempty"` // Populated by joined reads
}
