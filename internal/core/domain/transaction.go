package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType indicates whether a transaction adds to or takes from its account.
type TransactionType string

const (
	Income  TransactionType = "income"
	Expense TransactionType = "expense"
)

// IsValid reports whether t is a known transaction type.
func (t TransactionType) IsValid() bool {
	return t == Income || t == Expense
}

// SourceType records where a transaction came from.
type SourceType string

const (
	SourceManual SourceType = "manual"
	SourceBank   SourceType = "bank"
	SourceML     SourceType = "ml"
)

// IsValid reports whether s is a known source.
func (s SourceType) IsValid() bool {
	switch s {
	case SourceManual, SourceBank, SourceML:
		return true
	}
	return false
}

// AmountScale is the number of fractional digits stored for amounts and balances.
const AmountScale = 2

// maxAmount is the exclusive upper bound of a NUMERIC(12,2) column.
var maxAmount = decimal.New(1, 10)

var (
	ErrAmountNotPositive = errors.New("amount must be positive")
	ErrAmountPrecision   = errors.New("amount must have at most 2 fractional digits")
	ErrAmountTooLarge    = errors.New("amount exceeds 10 integer digits")
	ErrInvalidType       = errors.New("transaction type must be income or expense")
	ErrInvalidSource     = errors.New("transaction source must be manual, bank or ml")
)

// Transaction is a single income or expense event affecting exactly one account.
type Transaction struct {
	TransactionID int64           `json:"id"`
	UserID        int64           `json:"userID"`
	AccountID     int64           `json:"accountID"`
	CategoryID    int64           `json:"categoryID"`
	Amount        decimal.Decimal `json:"amount"` // Always positive
	Type          TransactionType `json:"type"`
	Source        SourceType      `json:"source"`
	Description   string          `json:"description"`
	CreatedAt     time.Time       `json:"createdAt"`
	Category      *Category       `json:"category,omitempty"` // Populated by joined reads
}

// Effect returns the signed contribution of an amount to its account balance:
// +amount for income, -amount for expense.
func Effect(amount decimal.Decimal, t TransactionType) decimal.Decimal {
	if t == Income {
		return amount
	}
	return amount.Neg()
}

// Effect returns the signed contribution of the transaction to its account balance.
func (t Transaction) Effect() decimal.Decimal {
	return Effect(t.Amount, t.Type)
}

// ValidateAmount checks that an amount fits a positive NUMERIC(12,2).
func ValidateAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return ErrAmountNotPositive
	}
	if !amount.Equal(amount.Truncate(AmountScale)) {
		return ErrAmountPrecision
	}
	if amount.GreaterThanOrEqual(maxAmount) {
		return ErrAmountTooLarge
	}
	return nil
}

// Validate checks the mutable fields of the transaction.
func (t Transaction) Validate() error {
	if err := ValidateAmount(t.Amount); err != nil {
		return fmt.Errorf("invalid amount %s: %w", t.Amount.String(), err)
	}
	if !t.Type.IsValid() {
		return fmt.Errorf("%w: got %q", ErrInvalidType, t.Type)
	}
	if !t.Source.IsValid() {
		return fmt.Errorf("%w: got %q", ErrInvalidSource, t.Source)
	}
	return nil
}
