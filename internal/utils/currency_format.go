package utils

import (
	"github.com/Rhymond/go-money"
	"github.com/SscSPs/budget_tracker_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ToMinorUnits converts an amount with 2 fractional digits to integer minor units (cents, kopiykas).
func ToMinorUnits(amount decimal.Decimal) int64 {
	return amount.Round(domain.AmountScale).Shift(domain.AmountScale).IntPart()
}

// FormatAmount renders an amount with the currency's symbol and separators,
// e.g. -50.00 USD -> "-$50.00".
func FormatAmount(amount decimal.Decimal, code domain.CurrencyCode) string {
	return money.New(ToMinorUnits(amount), string(code)).Display()
}

// FormatWithPrecision formats an amount with the given number of fractional digits.
func FormatWithPrecision(amount decimal.Decimal, precision int) string {
	return amount.StringFixed(int32(precision))
}
