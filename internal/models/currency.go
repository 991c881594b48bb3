package models

// Currency is a row of the currency catalog.
type Currency struct {
	CurrencyID int64  `db:"id"`
	Code       string `db:"code"`
	Name       string `db:"name"`
	Symbol     string `db:"symbol"`
}
