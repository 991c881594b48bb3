package domain

// CurrencyCode is the ISO 4217 code of a catalog currency.
type CurrencyCode string

const (
	USD CurrencyCode = "USD"
	EUR CurrencyCode = "EUR"
	UAH CurrencyCode = "UAH"
	GBP CurrencyCode = "GBP"
)

// IsValid reports whether the code belongs to the fixed catalog.
func (c CurrencyCode) IsValid() bool {
	switch c {
	case USD, EUR, UAH, GBP:
		return true
	}
	return false
}

// Currency represents a catalog currency. Rows are immutable once seeded.
type Currency struct {
	CurrencyID int64        `json:"id"`
	Code       CurrencyCode `json:"code"`
	Name       string       `json:"name"`
	Symbol     string       `json:"symbol"`
}

// CurrencyCatalog is the fixed set of currencies seeded on startup.
var CurrencyCatalog = []Currency{
	{Code: USD, Name: "US Dollar", Symbol: "$"},
	{Code: EUR, Name: "Euro", Symbol: "€"},
	{Code: UAH, Name: "Ukrainian Hryvnia", Symbol: "₴"},
	{Code: GBP, Name: "British Pound", Symbol: "£"},
}
