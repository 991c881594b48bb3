package dto

import "github.com/SscSPs/budget_tracker_app/internal/core/domain"

// CurrencyResponse defines the data returned for a currency.
type CurrencyResponse struct {
	CurrencyID int64  `json:"id"`
	Code       string `json:"code"`
	Name       string `json:"name"`
	Symbol     string `json:"symbol"`
}

// ToCurrencyResponse converts a domain.Currency to CurrencyResponse DTO
func ToCurrencyResponse(c domain.Currency) CurrencyResponse {
	return CurrencyResponse{
		CurrencyID: c.CurrencyID,
		Code:       string(c.Code),
		Name:       c.Name,
		Symbol:     c.Symbol,
	}
}

// ToListCurrencyResponse converts a slice of domain.Currency
func ToListCurrencyResponse(currencies []domain.Currency) []CurrencyResponse {
	res := make([]CurrencyResponse, len(currencies))
	for i, c := range currencies {
		res[i] = ToCurrencyResponse(c)
	}
	return res
}
