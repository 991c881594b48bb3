package dto

import (
	"time"

	"github.com/SscSPs/budget_tracker_app/internal/core/domain"
	"github.com/SscSPs/budget_tracker_app/internal/utils"
)

// CreateAccountRequest defines the data needed to create a new account.
type CreateAccountRequest struct {
	Name           string `json:"name" binding:"required,max=100"`
	CurrencyCodeID int64  `json:"currency_code_id" binding:"required,gt=0"`
}

// AccountResponse defines the data returned for an account.
type AccountResponse struct {
	AccountID        int64             `json:"id"`
	Name             string            `json:"name"`
	Balance          string            `json:"balance"`
	FormattedBalance string            `json:"formatted_balance,omitempty"` // e.g. "$1,234.56"
	CurrencyID       int64             `json:"currency_id"`
	Currency         *CurrencyResponse `json:"currency,omitempty"`
	CreatedAt        time.Time         `json:"created_at"`
}

// ToAccountResponse converts a domain.Account to AccountResponse DTO
func ToAccountResponse(acc *domain.Account) AccountResponse {
	res := AccountResponse{
		AccountID:  acc.AccountID,
		Name:       acc.Name,
		Balance:    utils.FormatWithPrecision(acc.Balance, domain.AmountScale),
		CurrencyID: acc.CurrencyID,
		CreatedAt:  acc.CreatedAt,
	}
	if acc.Currency != nil {
		currency := ToCurrencyResponse(*acc.Currency)
		res.Currency = &currency
		res.FormattedBalance = utils.FormatAmount(acc.Balance, acc.Currency.Code)
	}
	return res
}

// ToListAccountResponse converts a slice of domain.Account to a slice of AccountResponse DTOs
func ToListAccountResponse(accounts []domain.Account) []AccountResponse {
	res := make([]AccountResponse, len(accounts))
	for i := range accounts {
		res[i] = ToAccountResponse(&accounts[i])
	}
	return res
}
