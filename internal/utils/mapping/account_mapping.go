package mapping

import (
	"github.com/SscSPs/budget_tracker_app/internal/core/domain"
	"github.com/SscSPs/budget_tracker_app/internal/models"
)

// ToModelAccount converts a domain Account to a model Account
func ToModelAccount(d domain.Account) models.Account {
	return models.Account{
		AccountID:  d.AccountID,
		UserID:     d.UserID,
		CurrencyID: d.CurrencyID,
		Name:       d.Name,
		Balance:    d.Balance,
		CreatedAt:  d.CreatedAt,
	}
}

// ToDomainAccount converts a model Account to a domain Account
func ToDomainAccount(m models.Account) domain.Account {
	return domain.Account{
		AccountID:  m.AccountID,
		UserID:     m.UserID,
		CurrencyID: m.CurrencyID,
		Name:       m.Name,
		Balance:    m.Balance,
		CreatedAt:  m.CreatedAt,
	}
}

// ToDomainAccountWithCurrency converts a joined account row, populating Currency.
func ToDomainAccountWithCurrency(m models.AccountWithCurrency) domain.Account {
	d := ToDomainAccount(m.Account)
	d.Currency = &domain.Currency{
		CurrencyID: m.CurrencyID,
		Code:       domain.CurrencyCode(m.CurrencyCode),
		Name:       m.CurrencyName,
		Symbol:     m.CurrencySymbol,
	}
	return d
}

// ToDomainAccountWithCurrencySlice converts a slice of joined account rows
func ToDomainAccountWithCurrencySlice(ms []models.AccountWithCurrency) []domain.Account {
	ds := make([]domain.Account, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainAccountWithCurrency(m)
	}
	return ds
}
