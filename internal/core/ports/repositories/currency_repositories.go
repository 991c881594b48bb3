package repositories

import (
	"context"

	"github.com/SscSPs/budget_tracker_app/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// CurrencyReader defines read operations for the currency catalog
type CurrencyReader interface {
	// FindCurrencyByID retrieves a currency by ID.
	FindCurrencyByID(ctx context.Context, currencyID int64) (*domain.Currency, error)

	// FindCurrencyByCodeInTx retrieves a currency by code inside an open transaction.
	FindCurrencyByCodeInTx(ctx context.Context, tx pgx.Tx, code domain.CurrencyCode) (*domain.Currency, error)

	// ListCurrencies returns the whole catalog ordered by code.
	ListCurrencies(ctx context.Context) ([]domain.Currency, error)
}

// CurrencyWriter defines write operations for the currency catalog
type CurrencyWriter interface {
	// InsertMissingCurrencies inserts the currencies whose code is absent and returns how many were added.
	// Existing rows are never modified.
	InsertMissingCurrencies(ctx context.Context, currencies []domain.Currency) (int, error)
}

// CurrencyRepositoryFacade combines all currency-related repository interfaces
type CurrencyRepositoryFacade interface {
	CurrencyReader
	CurrencyWriter
}
