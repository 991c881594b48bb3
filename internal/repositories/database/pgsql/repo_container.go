package pgsql

import (
	portsrepo "github.com/SscSPs/budget_tracker_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider builds every repository over one shared pool.
func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		TxManager:       &BaseRepository{Pool: dbPool},
		UserRepo:        newPgxUserRepository(dbPool),
		CurrencyRepo:    newPgxCurrencyRepository(dbPool),
		CategoryRepo:    newPgxCategoryRepository(dbPool),
		AccountRepo:     newPgxAccountRepository(dbPool),
		TransactionRepo: newPgxTransactionRepository(dbPool),
		ReceiptRepo:     newPgxReceiptRepository(dbPool),
	}
}
