package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/budget_tracker_app/internal/core/domain"
	"github.com/SscSPs/budget_tracker_app/internal/core/services"
	"github.com/SscSPs/budget_tracker_app/internal/dto"
	"github.com/SscSPs/budget_tracker_app/internal/utils/accounting"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key"

type harness struct {
	store      *fakeStore
	auth       *services.AuthService
	users      *services.UserService
	accounts   *services.AccountService
	txns       *services.TransactionService
	categories *services.CategoryService
	currencies *services.CurrencyService
	receipts   *services.ReceiptService
	seeder     *services.SeederService
}

func newHarness(txnOpts ...services.TransactionServiceOption) *harness {
	store := newFakeStore()
	auth := services.NewAuthService(testSecret, time.Hour, "budget-tracker-test")
	return &harness{
		store:      store,
		auth:       auth,
		users:      services.NewUserService(store, store, store, store, auth),
		accounts:   services.NewAccountService(store, store, store, store),
		txns:       services.NewTransactionService(store, store, store, store, txnOpts...),
		categories: services.NewCategoryService(store),
		currencies: services.NewCurrencyService(store),
		receipts:   services.NewReceiptService(store, store),
		seeder:     services.NewSeederService(store, store),
	}
}

// seededHarness returns a harness whose catalogs are populated.
func seededHarness(t *testing.T, txnOpts ...services.TransactionServiceOption) *harness {
	t.Helper()
	h := newHarness(txnOpts...)
	_, err := h.seeder.SeedReferenceData(context.Background())
	require.NoError(t, err)
	return h
}

// register creates a user and returns it with its default account.
func (h *harness) register(t *testing.T, email string) (*domain.User, domain.Account) {
	t.Helper()
	ctx := context.Background()
	user, err := h.users.RegisterUser(ctx, dto.RegisterRequest{Email: email, Password: "p"})
	require.NoError(t, err)
	accounts, err := h.accounts.ListAccounts(ctx, user.UserID)
	require.NoError(t, err)
	require.Len(t, accounts, 1)
	return user, accounts[0]
}

func (h *harness) balance(t *testing.T, userID, accountID int64) string {
	t.Helper()
	acc, err := h.accounts.GetAccountByID(context.Background(), userID, accountID)
	require.NoError(t, err)
	return acc.Balance.StringFixed(domain.AmountScale)
}

// assertLedgerConsistent checks that every balance equals the sum of its transactions' effects.
func (h *harness) assertLedgerConsistent(t *testing.T) {
	t.Helper()
	sums := accounting.SumEffects(h.store.allTransactions())
	for _, acc := range h.store.allAccounts() {
		assert.Truef(t, acc.Balance.Equal(sums[acc.AccountID]),
			"account %d: balance %s, sum of effects %s", acc.AccountID, acc.Balance, sums[acc.AccountID])
	}
}

func txnRequest(accountID, categoryID int64, amount string, typ domain.TransactionType) dto.TransactionRequest {
	return dto.TransactionRequest{
		Amount:     decimal.RequireFromString(amount),
		AccountID:  accountID,
		CategoryID: categoryID,
		Type:       typ,
	}
}
