package services_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/SscSPs/budget_tracker_app/internal/apperrors"
	"github.com/SscSPs/budget_tracker_app/internal/core/domain"
	"github.com/SscSPs/budget_tracker_app/internal/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeedReferenceDataIsIdempotent(t *testing.T) {
	h := newHarness()
	ctx := context.Background()

	first, err := h.seeder.SeedReferenceData(ctx)
	require.NoError(t, err)
	assert.Equal(t, len(domain.CurrencyCatalog), first.CurrenciesAdded)
	assert.Equal(t, len(domain.DefaultCategories), first.CategoriesAdded)
	assert.Zero(t, first.CategoriesUpdated)

	second, err := h.seeder.SeedReferenceData(ctx)
	require.NoError(t, err)
	assert.False(t, second.Changed())

	currencies, err := h.currencies.ListCurrencies(ctx)
	require.NoError(t, err)
	assert.Len(t, currencies, len(domain.CurrencyCatalog))
	assert.Equal(t, domain.EUR, currencies[0].Code)
}

func TestSeedReferenceDataRefreshesIcons(t *testing.T) {
	h := seededHarness(t)
	ctx := context.Background()

	food := h.store.sharedCategory("Food")
	_, updated, err := h.store.UpsertSharedCategories(ctx, []domain.Category{{Name: "Food", Icon: "old-icon", Type: domain.CategoryExpense}})
	require.NoError(t, err)
	require.Equal(t, 1, updated)

	report, err := h.seeder.SeedReferenceData(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, report.CategoriesUpdated)
	assert.Zero(t, report.CategoriesAdded)
	assert.Equal(t, food.Icon, h.store.sharedCategory("Food").Icon)
}

func TestCategoriesAreScopedToOwner(t *testing.T) {
	h := seededHarness(t)
	ctx := context.Background()
	alice, _ := h.register(t, "a@x.com")
	bob, _ := h.register(t, "b@x.com")

	created, err := h.categories.CreateCategory(ctx, alice.UserID, dto.CreateCategoryRequest{Name: "Pets", Type: domain.CategoryExpense})
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultCategoryIcon, created.Icon)
	assert.False(t, created.IsShared())

	aliceCats, err := h.categories.ListCategories(ctx, alice.UserID, nil)
	require.NoError(t, err)
	assert.Len(t, aliceCats, len(domain.DefaultCategories)+1)

	bobCats, err := h.categories.ListCategories(ctx, bob.UserID, nil)
	require.NoError(t, err)
	assert.Len(t, bobCats, len(domain.DefaultCategories))

	income := domain.CategoryIncome
	incomeCats, err := h.categories.ListCategories(ctx, alice.UserID, &income)
	require.NoError(t, err)
	for _, c := range incomeCats {
		assert.Equal(t, domain.CategoryIncome, c.Type)
	}

	bogus := domain.CategoryType("transfer")
	_, err = h.categories.ListCategories(ctx, alice.UserID, &bogus)
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = h.categories.CreateCategory(ctx, alice.UserID, dto.CreateCategoryRequest{Name: "", Type: domain.CategoryExpense})
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestReceipts(t *testing.T) {
	h := seededHarness(t)
	ctx := context.Background()
	alice, account := h.register(t, "a@x.com")
	bob, _ := h.register(t, "b@x.com")
	food := h.store.sharedCategory("Food")

	txn, err := h.txns.CreateTransaction(ctx, alice.UserID, txnRequest(account.AccountID, food.CategoryID, "9.99", domain.Expense))
	require.NoError(t, err)

	url := "https://example.com/r.jpg"
	receipt, err := h.receipts.CreateReceipt(ctx, alice.UserID, dto.CreateReceiptRequest{
		TransactionID: &txn.TransactionID,
		ImageURL:      &url,
		RawOCROutput:  json.RawMessage(`{"total":"9.99"}`),
	})
	require.NoError(t, err)
	assert.False(t, receipt.IsVerified)
	assert.Equal(t, "-9.99", h.balance(t, alice.UserID, account.AccountID))

	_, err = h.receipts.CreateReceipt(ctx, bob.UserID, dto.CreateReceiptRequest{TransactionID: &txn.TransactionID})
	assert.ErrorIs(t, err, apperrors.ErrInvalidReference)

	_, err = h.receipts.CreateReceipt(ctx, alice.UserID, dto.CreateReceiptRequest{RawOCROutput: json.RawMessage(`{broken`)})
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	list, err := h.receipts.ListReceipts(ctx, alice.UserID)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	list, err = h.receipts.ListReceipts(ctx, bob.UserID)
	require.NoError(t, err)
	assert.Empty(t, list)
}
