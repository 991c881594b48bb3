package services

import (
	"context"

	"github.com/SscSPs/budget_tracker_app/internal/core/domain"
	"github.com/SscSPs/budget_tracker_app/internal/dto"
)

// CurrencySvcFacade defines read access to the currency catalog
type CurrencySvcFacade interface {
	// ListCurrencies retrieves all available currencies.
	ListCurrencies(ctx context.Context) ([]domain.Currency, error)
}

// CategorySvcFacade defines operations on categories
type CategorySvcFacade interface {
	// ListCategories returns the shared categories plus the user's own, optionally of one type.
	ListCategories(ctx context.Context, userID int64, categoryType *domain.CategoryType) ([]domain.Category, error)

	// CreateCategory persists a category owned by userID.
	CreateCategory(ctx context.Context, userID int64, req dto.CreateCategoryRequest) (*domain.Category, error)
}

// SeederSvc populates the reference catalogs.
type SeederSvc interface {
	// SeedReferenceData upserts currencies and default categories. Safe to run repeatedly.
	SeedReferenceData(ctx context.Context) (domain.SeedReport, error)
}
