package repositories

import (
	"context"

	"github.com/SscSPs/budget_tracker_app/internal/core/domain"
)

// CategoryReader defines read operations for category data
type CategoryReader interface {
	// FindCategoryByID retrieves a category by ID regardless of owner.
	FindCategoryByID(ctx context.Context, categoryID int64) (*domain.Category, error)

	// ListCategoriesForUser returns shared categories plus those owned by userID, ordered by name.
	// A nil categoryType returns both kinds.
	ListCategoriesForUser(ctx context.Context, userID int64, categoryType *domain.CategoryType) ([]domain.Category, error)
}

// CategoryWriter defines write operations for category data
type CategoryWriter interface {
	// SaveCategory persists a user-owned category.
	SaveCategory(ctx context.Context, category domain.Category) (*domain.Category, error)

	// UpsertSharedCategories inserts absent shared categories by name and updates the icon of
	// existing ones when it differs. Returns the number of rows inserted and updated.
	UpsertSharedCategories(ctx context.Context, categories []domain.Category) (inserted int, updated int, err error)
}

// CategoryRepositoryFacade combines all category-related repository interfaces
type CategoryRepositoryFacade interface {
	CategoryReader
	CategoryWriter
}
