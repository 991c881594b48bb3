package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SscSPs/budget_tracker_app/internal/apperrors"
	"github.com/SscSPs/budget_tracker_app/internal/core/domain"
	portsrepo "github.com/SscSPs/budget_tracker_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/budget_tracker_app/internal/core/ports/services"
	"github.com/SscSPs/budget_tracker_app/internal/dto"
)

// CurrencyService exposes the read-only currency catalog.
type CurrencyService struct {
	BaseService
	repo portsrepo.CurrencyReader
}

// NewCurrencyService creates a new CurrencyService.
func NewCurrencyService(repo portsrepo.CurrencyReader) *CurrencyService {
	return &CurrencyService{repo: repo}
}

var _ portssvc.CurrencySvcFacade = (*CurrencyService)(nil)

// ListCurrencies retrieves all available currencies.
func (s *CurrencyService) ListCurrencies(ctx context.Context) ([]domain.Currency, error) {
	currencies, err := s.repo.ListCurrencies(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list currencies from repository")
		return nil, fmt.Errorf("failed to list currencies: %w", err)
	}
	if currencies == nil {
		return []domain.Currency{}, nil
	}
	return currencies, nil
}

// CategoryService lists shared and user-owned categories and creates user categories.
type CategoryService struct {
	BaseService
	repo portsrepo.CategoryRepositoryFacade
}

// NewCategoryService creates a new CategoryService.
func NewCategoryService(repo portsrepo.CategoryRepositoryFacade) *CategoryService {
	return &CategoryService{repo: repo}
}

var _ portssvc.CategorySvcFacade = (*CategoryService)(nil)

// ListCategories returns the shared categories plus the user's own, optionally of one type.
func (s *CategoryService) ListCategories(ctx context.Context, userID int64, categoryType *domain.CategoryType) ([]domain.Category, error) {
	if categoryType != nil && !categoryType.IsValid() {
		return nil, fmt.Errorf("%w: unknown category type %q", apperrors.ErrValidation, *categoryType)
	}
	categories, err := s.repo.ListCategoriesForUser(ctx, userID, categoryType)
	if err != nil {
		s.LogError(ctx, err, "Failed to list categories", slog.Int64("user_id", userID))
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	if categories == nil {
		return []domain.Category{}, nil
	}
	return categories, nil
}

// CreateCategory persists a category owned by userID.
func (s *CategoryService) CreateCategory(ctx context.Context, userID int64, req dto.CreateCategoryRequest) (*domain.Category, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: category name must not be empty", apperrors.ErrValidation)
	}
	if !req.Type.IsValid() {
		return nil, fmt.Errorf("%w: unknown category type %q", apperrors.ErrValidation, req.Type)
	}
	icon := domain.DefaultCategoryIcon
	if req.Icon != nil && strings.TrimSpace(*req.Icon) != "" {
		icon = strings.TrimSpace(*req.Icon)
	}

	owner := userID
	category, err := s.repo.SaveCategory(ctx, domain.Category{
		Name:   name,
		Icon:   icon,
		Type:   req.Type,
		UserID: &owner,
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to save category", slog.Int64("user_id", userID))
		return nil, fmt.Errorf("failed to create category: %w", err)
	}
	s.LogInfo(ctx, "Category created", slog.Int64("category_id", category.CategoryID))
	return category, nil
}
