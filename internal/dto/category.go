package dto

import "github.com/SscSPs/budget_tracker_app/internal/core/domain"

// CreateCategoryRequest defines the data needed to create a user-owned category.
type CreateCategoryRequest struct {
	Name string              `json:"name" binding:"required,max=100"`
	Icon *string             `json:"icon" binding:"omitempty,max=50"` // Defaults to "folder"
	Type domain.CategoryType `json:"type" binding:"required,oneof=income expense"`
}

// ListCategoriesParams defines query parameters for listing categories.
type ListCategoriesParams struct {
	Type string `form:"type" binding:"omitempty,oneof=income expense"`
}

// CategoryResponse defines the data returned for a category.
type CategoryResponse struct {
	CategoryID int64               `json:"id"`
	Name       string              `json:"name"`
	Icon       string              `json:"icon"`
	Type       domain.CategoryType `json:"type"`
	IsShared   bool                `json:"is_shared"`
}

// ToCategoryResponse converts a domain.Category to CategoryResponse DTO
func ToCategoryResponse(c domain.Category) CategoryResponse {
	return CategoryResponse{
		CategoryID: c.CategoryID,
		Name:       c.Name,
		Icon:       c.Icon,
		Type:       c.Type,
		IsShared:   c.IsShared(),
	}
}

// ToListCategoryResponse converts a slice of domain.Category
func ToListCategoryResponse(categories []domain.Category) []CategoryResponse {
	res := make([]CategoryResponse, len(categories))
	for i, c := range categories {
		res[i] = ToCategoryResponse(c)
	}
	return res
}
