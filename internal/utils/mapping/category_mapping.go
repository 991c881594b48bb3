package mapping

import (
	"github.com/SscSPs/budget_tracker_app/internal/core/domain"
	"github.com/SscSPs/budget_tracker_app/internal/models"
)

// ToModelCategory converts a domain Category to a model Category
func ToModelCategory(d domain.Category) models.Category {
	return models.Category{
		CategoryID: d.CategoryID,
		Name:       d.Name,
		Icon:       d.Icon,
		Type:       string(d.Type),
		UserID:     d.UserID,
	}
}

// ToDomainCategory converts a model Category to a domain Category
func ToDomainCategory(m models.Category) domain.Category {
	return domain.Category{
		CategoryID: m.CategoryID,
		Name:       m.Name,
		Icon:       m.Icon,
		Type:       domain.CategoryType(m.Type),
		UserID:     m.UserID,
	}
}

// ToDomainCategorySlice converts a slice of model Categories to a slice of domain Categories
func ToDomainCategorySlice(ms []models.Category) []domain.Category {
	ds := make([]domain.Category, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainCategory(m)
	}
	return ds
}
