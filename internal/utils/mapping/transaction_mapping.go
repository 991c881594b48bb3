package mapping

import (
	"github.com/SscSPs/budget_tracker_app/internal/core/domain"
	"github.com/SscSPs/budget_tracker_app/internal/models"
)

// ToModelTransaction converts a domain Transaction to a model Transaction.
// An empty description is stored as NULL.
func ToModelTransaction(d domain.Transaction) models.Transaction {
	var description *string
	if d.Description != "" {
		desc := d.Description
		description = &desc
	}
	return models.Transaction{
		TransactionID: d.TransactionID,
		UserID:        d.UserID,
		AccountID:     d.AccountID,
		CategoryID:    d.CategoryID,
		Amount:        d.Amount,
		Type:          string(d.Type),
		Source:        string(d.Source),
		Description:   description,
		CreatedAt:     d.CreatedAt,
	}
}

// ToDomainTransaction converts a model Transaction to a domain Transaction
func ToDomainTransaction(m models.Transaction) domain.Transaction {
	d := domain.Transaction{
		TransactionID: m.TransactionID,
		UserID:        m.UserID,
		AccountID:     m.AccountID,
		CategoryID:    m.CategoryID,
		Amount:        m.Amount,
		Type:          domain.TransactionType(m.Type),
		Source:        domain.SourceType(m.Source),
		CreatedAt:     m.CreatedAt,
	}
	if m.Description != nil {
		d.Description = *m.Description
	}
	return d
}

// ToDomainTransactionWithCategory converts a joined transaction row, populating Category.
func ToDomainTransactionWithCategory(m models.TransactionWithCategory) domain.Transaction {
	d := ToDomainTransaction(m.Transaction)
	d.Category = &domain.Category{
		CategoryID: m.CategoryID,
		Name:       m.CategoryName,
		Icon:       m.CategoryIcon,
		Type:       domain.CategoryType(m.CategoryType),
		UserID:     m.CategoryUserID,
	}
	return d
}

// ToDomainTransactionWithCategorySlice converts a slice of joined transaction rows
func ToDomainTransactionWithCategorySlice(ms []models.TransactionWithCategory) []domain.Transaction {
	ds := make([]domain.Transaction, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainTransactionWithCategory(m)
	}
	return ds
}
