package mapping

import (
	"github.com/SscSPs/budget_tracker_app/internal/core/domain"
	"github.com/SscSPs/budget_tracker_app/internal/models"
)

// ToModelUser converts a domain User to a model User
func ToModelUser(d domain.User) models.User {
	return models.User{
		UserID:       d.UserID,
		Email:        d.Email,
		PasswordHash: d.PasswordHash,
		CurrencyID:   d.CurrencyID,
		CreatedAt:    d.CreatedAt,
	}
}

// ToDomainUser converts a model User to a domain User
func ToDomainUser(m models.User) domain.User {
	return domain.User{
		UserID:       m.UserID,
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		CurrencyID:   m.CurrencyID,
		CreatedAt:    m.CreatedAt,
	}
}
