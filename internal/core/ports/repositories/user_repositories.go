package repositories

import (
	"context"

	"github.com/SscSPs/budget_tracker_app/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// UserReader defines read operations for user data
type UserReader interface {
	// FindUserByID retrieves a specific user by their ID.
	FindUserByID(ctx context.Context, userID int64) (*domain.User, error)

	// FindUserByEmail retrieves a user by exact email match.
	FindUserByEmail(ctx context.Context, email string) (*domain.User, error)
}

// UserWriter defines write operations for user data
type UserWriter interface {
	// InsertUserInTx persists a new user and returns it with its generated ID.
	// A duplicate email surfaces as apperrors.ErrDuplicate.
	InsertUserInTx(ctx context.Context, tx pgx.Tx, user domain.User) (*domain.User, error)
}

// UserRepositoryFacade combines all user-related repository interfaces
type UserRepositoryFacade interface {
	UserReader
	UserWriter
}
