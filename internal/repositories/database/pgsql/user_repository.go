package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/budget_tracker_app/internal/apperrors"
	"github.com/SscSPs/budget_tracker_app/internal/core/domain"
	portsrepo "github.com/SscSPs/budget_tracker_app/internal/core/ports/repositories"
	"github.com/SscSPs/budget_tracker_app/internal/models"
	"github.com/SscSPs/budget_tracker_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const userColumns = `id, email, hashed_password, currency_id, created_at`

type PgxUserRepository struct {
	BaseRepository
}

func newPgxUserRepository(db *pgxpool.Pool) *PgxUserRepository {
	return &PgxUserRepository{BaseRepository: BaseRepository{Pool: db}}
}

// Ensure PgxUserRepository implements portsrepo.UserRepositoryFacade
var _ portsrepo.UserRepositoryFacade = (*PgxUserRepository)(nil)

func (r *PgxUserRepository) findOne(ctx context.Context, where string, arg any) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE ` + where
	rows, err := r.Pool.Query(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("failed to query user: %w", err)
	}
	modelUser, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.User])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan user: %w", err)
	}
	user := mapping.ToDomainUser(modelUser)
	return &user, nil
}

// FindUserByID retrieves a user by ID.
func (r *PgxUserRepository) FindUserByID(ctx context.Context, userID int64) (*domain.User, error) {
	user, err := r.findOne(ctx, "id = $1", userID)
	if err != nil {
		return nil, fmt.Errorf("find user %d: %w", userID, err)
	}
	return user, nil
}

// FindUserByEmail retrieves a user by exact email match.
func (r *PgxUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	user, err := r.findOne(ctx, "email = $1", email)
	if err != nil {
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	return user, nil
}

// InsertUserInTx inserts a user and returns the stored row.
func (r *PgxUserRepository) InsertUserInTx(ctx context.Context, tx pgx.Tx, user domain.User) (*domain.User, error) {
	modelUser := mapping.ToModelUser(user)
	query := `
		INSERT INTO users (email, hashed_password, currency_id)
		VALUES ($1, $2, $3)
		RETURNING ` + userColumns
	rows, err := tx.Query(ctx, query, modelUser.Email, modelUser.PasswordHash, modelUser.CurrencyID)
	if err != nil {
		return nil, fmt.Errorf("failed to insert user: %w", err)
	}
	saved, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.User])
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("%w: email %s is already registered", apperrors.ErrDuplicate, user.Email)
		}
		return nil, fmt.Errorf("failed to insert user: %w", err)
	}
	result := mapping.ToDomainUser(saved)
	return &result, nil
}
