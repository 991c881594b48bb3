package services

import (
	"context"
	"time"

	"github.com/SscSPs/budget_tracker_app/internal/core/domain"
	"github.com/SscSPs/budget_tracker_app/internal/dto"
)

// UserReaderSvc defines read operations for user data
type UserReaderSvc interface {
	// GetUserByID retrieves a user by ID.
	GetUserByID(ctx context.Context, userID int64) (*domain.User, error)
}

// UserWriterSvc defines write operations for user data
type UserWriterSvc interface {
	// RegisterUser creates a user and its default account atomically.
	RegisterUser(ctx context.Context, req dto.RegisterRequest) (*domain.User, error)
}

// UserAuthSvc defines operations for user authentication
type UserAuthSvc interface {
	// AuthenticateUser checks credentials and issues a bearer token.
	AuthenticateUser(ctx context.Context, email, password string) (string, time.Time, error)

	// ResolveCurrentUser maps a bearer token to the stored user it names.
	ResolveCurrentUser(ctx context.Context, token string) (*domain.User, error)

	// AuthenticateWithGoogle validates a Google ID token, registering the user on first sign-in.
	AuthenticateWithGoogle(ctx context.Context, idToken string) (string, time.Time, error)

	// AuthenticateWithGoogleCode completes the OAuth code flow and signs the user in.
	AuthenticateWithGoogleCode(ctx context.Context, code string) (string, time.Time, error)
}

// UserSvcFacade combines all user-related service interfaces
type UserSvcFacade interface {
	UserReaderSvc
	UserWriterSvc
	UserAuthSvc
}
