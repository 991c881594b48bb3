package services

import (
	"context"
	"time"

	"github.com/SscSPs/budget_tracker_app/internal/core/domain"
)

// AuthSvc hashes and verifies passwords and issues and verifies bearer tokens.
type AuthSvc interface {
	// HashPassword returns a one-way digest of password.
	HashPassword(password string) (string, error)
	// VerifyPassword reports whether password matches digest.
	VerifyPassword(password, digest string) bool
	// IssueToken signs a bearer token for user, returning it with its expiry.
	IssueToken(ctx context.Context, user *domain.User) (string, time.Time, error)
	// VerifyToken validates a bearer token and returns its subject (the user's email).
	// Any failure is reported as apperrors.ErrUnauthorized.
	VerifyToken(ctx context.Context, token string) (string, error)
}

// GoogleOAuthSvcFacade defines the interface for Google OAuth operations.
type GoogleOAuthSvcFacade interface {
	// IsEnabled reports whether a Google client is configured.
	IsEnabled() bool
	// GenerateStateString creates a secure random string to be used as a CSRF token for OAuth flow.
	GenerateStateString(ctx context.Context) (string, error)
	// GetGoogleLoginURL returns the URL to redirect the user to for Google login.
	GetGoogleLoginURL(ctx context.Context, state string) string
	// ExchangeCodeForIDToken exchanges an OAuth authorization code and returns the raw ID token.
	ExchangeCodeForIDToken(ctx context.Context, code string) (string, error)
	// ValidateGoogleIDToken validates an ID token string from Google and returns the identity it asserts.
	ValidateGoogleIDToken(ctx context.Context, idTokenString string) (*domain.GoogleUserInfo, error)
}
