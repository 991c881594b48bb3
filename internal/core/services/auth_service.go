package services

import (
	"context"
	"fmt"
	"time"

	"github.com/SscSPs/budget_tracker_app/internal/apperrors"
	"github.com/SscSPs/budget_tracker_app/internal/core/domain"
	portssvc "github.com/SscSPs/budget_tracker_app/internal/core/ports/services"
	"github.com/SscSPs/budget_tracker_app/internal/utils"
)

// AuthService hashes passwords with bcrypt and signs HS256 bearer tokens whose subject is the user's email.
type AuthService struct {
	secret string
	expiry time.Duration
	issuer string
}

// NewAuthService creates an AuthService.
func NewAuthService(secret string, expiry time.Duration, issuer string) *AuthService {
	return &AuthService{secret: secret, expiry: expiry, issuer: issuer}
}

var _ portssvc.AuthSvc = (*AuthService)(nil)

// HashPassword returns a bcrypt digest of password.
func (s *AuthService) HashPassword(password string) (string, error) {
	digest, err := utils.HashPassword(password)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return digest, nil
}

// VerifyPassword reports whether password matches digest.
func (s *AuthService) VerifyPassword(password, digest string) bool {
	return utils.CheckPasswordHash(password, digest)
}

// IssueToken creates a new JWT access token for the given user.
func (s *AuthService) IssueToken(ctx context.Context, user *domain.User) (string, time.Time, error) {
	token, expiresAt, err := utils.GenerateJWT(user.Email, s.secret, s.expiry, s.issuer)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign access token: %w", err)
	}
	return token, expiresAt, nil
}

// VerifyToken validates the token and returns its subject.
func (s *AuthService) VerifyToken(ctx context.Context, token string) (string, error) {
	claims, err := utils.ParseAndValidateJWT(token, s.secret)
	if err != nil {
		return "", fmt.Errorf("%w: %v", apperrors.ErrUnauthorized, err)
	}
	if s.issuer != "" && claims.Issuer != s.issuer {
		return "", fmt.Errorf("%w: unexpected issuer %q", apperrors.ErrUnauthorized, claims.Issuer)
	}
	return claims.Subject, nil
}
