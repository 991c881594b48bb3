package dto

import (
	"time"

	"github.com/SscSPs/budget_tracker_app/internal/core/domain"
)

// RegisterRequest is the body of POST /auth/register.
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email,max=255"`
	Password string `json:"password" binding:"required,min=8,max=72"`
}

// LoginRequest accepts JSON {email, password} or an OAuth2 password form {username, password}.
type LoginRequest struct {
	Email    string `json:"email" form:"username" binding:"required"`
	Password string `json:"password" form:"password" binding:"required"`
}

// GoogleLoginRequest carries a Google ID token obtained by the client.
type GoogleLoginRequest struct {
	IDToken string `json:"id_token" binding:"required"`
}

// TokenResponse represents the response for a successful login.
type TokenResponse struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// NewBearerToken builds a TokenResponse for a signed bearer token.
func NewBearerToken(token string, expiresAt time.Time) TokenResponse {
	return TokenResponse{AccessToken: token, TokenType: "bearer", ExpiresAt: expiresAt}
}

// UserResponse is the public view of a user.
type UserResponse struct {
	UserID     int64     `json:"id"`
	Email      string    `json:"email"`
	CurrencyID *int64    `json:"currency_id,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// ToUserResponse converts a domain.User to UserResponse DTO
func ToUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		UserID:     user.UserID,
		Email:      user.Email,
		CurrencyID: user.CurrencyID,
		CreatedAt:  user.CreatedAt,
	}
}
