package domain

import "time"

// User represents a registered user. Emails are compared as exact strings.
type User struct {
	UserID       int64     `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CurrencyID   *int64    `json:"currencyID,omitempty"` // Preferred currency, optional
	CreatedAt    time.Time `json:"createdAt"`
}

// GoogleUserInfo holds the verified identity extracted from a Google ID token.
type GoogleUserInfo struct {
	Subject       string `json:"sub"`
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
	Name          string `json:"name"`
}
