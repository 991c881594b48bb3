package models

import (
	"time"
)

// User is a row of the users table.
type User struct {
	UserID       int64     `db:"id"`
	Email        string    `db:"email"`
	PasswordHash string    `db:"hashed_password"`
	CurrencyID   *int64    `db:"currency_id"`
	CreatedAt    time.Time `db:"created_at"`
}
