package models

// Category is a row of the categories table. UserID is NULL for shared defaults.
type Category struct {
	CategoryID int64  `db:"id"`
	Name       string `db:"name"`
	Icon       string `db:"icon"`
	Type       string `db:"type"`
	UserID     *int64 `db:"user_id"`
}
