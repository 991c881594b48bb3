package pagination

import "fmt"

const (
	// DefaultLimit is used when the caller does not pass a limit.
	DefaultLimit = 20
	// MaxLimit caps the page size.
	MaxLimit = 100
)

// Normalize applies the default and cap to limit and validates offset.
// A limit of 0 means "use the default".
func Normalize(offset, limit int) (int, int, error) {
	if offset < 0 {
		return 0, 0, fmt.Errorf("offset must be >= 0, got %d", offset)
	}
	if limit < 0 {
		return 0, 0, fmt.Errorf("limit must be >= 0, got %d", limit)
	}
	if limit == 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return offset, limit, nil
}

// NextOffset returns the offset of the following page, or nil when the returned page was short.
func NextOffset(offset, limit, returned int) *int {
	if returned < limit {
		return nil
	}
	next := offset + limit
	return &next
}
