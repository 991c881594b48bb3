package middleware

import (
	"context"

	"github.com/SscSPs/budget_tracker_app/internal/core/domain"
	"github.com/gin-gonic/gin"
)

// userKey is the key under which the authenticated user is stored.
const userKey = contextKey("user")

// WithUser returns a copy of ctx carrying the authenticated user.
func WithUser(ctx context.Context, user *domain.User) context.Context {
	return context.WithValue(ctx, userKey, user)
}

// GetUserFromContext retrieves the authenticated user set by AuthMiddleware.
func GetUserFromContext(c *gin.Context) (*domain.User, bool) {
	if val, exists := c.Get(string(userKey)); exists {
		if user, ok := val.(*domain.User); ok && user != nil {
			return user, true
		}
	}
	user, ok := c.Request.Context().Value(userKey).(*domain.User)
	return user, ok && user != nil
}

// GetUserIDFromContext retrieves the authenticated user ID from the Gin context.
func GetUserIDFromContext(c *gin.Context) (int64, bool) {
	user, ok := GetUserFromContext(c)
	if !ok {
		return 0, false
	}
	return user.UserID, true
}
