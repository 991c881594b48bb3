package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/SscSPs/budget_tracker_app/internal/core/domain"
	"github.com/gin-gonic/gin"
)

// UserResolver maps a bearer token to the stored user it names.
type UserResolver interface {
	ResolveCurrentUser(ctx context.Context, token string) (*domain.User, error)
}

// AuthMiddleware creates a Gin middleware handler that authenticates the bearer token
// and stores the resolved user in the context.
func AuthMiddleware(resolver UserResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := GetLoggerFromCtx(c.Request.Context())

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			logger.Warn("Authorization header missing")
			c.Header("WWW-Authenticate", "Bearer")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || strings.TrimSpace(parts[1]) == "" {
			logger.Warn("Authorization header format invalid")
			c.Header("WWW-Authenticate", "Bearer")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header format must be Bearer {token}"})
			return
		}

		user, err := resolver.ResolveCurrentUser(c.Request.Context(), strings.TrimSpace(parts[1]))
		if err != nil {
			logger.Warn("Could not validate credentials", slog.String("error", err.Error()))
			c.Header("WWW-Authenticate", "Bearer")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Could not validate credentials"})
			return
		}

		enrichedLogger := logger.With(slog.Int64("user_id", user.UserID))
		ctx := WithLogger(WithUser(c.Request.Context(), user), enrichedLogger)
		c.Request = c.Request.WithContext(ctx)
		c.Set(string(userKey), user)
		c.Set(string(loggerKey), enrichedLogger)

		c.Next()
	}
}
