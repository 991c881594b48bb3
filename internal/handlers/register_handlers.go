package handlers

import (
	"fmt"

	"github.com/SscSPs/budget_tracker_app/cmd/docs"
	portssvc "github.com/SscSPs/budget_tracker_app/internal/core/ports/services"
	"github.com/SscSPs/budget_tracker_app/internal/middleware"
	"github.com/SscSPs/budget_tracker_app/internal/platform/config"
	"github.com/SscSPs/budget_tracker_app/internal/utils"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Dependencies carries the infrastructure routes need besides the services.
type Dependencies struct {
	Analytics *utils.PosthogClientWrapper
	// DB is pinged by /health when ENABLE_DB_CHECK is set.
	DB Pinger
}

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	deps Dependencies,
) error {
	var db Pinger
	if cfg.EnableDBCheck {
		db = deps.DB
	}
	r.GET("/health", health(db))

	loginLimiter, err := middleware.NewMemoryLimiter(cfg.LoginRateLimit)
	if err != nil {
		return fmt.Errorf("invalid LOGIN_RATE_LIMIT %q: %w", cfg.LoginRateLimit, err)
	}

	api := r.Group("/api/v1")
	if cfg.APIRateLimit != "" {
		apiLimiter, err := middleware.NewMemoryLimiter(cfg.APIRateLimit)
		if err != nil {
			return fmt.Errorf("invalid API_RATE_LIMIT %q: %w", cfg.APIRateLimit, err)
		}
		api.Use(middleware.GinMiddlewarize(apiLimiter))
	}

	authMW := middleware.AuthMiddleware(services.User)
	registerAuthRoutes(api, newAuthHandler(services, deps.Analytics, cfg.IsProduction), middleware.RateLimit(loginLimiter), authMW)

	setupAPIV1Routes(api.Group("", authMW), services, deps)

	setupSwaggerRoutes(r, cfg)
	return nil
}

// setupAPIV1Routes delegates to the entity route registrations; every route here requires a bearer token.
func setupAPIV1Routes(v1 *gin.RouterGroup, services *portssvc.ServiceContainer, deps Dependencies) {
	registerAccountRoutes(v1, services.Account)
	registerTransactionRoutes(v1, services.Transaction, deps.Analytics)
	registerCatalogRoutes(v1, services.Currency, services.Category)
	registerReceiptRoutes(v1, services.Receipt)
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
