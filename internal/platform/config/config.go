package config

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"
	_ "time/tzdata" // LEDGER_TIMEZONE must resolve in minimal containers

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	defaultJWTSecret   = "a-very-secret-key-should-be-longer-and-random"
	defaultJWTExpiry   = 24 * time.Hour
	defaultJWTIssuer   = "budget-tracker-app"
	defaultShutdown    = 10 * time.Second
	defaultLoginLimit  = "5-M"
	defaultAPILimit    = "300-M"
	defaultLedgerTZ    = "UTC"
	defaultCORSOrigins = "http://localhost:3000"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL       string
	Port              string
	IsProduction      bool
	EnableDBCheck     bool
	LogLevel          string
	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string

	// LedgerTimezone names the zone in which month/year transaction filters are evaluated.
	LedgerTimezone string
	LedgerLocation *time.Location

	CORSAllowedOrigins []string
	LoginRateLimit     string // ulule/limiter format, e.g. "5-M"
	APIRateLimit       string
	PosthogAPIKey      string
	ShutdownTimeout    time.Duration

	// External OAuth Providers
	GoogleClientID     string `mapstructure:"GOOGLE_CLIENT_ID"`
	GoogleClientSecret string `mapstructure:"GOOGLE_CLIENT_SECRET"`
	GoogleRedirectURL  string `mapstructure:"GOOGLE_REDIRECT_URL"`
}

// GoogleEnabled reports whether Google sign-in is configured.
func (c *Config) GoogleEnabled() bool {
	return c.GoogleClientID != ""
}

func parseDuration(key string, fallback time.Duration) time.Duration {
	raw := viper.GetString(key)
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		if raw != "" {
			log.Printf("Warning: Invalid value for %s ('%s'). Defaulting to %s.\n", key, raw, fallback)
		}
		return fallback
	}
	return d
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("JWT_SECRET", defaultJWTSecret)
	viper.SetDefault("JWT_EXPIRY_DURATION", defaultJWTExpiry.String())
	viper.SetDefault("JWT_ISSUER", defaultJWTIssuer)
	viper.SetDefault("LEDGER_TIMEZONE", defaultLedgerTZ)
	viper.SetDefault("CORS_ALLOWED_ORIGINS", defaultCORSOrigins)
	viper.SetDefault("LOGIN_RATE_LIMIT", defaultLoginLimit)
	viper.SetDefault("API_RATE_LIMIT", defaultAPILimit)
	viper.SetDefault("POSTHOG_API_KEY", "")
	viper.SetDefault("SHUTDOWN_TIMEOUT", defaultShutdown.String())
	viper.SetDefault("GOOGLE_CLIENT_ID", "")
	viper.SetDefault("GOOGLE_CLIENT_SECRET", "")
	viper.SetDefault("GOOGLE_REDIRECT_URL", "")

	viper.AutomaticEnv()

	cfg := &Config{
		DatabaseURL:        viper.GetString("PGSQL_URL"),
		Port:               viper.GetString("PORT"),
		IsProduction:       viper.GetBool("IS_PRODUCTION"),
		EnableDBCheck:      viper.GetBool("ENABLE_DB_CHECK"),
		LogLevel:           viper.GetString("LOG_LEVEL"),
		JWTSecret:          viper.GetString("JWT_SECRET"),
		JWTExpiryDuration:  parseDuration("JWT_EXPIRY_DURATION", defaultJWTExpiry),
		JWTIssuer:          viper.GetString("JWT_ISSUER"),
		LedgerTimezone:     viper.GetString("LEDGER_TIMEZONE"),
		CORSAllowedOrigins: splitList(viper.GetString("CORS_ALLOWED_ORIGINS")),
		LoginRateLimit:     viper.GetString("LOGIN_RATE_LIMIT"),
		APIRateLimit:       viper.GetString("API_RATE_LIMIT"),
		PosthogAPIKey:      viper.GetString("POSTHOG_API_KEY"),
		ShutdownTimeout:    parseDuration("SHUTDOWN_TIMEOUT", defaultShutdown),
		GoogleClientID:     viper.GetString("GOOGLE_CLIENT_ID"),
		GoogleClientSecret: viper.GetString("GOOGLE_CLIENT_SECRET"),
		GoogleRedirectURL:  viper.GetString("GOOGLE_REDIRECT_URL"),
	}

	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}
	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.JWTIssuer == "" {
		cfg.JWTIssuer = defaultJWTIssuer
	}
	if cfg.JWTSecret == "" || cfg.JWTSecret == defaultJWTSecret {
		if cfg.IsProduction {
			return nil, errors.New("JWT_SECRET must be set in production")
		}
		cfg.JWTSecret = defaultJWTSecret
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	if cfg.LedgerTimezone == "" {
		cfg.LedgerTimezone = defaultLedgerTZ
	}
	loc, err := time.LoadLocation(cfg.LedgerTimezone)
	if err != nil || cfg.LedgerTimezone == "Local" {
		return nil, fmt.Errorf("invalid LEDGER_TIMEZONE %q: must be an IANA zone name", cfg.LedgerTimezone)
	}
	cfg.LedgerLocation = loc

	if !cfg.GoogleEnabled() {
		log.Println("Warning: GOOGLE_CLIENT_ID not set. Google sign-in is disabled.")
	} else if cfg.GoogleClientSecret == "" || cfg.GoogleRedirectURL == "" {
		log.Println("Warning: GOOGLE_CLIENT_SECRET or GOOGLE_REDIRECT_URL not set. Only ID-token sign-in will work.")
	}

	return cfg, nil
}
