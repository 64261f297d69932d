package app

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Env       string // Environment (dev, staging, prod) (default: dev)
	LogLevel  string // Log level (debug, info, warn, error) (default: info)
	LogFormat string // Log format (json, text) (default: json)
	Port      int    // HTTP server port (default: 8080)

	DatabaseFile        string        // Path to SQLite database file (default: ./nimbus.db)
	ShutdownGracePeriod time.Duration // Graceful shutdown timeout (default: 10s)

	// Identity. When IdentityBaseURL is set the hosted vendor is used;
	// otherwise the built-in local provider takes over.
	IdentityBaseURL  string        // Optional: hosted identity vendor base URL
	IdentityAPIKey   string        // Optional: vendor anon API key
	IdentityTimeout  time.Duration // Vendor HTTP timeout (default: 10s)
	SessionJWTSecret string        // Required: HS256 secret session tokens are verified with
	SessionTTL       time.Duration // Local-mode session lifetime (default: 24h)
	Issuer           string        // Issuer claim for locally minted tokens (default: nimbus)

	// Google OAuth (local mode only; vendor mode proxies OAuth itself).
	GoogleClientID     string
	GoogleClientSecret string
	GoogleRedirectURL  string

	// Billing. Empty price ids leave the plans on placeholders and checkout
	// refused.
	StripeSecretKey         string
	StripePriceIDPro        string
	StripePriceIDEnterprise string
	CheckoutSuccessURL      string // Browser destination after payment (default: /dashboard?checkout=success)
	CheckoutCancelURL       string // Browser destination after cancel (default: /pricing)
	PostLoginURL            string // Browser destination after OAuth login (default: /dashboard)
}

func LoadConfig() Config {
	// Optional .env for local development; real deployments set the
	// environment directly.
	_ = godotenv.Load()

	cfg := Config{
		Env:       getEnvOrDefault("ENV", "dev"),
		LogLevel:  getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat: getEnvOrDefault("LOG_FORMAT", "json"),
		Port:      getEnvIntOrDefault("PORT", 8080),

		DatabaseFile:        getEnvOrDefault("DATABASE_FILE", "nimbus.db"),
		ShutdownGracePeriod: getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),

		IdentityBaseURL:  os.Getenv("IDENTITY_BASE_URL"),
		IdentityAPIKey:   os.Getenv("IDENTITY_API_KEY"),
		IdentityTimeout:  getEnvDurationOrDefault("IDENTITY_TIMEOUT", 10*time.Second),
		SessionJWTSecret: os.Getenv("SESSION_JWT_SECRET"),
		SessionTTL:       getEnvDurationOrDefault("SESSION_TTL", 24*time.Hour),
		Issuer:           getEnvOrDefault("SESSION_ISSUER", "nimbus"),

		GoogleClientID:     os.Getenv("GOOGLE_CLIENT_ID"),
		GoogleClientSecret: os.Getenv("GOOGLE_CLIENT_SECRET"),
		GoogleRedirectURL:  os.Getenv("GOOGLE_REDIRECT_URL"),

		StripeSecretKey:         os.Getenv("STRIPE_SECRET_KEY"),
		StripePriceIDPro:        os.Getenv("STRIPE_PRICE_ID_PRO"),
		StripePriceIDEnterprise: os.Getenv("STRIPE_PRICE_ID_ENTERPRISE"),
		CheckoutSuccessURL:      getEnvOrDefault("CHECKOUT_SUCCESS_URL", "/dashboard?checkout=success"),
		CheckoutCancelURL:       getEnvOrDefault("CHECKOUT_CANCEL_URL", "/pricing"),
		PostLoginURL:            getEnvOrDefault("POST_LOGIN_URL", "/dashboard"),
	}

	return cfg
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Integer seconds for convenience.
	if seconds, err := strconv.Atoi(value); err == nil {
		return time.Duration(seconds) * time.Second
	}

	return defaultValue
}
