package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	AppEnv    string
	Port      string
	JWTSecret string
	Auth      AuthConfig
	Odoo      OdooConfig
	Payment   PaymentConfig
}

// AuthConfig holds the credentials API clients exchange for a bearer token
type AuthConfig struct {
	ClientID     string
	ClientSecret string
	TokenTTL     int // minutes
}

// OdooConfig holds Odoo connection settings
type OdooConfig struct {
	URL         string
	Database    string
	Username    string
	Password    string
	CompanyID   int64
	AuthTTL     int // hours
	HTTPTimeout int // seconds
}

// PaymentConfig holds the accounting identifiers used when registering
// payments. The legacy integration hard-coded journal 8 and payment method
// line 2 inside the handler; here they are resolved once at startup.
type PaymentConfig struct {
	JournalID         int64
	PaymentMethodLine int64
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	odooURL := os.Getenv("ODOO_URL")
	if odooURL == "" {
		return nil, fmt.Errorf("ODOO_URL is required")
	}

	return &Config{
		AppEnv:    getEnv("APP_ENV", "development"),
		Port:      getEnv("PORT", "8080"),
		JWTSecret: jwtSecret,
		Auth: AuthConfig{
			ClientID:     getEnv("AUTH_CLIENT_ID", "salesman-app"),
			ClientSecret: os.Getenv("AUTH_CLIENT_SECRET"),
			TokenTTL:     getEnvInt("AUTH_TOKEN_TTL_MINUTES", 60),
		},
		Odoo: OdooConfig{
			URL:         odooURL,
			Database:    getEnv("ODOO_DB", "odoo"),
			Username:    getEnv("ODOO_USERNAME", "admin"),
			Password:    os.Getenv("ODOO_PASSWORD"),
			CompanyID:   getEnvInt64("ODOO_COMPANY_ID", 1),
			AuthTTL:     getEnvInt("ODOO_AUTH_TTL_HOURS", 6),
			HTTPTimeout: getEnvInt("ODOO_HTTP_TIMEOUT_SECONDS", 30),
		},
		Payment: PaymentConfig{
			JournalID:         getEnvInt64("PAYMENT_JOURNAL_ID", 8),
			PaymentMethodLine: getEnvInt64("PAYMENT_METHOD_LINE_ID", 2),
		},
	}, nil
}

// getEnv gets environment variable with default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func getEnvInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.ParseInt(value, 10, 64); err == nil {
			return n
		}
	}
	return defaultValue
}
