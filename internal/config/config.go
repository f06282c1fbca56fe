package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"

	"github.com/harshava123/powderlegacy/internal/domain"
)

type Config struct {
	Port        string
	Environment string
	LogLevel    string
	AppURL      string // public base URL, used for payment callback links
	Database    DatabaseConfig
	Mongo       MongoConfig
	Redis       RedisConfig
	Razorpay    RazorpayConfig
	SMTP        SMTPConfig
	AdminEmail  string // fixed admin recipient for order notifications
	// AdminAPIKeyHash is the bcrypt hash of the key accepted on /v1/admin routes
	AdminAPIKeyHash string
	// MinOrderTotal is the provider's minimum chargeable amount in rupees
	MinOrderTotal int64
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// MongoConfig is used for the per-user remote cart mirror
type MongoConfig struct {
	URI    string
	DBName string
}

// RedisConfig is used for the durable per-session store (cart snapshot and
// checkout draft)
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type RazorpayConfig struct {
	KeyID     string
	KeySecret string
	// PaymentPageURL is a pre-provisioned hosted payment page; when set, the
	// hosted-link mode builds a prefilled redirect URL instead of calling the
	// payment-links API
	PaymentPageURL string
	Mode           domain.PaymentMethod
}

type SMTPConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}

func Load() (*Config, error) {
	viper.SetConfigType("env")
	viper.SetConfigName(".env")
	viper.AddConfigPath(".")
	viper.AddConfigPath("..")
	viper.AddConfigPath("../..")

	// Set defaults
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("ENVIRONMENT", "development")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_SSLMODE", "disable")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("PAYMENT_MODE", string(domain.PaymentMethodEmbedded))
	viper.SetDefault("MIN_ORDER_TOTAL", 1)

	// Read from environment variables
	viper.AutomaticEnv()

	// Try to read .env file (optional)
	if err := viper.ReadInConfig(); err != nil {
		// It's okay if .env doesn't exist, we'll use env vars
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{
		Port:        getEnvOrViper("PORT", "8080"),
		Environment: getEnvOrViper("ENVIRONMENT", "development"),
		LogLevel:    getEnvOrViper("LOG_LEVEL", "info"),
		AppURL:      strings.TrimSuffix(getEnvOrViper("APP_URL", "http://localhost:8080"), "/"),
		Database: DatabaseConfig{
			Host:     getEnvOrViper("DB_HOST", "localhost"),
			Port:     getEnvOrViper("DB_PORT", "5432"),
			User:     getEnvOrViper("DB_USER", "postgres"),
			Password: getEnvOrViper("DB_PASSWORD", "postgres"),
			DBName:   getEnvOrViper("DB_NAME", "powderlegacy"),
			SSLMode:  getEnvOrViper("DB_SSLMODE", "disable"),
		},
		Mongo: MongoConfig{
			URI:    strings.TrimSpace(getEnvOrViper("MONGO_URI", "")),
			DBName: getEnvOrViper("MONGO_DB", "powderlegacy"),
		},
		Redis: RedisConfig{
			Addr:     getEnvOrViper("REDIS_ADDR", "localhost:6379"),
			Password: getEnvOrViper("REDIS_PASSWORD", ""),
			DB:       viper.GetInt("REDIS_DB"),
		},
		Razorpay: RazorpayConfig{
			KeyID:          strings.TrimSpace(getEnvOrViper("RZP_KEY_ID", "")),
			KeySecret:      strings.TrimSpace(getEnvOrViper("RZP_KEY_SECRET", "")),
			PaymentPageURL: strings.TrimSpace(getEnvOrViper("RZP_PAYMENT_PAGE_URL", "")),
			Mode:           domain.PaymentMethod(getEnvOrViper("PAYMENT_MODE", string(domain.PaymentMethodEmbedded))),
		},
		SMTP: SMTPConfig{
			Host:     getEnvOrViper("SMTP_HOST", "smtp.gmail.com"),
			Port:     intOrDefault("SMTP_PORT", 587),
			User:     strings.TrimSpace(getEnvOrViper("SMTP_USER", "")),
			Password: getEnvOrViper("SMTP_PASSWORD", ""),
			From:     strings.TrimSpace(getEnvOrViper("SMTP_FROM", "")),
		},
		AdminEmail:      strings.TrimSpace(getEnvOrViper("ADMIN_EMAIL", "")),
		AdminAPIKeyHash: strings.TrimSpace(getEnvOrViper("ADMIN_API_KEY_HASH", "")),
		MinOrderTotal:   int64(intOrDefault("MIN_ORDER_TOTAL", 1)),
	}

	if cfg.SMTP.From == "" {
		cfg.SMTP.From = cfg.SMTP.User
	}

	// Validate required fields
	if !cfg.Razorpay.Mode.IsValid() {
		return nil, fmt.Errorf("PAYMENT_MODE must be %q or %q", domain.PaymentMethodEmbedded, domain.PaymentMethodHostedLink)
	}
	if cfg.Razorpay.KeyID == "" {
		return nil, fmt.Errorf("RZP_KEY_ID is required")
	}
	if cfg.Razorpay.Mode == domain.PaymentMethodHostedLink &&
		cfg.Razorpay.PaymentPageURL == "" && cfg.Razorpay.KeySecret == "" {
		return nil, fmt.Errorf("hosted-link mode requires RZP_PAYMENT_PAGE_URL or RZP_KEY_SECRET")
	}

	return cfg, nil
}

func getEnvOrViper(key, defaultValue string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	if viper.IsSet(key) {
		return viper.GetString(key)
	}
	return defaultValue
}

func intOrDefault(key string, defaultValue int) int {
	if viper.IsSet(key) {
		if v := viper.GetInt(key); v != 0 {
			return v
		}
	}
	return defaultValue
}
