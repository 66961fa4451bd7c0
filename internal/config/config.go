package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

const (
	OrderStorePostgres = "postgres"
	OrderStoreGist     = "gist"
)

type Config struct {
	Port        string
	Environment string
	Database    DatabaseConfig
	Stripe      StripeConfig
	Storefront  StorefrontConfig
	Gist        GistConfig
	OrderStore  string
	LogLevel    string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type StripeConfig struct {
	SecretKey string
	Currency  string
}

type StorefrontConfig struct {
	// PublicBaseURL overrides the request origin in checkout redirect URLs
	PublicBaseURL     string
	ShippingCountries []string
}

type GistConfig struct {
	GistID  string
	Token   string
	BaseURL string
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
	viper.SetDefault("STRIPE_CURRENCY", "aud")
	viper.SetDefault("ORDER_STORE", OrderStorePostgres)

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
		Database: DatabaseConfig{
			Host:     getEnvOrViper("DB_HOST", "localhost"),
			Port:     getEnvOrViper("DB_PORT", "5432"),
			User:     getEnvOrViper("DB_USER", "postgres"),
			Password: getEnvOrViper("DB_PASSWORD", "postgres"),
			DBName:   getEnvOrViper("DB_NAME", "storefront"),
			SSLMode:  getEnvOrViper("DB_SSLMODE", "disable"),
		},
		Stripe: StripeConfig{
			SecretKey: getEnvOrViper("STRIPE_SECRET_KEY", ""),
			Currency:  strings.ToLower(getEnvOrViper("STRIPE_CURRENCY", "aud")),
		},
		Storefront: StorefrontConfig{
			PublicBaseURL:     strings.TrimSuffix(getEnvOrViper("PUBLIC_BASE_URL", ""), "/"),
			ShippingCountries: splitList(getEnvOrViper("SHIPPING_COUNTRIES", "AU")),
		},
		Gist: GistConfig{
			GistID:  getEnvOrViper("GITHUB_GIST_ID", ""),
			Token:   getEnvOrViper("GITHUB_TOKEN", ""),
			BaseURL: getEnvOrViper("GITHUB_API_URL", "https://api.github.com"),
		},
		OrderStore: strings.ToLower(getEnvOrViper("ORDER_STORE", OrderStorePostgres)),
		LogLevel:   getEnvOrViper("LOG_LEVEL", "info"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks required fields
func (c *Config) Validate() error {
	if c.Stripe.SecretKey == "" {
		return fmt.Errorf("STRIPE_SECRET_KEY is required")
	}
	switch c.OrderStore {
	case OrderStorePostgres:
	case OrderStoreGist:
		if c.Gist.GistID == "" {
			return fmt.Errorf("GITHUB_GIST_ID is required when ORDER_STORE=gist")
		}
		if c.Gist.Token == "" {
			return fmt.Errorf("GITHUB_TOKEN is required when ORDER_STORE=gist")
		}
	default:
		return fmt.Errorf("ORDER_STORE must be %q or %q, got %q", OrderStorePostgres, OrderStoreGist, c.OrderStore)
	}
	if len(c.Storefront.ShippingCountries) == 0 {
		return fmt.Errorf("SHIPPING_COUNTRIES must list at least one country")
	}
	// Checkout redirects must not be derived from request headers in production
	if c.Environment == "production" && c.Storefront.PublicBaseURL == "" {
		return fmt.Errorf("PUBLIC_BASE_URL is required in production")
	}
	return nil
}

// DSN builds a lib/pq connection string
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
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

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.ToUpper(strings.TrimSpace(part)); p != "" {
			out = append(out, p)
		}
	}
	return out
}
