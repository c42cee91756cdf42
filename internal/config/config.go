package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Port        string
	Environment string
	LogLevel    string
	Backend     BackendConfig
	Search      SearchConfig
	Payment     PaymentConfig
	Session     SessionConfig
	Database    DatabaseConfig
	Redis       RedisConfig
	Identity    IdentityConfig
	Installment InstallmentConfig
}

type BackendConfig struct {
	BaseURL string
	Timeout time.Duration
}

type SearchConfig struct {
	Debounce         time.Duration
	MinLength        int
	SuggestionLimit  int
	PlaceholderImage string
	CacheTTL         time.Duration
}

type PaymentConfig struct {
	PollInterval    time.Duration
	PollMaxAttempts int
}

type SessionConfig struct {
	// Store is one of memory, postgres, redis or file.
	Store string
	TTL   time.Duration
	File  string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// DSN renders the lib/pq connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

type RedisConfig struct {
	URL string
}

type IdentityConfig struct {
	MaxUploadBytes int64
}

type InstallmentConfig struct {
	PlansTTL time.Duration
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
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_SSLMODE", "disable")

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		// It's okay if .env doesn't exist, we'll use env vars
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var errs []error
	duration := func(key, def string) time.Duration {
		d, err := time.ParseDuration(getEnvOrViper(key, def))
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", key, err))
		}
		return d
	}
	integer := func(key string, def int) int {
		raw := getEnvOrViper(key, strconv.Itoa(def))
		n, err := strconv.Atoi(raw)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", key, err))
		}
		return n
	}

	cfg := &Config{
		Port:        getEnvOrViper("PORT", "8080"),
		Environment: getEnvOrViper("ENVIRONMENT", "development"),
		LogLevel:    getEnvOrViper("LOG_LEVEL", "info"),
		Backend: BackendConfig{
			BaseURL: getEnvOrViper("BACKEND_BASE_URL", ""),
			Timeout: duration("BACKEND_TIMEOUT", "10s"),
		},
		Search: SearchConfig{
			Debounce:         duration("SEARCH_DEBOUNCE", "300ms"),
			MinLength:        integer("SEARCH_MIN_LENGTH", 1),
			SuggestionLimit:  integer("SEARCH_SUGGESTION_LIMIT", 6),
			PlaceholderImage: getEnvOrViper("SEARCH_PLACEHOLDER_IMAGE", "/no-image.png"),
			CacheTTL:         duration("SEARCH_CACHE_TTL", "30s"),
		},
		Payment: PaymentConfig{
			PollInterval:    duration("PAYMENT_POLL_INTERVAL", "2s"),
			PollMaxAttempts: integer("PAYMENT_POLL_MAX_ATTEMPTS", 30),
		},
		Session: SessionConfig{
			Store: getEnvOrViper("SESSION_STORE", "memory"),
			TTL:   duration("SESSION_TTL", "720h"),
			File:  getEnvOrViper("SESSION_FILE", defaultSessionFile()),
		},
		Database: DatabaseConfig{
			Host:     getEnvOrViper("DB_HOST", "localhost"),
			Port:     getEnvOrViper("DB_PORT", "5432"),
			User:     getEnvOrViper("DB_USER", "postgres"),
			Password: getEnvOrViper("DB_PASSWORD", "postgres"),
			DBName:   getEnvOrViper("DB_NAME", "storefront"),
			SSLMode:  getEnvOrViper("DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			URL: getEnvOrViper("REDIS_URL", ""),
		},
		Identity: IdentityConfig{
			MaxUploadBytes: int64(integer("IDENTITY_MAX_UPLOAD_BYTES", 5<<20)),
		},
		Installment: InstallmentConfig{
			PlansTTL: duration("INSTALLMENT_PLANS_TTL", "10m"),
		},
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("invalid configuration: %v", errs)
	}

	// Validate required fields
	if cfg.Backend.BaseURL == "" {
		return nil, fmt.Errorf("BACKEND_BASE_URL is required")
	}
	if cfg.Search.SuggestionLimit < 1 {
		return nil, fmt.Errorf("SEARCH_SUGGESTION_LIMIT must be positive")
	}
	if cfg.Payment.PollMaxAttempts < 1 {
		return nil, fmt.Errorf("PAYMENT_POLL_MAX_ATTEMPTS must be positive")
	}
	switch cfg.Session.Store {
	case "memory", "postgres", "redis", "file":
	default:
		return nil, fmt.Errorf("SESSION_STORE %q is not supported", cfg.Session.Store)
	}
	if cfg.Session.Store == "redis" && cfg.Redis.URL == "" {
		return nil, fmt.Errorf("REDIS_URL is required when SESSION_STORE=redis")
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

func defaultSessionFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ".storefront-session.yaml"
	}
	return dir + "/storefront/session.yaml"
}
