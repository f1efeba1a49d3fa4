package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Storage drivers.
const (
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL    string `validate:"required_if=StorageDriver postgres"`
	StorageDriver  string `validate:"required,oneof=postgres memory"`
	MigrationsPath string `validate:"required"`
	Port           string `validate:"required,numeric"`
	IsProduction   bool
	EnableDBCheck  bool
	JWTSecret      string `validate:"required,min=16"`
	JWTIssuer      string `validate:"required"`

	RateLimit          string   `validate:"required"`
	CORSAllowedOrigins []string `validate:"min=1"`

	PostRetryAttempts int `validate:"min=1,max=50"`

	Reconciliation ReconciliationConfig
}

// ReconciliationConfig tunes the reconciliation engine and its scheduler.
type ReconciliationConfig struct {
	Epsilon           decimal.Decimal
	HighThreshold     decimal.Decimal
	CriticalThreshold decimal.Decimal
	// Interval of zero disables the scheduler.
	Interval time.Duration `validate:"min=0"`
	// Tenants limits scheduled runs; empty means every tenant with accounts.
	Tenants []string
}

const insecureDefaultSecret = "a-very-secret-key-should-be-longer-and-random"

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	return fromViper(v)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PGSQL_URL", "")
	v.SetDefault("STORAGE_DRIVER", StoragePostgres)
	v.SetDefault("MIGRATIONS_PATH", "file://migrations")
	v.SetDefault("PORT", "8080")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("ENABLE_DB_CHECK", true)
	v.SetDefault("JWT_SECRET", insecureDefaultSecret)
	v.SetDefault("JWT_ISSUER", "ledger-core")
	v.SetDefault("RATE_LIMIT", "600-M")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	v.SetDefault("POST_RETRY_ATTEMPTS", 5)
	v.SetDefault("RECONCILIATION_EPSILON", "0.01")
	v.SetDefault("RECONCILIATION_HIGH_THRESHOLD", "100")
	v.SetDefault("RECONCILIATION_CRITICAL_THRESHOLD", "1000")
	v.SetDefault("RECONCILIATION_INTERVAL", "1h")
	v.SetDefault("RECONCILIATION_TENANTS", "")
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		DatabaseURL:        v.GetString("PGSQL_URL"),
		StorageDriver:      strings.ToLower(v.GetString("STORAGE_DRIVER")),
		MigrationsPath:     v.GetString("MIGRATIONS_PATH"),
		Port:               v.GetString("PORT"),
		IsProduction:       v.GetBool("IS_PRODUCTION"),
		EnableDBCheck:      v.GetBool("ENABLE_DB_CHECK"),
		JWTSecret:          v.GetString("JWT_SECRET"),
		JWTIssuer:          v.GetString("JWT_ISSUER"),
		RateLimit:          v.GetString("RATE_LIMIT"),
		CORSAllowedOrigins: splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
		PostRetryAttempts:  v.GetInt("POST_RETRY_ATTEMPTS"),
	}

	var err error
	rc := &cfg.Reconciliation
	if rc.Epsilon, err = decimalSetting(v, "RECONCILIATION_EPSILON"); err != nil {
		return nil, err
	}
	if rc.HighThreshold, err = decimalSetting(v, "RECONCILIATION_HIGH_THRESHOLD"); err != nil {
		return nil, err
	}
	if rc.CriticalThreshold, err = decimalSetting(v, "RECONCILIATION_CRITICAL_THRESHOLD"); err != nil {
		return nil, err
	}
	if rc.Interval, err = time.ParseDuration(v.GetString("RECONCILIATION_INTERVAL")); err != nil {
		return nil, fmt.Errorf("invalid RECONCILIATION_INTERVAL: %w", err)
	}
	rc.Tenants = splitList(v.GetString("RECONCILIATION_TENANTS"))

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if cfg.JWTSecret == insecureDefaultSecret {
		if cfg.IsProduction {
			return nil, fmt.Errorf("JWT_SECRET must be set in production")
		}
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	return cfg, nil
}

// Validate checks field constraints and threshold ordering.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	rc := c.Reconciliation
	if rc.Epsilon.IsNegative() {
		return fmt.Errorf("invalid configuration: RECONCILIATION_EPSILON cannot be negative")
	}
	if !rc.HighThreshold.GreaterThan(rc.Epsilon) || !rc.CriticalThreshold.GreaterThan(rc.HighThreshold) {
		return fmt.Errorf("invalid configuration: reconciliation thresholds must satisfy epsilon < high < critical")
	}
	return nil
}

func decimalSetting(v *viper.Viper, key string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(v.GetString(key)))
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
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
