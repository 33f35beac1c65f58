package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Logger   LoggerConfig
	Auth     AuthConfig
	Quota    QuotaConfig
	Plan     PlanConfig
	Stripe   StripeConfig
}

// ServerConfig holds server-related configuration.
type ServerConfig struct {
	Host string
	Port int
}

// DatabaseConfig holds database-related configuration.
type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	Database        string
	MaxConnections  int
	MinConnections  int
	MaxConnLifetime int // seconds
}

// LoggerConfig holds logger-related configuration.
type LoggerConfig struct {
	Level  string
	Format string // "json" or "console"
}

// AuthConfig holds token verification configuration.
type AuthConfig struct {
	JWTSecret    string
	TokenTTLMins int
}

// QuotaConfig surfaces the two behaviours the source revisions disagreed on.
//
// AllowAtLimit selects the quota comparison: false admits a product only
// while lineOfProduct < productLimit; true also admits at equality.
// SequentialShopSerial selects shop-id derivation: true assigns the next
// serial among shops sharing a normalized name; false always uses "0001"
// (the legacy behaviour, which collides).
type QuotaConfig struct {
	AllowAtLimit         bool
	SequentialShopSerial bool
}

// PlanConfig holds the payment-plan catalog source. When S3 is enabled the
// catalog is fetched from the bucket/key; otherwise FilePath is read when
// set, and the built-in tier table is used as a last resort.
type PlanConfig struct {
	S3Enabled bool
	S3Bucket  string
	S3Region  string
	S3Key     string
	FilePath  string
}

// StripeConfig holds the payment-gateway credentials.
type StripeConfig struct {
	SecretKey string
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
			Port: getEnvAsInt("SERVER_PORT", 5000),
		},
		Database: DatabaseConfig{
			Host:            getEnv("DB_HOST", "localhost"),
			Port:            getEnvAsInt("DB_PORT", 5432),
			User:            getEnv("DB_USER", "postgres"),
			Password:        getEnv("DB_PASSWORD", ""),
			Database:        getEnv("DB_NAME", "inventifyhub"),
			MaxConnections:  getEnvAsInt("DB_MAX_CONNECTIONS", 25),
			MinConnections:  getEnvAsInt("DB_MIN_CONNECTIONS", 5),
			MaxConnLifetime: getEnvAsInt("DB_MAX_CONN_LIFETIME", 300),
		},
		Logger: LoggerConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
		Auth: AuthConfig{
			JWTSecret:    getEnv("ACCESS_TOKEN_SECRET", ""),
			TokenTTLMins: getEnvAsInt("ACCESS_TOKEN_TTL_MINS", 60),
		},
		Quota: QuotaConfig{
			AllowAtLimit:         getEnvAsBool("QUOTA_ALLOW_AT_LIMIT", false),
			SequentialShopSerial: getEnvAsBool("SHOP_ID_SEQUENTIAL", true),
		},
		Plan: PlanConfig{
			S3Enabled: getEnvAsBool("PLAN_S3_ENABLED", false),
			S3Bucket:  getEnv("PLAN_S3_BUCKET", ""),
			S3Region:  getEnv("PLAN_S3_REGION", "us-east-1"),
			S3Key:     getEnv("PLAN_S3_KEY", "plans.json"),
			FilePath:  getEnv("PLAN_FILE", ""),
		},
		Stripe: StripeConfig{
			SecretKey: getEnv("STRIPE_SECRET_KEY", ""),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	if c.Database.Host == "" {
		return fmt.Errorf("database host is required")
	}

	if c.Database.Port < 1 || c.Database.Port > 65535 {
		return fmt.Errorf("invalid database port: %d", c.Database.Port)
	}

	if c.Database.User == "" {
		return fmt.Errorf("database user is required")
	}

	if c.Database.Database == "" {
		return fmt.Errorf("database name is required")
	}

	if c.Database.MaxConnections < 1 {
		return fmt.Errorf("database max connections must be at least 1")
	}

	if c.Database.MinConnections < 1 {
		return fmt.Errorf("database min connections must be at least 1")
	}

	if c.Database.MinConnections > c.Database.MaxConnections {
		return fmt.Errorf("database min connections cannot exceed max connections")
	}

	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("access token secret is required")
	}

	if c.Auth.TokenTTLMins < 1 {
		return fmt.Errorf("token TTL must be at least 1 minute")
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}

	if !validLogLevels[c.Logger.Level] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Logger.Level)
	}

	if c.Logger.Format != "json" && c.Logger.Format != "console" {
		return fmt.Errorf("invalid log format: %s (must be json or console)", c.Logger.Format)
	}

	if c.Plan.S3Enabled {
		if c.Plan.S3Bucket == "" {
			return fmt.Errorf("plan S3 bucket is required when plan S3 is enabled")
		}
		if c.Plan.S3Region == "" {
			return fmt.Errorf("plan S3 region is required when plan S3 is enabled")
		}
	}

	return nil
}

// ConnectionString returns the PostgreSQL connection string.
func (c *DatabaseConfig) ConnectionString() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.User,
		c.Password,
		c.Host,
		c.Port,
		c.Database,
	)
}

// Address returns the server address.
func (c *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// getEnv retrieves an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer or returns a default value.
func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvAsBool retrieves an environment variable as a boolean or returns a default value.
func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
