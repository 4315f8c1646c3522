package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/shopspring/decimal"
)

// Storage driver names.
const (
	DriverFile     = "file"
	DriverPostgres = "postgres"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig
	Storage  StorageConfig
	Database DatabaseConfig
	Logger   LoggerConfig
	Auth     AuthConfig
	Shop     ShopConfig
}

// ServerConfig holds server-related configuration.
type ServerConfig struct {
	Host string
	Port int
}

// StorageConfig selects the collection store backend.
type StorageConfig struct {
	Driver  string
	DataDir string // directory for the flat JSON files (file driver)
}

// DatabaseConfig holds database-related configuration (postgres driver).
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

// AuthConfig holds the two independent admin secrets. AdminKey gates every
// admin endpoint; ProductActionKey additionally gates product deletion.
type AuthConfig struct {
	AdminKey         string
	ProductActionKey string
}

// ShopConfig holds the business constants. These are settings, not
// hardcoded invariants.
type ShopConfig struct {
	FreeShippingThreshold decimal.Decimal // subtotal at which delivery is free
	DeliveryFee           decimal.Decimal // flat fee below the threshold
	PostalCodeLength      int
	MinPhoneDigits        int
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	threshold, err := getEnvAsDecimal("FREE_SHIPPING_THRESHOLD", "200")
	if err != nil {
		return nil, err
	}
	fee, err := getEnvAsDecimal("DELIVERY_FEE", "7.5")
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
			Port: getEnvAsInt("SERVER_PORT", 5000),
		},
		Storage: StorageConfig{
			Driver:  getEnv("STORAGE_DRIVER", DriverFile),
			DataDir: getEnv("DATA_DIR", "data"),
		},
		Database: DatabaseConfig{
			Host:            getEnv("DB_HOST", "localhost"),
			Port:            getEnvAsInt("DB_PORT", 5432),
			User:            getEnv("DB_USER", "postgres"),
			Password:        getEnv("DB_PASSWORD", ""),
			Database:        getEnv("DB_NAME", "tndshop"),
			MaxConnections:  getEnvAsInt("DB_MAX_CONNECTIONS", 25),
			MinConnections:  getEnvAsInt("DB_MIN_CONNECTIONS", 5),
			MaxConnLifetime: getEnvAsInt("DB_MAX_CONN_LIFETIME", 300),
		},
		Logger: LoggerConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
		Auth: AuthConfig{
			AdminKey:         getEnv("ADMIN_KEY", ""),
			ProductActionKey: getEnv("PRODUCT_ACTION_KEY", ""),
		},
		Shop: ShopConfig{
			FreeShippingThreshold: threshold,
			DeliveryFee:           fee,
			PostalCodeLength:      getEnvAsInt("POSTAL_CODE_LENGTH", 4),
			MinPhoneDigits:        getEnvAsInt("MIN_PHONE_DIGITS", 8),
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

	switch c.Storage.Driver {
	case DriverFile:
		if c.Storage.DataDir == "" {
			return fmt.Errorf("data directory is required for the file driver")
		}
	case DriverPostgres:
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
	default:
		return fmt.Errorf("invalid storage driver: %s (must be file or postgres)", c.Storage.Driver)
	}

	if c.Auth.AdminKey == "" {
		return fmt.Errorf("admin key is required")
	}

	if c.Auth.ProductActionKey == "" {
		return fmt.Errorf("product action key is required")
	}

	if c.Auth.AdminKey == c.Auth.ProductActionKey {
		return fmt.Errorf("admin key and product action key must differ")
	}

	if c.Shop.FreeShippingThreshold.IsNegative() {
		return fmt.Errorf("free shipping threshold cannot be negative")
	}

	if c.Shop.DeliveryFee.IsNegative() {
		return fmt.Errorf("delivery fee cannot be negative")
	}

	if c.Shop.PostalCodeLength < 1 {
		return fmt.Errorf("postal code length must be at least 1")
	}

	if c.Shop.MinPhoneDigits < 1 {
		return fmt.Errorf("minimum phone digits must be at least 1")
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

// getEnvAsDecimal retrieves an environment variable as a decimal. Unlike the
// other helpers a malformed value is an error rather than a silent default,
// since a mangled fee or threshold would silently misprice every order.
func getEnvAsDecimal(key, defaultValue string) (decimal.Decimal, error) {
	value := os.Getenv(key)
	if value == "" {
		value = defaultValue
	}
	d, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid decimal value for %s: %q", key, value)
	}
	return d, nil
}
