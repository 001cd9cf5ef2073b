// Package config loads platform configuration from the environment. A
// .env file in the working directory is honored when present; real
// deployments set the environment directly.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all runtime configuration
type Config struct {
	Server      ServerConfig
	Database    DatabaseConfig
	Logging     LoggingConfig
	Valuation   ValuationConfig
	Properties  PropertiesConfig
	PostcodeAPI PostcodeAPIConfig
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Host         string
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// DatabaseConfig holds PostgreSQL settings for the property extract
type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	Database        string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

// LoggingConfig holds logger settings
type LoggingConfig struct {
	Level string
}

// ValuationConfig holds index snapshot and engine settings. A zero
// CurrentYear defers to the snapshot's own reference year.
type ValuationConfig struct {
	SnapshotPath string
	CurrentYear  int
	BoundPct     float64
}

// PropertiesConfig selects the primary property source and its
// connection settings. Source is either "api" or "database"; the static
// fallback list serves when the primary is unreachable.
type PropertiesConfig struct {
	Source  string
	APIURL  string
	APIKey  string
	Timeout time.Duration
}

// PostcodeAPIConfig holds the postcode-to-region lookup endpoint
type PostcodeAPIConfig struct {
	URL     string
	Timeout time.Duration
}

// LoadConfig reads configuration from the environment
func LoadConfig() (*Config, error) {
	// Optional; absence is not an error.
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Host:         getEnv("SERVER_HOST", "0.0.0.0"),
			Port:         getEnvInt("SERVER_PORT", 8080),
			ReadTimeout:  getEnvDuration("SERVER_READ_TIMEOUT", 15*time.Second),
			WriteTimeout: getEnvDuration("SERVER_WRITE_TIMEOUT", 15*time.Second),
			IdleTimeout:  getEnvDuration("SERVER_IDLE_TIMEOUT", 60*time.Second),
		},
		Database: DatabaseConfig{
			Host:            getEnv("DB_HOST", "localhost"),
			Port:            getEnvInt("DB_PORT", 5432),
			User:            getEnv("DB_USER", "valuation"),
			Password:        getEnv("DB_PASSWORD", "valuation"),
			Database:        getEnv("DB_NAME", "valuation"),
			SSLMode:         getEnv("DB_SSLMODE", "disable"),
			MaxOpenConns:    getEnvInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns:    getEnvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getEnvDuration("DB_CONN_MAX_LIFETIME", 5*time.Minute),
			ConnMaxIdleTime: getEnvDuration("DB_CONN_MAX_IDLE_TIME", time.Minute),
		},
		Logging: LoggingConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Valuation: ValuationConfig{
			SnapshotPath: getEnv("HPI_SNAPSHOT_PATH", ""),
			CurrentYear:  getEnvInt("VALUATION_CURRENT_YEAR", 0),
			BoundPct:     getEnvFloat("VALUATION_BOUND_PCT", 0.05),
		},
		Properties: PropertiesConfig{
			Source:  getEnv("PROPERTY_SOURCE", "api"),
			APIURL:  getEnv("PROPERTY_API_URL", "https://api.property-extract.example.com/v1"),
			APIKey:  getEnv("PROPERTY_API_KEY", ""),
			Timeout: getEnvDuration("PROPERTY_API_TIMEOUT", 5*time.Second),
		},
		PostcodeAPI: PostcodeAPIConfig{
			URL:     getEnv("POSTCODE_API_URL", "https://api.postcodes.io"),
			Timeout: getEnvDuration("POSTCODE_API_TIMEOUT", 3*time.Second),
		},
	}

	return cfg, nil
}

// Validate checks configuration consistency
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port %d", c.Server.Port)
	}
	if c.Database.Port < 1 || c.Database.Port > 65535 {
		return fmt.Errorf("invalid database port %d", c.Database.Port)
	}
	if c.Database.MaxIdleConns > c.Database.MaxOpenConns {
		return fmt.Errorf("max idle connections (%d) exceeds max open connections (%d)",
			c.Database.MaxIdleConns, c.Database.MaxOpenConns)
	}
	if c.Properties.Source != "api" && c.Properties.Source != "database" {
		return fmt.Errorf("invalid property source %q, expected api or database", c.Properties.Source)
	}
	if c.Valuation.BoundPct <= 0 || c.Valuation.BoundPct >= 1 {
		return fmt.Errorf("valuation bound pct %v out of range (0, 1)", c.Valuation.BoundPct)
	}
	if c.Valuation.CurrentYear < 0 {
		return fmt.Errorf("valuation current year must not be negative")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil {
			return parsed
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return fallback
}
