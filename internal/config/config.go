package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	CORS       CORSConfig
	MarketData MarketDataConfig
	Session    SessionConfig
	Capital    CapitalConfig
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port string
	Host string
	Addr string // Combined host:port for convenience
}

// DatabaseConfig holds database-specific configuration
type DatabaseConfig struct {
	Path string
}

// CORSConfig holds CORS-specific configuration
type CORSConfig struct {
	AllowedOrigins []string
}

// MarketDataConfig holds settings for the market-data relay client.
type MarketDataConfig struct {
	BaseURL  string
	CacheTTL time.Duration
	CacheMax int
}

// SessionConfig holds session-token settings. Key is a base64 fernet key;
// tokens older than TTL are rejected.
type SessionConfig struct {
	Key string
	TTL time.Duration
}

// CapitalConfig holds capital-engine settings. Timezone is the fixed
// reference zone used to resolve "today" and day bounds; DefaultStartingCash
// seeds lazily created user settings; SnapshotSpec and EndOfDaySpec are cron
// schedules for the intraday and closing mark-to-market jobs (empty disables
// either job).
type CapitalConfig struct {
	Timezone            string
	DefaultStartingCash float64
	SnapshotSpec        string
	EndOfDaySpec        string
}

// Load reads configuration from environment variables and .env file
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load()

	config := &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "5001"),
			Host: getEnv("SERVER_HOST", "localhost"),
		},
		Database: DatabaseConfig{
			Path: getEnv("DB_PATH", "./data/trade_journal.db"),
		},
		CORS: CORSConfig{
			AllowedOrigins: []string{
				"http://localhost:3000",
				"http://localhost",
			},
		},
		MarketData: MarketDataConfig{
			BaseURL:  getEnv("MARKET_DATA_URL", "http://localhost:8787"),
			CacheTTL: getDurationEnv("MARKET_DATA_CACHE_TTL", 5*time.Minute),
			CacheMax: getIntEnv("MARKET_DATA_CACHE_MAX", 200),
		},
		Session: SessionConfig{
			Key: getEnv("SESSION_KEY", ""),
			TTL: getDurationEnv("SESSION_TTL", 24*time.Hour),
		},
		Capital: CapitalConfig{
			Timezone:            getEnv("REFERENCE_TIMEZONE", "America/New_York"),
			DefaultStartingCash: getFloatEnv("DEFAULT_STARTING_CASH", 0),
			SnapshotSpec:        getEnv("SNAPSHOT_CRON", "*/15 9-16 * * 1-5"),
			EndOfDaySpec:        getEnv("END_OF_DAY_CRON", "5 17 * * 1-5"),
		},
	}

	// Combine host and port
	config.Server.Addr = fmt.Sprintf("%s:%s", config.Server.Host, config.Server.Port)

	if _, err := time.LoadLocation(config.Capital.Timezone); err != nil {
		return nil, fmt.Errorf("invalid REFERENCE_TIMEZONE %q: %w", config.Capital.Timezone, err)
	}

	return config, nil
}

// Location resolves the configured reference timezone.
// Load has already validated it, so failures here fall back to UTC.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Capital.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getIntEnv gets an integer environment variable or returns a default value
func getIntEnv(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}

// getFloatEnv gets a float environment variable or returns a default value
func getFloatEnv(key string, defaultValue float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return defaultValue
	}
	return parsed
}

// getDurationEnv gets a duration environment variable or returns a default value
func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}
