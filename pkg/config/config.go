package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for finscope.
// All environment variables are read here and nowhere else.
type Config struct {
	Env string // development, staging, production

	// API server
	Port string

	// Market data provider
	MarketData MarketDataConfig

	// Optional collaborator-side caches
	Redis    RedisConfig
	Database DatabaseConfig

	// Universe catalog override (YAML); empty = embedded defaults
	UniverseFile string

	// Scheduler
	ScanCronSpec string // empty = scheduler disabled

	// Logging
	LogLevel  string
	LogFormat string
}

// MarketDataConfig holds settings for the Yahoo Finance provider.
type MarketDataConfig struct {
	BaseURL        string
	Timeout        time.Duration
	RequestsPerSec float64 // rate limit toward the provider host
	MaxConcurrent  int     // parallel per-symbol fetches
}

// RedisConfig holds the optional snapshot-cache settings.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	Enabled  bool
}

// DatabaseConfig holds the optional PostgreSQL price-store settings.
type DatabaseConfig struct {
	URL      string
	MaxConns int
	MinConns int
	Enabled  bool
}

// Load reads configuration from environment variables, with an optional
// .env file for local development.
func Load() (*Config, error) {
	loadEnvFile()

	cfg := &Config{
		Env:  getEnv("ENV", "development"),
		Port: getEnv("PORT", "8098"),

		MarketData: MarketDataConfig{
			BaseURL:        getEnv("MARKET_DATA_BASE_URL", "https://query1.finance.yahoo.com"),
			Timeout:        getEnvAsDuration("MARKET_DATA_TIMEOUT", "30s"),
			RequestsPerSec: getEnvAsFloat("MARKET_DATA_RPS", 4.0),
			MaxConcurrent:  getEnvAsInt("MARKET_DATA_MAX_CONCURRENT", 4),
		},

		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
			Enabled:  getEnvAsBool("REDIS_ENABLED", false),
		},

		Database: DatabaseConfig{
			URL:      getEnv("DATABASE_URL", ""),
			MaxConns: getEnvAsInt("DB_MAX_CONNS", 10),
			MinConns: getEnvAsInt("DB_MIN_CONNS", 2),
			Enabled:  getEnvAsBool("DB_ENABLED", false),
		},

		UniverseFile: getEnv("UNIVERSE_FILE", ""),
		ScanCronSpec: getEnv("SCAN_CRON", ""),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "console"),
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.Env != "development" && c.Env != "staging" && c.Env != "production" {
		return fmt.Errorf("ENV must be one of: development, staging, production")
	}
	if c.Database.Enabled && c.Database.URL == "" {
		return fmt.Errorf("DATABASE_URL is required when DB_ENABLED=true")
	}
	if c.MarketData.RequestsPerSec <= 0 {
		return fmt.Errorf("MARKET_DATA_RPS must be positive")
	}
	if c.MarketData.MaxConcurrent < 1 {
		return fmt.Errorf("MARKET_DATA_MAX_CONCURRENT must be at least 1")
	}
	return nil
}

// loadEnvFile tries to load .env from common locations.
func loadEnvFile() {
	paths := []string{".env"}

	if exe, err := os.Executable(); err == nil {
		exeDir := filepath.Dir(exe)
		paths = append(paths,
			filepath.Join(exeDir, ".env"),
			filepath.Join(exeDir, "..", ".env"),
		)
	}

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
			return
		}
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsDuration(key, defaultValue string) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		valueStr = defaultValue
	}
	d, err := time.ParseDuration(valueStr)
	if err != nil {
		d, _ = time.ParseDuration(defaultValue)
	}
	return d
}
