package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"
)

// Supported database drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	// Environment
	Env      string // "development", "production", etc.
	LogLevel string

	// Server
	ServerAddr  string
	CORSOrigins string // Comma-separated allowed origins

	// Database
	DatabaseDriver string // "sqlite" or "postgres"
	DatabaseURL    string // SQLite file path or Postgres connection string

	// Tokens
	AccessTokenSecret  string
	RefreshTokenSecret string
	AccessTokenTTL     time.Duration
	RefreshTokenTTL    time.Duration
	CookieSecret       string // Used for encrypting the refresh cookie

	// Passwords
	BcryptCost int

	// Rate limiting
	RateLimitMax int
	RedisURL     string // Shared limiter storage, optional

	// Features
	MetricsEnabled bool

	// Seed file
	ConfigFile string
}

// Load reads configuration from environment variables with sensible defaults.
func Load() *Config {
	addr := getEnv("SERVER_ADDR", ":3000")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("SERVER_ADDR") == "" {
		addr = ":" + port
	}

	refreshSecret := getEnv("REFRESH_TOKEN_SECRET", "")

	return &Config{
		Env:                getEnv("ENV", "development"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		ServerAddr:         addr,
		CORSOrigins:        getEnv("CORS_ORIGINS", "http://localhost:5173"),
		DatabaseDriver:     getEnv("DATABASE_DRIVER", DriverSQLite),
		DatabaseURL:        getEnv("DATABASE_URL", "data.db"),
		AccessTokenSecret:  getEnv("ACCESS_TOKEN_SECRET", ""),
		RefreshTokenSecret: refreshSecret,
		AccessTokenTTL:     getDuration("ACCESS_TOKEN_TTL", 24*time.Hour),
		RefreshTokenTTL:    getDuration("REFRESH_TOKEN_TTL", 7*24*time.Hour),
		CookieSecret:       getEnv("COOKIE_SECRET", refreshSecret),
		BcryptCost:         getInt("BCRYPT_COST", 10),
		RateLimitMax:       getInt("RATE_LIMIT_MAX", 100),
		RedisURL:           getEnv("REDIS_URL", ""),
		MetricsEnabled:     getEnv("METRICS_ENABLED", "true") != "false",
		ConfigFile:         getEnv("CONFIG_FILE", "config.yaml"),
	}
}

// Validate reports the first configuration problem that prevents serving.
func (c *Config) Validate() error {
	if c.AccessTokenSecret == "" || c.RefreshTokenSecret == "" {
		return errors.New("ACCESS_TOKEN_SECRET and REFRESH_TOKEN_SECRET are required")
	}
	if c.AccessTokenSecret == c.RefreshTokenSecret {
		return errors.New("ACCESS_TOKEN_SECRET and REFRESH_TOKEN_SECRET must differ")
	}
	if c.AccessTokenTTL <= 0 || c.RefreshTokenTTL <= 0 {
		return errors.New("token TTLs must be positive")
	}
	switch c.DatabaseDriver {
	case DriverSQLite, DriverPostgres:
	default:
		return fmt.Errorf("unknown DATABASE_DRIVER %q", c.DatabaseDriver)
	}
	if c.DatabaseURL == "" {
		return errors.New("DATABASE_URL is required")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getInt(key string, fallback int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v, err := time.ParseDuration(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}

// IsDev returns true if the environment is set to development.
func (c *Config) IsDev() bool {
	return c.Env == "development" || c.Env == "dev"
}
