package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"shortlink-be/internal/logger"
)

const (
	BackendPostgres = "postgres"
	BackendRedis    = "redis"
)

type Config struct {
	Port               string
	BaseURL            string // Public base URL used to build short URLs; derived from the request when empty
	AppEnv             string
	LogLevel           string
	StoreBackend       string // "postgres" or "redis"
	DatabaseURL        string
	RedisURL           string // Store for the redis backend, lookup cache for postgres (optional there)
	CacheTTL           time.Duration
	StoreTimeout       time.Duration // Upper bound for a single store operation
	ShortenMaxAttempts int           // Identifier generations tried before giving up on collisions
	CORSAllowedOrigins []string
	ShutdownTimeout    time.Duration
}

func Load() *Config {
	// Try to load .env file (ignore error if file doesn't exist)
	if err := godotenv.Load(); err != nil {
		logger.Info().Msg("No .env file found, using environment variables or defaults")
	}

	return &Config{
		Port:               getEnv("PORT", "8080"),
		BaseURL:            strings.TrimRight(getEnv("BASE_URL", ""), "/"),
		AppEnv:             getEnv("APP_ENV", "development"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		StoreBackend:       strings.ToLower(getEnv("STORE_BACKEND", BackendPostgres)),
		DatabaseURL:        getEnv("DATABASE_URL", ""),
		RedisURL:           getEnv("REDIS_URL", ""),
		CacheTTL:           getEnvDuration("CACHE_TTL", time.Hour),
		StoreTimeout:       getEnvDuration("STORE_TIMEOUT", 3*time.Second),
		ShortenMaxAttempts: getEnvInt("SHORTEN_MAX_ATTEMPTS", 5),
		CORSAllowedOrigins: getEnvList("CORS_ALLOWED_ORIGINS", []string{"*"}),
		ShutdownTimeout:    getEnvDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
	}
}

// Validate reports settings that make the process unable to start.
func (c *Config) Validate() error {
	var errs []error

	switch c.StoreBackend {
	case BackendPostgres:
		if c.DatabaseURL == "" {
			errs = append(errs, errors.New("DATABASE_URL is required for the postgres store"))
		}
	case BackendRedis:
		if c.RedisURL == "" {
			errs = append(errs, errors.New("REDIS_URL is required for the redis store"))
		}
	default:
		errs = append(errs, errors.New("STORE_BACKEND must be \"postgres\" or \"redis\", got \""+c.StoreBackend+"\""))
	}

	if c.ShortenMaxAttempts < 1 {
		errs = append(errs, errors.New("SHORTEN_MAX_ATTEMPTS must be at least 1"))
	}
	if c.StoreTimeout <= 0 {
		errs = append(errs, errors.New("STORE_TIMEOUT must be positive"))
	}

	return errors.Join(errs...)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func getEnvList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
