package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"movielist-backend/internal/infrastructure/database"
)

const defaultSecretKey = "change-me"

// Config holds the whole application configuration.
// Values come from environment variables (optionally loaded from .env).
type Config struct {
	App      AppConfig
	Database *database.DBConfig
	Redis    RedisConfig
	TMDB     TMDBConfig
}

type AppConfig struct {
	Name        string
	Environment string // development, staging, production
	Port        string
	Version     string
	LogLevel    string
	SecretKey   string // signs flash cookies
}

type RedisConfig struct {
	Host     string
	Password string
	DB       int
}

// TMDBConfig configures the external movie search adapter.
type TMDBConfig struct {
	APIToken     string        // v4 read access token, sent as Bearer
	BaseURL      string        // https://api.themoviedb.org/3
	ImageBaseURL string        // prefix for poster_path
	Language     string        // en-US
	Timeout      time.Duration // outbound request timeout
	SearchTTL    time.Duration // cache TTL for search pages
	DetailTTL    time.Duration // cache TTL for movie details
	UseMock      bool          // offline catalog instead of the real API
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	dbConfig, err := LoadDatabaseConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load database config: %w", err)
	}

	timeout, err := getEnvDuration("TMDB_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}
	searchTTL, err := getEnvDuration("TMDB_SEARCH_TTL", time.Hour)
	if err != nil {
		return nil, err
	}
	detailTTL, err := getEnvDuration("TMDB_DETAIL_TTL", 24*time.Hour)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "Movie List"),
			Environment: getEnv("APP_ENV", "development"),
			Port:        getEnv("APP_PORT", "8080"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
			LogLevel:    getEnv("LOG_LEVEL", "info"),
			SecretKey:   getEnv("SECRET_KEY", defaultSecretKey),
		},
		Database: dbConfig,
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		TMDB: TMDBConfig{
			APIToken:     getEnv("TMDB_API_TOKEN", ""),
			BaseURL:      getEnv("TMDB_BASE_URL", "https://api.themoviedb.org/3"),
			ImageBaseURL: getEnv("TMDB_IMAGE_URL", "https://image.tmdb.org/t/p/w500"),
			Language:     getEnv("TMDB_LANGUAGE", "en-US"),
			Timeout:      timeout,
			SearchTTL:    searchTTL,
			DetailTTL:    detailTTL,
			UseMock:      getEnvBool("TMDB_USE_MOCK", false),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate rejects configurations that cannot work in the current environment.
func (c *Config) Validate() error {
	if c.App.Port == "" {
		return fmt.Errorf("APP_PORT must not be empty")
	}

	if c.IsProduction() {
		if c.App.SecretKey == defaultSecretKey || c.App.SecretKey == "" {
			return fmt.Errorf("SECRET_KEY must be set in production")
		}
		if c.TMDB.UseMock {
			return fmt.Errorf("TMDB_USE_MOCK is not allowed in production")
		}
		if c.Database.URL == "" && c.Database.Password == "" {
			return fmt.Errorf("DB_PASSWORD must be set in production")
		}
	}

	if !c.TMDB.UseMock && c.TMDB.APIToken == "" {
		return fmt.Errorf("TMDB_API_TOKEN must be set (or TMDB_USE_MOCK=true outside production)")
	}

	if c.TMDB.Timeout <= 0 {
		return fmt.Errorf("TMDB_TIMEOUT must be positive")
	}

	return nil
}

func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// Helper functions
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
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

func getEnvBool(key string, defaultValue bool) bool {
	valueStr := strings.TrimSpace(os.Getenv(key))
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue, nil
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return value, nil
}
