package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds the whole application configuration, populated from
// environment variables. godotenv loads the .env file in main for local
// development; production relies on real environment variables.
type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Fusion   FusionConfig
}

type AppConfig struct {
	Name        string
	Environment string // development, staging, production
	Port        string
	LogLevel    string
}

type DatabaseConfig struct {
	Host          string
	Port          int
	User          string
	Password      string
	Database      string
	SSLMode       string
	MaxConns      int
	MinConns      int
	MigrationsDir string
}

type RedisConfig struct {
	Host     string
	Password string
	DB       int
}

type FusionConfig struct {
	// SessionTTL bounds how long an abandoned fusion session is kept
	// before the registry sweeps it.
	SessionTTL    time.Duration
	SweepInterval time.Duration
}

func Load() (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "Library Catalog API"),
			Environment: getEnv("APP_ENV", "development"),
			Port:        getEnv("APP_PORT", "8080"),
			LogLevel:    getEnv("APP_LOG_LEVEL", "info"),
		},
		Database: DatabaseConfig{
			Host:          getEnv("DB_HOST", "localhost"),
			Port:          getEnvInt("DB_PORT", 5432),
			User:          getEnv("DB_USER", "postgres"),
			Password:      getEnv("DB_PASSWORD", ""),
			Database:      getEnv("DB_NAME", "library"),
			SSLMode:       getEnv("DB_SSLMODE", "disable"),
			MaxConns:      getEnvInt("DB_MAX_CONNS", 25),
			MinConns:      getEnvInt("DB_MIN_CONNS", 5),
			MigrationsDir: getEnv("DB_MIGRATIONS_DIR", "migrations"),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		Fusion: FusionConfig{
			SessionTTL:    getEnvDuration("FUSION_SESSION_TTL", 30*time.Minute),
			SweepInterval: getEnvDuration("FUSION_SWEEP_INTERVAL", 5*time.Minute),
		},
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return n
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return d
}
