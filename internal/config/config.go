// Package config loads process configuration from the environment.
//
// A .env file in the working directory is loaded first if present; real
// environment variables always win over values from the file.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"

	defaultSQLitePath = "data/qa.db"
)

type HTTPConfig struct {
	Addr            string
	ShutdownTimeout time.Duration
	AllowedOrigins  []string
}

type DBConfig struct {
	Driver       string // "sqlite" or "postgres"
	URL          string // file path for sqlite, DSN for postgres
	MaxOpenConns int
}

type AppConfig struct {
	LogLevel string
	NATSURL  string
	HTTP     HTTPConfig
	DB       DBConfig
}

// Load reads configuration, applying defaults for anything unset.
func Load() (AppConfig, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return AppConfig{}, fmt.Errorf("config: reading .env: %w", err)
	}

	cfg := AppConfig{
		LogLevel: envString("LOG_LEVEL", "info"),
		NATSURL:  envString("NATS_URL", ""),
		HTTP: HTTPConfig{
			Addr:           envString("HTTP_ADDR", ":8080"),
			AllowedOrigins: parseOrigins(os.Getenv("CORS_ALLOWED_ORIGINS")),
		},
		DB: DBConfig{
			Driver: strings.ToLower(envString("DB_DRIVER", DriverSQLite)),
			URL:    envString("DATABASE_URL", ""),
		},
	}

	var err error
	if cfg.HTTP.ShutdownTimeout, err = envDuration("SHUTDOWN_TIMEOUT", 15*time.Second); err != nil {
		return AppConfig{}, err
	}
	if cfg.DB.MaxOpenConns, err = envInt("DB_MAX_OPEN_CONNS", 10); err != nil {
		return AppConfig{}, err
	}

	switch cfg.DB.Driver {
	case DriverSQLite:
		if cfg.DB.URL == "" {
			cfg.DB.URL = defaultSQLitePath
		}
	case DriverPostgres:
		if cfg.DB.URL == "" {
			return AppConfig{}, errors.New("config: DATABASE_URL is required when DB_DRIVER=postgres")
		}
	default:
		return AppConfig{}, fmt.Errorf("config: unsupported DB_DRIVER %q", cfg.DB.Driver)
	}

	return cfg, nil
}

func envString(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) (int, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("config: %s must be a positive integer, got %q", key, v)
	}
	return n, nil
}

func envDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("config: %s must be a positive duration, got %q", key, v)
	}
	return d, nil
}

func parseOrigins(raw string) []string {
	var origins []string
	for _, o := range strings.Split(raw, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}
