package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Store drivers.
const (
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// Config holds runtime configuration sourced from env vars.
type Config struct {
	Port        string
	CORSOrigins []string

	StoreDriver     string
	DatabaseURL     string
	PoolMin         int32
	PoolMax         int32
	ConnectTimeout  time.Duration
	BootstrapSchema bool
	SeedFile        string

	LogLevel  string
	LogFormat string
	LogFile   string
}

// Load reads configuration from the environment and performs minimal validation.
func Load() (Config, error) {
	return load(os.Getenv)
}

func load(getenv func(string) string) (Config, error) {
	cfg := Config{
		Port:        fallback(getenv("PORT"), "3000"),
		CORSOrigins: parseCSV(fallback(getenv("CORS_ALLOWED_ORIGINS"), "*")),
		StoreDriver: strings.ToLower(fallback(getenv("STORE_DRIVER"), DriverPostgres)),
		DatabaseURL: strings.TrimSpace(getenv("DATABASE_URL")),
		SeedFile:    strings.TrimSpace(getenv("SEED_FILE")),
		LogLevel:    strings.ToLower(fallback(getenv("LOG_LEVEL"), "info")),
		LogFormat:   strings.ToLower(fallback(getenv("LOG_FORMAT"), "json")),
		LogFile:     strings.TrimSpace(getenv("LOG_FILE")),
	}

	var err error
	if cfg.PoolMin, err = parseInt32(getenv, "DB_POOL_MIN", 10); err != nil {
		return Config{}, err
	}
	if cfg.PoolMax, err = parseInt32(getenv, "DB_POOL_MAX", 10); err != nil {
		return Config{}, err
	}
	seconds, err := parseInt32(getenv, "DB_CONNECT_TIMEOUT_SECONDS", 10)
	if err != nil {
		return Config{}, err
	}
	cfg.ConnectTimeout = time.Duration(seconds) * time.Second
	if cfg.BootstrapSchema, err = parseBool(getenv, "DB_BOOTSTRAP_SCHEMA", false); err != nil {
		return Config{}, err
	}

	switch cfg.StoreDriver {
	case DriverPostgres:
		if cfg.DatabaseURL == "" {
			return Config{}, errors.New("DATABASE_URL is required")
		}
	case DriverMemory:
	default:
		return Config{}, fmt.Errorf("STORE_DRIVER must be %q or %q, got %q", DriverPostgres, DriverMemory, cfg.StoreDriver)
	}
	if cfg.PoolMin < 1 || cfg.PoolMax < 1 {
		return Config{}, errors.New("DB_POOL_MIN and DB_POOL_MAX must be positive")
	}
	if cfg.PoolMin > cfg.PoolMax {
		return Config{}, fmt.Errorf("DB_POOL_MIN (%d) exceeds DB_POOL_MAX (%d)", cfg.PoolMin, cfg.PoolMax)
	}
	if cfg.ConnectTimeout <= 0 {
		return Config{}, errors.New("DB_CONNECT_TIMEOUT_SECONDS must be positive")
	}
	if cfg.LogFormat != "json" && cfg.LogFormat != "console" {
		return Config{}, fmt.Errorf("LOG_FORMAT must be json or console, got %q", cfg.LogFormat)
	}

	return cfg, nil
}

// HTTPAddress returns the host:port pair for the HTTP server to bind to.
func (c Config) HTTPAddress() string {
	return fmt.Sprintf(":%s", c.Port)
}

func fallback(value, def string) string {
	if strings.TrimSpace(value) == "" {
		return def
	}
	return strings.TrimSpace(value)
}

func parseInt32(getenv func(string) string, key string, def int32) (int32, error) {
	raw := strings.TrimSpace(getenv(key))
	if raw == "" {
		return def, nil
	}
	n, err := strconv.ParseInt(raw, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return int32(n), nil
}

func parseBool(getenv func(string) string, key string, def bool) (bool, error) {
	raw := strings.TrimSpace(getenv(key))
	if raw == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("%s: %w", key, err)
	}
	return b, nil
}

func parseCSV(input string) []string {
	parts := strings.Split(input, ",")
	var out []string
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}
