package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func env(vars map[string]string) func(string) string {
	return func(key string) string { return vars[key] }
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := load(env(map[string]string{"DATABASE_URL": "postgres://localhost/varadhi"}))
	require.NoError(t, err)

	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, ":3000", cfg.HTTPAddress())
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
	assert.Equal(t, DriverPostgres, cfg.StoreDriver)
	assert.Equal(t, int32(10), cfg.PoolMin)
	assert.Equal(t, int32(10), cfg.PoolMax)
	assert.Equal(t, 10*time.Second, cfg.ConnectTimeout)
	assert.False(t, cfg.BootstrapSchema)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
}

func TestLoadOverrides(t *testing.T) {
	cfg, err := load(env(map[string]string{
		"PORT":                       "8080",
		"CORS_ALLOWED_ORIGINS":       "http://a.test, http://b.test ,",
		"STORE_DRIVER":               "MEMORY",
		"SEED_FILE":                  " dev/seed.yaml ",
		"DB_POOL_MIN":                "2",
		"DB_POOL_MAX":                "4",
		"DB_CONNECT_TIMEOUT_SECONDS": "3",
		"DB_BOOTSTRAP_SCHEMA":        "true",
		"LOG_FORMAT":                 "console",
	}))
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTPAddress())
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSOrigins)
	assert.Equal(t, DriverMemory, cfg.StoreDriver)
	assert.Equal(t, "dev/seed.yaml", cfg.SeedFile)
	assert.Equal(t, int32(2), cfg.PoolMin)
	assert.Equal(t, int32(4), cfg.PoolMax)
	assert.Equal(t, 3*time.Second, cfg.ConnectTimeout)
	assert.True(t, cfg.BootstrapSchema)
	assert.Equal(t, "console", cfg.LogFormat)
}

func TestLoadRejectsInvalid(t *testing.T) {
	cases := map[string]map[string]string{
		"missing database url": {},
		"unknown driver":       {"STORE_DRIVER": "sqlite"},
		"pool not a number":    {"STORE_DRIVER": "memory", "DB_POOL_MAX": "ten"},
		"pool zero":            {"STORE_DRIVER": "memory", "DB_POOL_MIN": "0"},
		"min above max":        {"STORE_DRIVER": "memory", "DB_POOL_MIN": "5", "DB_POOL_MAX": "2"},
		"timeout negative":     {"STORE_DRIVER": "memory", "DB_CONNECT_TIMEOUT_SECONDS": "-1"},
		"bad bool":             {"STORE_DRIVER": "memory", "DB_BOOTSTRAP_SCHEMA": "maybe"},
		"bad log format":       {"STORE_DRIVER": "memory", "LOG_FORMAT": "xml"},
	}
	for name, vars := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := load(env(vars))
			assert.Error(t, err)
		})
	}
}
