package config_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pkordes/sf-experiences/backend/internal/config"
)

var allVars = []string{
	"PORT", "LOG_LEVEL", "CORS_ORIGINS", "STORE_BACKEND", "STORE_NAMESPACE", "STATE_FILE",
	"DATABASE_URL", "REDIS_ADDR", "REDIS_PASSWORD", "REDIS_DB", "MAPBOX_TOKEN",
	"PUBLIC_BASE_URL", "RATE_LIMIT_RPS", "RATE_LIMIT_BURST", "MAX_BODY_BYTES",
}

// clearEnv blanks every variable Load reads so the host environment cannot
// leak into a test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range allVars {
		t.Setenv(k, "")
	}
}

// TestLoad_defaults verifies that every variable falls back to its default.
func TestLoad_defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := config.Load()

	require.NoError(t, err)
	require.Equal(t, "8080", cfg.Port)
	require.Equal(t, "info", cfg.LogLevel)
	require.Equal(t, []string{"http://localhost:3000"}, cfg.CORSOrigins)
	require.Equal(t, config.BackendMemory, cfg.StoreBackend)
	require.Equal(t, "sf-experience-storage", cfg.StoreNamespace)
	require.Equal(t, "planner-state.json", cfg.StateFile)
	require.Equal(t, "localhost:6379", cfg.RedisAddr)
	require.Equal(t, 0, cfg.RedisDB)
	require.Empty(t, cfg.MapboxToken)
	require.Equal(t, "http://localhost:3000", cfg.PublicBaseURL)
	require.InDelta(t, 10.0, cfg.RateLimitRPS, 0.0001)
	require.Equal(t, 20, cfg.RateLimitBurst)
	require.Equal(t, int64(1<<20), cfg.MaxBodyBytes)
}

// TestLoad_overrides verifies that all values can be overridden via env vars.
func TestLoad_overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("CORS_ORIGINS", "https://app.example.com, https://admin.example.com")
	t.Setenv("STORE_BACKEND", "Postgres")
	t.Setenv("DATABASE_URL", "postgres://user:pass@db:5432/planner")
	t.Setenv("REDIS_DB", "2")
	t.Setenv("MAPBOX_TOKEN", "pk.test")
	t.Setenv("PUBLIC_BASE_URL", "https://sf.example.com/")
	t.Setenv("RATE_LIMIT_RPS", "0.5")
	t.Setenv("RATE_LIMIT_BURST", "3")
	t.Setenv("MAX_BODY_BYTES", "4096")

	cfg, err := config.Load()

	require.NoError(t, err)
	require.Equal(t, "9090", cfg.Port)
	require.Equal(t, "debug", cfg.LogLevel)
	require.Equal(t, []string{"https://app.example.com", "https://admin.example.com"}, cfg.CORSOrigins)
	require.Equal(t, config.BackendPostgres, cfg.StoreBackend)
	require.Equal(t, "postgres://user:pass@db:5432/planner", cfg.DatabaseURL)
	require.Equal(t, 2, cfg.RedisDB)
	require.Equal(t, "pk.test", cfg.MapboxToken)
	require.Equal(t, "https://sf.example.com", cfg.PublicBaseURL)
	require.InDelta(t, 0.5, cfg.RateLimitRPS, 0.0001)
	require.Equal(t, 3, cfg.RateLimitBurst)
	require.Equal(t, int64(4096), cfg.MaxBodyBytes)
}

// TestLoad_postgresRequiresDatabaseURL verifies that the error names the
// missing variable.
func TestLoad_postgresRequiresDatabaseURL(t *testing.T) {
	clearEnv(t)
	t.Setenv("STORE_BACKEND", "postgres")

	_, err := config.Load()

	require.Error(t, err)
	require.ErrorContains(t, err, "DATABASE_URL")
}

// TestLoad_reportsEveryInvalidVariable verifies that one error lists all problems.
func TestLoad_reportsEveryInvalidVariable(t *testing.T) {
	clearEnv(t)
	t.Setenv("STORE_BACKEND", "mongo")
	t.Setenv("REDIS_DB", "two")
	t.Setenv("RATE_LIMIT_RPS", "-1")
	t.Setenv("MAX_BODY_BYTES", "big")

	_, err := config.Load()

	require.Error(t, err)
	require.ErrorContains(t, err, "STORE_BACKEND")
	require.ErrorContains(t, err, "REDIS_DB")
	require.ErrorContains(t, err, "RATE_LIMIT_RPS")
	require.ErrorContains(t, err, "MAX_BODY_BYTES")
}
