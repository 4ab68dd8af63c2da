package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearGW2OASEnv clears all GW2OAS_* env vars to isolate tests from the ambient environment.
func clearGW2OASEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"GW2OAS_LOG_LEVEL", "GW2OAS_LOG_FILE", "GW2OAS_SERVE_ADDR",
		"GW2OAS_WATCH_DEBOUNCE", "GW2OAS_CORS_ORIGINS", "GW2OAS_VALIDATE",
		"GW2OAS_MAX_INLINE_SIZE", "GW2OAS_MCP_CACHE_ENABLED", "GW2OAS_MCP_CACHE_SIZE",
		"GW2OAS_MCP_CACHE_TTL",
	} {
		t.Setenv(key, "")
	}
}

func missingEnvFile(t *testing.T) string {
	return filepath.Join(t.TempDir(), "absent.env")
}

func TestLoad_Defaults(t *testing.T) {
	clearGW2OASEnv(t)

	c := Load(missingEnvFile(t))

	assert.Equal(t, slog.LevelInfo, c.LogLevel)
	assert.Empty(t, c.LogFile)
	assert.Equal(t, ":8080", c.ServeAddr)
	assert.Equal(t, 200*time.Millisecond, c.WatchDebounce)
	assert.Equal(t, []string{"*"}, c.CORSOrigins)
	assert.False(t, c.Validate)
	assert.Equal(t, int64(10*1024*1024), c.MaxInlineSize)
	assert.True(t, c.CacheEnabled)
	assert.Equal(t, 10, c.CacheSize)
	assert.Equal(t, 15*time.Minute, c.CacheTTL)
}

func TestLoad_EnvOverrides(t *testing.T) {
	clearGW2OASEnv(t)
	t.Setenv("GW2OAS_LOG_LEVEL", "debug")
	t.Setenv("GW2OAS_LOG_FILE", "/tmp/gw2oas.log")
	t.Setenv("GW2OAS_SERVE_ADDR", "127.0.0.1:9000")
	t.Setenv("GW2OAS_WATCH_DEBOUNCE", "1s")
	t.Setenv("GW2OAS_CORS_ORIGINS", "https://a.example, https://b.example,")
	t.Setenv("GW2OAS_VALIDATE", "true")
	t.Setenv("GW2OAS_MAX_INLINE_SIZE", "1024")
	t.Setenv("GW2OAS_MCP_CACHE_ENABLED", "false")
	t.Setenv("GW2OAS_MCP_CACHE_SIZE", "3")
	t.Setenv("GW2OAS_MCP_CACHE_TTL", "1m")

	c := Load(missingEnvFile(t))

	assert.Equal(t, slog.LevelDebug, c.LogLevel)
	assert.Equal(t, "/tmp/gw2oas.log", c.LogFile)
	assert.Equal(t, "127.0.0.1:9000", c.ServeAddr)
	assert.Equal(t, time.Second, c.WatchDebounce)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, c.CORSOrigins)
	assert.True(t, c.Validate)
	assert.Equal(t, int64(1024), c.MaxInlineSize)
	assert.False(t, c.CacheEnabled)
	assert.Equal(t, 3, c.CacheSize)
	assert.Equal(t, time.Minute, c.CacheTTL)
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	clearGW2OASEnv(t)
	t.Setenv("GW2OAS_LOG_LEVEL", "loud")
	t.Setenv("GW2OAS_WATCH_DEBOUNCE", "-1s")
	t.Setenv("GW2OAS_VALIDATE", "maybe")
	t.Setenv("GW2OAS_MAX_INLINE_SIZE", "0")
	t.Setenv("GW2OAS_CORS_ORIGINS", " , ")

	c := Load(missingEnvFile(t))

	assert.Equal(t, slog.LevelInfo, c.LogLevel)
	assert.Equal(t, 200*time.Millisecond, c.WatchDebounce)
	assert.False(t, c.Validate)
	assert.Equal(t, int64(10*1024*1024), c.MaxInlineSize)
	assert.Equal(t, []string{"*"}, c.CORSOrigins)
}

func TestLoad_EnvFile(t *testing.T) {
	clearGW2OASEnv(t)
	dir := t.TempDir()
	first := filepath.Join(dir, "first.env")
	second := filepath.Join(dir, "second.env")
	require.NoError(t, os.WriteFile(first, []byte("GW2OAS_SERVE_ADDR=:7000\nGW2OAS_VALIDATE=true\n"), 0o600))
	require.NoError(t, os.WriteFile(second, []byte("GW2OAS_SERVE_ADDR=:7001\nGW2OAS_LOG_LEVEL=warn\n"), 0o600))
	t.Setenv("GW2OAS_VALIDATE", "false")

	c := Load(first, second)

	assert.Equal(t, ":7000", c.ServeAddr, "earlier files win")
	assert.Equal(t, slog.LevelWarn, c.LogLevel)
	assert.False(t, c.Validate, "process environment wins over files")
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input   string
		want    slog.Level
		wantErr bool
	}{
		{"debug", slog.LevelDebug, false},
		{"INFO", slog.LevelInfo, false},
		{"warn", slog.LevelWarn, false},
		{"Warning", slog.LevelWarn, false},
		{"error", slog.LevelError, false},
		{"verbose", slog.LevelInfo, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseLevel(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
