// Package config loads gw2oas defaults from GW2OAS_* environment variables,
// optionally backed by .env files. Variables set in the process environment
// win over values from files. Invalid values log a warning and fall back to
// the built-in default.
package config

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// DefaultEnvFile is the file Load reads when no file is named.
const DefaultEnvFile = ".env"

// Config holds the defaults CLI flags start from.
type Config struct {
	// LogLevel is the minimum level written to stderr and the log file.
	LogLevel slog.Level
	// LogFile, when set, also receives every record as JSON.
	LogFile string
	// ServeAddr is the listen address of the serve command.
	ServeAddr string
	// WatchDebounce is how long a file must stay quiet before a rebuild.
	WatchDebounce time.Duration
	// CORSOrigins lists the origins allowed to fetch served documents.
	CORSOrigins []string
	// Validate turns on output validation by default.
	Validate bool
	// MaxInlineSize bounds inline content accepted by the MCP convert tool.
	MaxInlineSize int64
	// CacheEnabled turns on the MCP server's parsed document cache.
	CacheEnabled bool
	// CacheSize is how many parsed gateway documents the MCP server keeps.
	CacheSize int
	// CacheTTL is how long a cached gateway document stays valid.
	CacheTTL time.Duration
}

// Load reads the named env files (DefaultEnvFile when none are given) and
// the process environment. Missing files are skipped.
func Load(envFiles ...string) *Config {
	if len(envFiles) == 0 {
		envFiles = []string{DefaultEnvFile}
	}
	env := &source{file: readEnvFiles(envFiles)}

	return &Config{
		LogLevel:      env.level("GW2OAS_LOG_LEVEL", slog.LevelInfo),
		LogFile:       env.string("GW2OAS_LOG_FILE", ""),
		ServeAddr:     env.string("GW2OAS_SERVE_ADDR", ":8080"),
		WatchDebounce: env.duration("GW2OAS_WATCH_DEBOUNCE", 200*time.Millisecond),
		CORSOrigins:   env.list("GW2OAS_CORS_ORIGINS", []string{"*"}),
		Validate:      env.bool("GW2OAS_VALIDATE", false),
		MaxInlineSize: int64(env.int("GW2OAS_MAX_INLINE_SIZE", 10*1024*1024)),
		CacheEnabled:  env.bool("GW2OAS_MCP_CACHE_ENABLED", true),
		CacheSize:     env.int("GW2OAS_MCP_CACHE_SIZE", 10),
		CacheTTL:      env.duration("GW2OAS_MCP_CACHE_TTL", 15*time.Minute),
	}
}

func readEnvFiles(files []string) map[string]string {
	values := make(map[string]string)
	for _, file := range files {
		read, err := godotenv.Read(file)
		if err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				slog.Warn("cannot read env file, ignoring", "file", file, "error", err) //nolint:gosec // G706: values are structured log fields, not format strings
			}
			continue
		}
		// earlier files win, matching godotenv.Load
		for k, v := range read {
			if _, seen := values[k]; !seen {
				values[k] = v
			}
		}
	}
	return values
}

// source resolves a key from the process environment, then the env files.
type source struct {
	file map[string]string
}

func (s *source) lookup(key string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return s.file[key]
}

func (s *source) string(key, fallback string) string {
	if v := s.lookup(key); v != "" {
		return v
	}
	return fallback
}

func (s *source) bool(key string, fallback bool) bool {
	v := s.lookup(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		slog.Warn("invalid bool env var, using default", "key", key, "value", v, "default", fallback) //nolint:gosec // G706: values are structured log fields, not format strings
		return fallback
	}
	return b
}

func (s *source) int(key string, fallback int) int {
	v := s.lookup(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		slog.Warn("invalid int env var, using default", "key", key, "value", v, "default", fallback) //nolint:gosec // G706: values are structured log fields, not format strings
		return fallback
	}
	return n
}

func (s *source) duration(key string, fallback time.Duration) time.Duration {
	v := s.lookup(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		slog.Warn("invalid duration env var, using default", "key", key, "value", v, "default", fallback) //nolint:gosec // G706: values are structured log fields, not format strings
		return fallback
	}
	return d
}

func (s *source) level(key string, fallback slog.Level) slog.Level {
	v := s.lookup(key)
	if v == "" {
		return fallback
	}
	level, err := ParseLevel(v)
	if err != nil {
		slog.Warn("invalid log level env var, using default", "key", key, "value", v, "default", fallback) //nolint:gosec // G706: values are structured log fields, not format strings
		return fallback
	}
	return level
}

func (s *source) list(key string, fallback []string) []string {
	v := s.lookup(key)
	if v == "" {
		return fallback
	}
	var out []string
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}

// ParseLevel parses debug, info, warn (or warning) and error, case-insensitively.
func ParseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if strings.EqualFold(s, "warning") {
		s = "warn"
	}
	err := level.UnmarshalText([]byte(s))
	return level, err
}
