package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	DefaultDriver            = "sqlite3"
	DefaultLocale            = "en"
	DefaultBatchSize         = 100
	DefaultMaxSuffixAttempts = 100
	DefaultRouteCacheSize    = 1024
	DefaultLogLevel          = "info"
)

// Config holds the settings of the content core
type Config struct {
	// Driver is the database/sql driver: "sqlite3" or "pgx"
	Driver string
	// DSN is a file path for sqlite3 or a connection string for pgx
	DSN string
	// DefaultLocale is used when a request names no locale
	DefaultLocale string
	// BatchSize is the number of nodes per unit of work in batch commands
	BatchSize int
	// MaxSuffixAttempts bounds route and name disambiguation
	MaxSuffixAttempts int
	// RouteCacheSize is the number of resolved routes kept in memory
	RouteCacheSize int
	// RouteTemplates overrides content type route templates by type name
	RouteTemplates map[string]string
	// LogLevel is a zerolog level name
	LogLevel string
	// LogFile, when set, receives log output instead of stderr
	LogFile string
}

// Default returns the configuration with every default applied
func Default() Config {
	return Config{
		Driver:            DefaultDriver,
		DSN:               DefaultDSN(),
		DefaultLocale:     DefaultLocale,
		BatchSize:         DefaultBatchSize,
		MaxSuffixAttempts: DefaultMaxSuffixAttempts,
		RouteCacheSize:    DefaultRouteCacheSize,
		RouteTemplates:    map[string]string{},
		LogLevel:          DefaultLogLevel,
	}
}

// Load reads .env (if present) and SULU_* environment variables on top of the defaults
func Load() Config {
	_ = godotenv.Load()

	cfg := Default()
	cfg.Driver = firstNonEmpty(env("SULU_DB_DRIVER"), cfg.Driver)
	cfg.DSN = firstNonEmpty(env("SULU_DB_DSN"), cfg.DSN)
	cfg.DefaultLocale = firstNonEmpty(env("SULU_DEFAULT_LOCALE"), cfg.DefaultLocale)
	cfg.BatchSize = positiveInt(env("SULU_BATCH_SIZE"), cfg.BatchSize)
	cfg.MaxSuffixAttempts = positiveInt(env("SULU_MAX_SUFFIX_ATTEMPTS"), cfg.MaxSuffixAttempts)
	cfg.RouteCacheSize = positiveInt(env("SULU_ROUTE_CACHE_SIZE"), cfg.RouteCacheSize)
	cfg.LogLevel = firstNonEmpty(env("SULU_LOG_LEVEL"), cfg.LogLevel)
	cfg.LogFile = env("SULU_LOG_FILE")

	const templatePrefix = "SULU_ROUTE_TEMPLATE_"
	for _, kv := range os.Environ() {
		key, value, ok := strings.Cut(kv, "=")
		if !ok || !strings.HasPrefix(key, templatePrefix) || strings.TrimSpace(value) == "" {
			continue
		}
		typeName := strings.ToLower(strings.TrimPrefix(key, templatePrefix))
		cfg.RouteTemplates[typeName] = strings.TrimSpace(value)
	}

	return cfg
}

// DefaultDSN returns the SQLite database path under the XDG data directory
func DefaultDSN() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, _ := os.UserHomeDir()
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "sulu", "content.db")
}

func env(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}

func positiveInt(raw string, fallback int) int {
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
