// Package config provides application configuration.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"
)

// Default configuration values.
const (
	DefaultHost               = "0.0.0.0"
	DefaultPort               = 8080
	DefaultLogLevel           = "INFO"
	DefaultMaxSpan            = 10000000
	DefaultCacheMaxAge        = 24 * time.Hour
	DefaultCachePruneInterval = 10 * time.Minute
	DefaultDataDirName        = ".primed"
	DefaultDatabaseFile       = "primed.db"
)

// LogFormat represents the log output format.
type LogFormat string

// LogFormat values.
const (
	LogFormatPretty LogFormat = "pretty"
	LogFormatJSON   LogFormat = "json"
)

// CacheConfig configures the segment cache and its pruning.
type CacheConfig struct {
	enabled       bool
	maxAge        time.Duration
	pruneInterval time.Duration
}

// NewCacheConfig creates a CacheConfig with defaults.
func NewCacheConfig() CacheConfig {
	return CacheConfig{
		enabled:       true,
		maxAge:        DefaultCacheMaxAge,
		pruneInterval: DefaultCachePruneInterval,
	}
}

// Enabled returns whether segment caching is enabled.
func (c CacheConfig) Enabled() bool { return c.enabled }

// MaxAge returns how long cached segments are kept.
func (c CacheConfig) MaxAge() time.Duration { return c.maxAge }

// PruneInterval returns how often expired segments are removed.
func (c CacheConfig) PruneInterval() time.Duration { return c.pruneInterval }

// WithEnabled returns a new config with the specified enabled state.
func (c CacheConfig) WithEnabled(enabled bool) CacheConfig {
	c.enabled = enabled
	return c
}

// WithMaxAge returns a new config with the specified retention.
func (c CacheConfig) WithMaxAge(d time.Duration) CacheConfig {
	c.maxAge = d
	return c
}

// WithPruneInterval returns a new config with the specified interval.
func (c CacheConfig) WithPruneInterval(d time.Duration) CacheConfig {
	c.pruneInterval = d
	return c
}

// AppConfig holds the resolved application configuration.
type AppConfig struct {
	host      string
	port      int
	dataDir   string
	dbURL     string
	logLevel  string
	logFormat LogFormat
	apiKeys   []string
	maxSpan   int
	cache     CacheConfig
}

// NewAppConfig creates an AppConfig with defaults.
func NewAppConfig() AppConfig {
	return AppConfig{
		host:      DefaultHost,
		port:      DefaultPort,
		logLevel:  DefaultLogLevel,
		logFormat: LogFormatPretty,
		maxSpan:   DefaultMaxSpan,
		cache:     NewCacheConfig(),
	}
}

// Host returns the server host.
func (c AppConfig) Host() string { return c.host }

// Port returns the server port.
func (c AppConfig) Port() int { return c.port }

// Addr returns the host:port address for the HTTP server.
func (c AppConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.host, c.port)
}

// DataDir returns the data directory, defaulting to ~/.primed.
func (c AppConfig) DataDir() string {
	if c.dataDir != "" {
		return c.dataDir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return DefaultDataDirName
	}
	return filepath.Join(home, DefaultDataDirName)
}

// DBURL returns the database URL, defaulting to a SQLite file inside the
// data directory.
func (c AppConfig) DBURL() string {
	if c.dbURL != "" {
		return c.dbURL
	}
	return "sqlite:///" + filepath.Join(c.DataDir(), DefaultDatabaseFile)
}

// LogLevel returns the log verbosity level.
func (c AppConfig) LogLevel() string { return c.logLevel }

// LogFormat returns the log output format.
func (c AppConfig) LogFormat() LogFormat { return c.logFormat }

// APIKeys returns the configured API keys (empty means auth disabled).
func (c AppConfig) APIKeys() []string {
	keys := make([]string, len(c.apiKeys))
	copy(keys, c.apiKeys)
	return keys
}

// MaxSpan returns the widest range a single request may sieve.
func (c AppConfig) MaxSpan() int { return c.maxSpan }

// Cache returns the segment cache configuration.
func (c AppConfig) Cache() CacheConfig { return c.cache }

// EnsureDataDir creates the data directory if it does not exist.
func (c AppConfig) EnsureDataDir() error {
	return os.MkdirAll(c.DataDir(), 0o755)
}

// LogAttrs returns startup log attributes describing the configuration.
// Secrets (API keys) are reported only by count.
func (c AppConfig) LogAttrs() []slog.Attr {
	return []slog.Attr{
		slog.String("addr", c.Addr()),
		slog.String("data_dir", c.DataDir()),
		slog.String("db_url", c.DBURL()),
		slog.String("log_level", c.logLevel),
		slog.String("log_format", string(c.logFormat)),
		slog.Int("api_keys", len(c.apiKeys)),
		slog.Int("max_span", c.maxSpan),
		slog.Bool("cache_enabled", c.cache.Enabled()),
	}
}

// AppConfigOption is a functional option for AppConfig.
type AppConfigOption func(*AppConfig)

// WithHost sets the server host.
func WithHost(host string) AppConfigOption {
	return func(c *AppConfig) { c.host = host }
}

// WithPort sets the server port.
func WithPort(port int) AppConfigOption {
	return func(c *AppConfig) { c.port = port }
}

// WithDataDir sets the data directory.
func WithDataDir(dir string) AppConfigOption {
	return func(c *AppConfig) { c.dataDir = dir }
}

// WithDBURL sets the database URL.
func WithDBURL(url string) AppConfigOption {
	return func(c *AppConfig) { c.dbURL = url }
}

// WithLogLevel sets the log level.
func WithLogLevel(level string) AppConfigOption {
	return func(c *AppConfig) { c.logLevel = level }
}

// WithLogFormat sets the log format.
func WithLogFormat(format LogFormat) AppConfigOption {
	return func(c *AppConfig) { c.logFormat = format }
}

// WithAPIKeys sets the accepted API keys.
func WithAPIKeys(keys ...string) AppConfigOption {
	return func(c *AppConfig) { c.apiKeys = keys }
}

// WithMaxSpan sets the span ceiling for a single request.
func WithMaxSpan(n int) AppConfigOption {
	return func(c *AppConfig) { c.maxSpan = n }
}

// WithCache sets the cache configuration.
func WithCache(cache CacheConfig) AppConfigOption {
	return func(c *AppConfig) { c.cache = cache }
}

// Apply returns a new AppConfig with the given options applied.
func (c AppConfig) Apply(opts ...AppConfigOption) AppConfig {
	for _, opt := range opts {
		opt(&c)
	}
	return c
}
