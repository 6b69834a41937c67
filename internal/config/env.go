package config

import (
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// EnvConfig holds all environment-based configuration.
type EnvConfig struct {
	// Host is the server host to bind to.
	// Env: HOST (default: 0.0.0.0)
	Host string `envconfig:"HOST" default:"0.0.0.0"`

	// Port is the server port to listen on.
	// Env: PORT (default: 8080)
	Port int `envconfig:"PORT" default:"8080"`

	// DataDir is the data directory path.
	// Env: DATA_DIR
	// Default: ~/.primed
	DataDir string `envconfig:"DATA_DIR"`

	// DBURL is the database connection URL.
	// Env: DB_URL
	// Default: sqlite:///{data_dir}/primed.db
	DBURL string `envconfig:"DB_URL"`

	// LogLevel is the log verbosity level.
	// Env: LOG_LEVEL (default: INFO)
	LogLevel string `envconfig:"LOG_LEVEL" default:"INFO"`

	// LogFormat is the log output format (pretty or json).
	// Env: LOG_FORMAT (default: pretty)
	LogFormat string `envconfig:"LOG_FORMAT" default:"pretty"`

	// APIKeys is a comma-separated list of valid API keys.
	// Env: API_KEYS
	APIKeys string `envconfig:"API_KEYS"`

	// MaxSpan is the widest range a single request may sieve.
	// Env: MAX_SPAN (default: 10000000)
	MaxSpan int `envconfig:"MAX_SPAN" default:"10000000"`

	// Cache configures segment caching.
	Cache CacheEnv `envconfig:"CACHE"`
}

// CacheEnv holds environment configuration for the segment cache.
type CacheEnv struct {
	// Enabled controls whether computed segments are cached.
	// Env: CACHE_ENABLED (default: true)
	Enabled bool `envconfig:"ENABLED" default:"true"`

	// MaxAgeSeconds is how long cached segments are kept.
	// Env: CACHE_MAX_AGE_SECONDS (default: 86400)
	MaxAgeSeconds float64 `envconfig:"MAX_AGE_SECONDS" default:"86400"`

	// PruneIntervalSeconds is how often expired segments are removed.
	// Env: CACHE_PRUNE_INTERVAL_SECONDS (default: 600)
	PruneIntervalSeconds float64 `envconfig:"PRUNE_INTERVAL_SECONDS" default:"600"`
}

// LoadFromEnv populates an EnvConfig from environment variables.
func LoadFromEnv() (EnvConfig, error) {
	var cfg EnvConfig
	if err := envconfig.Process("", &cfg); err != nil {
		return EnvConfig{}, err
	}
	return cfg, nil
}

// Normalize cleans up values that need post-processing after envconfig.
func (e EnvConfig) Normalize() EnvConfig {
	e.LogLevel = strings.ToUpper(strings.TrimSpace(e.LogLevel))
	e.LogFormat = strings.ToLower(strings.TrimSpace(e.LogFormat))
	if e.MaxSpan <= 0 {
		e.MaxSpan = DefaultMaxSpan
	}
	return e
}

// ToAppConfig converts environment configuration to an AppConfig.
func (e EnvConfig) ToAppConfig() AppConfig {
	opts := []AppConfigOption{
		WithHost(e.Host),
		WithPort(e.Port),
		WithLogLevel(e.LogLevel),
		WithMaxSpan(e.MaxSpan),
	}

	if e.DataDir != "" {
		opts = append(opts, WithDataDir(e.DataDir))
	}
	if e.DBURL != "" {
		opts = append(opts, WithDBURL(e.DBURL))
	}
	if e.LogFormat == string(LogFormatJSON) {
		opts = append(opts, WithLogFormat(LogFormatJSON))
	}
	if keys := splitAPIKeys(e.APIKeys); len(keys) > 0 {
		opts = append(opts, WithAPIKeys(keys...))
	}

	cache := NewCacheConfig().
		WithEnabled(e.Cache.Enabled).
		WithMaxAge(secondsToDuration(e.Cache.MaxAgeSeconds, DefaultCacheMaxAge)).
		WithPruneInterval(secondsToDuration(e.Cache.PruneIntervalSeconds, DefaultCachePruneInterval))
	opts = append(opts, WithCache(cache))

	return NewAppConfig().Apply(opts...)
}

func splitAPIKeys(raw string) []string {
	if raw == "" {
		return nil
	}
	var keys []string
	for _, part := range strings.Split(raw, ",") {
		if key := strings.TrimSpace(part); key != "" {
			keys = append(keys, key)
		}
	}
	return keys
}

func secondsToDuration(seconds float64, fallback time.Duration) time.Duration {
	if seconds <= 0 {
		return fallback
	}
	return time.Duration(seconds * float64(time.Second))
}
