package primed

import (
	"log/slog"
	"time"

	"github.com/primelabs/primed/internal/config"
)

// clientConfig holds configuration for Client construction.
type clientConfig struct {
	appOpts []config.AppConfigOption
	logger  *slog.Logger
	persist bool
}

func newClientConfig() *clientConfig {
	return &clientConfig{persist: true}
}

// Option configures the Client.
type Option func(*clientConfig)

// WithSQLite configures SQLite as the segment cache database.
func WithSQLite(path string) Option {
	return func(c *clientConfig) {
		c.appOpts = append(c.appOpts, config.WithDBURL("sqlite:///"+path))
	}
}

// WithPostgres configures PostgreSQL as the segment cache database.
func WithPostgres(url string) Option {
	return func(c *clientConfig) {
		c.appOpts = append(c.appOpts, config.WithDBURL(url))
	}
}

// WithoutPersistence disables the segment cache entirely. No database is
// opened and every request is computed from scratch.
func WithoutPersistence() Option {
	return func(c *clientConfig) {
		c.persist = false
	}
}

// WithDataDir sets the data directory for the default SQLite database.
func WithDataDir(dir string) Option {
	return func(c *clientConfig) {
		c.appOpts = append(c.appOpts, config.WithDataDir(dir))
	}
}

// WithLogger sets a custom logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *clientConfig) {
		c.logger = l
	}
}

// WithAPIKeys sets the API keys for HTTP API authentication.
func WithAPIKeys(keys ...string) Option {
	return func(c *clientConfig) {
		c.appOpts = append(c.appOpts, config.WithAPIKeys(keys...))
	}
}

// WithMaxSpan sets the widest range a single request may sieve.
// Values <= 0 disable the ceiling.
func WithMaxSpan(n int) Option {
	return func(c *clientConfig) {
		c.appOpts = append(c.appOpts, config.WithMaxSpan(n))
	}
}

// WithCacheDisabled keeps the database open but skips reading and writing
// cached segments.
func WithCacheDisabled() Option {
	return func(c *clientConfig) {
		c.appOpts = append(c.appOpts, config.WithCache(config.NewCacheConfig().WithEnabled(false)))
	}
}

// WithCacheRetention sets how long cached segments are kept and how often
// expired ones are pruned.
func WithCacheRetention(maxAge, pruneInterval time.Duration) Option {
	return func(c *clientConfig) {
		c.appOpts = append(c.appOpts, config.WithCache(
			config.NewCacheConfig().WithMaxAge(maxAge).WithPruneInterval(pruneInterval),
		))
	}
}

// WithConfig applies a fully resolved configuration. Options appearing after
// this one still take effect.
func WithConfig(cfg config.AppConfig) Option {
	return func(c *clientConfig) {
		c.appOpts = append(c.appOpts, func(target *config.AppConfig) {
			*target = cfg
		})
	}
}
