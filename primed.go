// Package primed provides a prime number enumeration library built on a
// segmented Sieve of Atkin, with optional persistent caching of computed
// segments.
//
// Basic usage:
//
//	client, err := primed.New(
//	    primed.WithSQLite(".primed/primed.db"),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	// All primes in a closed range
//	segment, err := client.Sieve.Range(ctx, 12345, 67890)
//
//	// All primes up to a bound
//	segment, err := client.Sieve.Upto(ctx, 150)
//
//	for _, p := range segment.Primes() {
//	    fmt.Println(p)
//	}
//
// Without persistence, every request is computed from scratch:
//
//	client, err := primed.New(primed.WithoutPersistence())
package primed

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/primelabs/primed/application/service"
	"github.com/primelabs/primed/domain/sieve"
	"github.com/primelabs/primed/infrastructure/persistence"
	"github.com/primelabs/primed/internal/config"
	"github.com/primelabs/primed/internal/database"
)

// ErrClientClosed indicates the client has already been closed.
var ErrClientClosed = service.ErrClientClosed

// Client is the main entry point for the primed library.
//
// Access the sieve via the struct field:
//
//	client.Sieve.Range(ctx, 0, 150)
//	client.Sieve.Upto(ctx, 150)
type Client struct {
	// Sieve computes primes and serves cached segments.
	Sieve *service.Sieve

	db       database.Database
	segments sieve.SegmentStore
	pruner   *service.Pruner

	cfg    config.AppConfig
	logger *slog.Logger
	closed atomic.Bool
	mu     sync.Mutex
}

// New creates a new Client with the given options.
// With persistence enabled (the default), the segment cache pruner starts
// automatically.
func New(opts ...Option) (*Client, error) {
	cc := newClientConfig()
	for _, opt := range opts {
		opt(cc)
	}

	cfg := config.NewAppConfig().Apply(cc.appOpts...)

	logger := cc.logger
	if logger == nil {
		logger = slog.Default()
	}

	client := &Client{
		cfg:    cfg,
		logger: logger,
	}

	if cc.persist {
		if err := cfg.EnsureDataDir(); err != nil {
			return nil, fmt.Errorf("prepare data dir: %w", err)
		}

		ctx := context.Background()
		db, err := database.NewDatabase(ctx, cfg.DBURL())
		if err != nil {
			return nil, fmt.Errorf("open database: %w", err)
		}

		if err := persistence.AutoMigrate(db); err != nil {
			errClose := db.Close()
			return nil, errors.Join(fmt.Errorf("auto migrate: %w", err), errClose)
		}

		client.db = db
		client.segments = persistence.NewSegmentStore(db)
	}

	client.Sieve = service.NewSieve(client.segments, cfg, &client.closed, logger)
	client.pruner = service.NewPruner(cfg.Cache(), client.segments, logger)
	client.pruner.Start(context.Background())

	return client, nil
}

// Close stops the pruner and releases the database.
func (c *Client) Close() error {
	if !c.closed.CompareAndSwap(false, true) {
		return ErrClientClosed
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.pruner.Stop()

	if c.segments != nil {
		if err := c.db.Close(); err != nil {
			return fmt.Errorf("close database: %w", err)
		}
	}

	c.logger.Info("primed client closed")
	return nil
}

// Logger returns the client's logger.
func (c *Client) Logger() *slog.Logger {
	return c.logger
}

// Config returns the resolved configuration.
func (c *Client) Config() config.AppConfig {
	return c.cfg
}
