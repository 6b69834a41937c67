package service

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/primelabs/primed/domain/sieve"
	"github.com/primelabs/primed/internal/config"
)

// Pruner removes cached segments older than the configured retention on a
// timer.
type Pruner struct {
	segments sieve.SegmentStore
	logger   *slog.Logger
	interval time.Duration
	maxAge   time.Duration
	enabled  bool

	cancel context.CancelFunc
	wg     sync.WaitGroup
	mu     sync.Mutex
}

// NewPruner creates a Pruner from cache configuration and dependencies.
func NewPruner(cfg config.CacheConfig, segments sieve.SegmentStore, logger *slog.Logger) *Pruner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pruner{
		segments: segments,
		logger:   logger,
		interval: cfg.PruneInterval(),
		maxAge:   cfg.MaxAge(),
		enabled:  cfg.Enabled() && segments != nil && cfg.MaxAge() > 0,
	}
}

// Start begins pruning in a background goroutine.
// If pruning is disabled, this is a no-op.
func (p *Pruner) Start(ctx context.Context) {
	if !p.enabled {
		p.logger.Info("segment pruning disabled")
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	ctx, p.cancel = context.WithCancel(ctx)
	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		p.run(ctx)
	}()

	p.logger.Info("segment pruning started",
		slog.Duration("interval", p.interval),
		slog.Duration("max_age", p.maxAge),
	)
}

// Stop cancels the background loop and waits for it to finish.
func (p *Pruner) Stop() {
	p.mu.Lock()
	cancel := p.cancel
	p.cancel = nil
	p.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	p.wg.Wait()
}

func (p *Pruner) run(ctx context.Context) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := p.PruneOnce(ctx); err != nil {
				p.logger.Error("segment prune failed", "error", err)
			}
		}
	}
}

// PruneOnce removes every segment older than the retention cutoff and
// returns the number removed.
func (p *Pruner) PruneOnce(ctx context.Context) (int64, error) {
	cutoff := time.Now().UTC().Add(-p.maxAge)

	stale, err := p.segments.Count(ctx, sieve.WithCreatedBefore(cutoff))
	if err != nil {
		return 0, err
	}
	if stale == 0 {
		return 0, nil
	}

	if err := p.segments.DeleteBy(ctx, sieve.WithCreatedBefore(cutoff)); err != nil {
		return 0, err
	}

	prunedSegments.Add(float64(stale))
	p.logger.Info("pruned cached segments", "count", stale)
	return stale, nil
}
