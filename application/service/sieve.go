package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/primelabs/primed/domain/sieve"
	"github.com/primelabs/primed/internal/config"
	"github.com/primelabs/primed/internal/database"
	"golang.org/x/sync/singleflight"
)

// Sieve computes primes over ranges and caches results as segments.
// Identical concurrent requests are collapsed into a single computation.
type Sieve struct {
	segments     sieve.SegmentStore
	logger       *slog.Logger
	maxSpan      int
	cacheEnabled bool
	closed       *atomic.Bool
	group        singleflight.Group
}

// NewSieve creates a Sieve service. A nil segments store disables caching
// regardless of configuration. The closed flag, when provided, rejects
// requests made after the owning client has shut down.
func NewSieve(segments sieve.SegmentStore, cfg config.AppConfig, closed *atomic.Bool, logger *slog.Logger) *Sieve {
	if logger == nil {
		logger = slog.Default()
	}
	return &Sieve{
		segments:     segments,
		logger:       logger,
		maxSpan:      cfg.MaxSpan(),
		cacheEnabled: cfg.Cache().Enabled() && segments != nil,
		closed:       closed,
	}
}

// Range returns the segment of primes in [minPrime, maxPrime].
func (s *Sieve) Range(ctx context.Context, minPrime, maxPrime int) (sieve.Segment, error) {
	if s.isClosed() {
		return sieve.Segment{}, ErrClientClosed
	}
	r, err := sieve.NewRange(minPrime, maxPrime)
	if err != nil {
		sieveRequests.WithLabelValues(outcomeRejected).Inc()
		return sieve.Segment{}, err
	}
	return s.compute(ctx, r)
}

// Upto returns the segment of primes <= maxPrime.
func (s *Sieve) Upto(ctx context.Context, maxPrime int) (sieve.Segment, error) {
	if s.isClosed() {
		return sieve.Segment{}, ErrClientClosed
	}
	return s.compute(ctx, sieve.UptoRange(maxPrime))
}

func (s *Sieve) isClosed() bool {
	return s.closed != nil && s.closed.Load()
}

func (s *Sieve) compute(ctx context.Context, r sieve.Range) (sieve.Segment, error) {
	if s.maxSpan > 0 && r.Span() > s.maxSpan {
		sieveRequests.WithLabelValues(outcomeRejected).Inc()
		return sieve.Segment{}, fmt.Errorf("range %s spans %d values (limit %d): %w",
			r, r.Span(), s.maxSpan, ErrSpanTooLarge)
	}

	key := fmt.Sprintf("%d:%d", r.MinPrime(), r.MaxPrime())
	result, err, shared := s.group.Do(key, func() (any, error) {
		return s.computeUncollapsed(ctx, r)
	})
	if err != nil {
		sieveRequests.WithLabelValues(outcomeError).Inc()
		return sieve.Segment{}, err
	}
	if shared {
		s.logger.Debug("sieve request collapsed", "range", r.String())
	}
	return result.(sieve.Segment), nil
}

func (s *Sieve) computeUncollapsed(ctx context.Context, r sieve.Range) (sieve.Segment, error) {
	if cached, ok := s.lookup(ctx, r); ok {
		sieveRequests.WithLabelValues(outcomeCacheHit).Inc()
		s.logger.Debug("segment served from cache",
			"range", r.String(), "count", cached.Count())
		return cached, nil
	}

	start := time.Now()
	primes := r.Primes()
	elapsed := time.Since(start)

	sieveRequests.WithLabelValues(outcomeComputed).Inc()
	sieveDuration.Observe(elapsed.Seconds())

	segment := sieve.NewSegment(r, primes)
	s.logger.Info("segment computed",
		"range", r.String(),
		"count", segment.Count(),
		"duration_ms", elapsed.Milliseconds(),
	)

	if !s.cacheEnabled {
		return segment, nil
	}

	saved, err := s.segments.Save(ctx, segment)
	if err != nil {
		// The result is still valid; caching is best effort.
		s.logger.Warn("failed to cache segment", "range", r.String(), "error", err)
		return segment, nil
	}
	return saved, nil
}

// lookup returns the cached segment for the exact bounds, if present.
func (s *Sieve) lookup(ctx context.Context, r sieve.Range) (sieve.Segment, bool) {
	if !s.cacheEnabled {
		return sieve.Segment{}, false
	}

	cached, err := s.segments.FindOne(ctx, sieve.WithBounds(r)...)
	if err != nil {
		if !errors.Is(err, database.ErrNotFound) {
			s.logger.Warn("segment cache lookup failed", "range", r.String(), "error", err)
		}
		return sieve.Segment{}, false
	}
	return cached, true
}
