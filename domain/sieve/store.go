package sieve

import "context"

// SegmentStore persists computed segments.
type SegmentStore interface {
	// Save creates or replaces the segment for its (minPrime, maxPrime) pair.
	Save(ctx context.Context, segment Segment) (Segment, error)

	// Find retrieves segments matching the given options.
	Find(ctx context.Context, options ...Option) ([]Segment, error)

	// FindOne retrieves a single segment matching the given options.
	// Returns an error wrapping the store's not-found sentinel when no
	// segment matches.
	FindOne(ctx context.Context, options ...Option) (Segment, error)

	// DeleteBy removes segments matching the given options.
	DeleteBy(ctx context.Context, options ...Option) error

	// Count returns the number of segments matching the given options.
	Count(ctx context.Context, options ...Option) (int64, error)
}
