package sieve

import "time"

// Segment is a previously computed sieve result over a range, kept so
// repeated requests for the same bounds are answered without re-sieving.
// Immutable value object.
type Segment struct {
	id        int64
	minPrime  int
	maxPrime  int
	primes    []int
	createdAt time.Time
}

// NewSegment creates a Segment for a freshly computed result (not yet
// persisted).
func NewSegment(r Range, primes []int) Segment {
	return Segment{
		minPrime:  r.MinPrime(),
		maxPrime:  r.MaxPrime(),
		primes:    clonePrimes(primes),
		createdAt: time.Now().UTC(),
	}
}

// ReconstructSegment recreates a Segment from persistence.
func ReconstructSegment(id int64, minPrime, maxPrime int, primes []int, createdAt time.Time) Segment {
	return Segment{
		id:        id,
		minPrime:  minPrime,
		maxPrime:  maxPrime,
		primes:    clonePrimes(primes),
		createdAt: createdAt,
	}
}

// ID returns the database identifier (zero before persistence).
func (s Segment) ID() int64 { return s.id }

// MinPrime returns the inclusive lower bound of the sieved range.
func (s Segment) MinPrime() int { return s.minPrime }

// MaxPrime returns the inclusive upper bound of the sieved range.
func (s Segment) MaxPrime() int { return s.maxPrime }

// Primes returns the primes found in the range, ascending.
func (s Segment) Primes() []int { return clonePrimes(s.primes) }

// Count returns the number of primes in the segment.
func (s Segment) Count() int { return len(s.primes) }

// Sum returns the sum of the primes in the segment.
func (s Segment) Sum() int64 {
	var sum int64
	for _, p := range s.primes {
		sum += int64(p)
	}
	return sum
}

// CreatedAt returns when the segment was computed.
func (s Segment) CreatedAt() time.Time { return s.createdAt }

func clonePrimes(primes []int) []int {
	cloned := make([]int, len(primes))
	copy(cloned, primes)
	return cloned
}
