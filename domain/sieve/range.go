// Package sieve enumerates primes over arbitrary integer ranges using a
// segmented Sieve of Atkin.
//
// The sieve toggles candidate flags via Atkin's three binary quadratic
// forms, then removes the non-squarefree false positives. When the
// requested range does not itself cover the small primes needed for that
// elimination step, it bootstraps them by recursing into a smaller
// instance of itself.
package sieve

import (
	"errors"
	"fmt"
)

// ErrInvalidRange indicates a range whose lower bound exceeds its upper
// bound. Matchable with errors.Is.
var ErrInvalidRange = errors.New("invalid prime range")

// RangeError carries the offending bounds of an invalid range.
type RangeError struct {
	minPrime int
	maxPrime int
}

// NewRangeError creates a RangeError for the given bounds.
func NewRangeError(minPrime, maxPrime int) *RangeError {
	return &RangeError{minPrime: minPrime, maxPrime: maxPrime}
}

// MinPrime returns the lower bound that caused the error.
func (e *RangeError) MinPrime() int { return e.minPrime }

// MaxPrime returns the upper bound that caused the error.
func (e *RangeError) MaxPrime() int { return e.maxPrime }

func (e *RangeError) Error() string {
	return fmt.Sprintf("%v: min_prime %d exceeds max_prime %d", ErrInvalidRange, e.minPrime, e.maxPrime)
}

// Unwrap makes RangeError matchable against ErrInvalidRange.
func (e *RangeError) Unwrap() error { return ErrInvalidRange }

// Range is an inclusive integer interval [minPrime, maxPrime].
// Immutable value object; a constructed Range is always valid.
type Range struct {
	minPrime int
	maxPrime int
}

// NewRange creates a Range, rejecting bounds with minPrime > maxPrime.
func NewRange(minPrime, maxPrime int) (Range, error) {
	if minPrime > maxPrime {
		return Range{}, NewRangeError(minPrime, maxPrime)
	}
	return Range{minPrime: minPrime, maxPrime: maxPrime}, nil
}

// UptoRange creates the Range used by Upto: [min(0, maxPrime), maxPrime].
func UptoRange(maxPrime int) Range {
	minPrime := 0
	if maxPrime < 0 {
		minPrime = maxPrime
	}
	return Range{minPrime: minPrime, maxPrime: maxPrime}
}

// MinPrime returns the inclusive lower bound.
func (r Range) MinPrime() int { return r.minPrime }

// MaxPrime returns the inclusive upper bound.
func (r Range) MaxPrime() int { return r.maxPrime }

// EffectiveMin returns the lower bound after clamping to the smallest
// prime: max(2, minPrime).
func (r Range) EffectiveMin() int {
	if r.minPrime < 2 {
		return 2
	}
	return r.minPrime
}

// Span returns the number of integers in the interval.
func (r Range) Span() int {
	return r.maxPrime - r.minPrime + 1
}

// HasCandidates reports whether the interval can contain a prime at all.
func (r Range) HasCandidates() bool {
	return r.maxPrime >= 2
}

// Contains reports whether n lies within the interval.
func (r Range) Contains(n int) bool {
	return n >= r.minPrime && n <= r.maxPrime
}

// Primes runs the sieve over the range.
func (r Range) Primes() []int {
	return sieveRange(r.minPrime, r.maxPrime)
}

func (r Range) String() string {
	return fmt.Sprintf("[%d, %d]", r.minPrime, r.maxPrime)
}
