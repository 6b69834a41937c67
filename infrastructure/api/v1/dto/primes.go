// Package dto defines request and response shapes for the v1 API.
package dto

import (
	"time"

	"github.com/primelabs/primed/domain/sieve"
)

// SegmentResponse represents a computed prime segment in API responses.
type SegmentResponse struct {
	MinPrime  int       `json:"min_prime"`
	MaxPrime  int       `json:"max_prime"`
	Count     int       `json:"count"`
	Sum       int64     `json:"sum"`
	Primes    []int     `json:"primes"`
	CreatedAt time.Time `json:"created_at"`
}

// NewSegmentResponse builds a SegmentResponse from a domain segment.
func NewSegmentResponse(segment sieve.Segment) SegmentResponse {
	return SegmentResponse{
		MinPrime:  segment.MinPrime(),
		MaxPrime:  segment.MaxPrime(),
		Count:     segment.Count(),
		Sum:       segment.Sum(),
		Primes:    segment.Primes(),
		CreatedAt: segment.CreatedAt(),
	}
}
