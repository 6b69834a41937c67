package persistence

import (
	"encoding/json"
	"fmt"

	"github.com/primelabs/primed/domain/sieve"
)

// SegmentMapper maps between sieve.Segment and SegmentModel.
type SegmentMapper struct{}

// ToDomain converts a database model to a domain segment.
func (SegmentMapper) ToDomain(model SegmentModel) sieve.Segment {
	return sieve.ReconstructSegment(
		model.ID,
		int(model.MinPrime),
		int(model.MaxPrime),
		decodePrimes(model.Primes),
		model.CreatedAt,
	)
}

// ToModel converts a domain segment to a database model.
func (SegmentMapper) ToModel(segment sieve.Segment) SegmentModel {
	return SegmentModel{
		ID:         segment.ID(),
		MinPrime:   int64(segment.MinPrime()),
		MaxPrime:   int64(segment.MaxPrime()),
		PrimeCount: int64(segment.Count()),
		PrimeSum:   segment.Sum(),
		Primes:     encodePrimes(segment.Primes()),
		CreatedAt:  segment.CreatedAt(),
	}
}

// encodePrimes serializes a prime list as a JSON array. Marshalling []int
// cannot fail.
func encodePrimes(primes []int) string {
	encoded, _ := json.Marshal(primes)
	return string(encoded)
}

// decodePrimes deserializes a JSON prime array. Rows reach this mapper
// only after SegmentStore.FindOne has validated the column, so a decode
// failure here cannot occur; the empty fallback keeps the mapper total.
func decodePrimes(raw string) []int {
	primes, err := decodePrimesStrict(raw)
	if err != nil {
		return []int{}
	}
	return primes
}

// decodePrimesStrict deserializes a JSON prime array, reporting rows whose
// column cannot be decoded.
func decodePrimesStrict(raw string) ([]int, error) {
	var primes []int
	if err := json.Unmarshal([]byte(raw), &primes); err != nil {
		return nil, fmt.Errorf("decode primes: %w", err)
	}
	return primes, nil
}
