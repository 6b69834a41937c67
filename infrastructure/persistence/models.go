// Package persistence provides database storage implementations.
package persistence

import "time"

// SegmentModel is the GORM model for cached sieve segments. The primes of
// a segment are stored as a JSON array; the count and sum are denormalized
// so segment listings never need to decode the array.
type SegmentModel struct {
	ID         int64     `gorm:"column:id;primaryKey;autoIncrement"`
	MinPrime   int64     `gorm:"column:min_prime;not null;uniqueIndex:idx_segments_bounds"`
	MaxPrime   int64     `gorm:"column:max_prime;not null;uniqueIndex:idx_segments_bounds"`
	PrimeCount int64     `gorm:"column:prime_count;not null"`
	PrimeSum   int64     `gorm:"column:prime_sum;not null"`
	Primes     string    `gorm:"column:primes;not null"`
	CreatedAt  time.Time `gorm:"column:created_at;index"`
}

// TableName overrides the GORM table name.
func (SegmentModel) TableName() string { return "segments" }
