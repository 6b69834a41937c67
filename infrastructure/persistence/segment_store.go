package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/primelabs/primed/domain/sieve"
	"github.com/primelabs/primed/internal/database"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SegmentStore implements sieve.SegmentStore using GORM.
type SegmentStore struct {
	database.Repository[sieve.Segment, SegmentModel]
}

// NewSegmentStore creates a new SegmentStore.
func NewSegmentStore(db database.Database) SegmentStore {
	return SegmentStore{
		Repository: database.NewRepository[sieve.Segment, SegmentModel](db, SegmentMapper{}, "segment"),
	}
}

// FindOne retrieves a single segment, rejecting rows whose stored prime
// list cannot be decoded or disagrees with the stored count. A corrupted
// row yields an error rather than a phantom empty segment.
func (s SegmentStore) FindOne(ctx context.Context, options ...sieve.Option) (sieve.Segment, error) {
	var model SegmentModel
	db := database.ApplyOptions(s.DB(ctx), options...)
	if result := db.First(&model); result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return sieve.Segment{}, fmt.Errorf("%w: segment", database.ErrNotFound)
		}
		return sieve.Segment{}, fmt.Errorf("find one segment: %w", result.Error)
	}

	if err := validateSegmentModel(model); err != nil {
		return sieve.Segment{}, fmt.Errorf("segment row %d: %w", model.ID, err)
	}
	return s.Mapper().ToDomain(model), nil
}

func validateSegmentModel(model SegmentModel) error {
	primes, err := decodePrimesStrict(model.Primes)
	if err != nil {
		return err
	}
	if int64(len(primes)) != model.PrimeCount {
		return fmt.Errorf("prime count %d does not match stored list of %d", model.PrimeCount, len(primes))
	}
	return nil
}

// Save creates or replaces the segment for its (min_prime, max_prime) pair.
func (s SegmentStore) Save(ctx context.Context, segment sieve.Segment) (sieve.Segment, error) {
	model := s.Mapper().ToModel(segment)

	result := s.DB(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "min_prime"}, {Name: "max_prime"}},
		DoUpdates: clause.AssignmentColumns([]string{"prime_count", "prime_sum", "primes", "created_at"}),
	}).Create(&model)

	if result.Error != nil {
		return sieve.Segment{}, fmt.Errorf("save segment: %w", result.Error)
	}
	return s.Mapper().ToDomain(model), nil
}
