package persistence

import "github.com/primelabs/primed/internal/database"

// AutoMigrate runs GORM auto migration for all models.
func AutoMigrate(db database.Database) error {
	return db.GORM().AutoMigrate(
		&SegmentModel{},
	)
}
