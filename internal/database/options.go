package database

import (
	"fmt"

	"github.com/primelabs/primed/domain/sieve"
	"gorm.io/gorm"
)

// ApplyOptions builds a sieve.Query from the given options and applies it
// to a GORM session.
func ApplyOptions(db *gorm.DB, options ...sieve.Option) *gorm.DB {
	q := sieve.Build(options...)

	db = applyConditions(db, q)

	for _, ord := range q.Orders() {
		dir := "ASC"
		if !ord.Ascending() {
			dir = "DESC"
		}
		db = db.Order(fmt.Sprintf("%s %s", ord.Field(), dir))
	}

	if q.LimitValue() > 0 {
		db = db.Limit(q.LimitValue())
	}
	if q.OffsetValue() > 0 {
		db = db.Offset(q.OffsetValue())
	}

	return db
}

// ApplyConditions applies only WHERE conditions (no limit/offset/order),
// for COUNT and DELETE statements.
func ApplyConditions(db *gorm.DB, options ...sieve.Option) *gorm.DB {
	return applyConditions(db, sieve.Build(options...))
}

func applyConditions(db *gorm.DB, q sieve.Query) *gorm.DB {
	for _, cond := range q.Conditions() {
		db = db.Where(fmt.Sprintf("%s %s ?", cond.Field(), cond.Operator()), cond.Value())
	}
	return db
}
