package specification

import "gorm.io/gorm"

// Specification narrows, orders or pages a query. Repositories apply the
// ones they receive in order, so several specs are AND-ed.
type Specification interface {
	Apply(db *gorm.DB) *gorm.DB
}

// Func adapts a plain function to a Specification.
type Func func(db *gorm.DB) *gorm.DB

func (f Func) Apply(db *gorm.DB) *gorm.DB {
	return f(db)
}

// Apply runs every spec against db.
func Apply(db *gorm.DB, specs ...Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}
