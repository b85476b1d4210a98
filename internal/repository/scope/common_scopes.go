// Package scope holds gorm scopes for orderings the repositories fall
// back to when a query carries no explicit OrderBy specification, so
// list results stay deterministic.
package scope

import "gorm.io/gorm"

func OrderByCreatedDesc(db *gorm.DB) *gorm.DB {
	return db.Order("created_at DESC")
}

func OrderByArchivedDesc(db *gorm.DB) *gorm.DB {
	return db.Order("archived_at DESC")
}
