package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ByStatus struct {
	Status string
}

func (s ByStatus) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("status = ?", s.Status)
}

type ByPriority struct {
	Priority string
}

func (s ByPriority) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("priority = ?", s.Priority)
}

type ByGroupID struct {
	GroupID uuid.UUID
}

func (s ByGroupID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("group_id = ?", s.GroupID)
}

// Ungrouped selects notes with no group reference (the explicit
// "no group" list filter).
type Ungrouped struct{}

func (s Ungrouped) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("group_id IS NULL")
}

// NoteSearchQuery does a case-insensitive substring match over title
// and description.
type NoteSearchQuery struct {
	Query string
}

func (s NoteSearchQuery) Apply(db *gorm.DB) *gorm.DB {
	pattern := "%" + s.Query + "%"
	return db.Where("title ILIKE ? OR description ILIKE ?", pattern, pattern)
}
