package specification

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ByOriginalNoteID struct {
	NoteID uuid.UUID
}

func (s ByOriginalNoteID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("original_note_id = ?", s.NoteID)
}

type ByGroupName struct {
	Name string
}

func (s ByGroupName) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("group_name = ?", s.Name)
}

type GroupNameLike struct {
	Name string
}

func (s GroupNameLike) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("group_name ILIKE ?", "%"+s.Name+"%")
}

// ArchiveSearchQuery matches title and description of archived snapshots.
type ArchiveSearchQuery struct {
	Query string
}

func (s ArchiveSearchQuery) Apply(db *gorm.DB) *gorm.DB {
	pattern := "%" + s.Query + "%"
	return db.Where("title ILIKE ? OR description ILIKE ?", pattern, pattern)
}

type CompletedBetween struct {
	From *time.Time
	To   *time.Time
}

func (s CompletedBetween) Apply(db *gorm.DB) *gorm.DB {
	if s.From != nil {
		db = db.Where("completed_at >= ?", *s.From)
	}
	if s.To != nil {
		db = db.Where("completed_at < ?", *s.To)
	}
	return db
}
