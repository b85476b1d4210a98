package model

import (
	"time"

	"github.com/google/uuid"
)

// ArchivedNote rows are written once and never updated. The composite
// unique index on (user_id, original_note_id) is the serialization point
// that keeps concurrent archival attempts from producing duplicate rows;
// the archive service treats the resulting constraint violation as
// "already archived".
type ArchivedNote struct {
	Id             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId         uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_archived_notes_owner_note"`
	OriginalNoteId uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_archived_notes_owner_note"`
	Title          string    `gorm:"type:varchar(255);not null"`
	Description    string    `gorm:"type:text"`
	Priority       string    `gorm:"type:varchar(10);not null"`
	GroupName      *string   `gorm:"type:varchar(100)"`
	CompletedAt    *time.Time
	ArchivedAt     time.Time `gorm:"not null"`
	CreatedAt      time.Time `gorm:"not null"`
}

func (ArchivedNote) TableName() string {
	return "archived_notes"
}
