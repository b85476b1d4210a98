package entity

import (
	"time"

	"github.com/google/uuid"
)

const (
	EventNoteCompleted     = "NOTE_COMPLETED"
	EventNoteArchived      = "NOTE_ARCHIVED"
	EventNoteUnarchived    = "NOTE_UNARCHIVED"
	EventNoteArchiveFailed = "NOTE_ARCHIVE_FAILED"
	EventGroupDeleted      = "GROUP_DELETED"
)

// LifecycleEvent is one audit-trail row. Payload holds the raw JSON of
// the event data.
type LifecycleEvent struct {
	Id         uuid.UUID
	UserId     uuid.UUID
	EntityType string
	EntityId   *uuid.UUID
	EventType  string
	Payload    []byte
	CreatedAt  time.Time
}
