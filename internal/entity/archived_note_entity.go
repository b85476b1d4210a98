package entity

import (
	"time"

	"github.com/google/uuid"
)

// DailyCompletionStat is one calendar-date bucket of completed notes,
// keyed by the completion date of the archived snapshot (not the
// archival date). Date is formatted YYYY-MM-DD.
type DailyCompletionStat struct {
	Date   string
	Total  int64
	Low    int64
	Medium int64
	High   int64
}

// ArchivedNote is an immutable snapshot of a note taken when it first
// reached the done status. GroupName is a plain string copy, not a
// reference: it survives renaming or deleting the live group.
type ArchivedNote struct {
	Id             uuid.UUID
	UserId         uuid.UUID
	OriginalNoteId uuid.UUID
	Title          string
	Description    string
	Priority       NotePriority
	GroupName      *string
	CompletedAt    *time.Time
	ArchivedAt     time.Time
	CreatedAt      time.Time
}
