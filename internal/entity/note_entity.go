package entity

import (
	"time"

	"github.com/google/uuid"
)

type NoteStatus string

const (
	NoteStatusTodo       NoteStatus = "todo"
	NoteStatusInProgress NoteStatus = "in_progress"
	NoteStatusDone       NoteStatus = "done"
	NoteStatusArchived   NoteStatus = "archived"
)

// ParseNoteStatus validates a raw status value.
func ParseNoteStatus(s string) (NoteStatus, bool) {
	switch NoteStatus(s) {
	case NoteStatusTodo, NoteStatusInProgress, NoteStatusDone, NoteStatusArchived:
		return NoteStatus(s), true
	}
	return "", false
}

type NotePriority string

const (
	NotePriorityLow    NotePriority = "low"
	NotePriorityMedium NotePriority = "medium"
	NotePriorityHigh   NotePriority = "high"
)

func ParseNotePriority(s string) (NotePriority, bool) {
	switch NotePriority(s) {
	case NotePriorityLow, NotePriorityMedium, NotePriorityHigh:
		return NotePriority(s), true
	}
	return "", false
}

// Note is a single task item. CompletedAt is non-nil exactly while
// Status == NoteStatusDone; the status transition logic in the service
// layer owns that coupling.
type Note struct {
	Id          uuid.UUID
	UserId      uuid.UUID
	GroupId     *uuid.UUID
	Title       string
	Description string
	Status      NoteStatus
	Priority    NotePriority
	CompletedAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   *time.Time
}
