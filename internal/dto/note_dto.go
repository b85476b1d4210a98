package dto

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// OptionalUUID distinguishes an absent JSON field from an explicit null:
// absent means "leave unchanged", null means "clear the reference".
type OptionalUUID struct {
	Set   bool
	Value *uuid.UUID
}

func (o *OptionalUUID) UnmarshalJSON(data []byte) error {
	o.Set = true
	if bytes.Equal(data, []byte("null")) {
		o.Value = nil
		return nil
	}
	var id uuid.UUID
	if err := json.Unmarshal(data, &id); err != nil {
		return err
	}
	o.Value = &id
	return nil
}

type CreateNoteRequest struct {
	Title       string     `json:"title" validate:"required,min=1,max=255"`
	Description string     `json:"description" validate:"max=2000"`
	GroupId     *uuid.UUID `json:"group_id"`
	Priority    string     `json:"priority" validate:"omitempty,oneof=low medium high"`
	Status      string     `json:"status" validate:"omitempty,oneof=todo in_progress done"`
}

// UpdateNoteRequest carries partial updates: nil pointer fields are left
// unchanged. Status excludes "archived" on purpose; that transition has
// its own endpoint.
type UpdateNoteRequest struct {
	Id          uuid.UUID    `json:"-"`
	Title       *string      `json:"title" validate:"omitempty,min=1,max=255"`
	Description *string      `json:"description" validate:"omitempty,max=2000"`
	Priority    *string      `json:"priority" validate:"omitempty,oneof=low medium high"`
	Status      *string      `json:"status" validate:"omitempty,oneof=todo in_progress done"`
	GroupId     OptionalUUID `json:"group_id"`
}

type UpdateNoteStatusRequest struct {
	Id     uuid.UUID `json:"-"`
	Status string    `json:"status" validate:"required,oneof=todo in_progress done"`
}

type ListNotesQuery struct {
	Status   string `validate:"omitempty,oneof=todo in_progress done archived"`
	Priority string `validate:"omitempty,oneof=low medium high"`
	// GroupId is a uuid string, or the literal "none" for ungrouped notes.
	GroupId string
	Search  string
	SortBy  string `validate:"omitempty,oneof=created_at updated_at title priority"`
	Order   string `validate:"omitempty,oneof=asc desc"`
	Page    int
	Limit   int
}

type NoteResponse struct {
	Id          uuid.UUID  `json:"id"`
	UserId      uuid.UUID  `json:"user_id"`
	GroupId     *uuid.UUID `json:"group_id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      string     `json:"status"`
	Priority    string     `json:"priority"`
	CompletedAt *time.Time `json:"completed_at"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at"`
}

type ListNotesResponse struct {
	Items      []*NoteResponse    `json:"items"`
	Pagination PaginationResponse `json:"pagination"`
}

type NoteCountsResponse struct {
	Counts map[string]int64 `json:"counts"`
}
