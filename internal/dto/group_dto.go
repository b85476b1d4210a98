package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateGroupRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=100"`
	Description string `json:"description"`
	Color       string `json:"color" validate:"omitempty,hexcolor"`
}

type UpdateGroupRequest struct {
	Id          uuid.UUID `json:"-"`
	Name        *string   `json:"name" validate:"omitempty,min=1,max=100"`
	Description *string   `json:"description"`
	Color       *string   `json:"color" validate:"omitempty,hexcolor"`
}

type GroupResponse struct {
	Id          uuid.UUID  `json:"id"`
	UserId      uuid.UUID  `json:"user_id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Color       string     `json:"color"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at"`
}

// GroupWithCountResponse reports outstanding work per group: the count
// excludes notes already done.
type GroupWithCountResponse struct {
	GroupResponse
	ActiveNoteCount int64 `json:"active_note_count"`
}
