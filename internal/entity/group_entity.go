package entity

import (
	"time"

	"github.com/google/uuid"
)

type Group struct {
	Id          uuid.UUID
	UserId      uuid.UUID
	Name        string
	Description string
	Color       string
	CreatedAt   time.Time
	UpdatedAt   *time.Time
}
