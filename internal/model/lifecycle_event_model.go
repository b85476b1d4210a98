package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// LifecycleEvent is the durable audit trail behind the in-process event
// bus. Failed archival attempts land here too, which keeps "done but
// unarchived" notes discoverable for a later manual archive.
type LifecycleEvent struct {
	Id         uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId     uuid.UUID      `gorm:"type:uuid;not null;index"`
	EntityType string         `gorm:"type:varchar(50);not null"`
	EntityId   *uuid.UUID     `gorm:"type:uuid"`
	EventType  string         `gorm:"type:varchar(50);not null;index"`
	Payload    datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt  time.Time      `gorm:"default:now();not null;index"`
}

func (LifecycleEvent) TableName() string {
	return "lifecycle_events"
}
