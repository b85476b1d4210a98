package dto

import (
	"time"

	"github.com/google/uuid"
)

// LifecycleEventMessage is the envelope published on the in-process
// lifecycle bus and materialized into the audit table by the consumer.
type LifecycleEventMessage struct {
	Type       string                 `json:"type"`
	UserId     uuid.UUID              `json:"user_id"`
	EntityType string                 `json:"entity_type"`
	EntityId   *uuid.UUID             `json:"entity_id"`
	Data       map[string]interface{} `json:"data"`
	OccurredAt time.Time              `json:"occurred_at"`
}
