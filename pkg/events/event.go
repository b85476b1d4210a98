package events

import (
	"time"

	"github.com/google/uuid"
)

// LifecycleEvent is the cross-process form of a note lifecycle event.
// It mirrors the audit row: which entity changed, what happened to it,
// and a free-form payload with the transition details.
type LifecycleEvent struct {
	Type       string                 `json:"type"`
	UserId     uuid.UUID              `json:"user_id"`
	EntityType string                 `json:"entity_type"`
	EntityId   *uuid.UUID             `json:"entity_id"`
	Data       map[string]interface{} `json:"data"`
	OccurredAt time.Time              `json:"occurred_at"`
}

// Subject returns the NATS subject the event is published under,
// one per event type below the lifecycle stream root.
func (e LifecycleEvent) Subject() string {
	return "lifecycle." + e.Type
}
