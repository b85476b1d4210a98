package contract

import (
	"context"

	"task-tracking-be/internal/entity"
)

// LifecycleEventRepository writes audit rows; the table is append-only.
type LifecycleEventRepository interface {
	Create(ctx context.Context, event *entity.LifecycleEvent) error
}
