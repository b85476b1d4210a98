package implementation

import (
	"context"

	"task-tracking-be/internal/entity"
	"task-tracking-be/internal/model"
	"task-tracking-be/internal/repository/contract"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type LifecycleEventRepositoryImpl struct {
	db *gorm.DB
}

func NewLifecycleEventRepository(db *gorm.DB) contract.LifecycleEventRepository {
	return &LifecycleEventRepositoryImpl{db: db}
}

func (r *LifecycleEventRepositoryImpl) Create(ctx context.Context, event *entity.LifecycleEvent) error {
	m := &model.LifecycleEvent{
		Id:         event.Id,
		UserId:     event.UserId,
		EntityType: event.EntityType,
		EntityId:   event.EntityId,
		EventType:  event.EventType,
		Payload:    datatypes.JSON(event.Payload),
		CreatedAt:  event.CreatedAt,
	}
	return r.db.WithContext(ctx).Create(m).Error
}
