package implementation

import (
	"context"
	"errors"

	"task-tracking-be/internal/entity"
	"task-tracking-be/internal/mapper"
	"task-tracking-be/internal/model"
	"task-tracking-be/internal/repository/contract"
	"task-tracking-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GroupRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.GroupMapper
}

func NewGroupRepository(db *gorm.DB) contract.GroupRepository {
	return &GroupRepositoryImpl{
		db:     db,
		mapper: mapper.NewGroupMapper(),
	}
}

func (r *GroupRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *GroupRepositoryImpl) Create(ctx context.Context, group *entity.Group) error {
	m := r.mapper.ToModel(group)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*group = *r.mapper.ToEntity(m)
	return nil
}

func (r *GroupRepositoryImpl) Update(ctx context.Context, group *entity.Group) error {
	m := r.mapper.ToModel(group)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*group = *r.mapper.ToEntity(m)
	return nil
}

func (r *GroupRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Group{}, id).Error
}

func (r *GroupRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Group, error) {
	var m model.Group
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *GroupRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Group, error) {
	var models []*model.Group
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *GroupRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.Group{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
