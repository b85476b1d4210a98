package implementation

import (
	"context"
	"errors"
	"time"

	"task-tracking-be/internal/entity"
	"task-tracking-be/internal/mapper"
	"task-tracking-be/internal/model"
	"task-tracking-be/internal/repository/contract"
	"task-tracking-be/internal/repository/scope"
	"task-tracking-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ArchivedNoteRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ArchivedNoteMapper
}

func NewArchivedNoteRepository(db *gorm.DB) contract.ArchivedNoteRepository {
	return &ArchivedNoteRepositoryImpl{
		db:     db,
		mapper: mapper.NewArchivedNoteMapper(),
	}
}

func (r *ArchivedNoteRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *ArchivedNoteRepositoryImpl) Create(ctx context.Context, archive *entity.ArchivedNote) error {
	m := r.mapper.ToModel(archive)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*archive = *r.mapper.ToEntity(m)
	return nil
}

func (r *ArchivedNoteRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.ArchivedNote{}, id).Error
}

func (r *ArchivedNoteRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ArchivedNote, error) {
	var m model.ArchivedNote
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *ArchivedNoteRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ArchivedNote, error) {
	var models []*model.ArchivedNote
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if !hasOrderBy(specs) {
		query = query.Scopes(scope.OrderByArchivedDesc)
	}
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *ArchivedNoteRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.ArchivedNote{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *ArchivedNoteRepositoryImpl) DailyCompletionStats(ctx context.Context, userId uuid.UUID, from, to *time.Time) ([]*entity.DailyCompletionStat, error) {
	query := r.db.WithContext(ctx).
		Model(&model.ArchivedNote{}).
		Select(`to_char(completed_at, 'YYYY-MM-DD') AS date,
			COUNT(*) AS total,
			COUNT(*) FILTER (WHERE priority = 'low') AS low,
			COUNT(*) FILTER (WHERE priority = 'medium') AS medium,
			COUNT(*) FILTER (WHERE priority = 'high') AS high`).
		Where("user_id = ? AND completed_at IS NOT NULL", userId)

	if from != nil {
		query = query.Where("completed_at >= ?", *from)
	}
	if to != nil {
		query = query.Where("completed_at < ?", *to)
	}

	var stats []*entity.DailyCompletionStat
	err := query.
		Group("date").
		Order("date ASC").
		Scan(&stats).Error
	if err != nil {
		return nil, err
	}
	return stats, nil
}
