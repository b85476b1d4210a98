package implementation

import (
	"context"
	"errors"

	"task-tracking-be/internal/entity"
	"task-tracking-be/internal/mapper"
	"task-tracking-be/internal/model"
	"task-tracking-be/internal/repository/contract"
	"task-tracking-be/internal/repository/scope"
	"task-tracking-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

func hasOrderBy(specs []specification.Specification) bool {
	for _, s := range specs {
		if _, ok := s.(specification.OrderBy); ok {
			return true
		}
	}
	return false
}

type NoteRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.NoteMapper
}

func NewNoteRepository(db *gorm.DB) contract.NoteRepository {
	return &NoteRepositoryImpl{
		db:     db,
		mapper: mapper.NewNoteMapper(),
	}
}

func (r *NoteRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *NoteRepositoryImpl) Create(ctx context.Context, note *entity.Note) error {
	m := r.mapper.ToModel(note)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*note = *r.mapper.ToEntity(m)
	return nil
}

func (r *NoteRepositoryImpl) Update(ctx context.Context, note *entity.Note) error {
	m := r.mapper.ToModel(note)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*note = *r.mapper.ToEntity(m)
	return nil
}

func (r *NoteRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Note{}, id).Error
}

func (r *NoteRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Note, error) {
	var m model.Note
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *NoteRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Note, error) {
	var models []*model.Note
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if !hasOrderBy(specs) {
		query = query.Scopes(scope.OrderByCreatedDesc)
	}
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *NoteRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.Note{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *NoteRepositoryImpl) ClearGroup(ctx context.Context, groupId, userId uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&model.Note{}).
		Where("group_id = ? AND user_id = ?", groupId, userId).
		Update("group_id", nil).Error
}

type countRow struct {
	Key   string
	Count int64
}

func (r *NoteRepositoryImpl) StatusCounts(ctx context.Context, userId uuid.UUID) (map[entity.NoteStatus]int64, error) {
	var rows []countRow
	err := r.db.WithContext(ctx).Raw(`
		SELECT status AS key, COUNT(*) AS count
		FROM notes
		WHERE user_id = ?
		GROUP BY status
	`, userId).Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[entity.NoteStatus]int64, len(rows))
	for _, row := range rows {
		counts[entity.NoteStatus(row.Key)] = row.Count
	}
	return counts, nil
}

func (r *NoteRepositoryImpl) PriorityCounts(ctx context.Context, userId uuid.UUID) (map[entity.NotePriority]int64, error) {
	var rows []countRow
	err := r.db.WithContext(ctx).Raw(`
		SELECT priority AS key, COUNT(*) AS count
		FROM notes
		WHERE user_id = ?
		GROUP BY priority
	`, userId).Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[entity.NotePriority]int64, len(rows))
	for _, row := range rows {
		counts[entity.NotePriority(row.Key)] = row.Count
	}
	return counts, nil
}

func (r *NoteRepositoryImpl) ActiveCountPerGroup(ctx context.Context, userId uuid.UUID) (map[uuid.UUID]int64, error) {
	var rows []struct {
		GroupId uuid.UUID
		Count   int64
	}
	err := r.db.WithContext(ctx).Raw(`
		SELECT group_id, COUNT(*) AS count
		FROM notes
		WHERE user_id = ? AND group_id IS NOT NULL AND status <> ?
		GROUP BY group_id
	`, userId, string(entity.NoteStatusDone)).Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[uuid.UUID]int64, len(rows))
	for _, row := range rows {
		counts[row.GroupId] = row.Count
	}
	return counts, nil
}
