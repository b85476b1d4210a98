package mapper

import (
	"task-tracking-be/internal/entity"
	"task-tracking-be/internal/model"
)

type ArchivedNoteMapper struct{}

func NewArchivedNoteMapper() *ArchivedNoteMapper {
	return &ArchivedNoteMapper{}
}

func (m *ArchivedNoteMapper) ToEntity(a *model.ArchivedNote) *entity.ArchivedNote {
	if a == nil {
		return nil
	}

	return &entity.ArchivedNote{
		Id:             a.Id,
		UserId:         a.UserId,
		OriginalNoteId: a.OriginalNoteId,
		Title:          a.Title,
		Description:    a.Description,
		Priority:       entity.NotePriority(a.Priority),
		GroupName:      a.GroupName,
		CompletedAt:    a.CompletedAt,
		ArchivedAt:     a.ArchivedAt,
		CreatedAt:      a.CreatedAt,
	}
}

func (m *ArchivedNoteMapper) ToModel(a *entity.ArchivedNote) *model.ArchivedNote {
	if a == nil {
		return nil
	}

	return &model.ArchivedNote{
		Id:             a.Id,
		UserId:         a.UserId,
		OriginalNoteId: a.OriginalNoteId,
		Title:          a.Title,
		Description:    a.Description,
		Priority:       string(a.Priority),
		GroupName:      a.GroupName,
		CompletedAt:    a.CompletedAt,
		ArchivedAt:     a.ArchivedAt,
		CreatedAt:      a.CreatedAt,
	}
}

func (m *ArchivedNoteMapper) ToEntities(archives []*model.ArchivedNote) []*entity.ArchivedNote {
	entities := make([]*entity.ArchivedNote, len(archives))
	for i, a := range archives {
		entities[i] = m.ToEntity(a)
	}
	return entities
}
