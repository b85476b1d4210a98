package mapper

import (
	"time"

	"task-tracking-be/internal/entity"
	"task-tracking-be/internal/model"
)

type NoteMapper struct{}

func NewNoteMapper() *NoteMapper {
	return &NoteMapper{}
}

func (m *NoteMapper) ToEntity(n *model.Note) *entity.Note {
	if n == nil {
		return nil
	}

	var updatedAt *time.Time
	if !n.UpdatedAt.IsZero() {
		t := n.UpdatedAt
		updatedAt = &t
	}

	return &entity.Note{
		Id:          n.Id,
		UserId:      n.UserId,
		GroupId:     n.GroupId,
		Title:       n.Title,
		Description: n.Description,
		Status:      entity.NoteStatus(n.Status),
		Priority:    entity.NotePriority(n.Priority),
		CompletedAt: n.CompletedAt,
		CreatedAt:   n.CreatedAt,
		UpdatedAt:   updatedAt,
	}
}

func (m *NoteMapper) ToModel(n *entity.Note) *model.Note {
	if n == nil {
		return nil
	}

	var updatedAt time.Time
	if n.UpdatedAt != nil {
		updatedAt = *n.UpdatedAt
	}

	return &model.Note{
		Id:          n.Id,
		UserId:      n.UserId,
		GroupId:     n.GroupId,
		Title:       n.Title,
		Description: n.Description,
		Status:      string(n.Status),
		Priority:    string(n.Priority),
		CompletedAt: n.CompletedAt,
		CreatedAt:   n.CreatedAt,
		UpdatedAt:   updatedAt,
	}
}

func (m *NoteMapper) ToEntities(notes []*model.Note) []*entity.Note {
	entities := make([]*entity.Note, len(notes))
	for i, n := range notes {
		entities[i] = m.ToEntity(n)
	}
	return entities
}
