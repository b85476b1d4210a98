package mapper

import (
	"time"

	"task-tracking-be/internal/entity"
	"task-tracking-be/internal/model"
)

type GroupMapper struct{}

func NewGroupMapper() *GroupMapper {
	return &GroupMapper{}
}

func (m *GroupMapper) ToEntity(g *model.Group) *entity.Group {
	if g == nil {
		return nil
	}

	var updatedAt *time.Time
	if !g.UpdatedAt.IsZero() {
		t := g.UpdatedAt
		updatedAt = &t
	}

	return &entity.Group{
		Id:          g.Id,
		UserId:      g.UserId,
		Name:        g.Name,
		Description: g.Description,
		Color:       g.Color,
		CreatedAt:   g.CreatedAt,
		UpdatedAt:   updatedAt,
	}
}

func (m *GroupMapper) ToModel(g *entity.Group) *model.Group {
	if g == nil {
		return nil
	}

	var updatedAt time.Time
	if g.UpdatedAt != nil {
		updatedAt = *g.UpdatedAt
	}

	return &model.Group{
		Id:          g.Id,
		UserId:      g.UserId,
		Name:        g.Name,
		Description: g.Description,
		Color:       g.Color,
		CreatedAt:   g.CreatedAt,
		UpdatedAt:   updatedAt,
	}
}

func (m *GroupMapper) ToEntities(groups []*model.Group) []*entity.Group {
	entities := make([]*entity.Group, len(groups))
	for i, g := range groups {
		entities[i] = m.ToEntity(g)
	}
	return entities
}
