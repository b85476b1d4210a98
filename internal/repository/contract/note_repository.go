package contract

import (
	"context"

	"task-tracking-be/internal/entity"
	"task-tracking-be/internal/repository/specification"

	"github.com/google/uuid"
)

type NoteRepository interface {
	Create(ctx context.Context, note *entity.Note) error
	Update(ctx context.Context, note *entity.Note) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Note, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Note, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)

	// ClearGroup detaches every note of the owner from the given group.
	// Runs as a single UPDATE so it stays atomic inside a transaction.
	ClearGroup(ctx context.Context, groupId, userId uuid.UUID) error

	// StatusCounts and PriorityCounts are GROUP BY aggregates over the
	// owner's notes.
	StatusCounts(ctx context.Context, userId uuid.UUID) (map[entity.NoteStatus]int64, error)
	PriorityCounts(ctx context.Context, userId uuid.UUID) (map[entity.NotePriority]int64, error)

	// ActiveCountPerGroup counts notes per group excluding done ones,
	// i.e. outstanding work.
	ActiveCountPerGroup(ctx context.Context, userId uuid.UUID) (map[uuid.UUID]int64, error)
}
