package contract

import (
	"context"
	"time"

	"task-tracking-be/internal/entity"
	"task-tracking-be/internal/repository/specification"

	"github.com/google/uuid"
)

type ArchivedNoteRepository interface {
	Create(ctx context.Context, archive *entity.ArchivedNote) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ArchivedNote, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ArchivedNote, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)

	// DailyCompletionStats buckets the owner's archived notes by the
	// calendar date of completed_at, with a per-priority breakdown.
	// Dates with no completions are not returned.
	DailyCompletionStats(ctx context.Context, userId uuid.UUID, from, to *time.Time) ([]*entity.DailyCompletionStat, error)
}
