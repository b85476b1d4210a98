package dto

import (
	"time"

	"github.com/google/uuid"
)

type HistoryQuery struct {
	Priority  string `validate:"omitempty,oneof=low medium high"`
	GroupName string
	// GroupMatch selects exact or substring matching for GroupName.
	GroupMatch string `validate:"omitempty,oneof=exact contains"`
	Search     string
	// CompletedFrom/CompletedTo bound the completion date,
	// inclusive-start, inclusive-end (YYYY-MM-DD).
	CompletedFrom string `validate:"omitempty,datetime=2006-01-02"`
	CompletedTo   string `validate:"omitempty,datetime=2006-01-02"`
	SortBy        string `validate:"omitempty,oneof=archived_at completed_at created_at title priority"`
	Order         string `validate:"omitempty,oneof=asc desc"`
	Page          int
	Limit         int
}

// ArchivedNoteResponse is the persisted wire shape of an archive entry;
// the field set is relied on by stats bucketing and data migration, so
// treat it as stable.
type ArchivedNoteResponse struct {
	Id             uuid.UUID  `json:"id"`
	UserId         uuid.UUID  `json:"user_id"`
	OriginalNoteId uuid.UUID  `json:"original_note_id"`
	Title          string     `json:"title"`
	Description    string     `json:"description"`
	Priority       string     `json:"priority"`
	GroupName      *string    `json:"group_name"`
	CompletedAt    *time.Time `json:"completed_at"`
	ArchivedAt     time.Time  `json:"archived_at"`
	CreatedAt      time.Time  `json:"created_at"`
}

type HistoryListResponse struct {
	Items      []*ArchivedNoteResponse `json:"items"`
	Pagination PaginationResponse      `json:"pagination"`
}

type DailyStatsQuery struct {
	// From/To are inclusive-start, exclusive-end calendar dates
	// (YYYY-MM-DD). Days caps the window length.
	From string `validate:"omitempty,datetime=2006-01-02"`
	To   string `validate:"omitempty,datetime=2006-01-02"`
	Days int    `validate:"omitempty,min=1,max=365"`
}

type PriorityBreakdown struct {
	Low    int64 `json:"low"`
	Medium int64 `json:"medium"`
	High   int64 `json:"high"`
}

type DailyStatsResponse struct {
	Date           string            `json:"date"`
	TotalCompleted int64             `json:"total_completed"`
	ByPriority     PriorityBreakdown `json:"by_priority"`
}
