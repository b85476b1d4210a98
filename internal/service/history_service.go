package service

import (
	"context"
	"fmt"
	"time"

	"task-tracking-be/internal/dto"
	"task-tracking-be/internal/repository/memory"
	"task-tracking-be/internal/repository/specification"
	"task-tracking-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

const (
	defaultStatsDays = 30
	maxStatsDays     = 365
)

type IHistoryService interface {
	Query(ctx context.Context, userId uuid.UUID, query *dto.HistoryQuery) (*dto.HistoryListResponse, error)
	DailyStats(ctx context.Context, userId uuid.UUID, query *dto.DailyStatsQuery) ([]*dto.DailyStatsResponse, error)
}

var historySortColumns = map[string]string{
	"archived_at":  "archived_at",
	"completed_at": "completed_at",
	"created_at":   "created_at",
	"title":        "title",
	"priority":     "priority",
}

type historyService struct {
	uowFactory unitofwork.RepositoryFactory
	statsCache *memory.StatsCache
}

func NewHistoryService(uowFactory unitofwork.RepositoryFactory, statsCache *memory.StatsCache) IHistoryService {
	return &historyService{
		uowFactory: uowFactory,
		statsCache: statsCache,
	}
}

func (s *historyService) Query(ctx context.Context, userId uuid.UUID, query *dto.HistoryQuery) (*dto.HistoryListResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	repo := uow.ArchivedNoteRepository()

	filters := []specification.Specification{
		specification.OwnedBy{UserID: userId},
	}
	if query.Priority != "" {
		filters = append(filters, specification.ByPriority{Priority: query.Priority})
	}
	if query.GroupName != "" {
		if query.GroupMatch == "contains" {
			filters = append(filters, specification.GroupNameLike{Name: query.GroupName})
		} else {
			filters = append(filters, specification.ByGroupName{Name: query.GroupName})
		}
	}
	if query.Search != "" {
		filters = append(filters, specification.ArchiveSearchQuery{Query: query.Search})
	}
	if query.CompletedFrom != "" || query.CompletedTo != "" {
		rng := specification.CompletedBetween{From: parseDate(query.CompletedFrom)}
		if t := parseDate(query.CompletedTo); t != nil {
			// The query date is inclusive; the repository bound is not.
			end := t.AddDate(0, 0, 1)
			rng.To = &end
		}
		filters = append(filters, rng)
	}

	total, err := repo.Count(ctx, filters...)
	if err != nil {
		return nil, err
	}

	page, limit := dto.ClampPage(query.Page, query.Limit)

	column, ok := historySortColumns[query.SortBy]
	if !ok {
		column = "archived_at"
	}
	desc := query.Order != "asc"

	specs := append(filters,
		specification.OrderBy{Field: column, Desc: desc},
		specification.Pagination{Limit: limit, Offset: (page - 1) * limit},
	)

	archived, err := repo.FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}

	items := make([]*dto.ArchivedNoteResponse, len(archived))
	for i, a := range archived {
		items[i] = archivedNoteToResponse(a)
	}

	return &dto.HistoryListResponse{
		Items:      items,
		Pagination: dto.NewPaginationResponse(page, limit, total),
	}, nil
}

// DailyStats aggregates completed work per calendar day. An explicit
// From/To range wins; otherwise the window is the last Days days up to
// and including today. Results are cached briefly since dashboards poll
// this endpoint.
func (s *historyService) DailyStats(ctx context.Context, userId uuid.UUID, query *dto.DailyStatsQuery) ([]*dto.DailyStatsResponse, error) {
	from, to := s.resolveWindow(query)

	cacheKey := statsCacheKey(userId, from, to)
	stats, found := s.statsCache.Get(cacheKey)
	if !found {
		uow := s.uowFactory.NewUnitOfWork(ctx)
		var err error
		stats, err = uow.ArchivedNoteRepository().DailyCompletionStats(ctx, userId, from, to)
		if err != nil {
			return nil, err
		}
		s.statsCache.Set(cacheKey, stats)
	}

	res := make([]*dto.DailyStatsResponse, len(stats))
	for i, stat := range stats {
		res[i] = &dto.DailyStatsResponse{
			Date:           stat.Date,
			TotalCompleted: stat.Total,
			ByPriority: dto.PriorityBreakdown{
				Low:    stat.Low,
				Medium: stat.Medium,
				High:   stat.High,
			},
		}
	}
	return res, nil
}

func (s *historyService) resolveWindow(query *dto.DailyStatsQuery) (*time.Time, *time.Time) {
	from := parseDate(query.From)

	var to *time.Time
	if t := parseDate(query.To); t != nil {
		// The query date is inclusive; the repository bound is not.
		end := t.AddDate(0, 0, 1)
		to = &end
	}
	if from != nil || to != nil {
		return from, to
	}

	days := query.Days
	if days <= 0 {
		days = defaultStatsDays
	}
	if days > maxStatsDays {
		days = maxStatsDays
	}

	now := time.Now()
	endOfToday := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local).AddDate(0, 0, 1)
	start := endOfToday.AddDate(0, 0, -days)
	return &start, &endOfToday
}

func parseDate(value string) *time.Time {
	if value == "" {
		return nil
	}
	t, err := time.ParseInLocation("2006-01-02", value, time.Local)
	if err != nil {
		return nil
	}
	return &t
}

func statsCacheKey(userId uuid.UUID, from, to *time.Time) string {
	f, t := "", ""
	if from != nil {
		f = from.Format("2006-01-02")
	}
	if to != nil {
		t = to.Format("2006-01-02")
	}
	return fmt.Sprintf("%s|%s|%s", userId, f, t)
}
