package service

import (
	"context"
	"time"

	"task-tracking-be/internal/dto"
	"task-tracking-be/internal/entity"
	"task-tracking-be/internal/pkg/apperrors"
	"task-tracking-be/internal/pkg/logger"
	"task-tracking-be/internal/repository/specification"
	"task-tracking-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type INoteService interface {
	Create(ctx context.Context, userId uuid.UUID, req *dto.CreateNoteRequest) (*dto.NoteResponse, error)
	Show(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.NoteResponse, error)
	List(ctx context.Context, userId uuid.UUID, query *dto.ListNotesQuery) (*dto.ListNotesResponse, error)
	Update(ctx context.Context, userId uuid.UUID, req *dto.UpdateNoteRequest) (*dto.NoteResponse, error)
	SetStatus(ctx context.Context, userId uuid.UUID, req *dto.UpdateNoteStatusRequest) (*dto.NoteResponse, error)
	Archive(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.NoteResponse, error)
	Unarchive(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.NoteResponse, error)
	Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) (bool, error)
	StatusCounts(ctx context.Context, userId uuid.UUID) (*dto.NoteCountsResponse, error)
	PriorityCounts(ctx context.Context, userId uuid.UUID) (*dto.NoteCountsResponse, error)
}

// noteSortColumns is the allow-list for list ordering; anything else
// falls back to created_at.
var noteSortColumns = map[string]string{
	"created_at": "created_at",
	"updated_at": "updated_at",
	"title":      "title",
	"priority":   "priority",
}

type noteService struct {
	uowFactory       unitofwork.RepositoryFactory
	archiveService   IArchiveService
	publisherService IPublisherService
	logger           logger.ILogger
}

func NewNoteService(
	uowFactory unitofwork.RepositoryFactory,
	archiveService IArchiveService,
	publisherService IPublisherService,
	log logger.ILogger,
) INoteService {
	return &noteService{
		uowFactory:       uowFactory,
		archiveService:   archiveService,
		publisherService: publisherService,
		logger:           log,
	}
}

func (s *noteService) Create(ctx context.Context, userId uuid.UUID, req *dto.CreateNoteRequest) (*dto.NoteResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	status := entity.NoteStatusTodo
	if req.Status != "" {
		status, _ = entity.ParseNoteStatus(req.Status)
	}
	priority := entity.NotePriorityMedium
	if req.Priority != "" {
		priority, _ = entity.ParseNotePriority(req.Priority)
	}

	var groupId *uuid.UUID
	if req.GroupId != nil && *req.GroupId != uuid.Nil {
		group, err := uow.GroupRepository().FindOne(ctx,
			specification.ByID{ID: *req.GroupId},
			specification.OwnedBy{UserID: userId},
		)
		if err != nil {
			return nil, err
		}
		if group == nil {
			return nil, apperrors.NewValidationError("group_id", "group does not exist")
		}
		groupId = req.GroupId
	}

	now := time.Now()
	note := entity.Note{
		Id:          uuid.New(),
		UserId:      userId,
		GroupId:     groupId,
		Title:       req.Title,
		Description: req.Description,
		Status:      status,
		Priority:    priority,
		CreatedAt:   now,
	}
	if status == entity.NoteStatusDone {
		note.CompletedAt = &now
	}

	if err := uow.NoteRepository().Create(ctx, &note); err != nil {
		return nil, err
	}

	// A note born done still gets its history snapshot.
	if status == entity.NoteStatusDone {
		s.archiveBestEffort(ctx, uow, &note)
	}

	return noteToResponse(&note), nil
}

func (s *noteService) Show(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.NoteResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	note, err := uow.NoteRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.OwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if note == nil {
		return nil, nil
	}
	return noteToResponse(note), nil
}

func (s *noteService) List(ctx context.Context, userId uuid.UUID, query *dto.ListNotesQuery) (*dto.ListNotesResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	repo := uow.NoteRepository()

	filters := []specification.Specification{
		specification.OwnedBy{UserID: userId},
	}
	if query.Status != "" {
		filters = append(filters, specification.ByStatus{Status: query.Status})
	}
	if query.Priority != "" {
		filters = append(filters, specification.ByPriority{Priority: query.Priority})
	}
	if query.GroupId != "" {
		if query.GroupId == "none" {
			filters = append(filters, specification.Ungrouped{})
		} else {
			groupId, err := uuid.Parse(query.GroupId)
			if err != nil {
				return nil, apperrors.NewValidationError("group_id", "must be a uuid or \"none\"")
			}
			filters = append(filters, specification.ByGroupID{GroupID: groupId})
		}
	}
	if query.Search != "" {
		filters = append(filters, specification.NoteSearchQuery{Query: query.Search})
	}

	total, err := repo.Count(ctx, filters...)
	if err != nil {
		return nil, err
	}

	page, limit := dto.ClampPage(query.Page, query.Limit)

	column, ok := noteSortColumns[query.SortBy]
	if !ok {
		column = "created_at"
	}
	desc := query.Order != "asc"

	specs := append(filters,
		specification.OrderBy{Field: column, Desc: desc},
		specification.Pagination{Limit: limit, Offset: (page - 1) * limit},
	)

	notes, err := repo.FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}

	items := make([]*dto.NoteResponse, len(notes))
	for i, n := range notes {
		items[i] = noteToResponse(n)
	}

	return &dto.ListNotesResponse{
		Items:      items,
		Pagination: dto.NewPaginationResponse(page, limit, total),
	}, nil
}

func (s *noteService) Update(ctx context.Context, userId uuid.UUID, req *dto.UpdateNoteRequest) (*dto.NoteResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	repo := uow.NoteRepository()

	note, err := repo.FindOne(ctx,
		specification.ByID{ID: req.Id},
		specification.OwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if note == nil {
		return nil, nil
	}

	if req.Title != nil {
		note.Title = *req.Title
	}
	if req.Description != nil {
		note.Description = *req.Description
	}
	if req.Priority != nil {
		note.Priority = entity.NotePriority(*req.Priority)
	}
	if req.GroupId.Set {
		if req.GroupId.Value == nil {
			note.GroupId = nil
		} else {
			group, err := uow.GroupRepository().FindOne(ctx,
				specification.ByID{ID: *req.GroupId.Value},
				specification.OwnedBy{UserID: userId},
			)
			if err != nil {
				return nil, err
			}
			if group == nil {
				return nil, apperrors.NewValidationError("group_id", "group does not exist")
			}
			note.GroupId = req.GroupId.Value
		}
	}

	newStatus := note.Status
	if req.Status != nil {
		newStatus = entity.NoteStatus(*req.Status)
	}

	return s.persistWithStatus(ctx, uow, note, newStatus)
}

func (s *noteService) SetStatus(ctx context.Context, userId uuid.UUID, req *dto.UpdateNoteStatusRequest) (*dto.NoteResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	note, err := uow.NoteRepository().FindOne(ctx,
		specification.ByID{ID: req.Id},
		specification.OwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if note == nil {
		return nil, nil
	}

	return s.persistWithStatus(ctx, uow, note, entity.NoteStatus(req.Status))
}

// Archive moves a done note into the archived display state. The
// archive snapshot is ensured first and its failure does fail this
// operation: archiving is the whole point here, unlike the best-effort
// copy on the done transition.
func (s *noteService) Archive(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.NoteResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	note, err := uow.NoteRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.OwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if note == nil {
		return nil, nil
	}
	if note.Status != entity.NoteStatusDone {
		return nil, apperrors.NewValidationError("status", "only done notes can be archived")
	}

	groupName := s.resolveGroupName(ctx, uow, note)
	if _, err := s.archiveService.ArchiveIfAbsent(ctx, note, groupName); err != nil {
		return nil, err
	}

	res, err := s.persistWithStatus(ctx, uow, note, entity.NoteStatusArchived)
	if err != nil {
		return nil, err
	}
	s.publishEvent(ctx, entity.EventNoteArchived, note, nil)
	return res, nil
}

// Unarchive returns an archived note to the active done state. The
// existing archive record is left alone; history is not rewound.
func (s *noteService) Unarchive(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.NoteResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	note, err := uow.NoteRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.OwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if note == nil {
		return nil, nil
	}
	if note.Status != entity.NoteStatusArchived {
		return nil, apperrors.NewValidationError("status", "only archived notes can be unarchived")
	}

	res, err := s.persistWithStatus(ctx, uow, note, entity.NoteStatusDone)
	if err != nil {
		return nil, err
	}
	s.publishEvent(ctx, entity.EventNoteUnarchived, note, nil)
	return res, nil
}

func (s *noteService) Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) (bool, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	repo := uow.NoteRepository()

	note, err := repo.FindOne(ctx,
		specification.ByID{ID: id},
		specification.OwnedBy{UserID: userId},
	)
	if err != nil {
		return false, err
	}
	if note == nil {
		return false, nil
	}

	// Archive entries for this note stay: they are history, not state.
	if err := repo.Delete(ctx, id); err != nil {
		return false, err
	}
	return true, nil
}

func (s *noteService) StatusCounts(ctx context.Context, userId uuid.UUID) (*dto.NoteCountsResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	counts, err := uow.NoteRepository().StatusCounts(ctx, userId)
	if err != nil {
		return nil, err
	}

	res := map[string]int64{
		string(entity.NoteStatusTodo):       0,
		string(entity.NoteStatusInProgress): 0,
		string(entity.NoteStatusDone):       0,
		string(entity.NoteStatusArchived):   0,
	}
	for status, count := range counts {
		res[string(status)] = count
	}
	return &dto.NoteCountsResponse{Counts: res}, nil
}

func (s *noteService) PriorityCounts(ctx context.Context, userId uuid.UUID) (*dto.NoteCountsResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	counts, err := uow.NoteRepository().PriorityCounts(ctx, userId)
	if err != nil {
		return nil, err
	}

	res := map[string]int64{
		string(entity.NotePriorityLow):    0,
		string(entity.NotePriorityMedium): 0,
		string(entity.NotePriorityHigh):   0,
	}
	for priority, count := range counts {
		res[string(priority)] = count
	}
	return &dto.NoteCountsResponse{Counts: res}, nil
}

// persistWithStatus applies the status transition rules, stamps
// updated_at and saves the note. Entering done from any other status
// sets completed_at and triggers the best-effort archive copy after
// the note write lands; leaving done clears completed_at. Setting the
// current status again is a no-op state-wise but still bumps
// updated_at.
func (s *noteService) persistWithStatus(ctx context.Context, uow unitofwork.UnitOfWork, note *entity.Note, newStatus entity.NoteStatus) (*dto.NoteResponse, error) {
	now := time.Now()

	enteredDone := newStatus == entity.NoteStatusDone && note.Status != entity.NoteStatusDone
	leftDone := newStatus != entity.NoteStatusDone && note.Status == entity.NoteStatusDone

	note.Status = newStatus
	if enteredDone {
		note.CompletedAt = &now
	}
	if leftDone {
		note.CompletedAt = nil
	}
	note.UpdatedAt = &now

	if err := uow.NoteRepository().Update(ctx, note); err != nil {
		return nil, err
	}

	if enteredDone {
		s.archiveBestEffort(ctx, uow, note)
	}

	return noteToResponse(note), nil
}

// archiveBestEffort copies the note into the archive without letting a
// failure bubble up: the status change is the primary operation and has
// already been persisted. A failed copy leaves the note done-but-
// unarchived, recoverable via the explicit archive endpoint, and is
// recorded on the event bus for later reconciliation.
func (s *noteService) archiveBestEffort(ctx context.Context, uow unitofwork.UnitOfWork, note *entity.Note) {
	groupName := s.resolveGroupName(ctx, uow, note)

	if _, err := s.archiveService.ArchiveIfAbsent(ctx, note, groupName); err != nil {
		s.logger.Warn("NoteService", "Archival failed after done transition", map[string]interface{}{
			"note_id": note.Id.String(),
			"user_id": note.UserId.String(),
			"error":   err.Error(),
		})
		s.publishEvent(ctx, entity.EventNoteArchiveFailed, note, map[string]interface{}{
			"error": err.Error(),
		})
		return
	}

	s.publishEvent(ctx, entity.EventNoteCompleted, note, nil)
}

// resolveGroupName denormalizes the live group name into the archive
// snapshot. A missing group or a failed lookup yields nil; the snapshot
// must be writable even when the group is already gone.
func (s *noteService) resolveGroupName(ctx context.Context, uow unitofwork.UnitOfWork, note *entity.Note) *string {
	if note.GroupId == nil {
		return nil
	}

	group, err := uow.GroupRepository().FindOne(ctx,
		specification.ByID{ID: *note.GroupId},
		specification.OwnedBy{UserID: note.UserId},
	)
	if err != nil || group == nil {
		return nil
	}
	return &group.Name
}

func (s *noteService) publishEvent(ctx context.Context, eventType string, note *entity.Note, extra map[string]interface{}) {
	if s.publisherService == nil {
		return
	}

	data := map[string]interface{}{
		"note_id": note.Id.String(),
		"title":   note.Title,
		"status":  string(note.Status),
	}
	for k, v := range extra {
		data[k] = v
	}

	noteId := note.Id
	msg := &dto.LifecycleEventMessage{
		Type:       eventType,
		UserId:     note.UserId,
		EntityType: "note",
		EntityId:   &noteId,
		Data:       data,
		OccurredAt: time.Now(),
	}
	if err := s.publisherService.Publish(ctx, msg); err != nil {
		s.logger.Warn("NoteService", "Failed to publish lifecycle event", map[string]interface{}{
			"type":  eventType,
			"error": err.Error(),
		})
	}
}

func noteToResponse(n *entity.Note) *dto.NoteResponse {
	return &dto.NoteResponse{
		Id:          n.Id,
		UserId:      n.UserId,
		GroupId:     n.GroupId,
		Title:       n.Title,
		Description: n.Description,
		Status:      string(n.Status),
		Priority:    string(n.Priority),
		CompletedAt: n.CompletedAt,
		CreatedAt:   n.CreatedAt,
		UpdatedAt:   n.UpdatedAt,
	}
}
