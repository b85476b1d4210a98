package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"task-tracking-be/internal/dto"
	"task-tracking-be/internal/entity"
	"task-tracking-be/internal/pkg/apperrors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newNoteTestEnv() (*fakeFactory, *fakePublisher, INoteService) {
	factory := newFakeFactory()
	publisher := &fakePublisher{}
	archiveService := NewArchiveService(factory)
	noteService := NewNoteService(factory, archiveService, publisher, noopLogger{})
	return factory, publisher, noteService
}

func seedNote(factory *fakeFactory, userId uuid.UUID, status entity.NoteStatus) *entity.Note {
	note := &entity.Note{
		Id:        uuid.New(),
		UserId:    userId,
		Title:     "Write report",
		Status:    status,
		Priority:  entity.NotePriorityMedium,
		CreatedAt: time.Now().Add(-time.Hour),
	}
	if status == entity.NoteStatusDone {
		completed := time.Now().Add(-time.Minute)
		note.CompletedAt = &completed
	}
	factory.uow.noteRepo.notes[note.Id] = note
	return note
}

func TestNoteCreateDefaults(t *testing.T) {
	_, _, svc := newNoteTestEnv()
	userId := uuid.New()

	res, err := svc.Create(context.Background(), userId, &dto.CreateNoteRequest{Title: "Buy milk"})
	require.NoError(t, err)

	assert.Equal(t, "todo", res.Status)
	assert.Equal(t, "medium", res.Priority)
	assert.Nil(t, res.CompletedAt)
	assert.Nil(t, res.GroupId)
}

func TestNoteCreateAsDoneArchivesImmediately(t *testing.T) {
	factory, publisher, svc := newNoteTestEnv()
	userId := uuid.New()

	res, err := svc.Create(context.Background(), userId, &dto.CreateNoteRequest{
		Title:  "Already finished",
		Status: "done",
	})
	require.NoError(t, err)

	require.NotNil(t, res.CompletedAt)
	assert.Len(t, factory.uow.archivedRepo.archives, 1)
	assert.Contains(t, publisher.eventTypes(), entity.EventNoteCompleted)
}

func TestNoteCreateRejectsUnknownGroup(t *testing.T) {
	_, _, svc := newNoteTestEnv()
	userId := uuid.New()
	missing := uuid.New()

	_, err := svc.Create(context.Background(), userId, &dto.CreateNoteRequest{
		Title:   "Orphan",
		GroupId: &missing,
	})

	var validationErr *apperrors.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "group_id", validationErr.Field)
}

func TestSetStatusEnterDone(t *testing.T) {
	factory, publisher, svc := newNoteTestEnv()
	userId := uuid.New()
	note := seedNote(factory, userId, entity.NoteStatusInProgress)

	res, err := svc.SetStatus(context.Background(), userId, &dto.UpdateNoteStatusRequest{
		Id:     note.Id,
		Status: "done",
	})
	require.NoError(t, err)

	assert.Equal(t, "done", res.Status)
	require.NotNil(t, res.CompletedAt)
	require.NotNil(t, res.UpdatedAt)

	assert.Len(t, factory.uow.archivedRepo.archives, 1)
	assert.Contains(t, publisher.eventTypes(), entity.EventNoteCompleted)
}

func TestSetStatusLeaveDoneClearsCompletedAt(t *testing.T) {
	factory, _, svc := newNoteTestEnv()
	userId := uuid.New()
	note := seedNote(factory, userId, entity.NoteStatusDone)

	res, err := svc.SetStatus(context.Background(), userId, &dto.UpdateNoteStatusRequest{
		Id:     note.Id,
		Status: "in_progress",
	})
	require.NoError(t, err)

	assert.Equal(t, "in_progress", res.Status)
	assert.Nil(t, res.CompletedAt)
}

func TestSetStatusSameStatusBumpsUpdatedAtOnly(t *testing.T) {
	factory, _, svc := newNoteTestEnv()
	userId := uuid.New()
	note := seedNote(factory, userId, entity.NoteStatusDone)
	originalCompleted := *note.CompletedAt

	res, err := svc.SetStatus(context.Background(), userId, &dto.UpdateNoteStatusRequest{
		Id:     note.Id,
		Status: "done",
	})
	require.NoError(t, err)

	require.NotNil(t, res.CompletedAt)
	assert.True(t, res.CompletedAt.Equal(originalCompleted), "completed_at must not move on a same-status set")
	require.NotNil(t, res.UpdatedAt)

	// No second archive row either: the copy only happens on entry.
	assert.Empty(t, factory.uow.archivedRepo.archives)
}

func TestSetStatusArchiveFailureDoesNotFailTransition(t *testing.T) {
	factory, publisher, svc := newNoteTestEnv()
	userId := uuid.New()
	note := seedNote(factory, userId, entity.NoteStatusTodo)
	factory.uow.archivedRepo.createErr = errors.New("disk full")

	res, err := svc.SetStatus(context.Background(), userId, &dto.UpdateNoteStatusRequest{
		Id:     note.Id,
		Status: "done",
	})
	require.NoError(t, err)

	assert.Equal(t, "done", res.Status)
	require.NotNil(t, res.CompletedAt)
	assert.Contains(t, publisher.eventTypes(), entity.EventNoteArchiveFailed)
	assert.NotContains(t, publisher.eventTypes(), entity.EventNoteCompleted)
}

func TestSetStatusUnknownNote(t *testing.T) {
	_, _, svc := newNoteTestEnv()

	res, err := svc.SetStatus(context.Background(), uuid.New(), &dto.UpdateNoteStatusRequest{
		Id:     uuid.New(),
		Status: "done",
	})
	require.NoError(t, err)
	assert.Nil(t, res)
}

func TestSetStatusOtherUsersNoteIsInvisible(t *testing.T) {
	factory, _, svc := newNoteTestEnv()
	owner := uuid.New()
	note := seedNote(factory, owner, entity.NoteStatusTodo)

	res, err := svc.SetStatus(context.Background(), uuid.New(), &dto.UpdateNoteStatusRequest{
		Id:     note.Id,
		Status: "done",
	})
	require.NoError(t, err)
	assert.Nil(t, res)
}

func TestUpdatePartialFields(t *testing.T) {
	factory, _, svc := newNoteTestEnv()
	userId := uuid.New()
	note := seedNote(factory, userId, entity.NoteStatusTodo)

	newTitle := "Write the annual report"
	res, err := svc.Update(context.Background(), userId, &dto.UpdateNoteRequest{
		Id:    note.Id,
		Title: &newTitle,
	})
	require.NoError(t, err)

	assert.Equal(t, newTitle, res.Title)
	assert.Equal(t, "todo", res.Status)
	assert.Equal(t, "medium", res.Priority)
	require.NotNil(t, res.UpdatedAt)
}

func TestUpdateClearsGroupWithExplicitNull(t *testing.T) {
	factory, _, svc := newNoteTestEnv()
	userId := uuid.New()

	group := &entity.Group{Id: uuid.New(), UserId: userId, Name: "Work", CreatedAt: time.Now()}
	factory.uow.groupRepo.groups[group.Id] = group

	note := seedNote(factory, userId, entity.NoteStatusTodo)
	note.GroupId = &group.Id

	// Absent group_id keeps the assignment.
	newTitle := "Renamed"
	res, err := svc.Update(context.Background(), userId, &dto.UpdateNoteRequest{
		Id:    note.Id,
		Title: &newTitle,
	})
	require.NoError(t, err)
	require.NotNil(t, res.GroupId)

	// Explicit null clears it.
	res, err = svc.Update(context.Background(), userId, &dto.UpdateNoteRequest{
		Id:      note.Id,
		GroupId: dto.OptionalUUID{Set: true, Value: nil},
	})
	require.NoError(t, err)
	assert.Nil(t, res.GroupId)
}

func TestUpdateWithDoneStatusTriggersArchive(t *testing.T) {
	factory, _, svc := newNoteTestEnv()
	userId := uuid.New()
	note := seedNote(factory, userId, entity.NoteStatusTodo)

	done := "done"
	res, err := svc.Update(context.Background(), userId, &dto.UpdateNoteRequest{
		Id:     note.Id,
		Status: &done,
	})
	require.NoError(t, err)

	require.NotNil(t, res.CompletedAt)
	assert.Len(t, factory.uow.archivedRepo.archives, 1)
}

func TestArchiveRequiresDoneStatus(t *testing.T) {
	factory, _, svc := newNoteTestEnv()
	userId := uuid.New()
	note := seedNote(factory, userId, entity.NoteStatusTodo)

	_, err := svc.Archive(context.Background(), userId, note.Id)

	var validationErr *apperrors.ValidationError
	require.ErrorAs(t, err, &validationErr)
}

func TestArchiveMovesNoteAndClearsCompletedAt(t *testing.T) {
	factory, publisher, svc := newNoteTestEnv()
	userId := uuid.New()
	note := seedNote(factory, userId, entity.NoteStatusDone)

	res, err := svc.Archive(context.Background(), userId, note.Id)
	require.NoError(t, err)

	assert.Equal(t, "archived", res.Status)
	assert.Nil(t, res.CompletedAt)
	assert.Len(t, factory.uow.archivedRepo.archives, 1)
	assert.Contains(t, publisher.eventTypes(), entity.EventNoteArchived)
}

func TestArchiveFailurePropagatesOnExplicitEndpoint(t *testing.T) {
	factory, _, svc := newNoteTestEnv()
	userId := uuid.New()
	note := seedNote(factory, userId, entity.NoteStatusDone)
	factory.uow.archivedRepo.createErr = errors.New("disk full")

	_, err := svc.Archive(context.Background(), userId, note.Id)

	var archiveErr *apperrors.ArchiveError
	require.ErrorAs(t, err, &archiveErr)

	// Status untouched on failure.
	stored := factory.uow.noteRepo.notes[note.Id]
	assert.Equal(t, entity.NoteStatusDone, stored.Status)
}

func TestUnarchiveRestoresDoneWithFreshCompletedAt(t *testing.T) {
	factory, publisher, svc := newNoteTestEnv()
	userId := uuid.New()
	note := seedNote(factory, userId, entity.NoteStatusArchived)

	res, err := svc.Unarchive(context.Background(), userId, note.Id)
	require.NoError(t, err)

	assert.Equal(t, "done", res.Status)
	require.NotNil(t, res.CompletedAt)
	assert.Contains(t, publisher.eventTypes(), entity.EventNoteUnarchived)
}

func TestUnarchiveRequiresArchivedStatus(t *testing.T) {
	factory, _, svc := newNoteTestEnv()
	userId := uuid.New()
	note := seedNote(factory, userId, entity.NoteStatusDone)

	_, err := svc.Unarchive(context.Background(), userId, note.Id)

	var validationErr *apperrors.ValidationError
	require.ErrorAs(t, err, &validationErr)
}

func TestUnarchiveThenDoneAgainDoesNotDuplicateArchive(t *testing.T) {
	factory, _, svc := newNoteTestEnv()
	userId := uuid.New()
	note := seedNote(factory, userId, entity.NoteStatusDone)

	_, err := svc.Archive(context.Background(), userId, note.Id)
	require.NoError(t, err)
	_, err = svc.Unarchive(context.Background(), userId, note.Id)
	require.NoError(t, err)
	_, err = svc.Archive(context.Background(), userId, note.Id)
	require.NoError(t, err)

	assert.Len(t, factory.uow.archivedRepo.archives, 1)
}

func TestDeleteLeavesArchiveIntact(t *testing.T) {
	factory, _, svc := newNoteTestEnv()
	userId := uuid.New()
	note := seedNote(factory, userId, entity.NoteStatusTodo)

	_, err := svc.SetStatus(context.Background(), userId, &dto.UpdateNoteStatusRequest{
		Id:     note.Id,
		Status: "done",
	})
	require.NoError(t, err)

	deleted, err := svc.Delete(context.Background(), userId, note.Id)
	require.NoError(t, err)
	assert.True(t, deleted)

	assert.Empty(t, factory.uow.noteRepo.notes)
	assert.Len(t, factory.uow.archivedRepo.archives, 1)
}

func TestListFiltersAndPaginates(t *testing.T) {
	factory, _, svc := newNoteTestEnv()
	userId := uuid.New()

	for i := 0; i < 5; i++ {
		n := seedNote(factory, userId, entity.NoteStatusTodo)
		n.CreatedAt = time.Now().Add(-time.Duration(i) * time.Hour)
	}
	seedNote(factory, userId, entity.NoteStatusDone)
	seedNote(factory, uuid.New(), entity.NoteStatusTodo)

	res, err := svc.List(context.Background(), userId, &dto.ListNotesQuery{
		Status: "todo",
		Page:   1,
		Limit:  3,
	})
	require.NoError(t, err)

	assert.Len(t, res.Items, 3)
	assert.Equal(t, int64(5), res.Pagination.TotalItems)
	assert.Equal(t, 2, res.Pagination.TotalPages)
	assert.True(t, res.Pagination.HasNext)
}

func TestListUngroupedFilter(t *testing.T) {
	factory, _, svc := newNoteTestEnv()
	userId := uuid.New()

	group := &entity.Group{Id: uuid.New(), UserId: userId, Name: "Work", CreatedAt: time.Now()}
	factory.uow.groupRepo.groups[group.Id] = group

	grouped := seedNote(factory, userId, entity.NoteStatusTodo)
	grouped.GroupId = &group.Id
	ungrouped := seedNote(factory, userId, entity.NoteStatusTodo)

	res, err := svc.List(context.Background(), userId, &dto.ListNotesQuery{GroupId: "none"})
	require.NoError(t, err)

	require.Len(t, res.Items, 1)
	assert.Equal(t, ungrouped.Id, res.Items[0].Id)
}

func TestStatusCountsIncludesZeroBuckets(t *testing.T) {
	factory, _, svc := newNoteTestEnv()
	userId := uuid.New()
	seedNote(factory, userId, entity.NoteStatusTodo)
	seedNote(factory, userId, entity.NoteStatusTodo)
	seedNote(factory, userId, entity.NoteStatusDone)

	res, err := svc.StatusCounts(context.Background(), userId)
	require.NoError(t, err)

	assert.Equal(t, int64(2), res.Counts["todo"])
	assert.Equal(t, int64(1), res.Counts["done"])
	assert.Equal(t, int64(0), res.Counts["in_progress"])
	assert.Equal(t, int64(0), res.Counts["archived"])
}
