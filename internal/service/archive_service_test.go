package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"task-tracking-be/internal/entity"
	"task-tracking-be/internal/pkg/apperrors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func doneNote(userId uuid.UUID) *entity.Note {
	completed := time.Now().Add(-time.Minute)
	return &entity.Note{
		Id:          uuid.New(),
		UserId:      userId,
		Title:       "Ship release",
		Description: "v2.1 rollout",
		Status:      entity.NoteStatusDone,
		Priority:    entity.NotePriorityHigh,
		CompletedAt: &completed,
		CreatedAt:   time.Now().Add(-time.Hour),
	}
}

func TestArchiveIfAbsentCreatesSnapshot(t *testing.T) {
	factory := newFakeFactory()
	svc := NewArchiveService(factory)
	note := doneNote(uuid.New())
	groupName := "Releases"

	archive, err := svc.ArchiveIfAbsent(context.Background(), note, &groupName)
	require.NoError(t, err)

	assert.Equal(t, note.Id, archive.OriginalNoteId)
	assert.Equal(t, note.UserId, archive.UserId)
	assert.Equal(t, note.Title, archive.Title)
	assert.Equal(t, note.Priority, archive.Priority)
	require.NotNil(t, archive.GroupName)
	assert.Equal(t, "Releases", *archive.GroupName)
	assert.Equal(t, note.CompletedAt, archive.CompletedAt)
	assert.False(t, archive.ArchivedAt.IsZero())
}

func TestArchiveIfAbsentIsIdempotent(t *testing.T) {
	factory := newFakeFactory()
	svc := NewArchiveService(factory)
	note := doneNote(uuid.New())

	first, err := svc.ArchiveIfAbsent(context.Background(), note, nil)
	require.NoError(t, err)

	second, err := svc.ArchiveIfAbsent(context.Background(), note, nil)
	require.NoError(t, err)

	assert.Equal(t, first.Id, second.Id)
	assert.Len(t, factory.uow.archivedRepo.archives, 1)
}

func TestArchiveIfAbsentTreatsDuplicateKeyAsWin(t *testing.T) {
	factory := newFakeFactory()
	svc := NewArchiveService(factory)
	note := doneNote(uuid.New())

	// A competing writer's row is already stored, but the pre-insert
	// lookup misses it, so the insert collides on the unique index the
	// way Postgres reports it through gorm's TranslateError.
	winner := &entity.ArchivedNote{
		Id:             uuid.New(),
		UserId:         note.UserId,
		OriginalNoteId: note.Id,
		Title:          note.Title,
		Priority:       note.Priority,
		ArchivedAt:     time.Now(),
		CreatedAt:      note.CreatedAt,
	}
	factory.uow.archivedRepo.archives[winner.Id] = winner
	factory.uow.archivedRepo.findOneMisses = 1

	res, err := svc.ArchiveIfAbsent(context.Background(), note, nil)
	require.NoError(t, err)

	// The loser gets the winner's row back, and no duplicate exists.
	assert.Equal(t, winner.Id, res.Id)
	assert.Len(t, factory.uow.archivedRepo.archives, 1)
}

func TestArchiveIfAbsentWrapsStorageErrors(t *testing.T) {
	factory := newFakeFactory()
	svc := NewArchiveService(factory)
	factory.uow.archivedRepo.createErr = errors.New("connection reset")

	_, err := svc.ArchiveIfAbsent(context.Background(), doneNote(uuid.New()), nil)

	var archiveErr *apperrors.ArchiveError
	require.ErrorAs(t, err, &archiveErr)
	assert.ErrorContains(t, err, "connection reset")
}

func TestArchiveDifferentUsersSameNoteId(t *testing.T) {
	factory := newFakeFactory()
	svc := NewArchiveService(factory)

	shared := uuid.New()
	noteA := doneNote(uuid.New())
	noteA.Id = shared
	noteB := doneNote(uuid.New())
	noteB.Id = shared

	_, err := svc.ArchiveIfAbsent(context.Background(), noteA, nil)
	require.NoError(t, err)
	_, err = svc.ArchiveIfAbsent(context.Background(), noteB, nil)
	require.NoError(t, err)

	// Uniqueness is per owner, not global.
	assert.Len(t, factory.uow.archivedRepo.archives, 2)
}

func TestFindByOriginalNote(t *testing.T) {
	factory := newFakeFactory()
	svc := NewArchiveService(factory)
	note := doneNote(uuid.New())

	_, err := svc.ArchiveIfAbsent(context.Background(), note, nil)
	require.NoError(t, err)

	res, err := svc.FindByOriginalNote(context.Background(), note.UserId, note.Id)
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.Equal(t, note.Id, res.OriginalNoteId)

	missing, err := svc.FindByOriginalNote(context.Background(), note.UserId, uuid.New())
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestArchiveDeleteScopedToOwner(t *testing.T) {
	factory := newFakeFactory()
	svc := NewArchiveService(factory)
	note := doneNote(uuid.New())

	archive, err := svc.ArchiveIfAbsent(context.Background(), note, nil)
	require.NoError(t, err)

	deleted, err := svc.Delete(context.Background(), uuid.New(), archive.Id)
	require.NoError(t, err)
	assert.False(t, deleted)

	deleted, err = svc.Delete(context.Background(), note.UserId, archive.Id)
	require.NoError(t, err)
	assert.True(t, deleted)
	assert.Empty(t, factory.uow.archivedRepo.archives)
}
