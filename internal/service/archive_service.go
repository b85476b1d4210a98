package service

import (
	"context"
	"errors"
	"time"

	"task-tracking-be/internal/dto"
	"task-tracking-be/internal/entity"
	"task-tracking-be/internal/pkg/apperrors"
	"task-tracking-be/internal/repository/specification"
	"task-tracking-be/internal/repository/unitofwork"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type IArchiveService interface {
	ArchiveIfAbsent(ctx context.Context, snapshot *entity.Note, groupName *string) (*entity.ArchivedNote, error)
	FindByOriginalNote(ctx context.Context, userId, noteId uuid.UUID) (*dto.ArchivedNoteResponse, error)
	Delete(ctx context.Context, userId, archiveId uuid.UUID) (bool, error)
}

type archiveService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewArchiveService(uowFactory unitofwork.RepositoryFactory) IArchiveService {
	return &archiveService{
		uowFactory: uowFactory,
	}
}

// ArchiveIfAbsent copies a done note into the archive exactly once per
// (owner, original note) pair. A snapshot that was archived before is
// returned as-is: re-archival is an idempotent no-op, not an error.
//
// The pre-insert lookup keeps the common path cheap, but the real
// guarantee is the unique index on (user_id, original_note_id): two
// concurrent calls may both pass the lookup, and the loser's insert
// comes back as gorm.ErrDuplicatedKey, which is converted into a fetch
// of the surviving row.
func (s *archiveService) ArchiveIfAbsent(ctx context.Context, snapshot *entity.Note, groupName *string) (*entity.ArchivedNote, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	repo := uow.ArchivedNoteRepository()

	ownerAndNote := []specification.Specification{
		specification.OwnedBy{UserID: snapshot.UserId},
		specification.ByOriginalNoteID{NoteID: snapshot.Id},
	}

	existing, err := repo.FindOne(ctx, ownerAndNote...)
	if err != nil {
		return nil, apperrors.NewArchiveError(err)
	}
	if existing != nil {
		return existing, nil
	}

	archive := &entity.ArchivedNote{
		Id:             uuid.New(),
		UserId:         snapshot.UserId,
		OriginalNoteId: snapshot.Id,
		Title:          snapshot.Title,
		Description:    snapshot.Description,
		Priority:       snapshot.Priority,
		GroupName:      groupName,
		CompletedAt:    snapshot.CompletedAt,
		ArchivedAt:     time.Now(),
		CreatedAt:      snapshot.CreatedAt,
	}

	if err := repo.Create(ctx, archive); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// Lost the race: someone else archived this note between
			// the lookup and the insert. Their row is the history.
			winner, ferr := repo.FindOne(ctx, ownerAndNote...)
			if ferr != nil {
				return nil, apperrors.NewArchiveError(ferr)
			}
			if winner != nil {
				return winner, nil
			}
		}
		return nil, apperrors.NewArchiveError(err)
	}

	return archive, nil
}

func (s *archiveService) FindByOriginalNote(ctx context.Context, userId, noteId uuid.UUID) (*dto.ArchivedNoteResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	archive, err := uow.ArchivedNoteRepository().FindOne(ctx,
		specification.OwnedBy{UserID: userId},
		specification.ByOriginalNoteID{NoteID: noteId},
	)
	if err != nil {
		return nil, err
	}
	if archive == nil {
		return nil, nil
	}

	return archivedNoteToResponse(archive), nil
}

// Delete permanently removes an archive entry. The live note, if it
// still exists, is not touched.
func (s *archiveService) Delete(ctx context.Context, userId, archiveId uuid.UUID) (bool, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	repo := uow.ArchivedNoteRepository()

	archive, err := repo.FindOne(ctx,
		specification.ByID{ID: archiveId},
		specification.OwnedBy{UserID: userId},
	)
	if err != nil {
		return false, err
	}
	if archive == nil {
		return false, nil
	}

	if err := repo.Delete(ctx, archiveId); err != nil {
		return false, err
	}
	return true, nil
}

func archivedNoteToResponse(a *entity.ArchivedNote) *dto.ArchivedNoteResponse {
	return &dto.ArchivedNoteResponse{
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
