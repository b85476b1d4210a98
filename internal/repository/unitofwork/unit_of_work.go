package unitofwork

import (
	"context"

	"task-tracking-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	NoteRepository() contract.NoteRepository
	GroupRepository() contract.GroupRepository
	ArchivedNoteRepository() contract.ArchivedNoteRepository
	LifecycleEventRepository() contract.LifecycleEventRepository
}
