package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"task-tracking-be/internal/dto"
	"task-tracking-be/internal/entity"
	"task-tracking-be/internal/repository/contract"
	"task-tracking-be/internal/repository/specification"
	"task-tracking-be/internal/repository/unitofwork"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// In-memory repositories that interpret the same specification structs
// the gorm implementations translate to SQL. Only the specs the
// services actually emit are handled.

type fakeNoteRepo struct {
	notes map[uuid.UUID]*entity.Note

	createErr error
	updateErr error
}

func newFakeNoteRepo() *fakeNoteRepo {
	return &fakeNoteRepo{notes: make(map[uuid.UUID]*entity.Note)}
}

func (r *fakeNoteRepo) Create(ctx context.Context, note *entity.Note) error {
	if r.createErr != nil {
		return r.createErr
	}
	cp := *note
	r.notes[note.Id] = &cp
	return nil
}

func (r *fakeNoteRepo) Update(ctx context.Context, note *entity.Note) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	cp := *note
	r.notes[note.Id] = &cp
	return nil
}

func (r *fakeNoteRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.notes, id)
	return nil
}

func (r *fakeNoteRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Note, error) {
	for _, n := range r.notes {
		if matchNote(n, specs) {
			cp := *n
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeNoteRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Note, error) {
	var res []*entity.Note
	for _, n := range r.notes {
		if matchNote(n, specs) {
			cp := *n
			res = append(res, &cp)
		}
	}
	sortNotes(res, specs)
	return paginateNotes(res, specs), nil
}

func (r *fakeNoteRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	for _, n := range r.notes {
		if matchNote(n, specs) {
			count++
		}
	}
	return count, nil
}

func (r *fakeNoteRepo) ClearGroup(ctx context.Context, groupId, userId uuid.UUID) error {
	for _, n := range r.notes {
		if n.UserId == userId && n.GroupId != nil && *n.GroupId == groupId {
			n.GroupId = nil
		}
	}
	return nil
}

func (r *fakeNoteRepo) StatusCounts(ctx context.Context, userId uuid.UUID) (map[entity.NoteStatus]int64, error) {
	res := make(map[entity.NoteStatus]int64)
	for _, n := range r.notes {
		if n.UserId == userId {
			res[n.Status]++
		}
	}
	return res, nil
}

func (r *fakeNoteRepo) PriorityCounts(ctx context.Context, userId uuid.UUID) (map[entity.NotePriority]int64, error) {
	res := make(map[entity.NotePriority]int64)
	for _, n := range r.notes {
		if n.UserId == userId {
			res[n.Priority]++
		}
	}
	return res, nil
}

func (r *fakeNoteRepo) ActiveCountPerGroup(ctx context.Context, userId uuid.UUID) (map[uuid.UUID]int64, error) {
	res := make(map[uuid.UUID]int64)
	for _, n := range r.notes {
		if n.UserId == userId && n.GroupId != nil && n.Status != entity.NoteStatusDone {
			res[*n.GroupId]++
		}
	}
	return res, nil
}

func matchNote(n *entity.Note, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.ByID:
			if n.Id != s.ID {
				return false
			}
		case specification.OwnedBy:
			if n.UserId != s.UserID {
				return false
			}
		case specification.ByStatus:
			if string(n.Status) != s.Status {
				return false
			}
		case specification.ByPriority:
			if string(n.Priority) != s.Priority {
				return false
			}
		case specification.ByGroupID:
			if n.GroupId == nil || *n.GroupId != s.GroupID {
				return false
			}
		case specification.Ungrouped:
			if n.GroupId != nil {
				return false
			}
		case specification.NoteSearchQuery:
			q := strings.ToLower(s.Query)
			if !strings.Contains(strings.ToLower(n.Title), q) &&
				!strings.Contains(strings.ToLower(n.Description), q) {
				return false
			}
		}
	}
	return true
}

func sortNotes(notes []*entity.Note, specs []specification.Specification) {
	for _, spec := range specs {
		if s, ok := spec.(specification.OrderBy); ok {
			sort.SliceStable(notes, func(i, j int) bool {
				var less bool
				switch s.Field {
				case "title":
					less = notes[i].Title < notes[j].Title
				default:
					less = notes[i].CreatedAt.Before(notes[j].CreatedAt)
				}
				if s.Desc {
					return !less
				}
				return less
			})
		}
	}
}

func paginateNotes(notes []*entity.Note, specs []specification.Specification) []*entity.Note {
	for _, spec := range specs {
		if s, ok := spec.(specification.Pagination); ok {
			if s.Offset >= len(notes) {
				return nil
			}
			end := s.Offset + s.Limit
			if end > len(notes) {
				end = len(notes)
			}
			return notes[s.Offset:end]
		}
	}
	return notes
}

type fakeGroupRepo struct {
	groups map[uuid.UUID]*entity.Group

	deleteErr error
}

func newFakeGroupRepo() *fakeGroupRepo {
	return &fakeGroupRepo{groups: make(map[uuid.UUID]*entity.Group)}
}

func (r *fakeGroupRepo) Create(ctx context.Context, group *entity.Group) error {
	cp := *group
	r.groups[group.Id] = &cp
	return nil
}

func (r *fakeGroupRepo) Update(ctx context.Context, group *entity.Group) error {
	cp := *group
	r.groups[group.Id] = &cp
	return nil
}

func (r *fakeGroupRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if r.deleteErr != nil {
		return r.deleteErr
	}
	delete(r.groups, id)
	return nil
}

func (r *fakeGroupRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Group, error) {
	for _, g := range r.groups {
		if matchGroup(g, specs) {
			cp := *g
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeGroupRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Group, error) {
	var res []*entity.Group
	for _, g := range r.groups {
		if matchGroup(g, specs) {
			cp := *g
			res = append(res, &cp)
		}
	}
	sort.Slice(res, func(i, j int) bool { return res[i].CreatedAt.Before(res[j].CreatedAt) })
	return res, nil
}

func (r *fakeGroupRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	for _, g := range r.groups {
		if matchGroup(g, specs) {
			count++
		}
	}
	return count, nil
}

func matchGroup(g *entity.Group, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.ByID:
			if g.Id != s.ID {
				return false
			}
		case specification.OwnedBy:
			if g.UserId != s.UserID {
				return false
			}
		case specification.ByName:
			if g.Name != s.Name {
				return false
			}
		case specification.ExcludeID:
			if g.Id == s.ID {
				return false
			}
		}
	}
	return true
}

type fakeArchivedNoteRepo struct {
	archives map[uuid.UUID]*entity.ArchivedNote
	stats    []*entity.DailyCompletionStat

	createErr error
	findErr   error
	// findOneMisses makes the next N FindOne calls come back empty,
	// simulating a concurrent writer landing between lookup and insert.
	findOneMisses int
	statsCalls    int
}

func newFakeArchivedNoteRepo() *fakeArchivedNoteRepo {
	return &fakeArchivedNoteRepo{archives: make(map[uuid.UUID]*entity.ArchivedNote)}
}

func (r *fakeArchivedNoteRepo) Create(ctx context.Context, archive *entity.ArchivedNote) error {
	if r.createErr != nil {
		return r.createErr
	}
	for _, a := range r.archives {
		if a.UserId == archive.UserId && a.OriginalNoteId == archive.OriginalNoteId {
			return gorm.ErrDuplicatedKey
		}
	}
	cp := *archive
	r.archives[archive.Id] = &cp
	return nil
}

func (r *fakeArchivedNoteRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.archives, id)
	return nil
}

func (r *fakeArchivedNoteRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ArchivedNote, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	if r.findOneMisses > 0 {
		r.findOneMisses--
		return nil, nil
	}
	for _, a := range r.archives {
		if matchArchive(a, specs) {
			cp := *a
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeArchivedNoteRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ArchivedNote, error) {
	var res []*entity.ArchivedNote
	for _, a := range r.archives {
		if matchArchive(a, specs) {
			cp := *a
			res = append(res, &cp)
		}
	}
	sort.Slice(res, func(i, j int) bool { return res[i].ArchivedAt.After(res[j].ArchivedAt) })
	for _, spec := range specs {
		if s, ok := spec.(specification.Pagination); ok {
			if s.Offset >= len(res) {
				return nil, nil
			}
			end := s.Offset + s.Limit
			if end > len(res) {
				end = len(res)
			}
			return res[s.Offset:end], nil
		}
	}
	return res, nil
}

func (r *fakeArchivedNoteRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	for _, a := range r.archives {
		if matchArchive(a, specs) {
			count++
		}
	}
	return count, nil
}

func (r *fakeArchivedNoteRepo) DailyCompletionStats(ctx context.Context, userId uuid.UUID, from, to *time.Time) ([]*entity.DailyCompletionStat, error) {
	r.statsCalls++
	return r.stats, nil
}

func matchArchive(a *entity.ArchivedNote, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.ByID:
			if a.Id != s.ID {
				return false
			}
		case specification.OwnedBy:
			if a.UserId != s.UserID {
				return false
			}
		case specification.ByOriginalNoteID:
			if a.OriginalNoteId != s.NoteID {
				return false
			}
		case specification.ByPriority:
			if string(a.Priority) != s.Priority {
				return false
			}
		case specification.ByGroupName:
			if a.GroupName == nil || *a.GroupName != s.Name {
				return false
			}
		case specification.GroupNameLike:
			if a.GroupName == nil || !strings.Contains(strings.ToLower(*a.GroupName), strings.ToLower(s.Name)) {
				return false
			}
		case specification.ArchiveSearchQuery:
			q := strings.ToLower(s.Query)
			if !strings.Contains(strings.ToLower(a.Title), q) &&
				!strings.Contains(strings.ToLower(a.Description), q) {
				return false
			}
		case specification.CompletedBetween:
			if a.CompletedAt == nil {
				return false
			}
			if s.From != nil && a.CompletedAt.Before(*s.From) {
				return false
			}
			if s.To != nil && !a.CompletedAt.Before(*s.To) {
				return false
			}
		}
	}
	return true
}

type fakeLifecycleEventRepo struct {
	events []*entity.LifecycleEvent
}

func (r *fakeLifecycleEventRepo) Create(ctx context.Context, event *entity.LifecycleEvent) error {
	r.events = append(r.events, event)
	return nil
}

type fakeUnitOfWork struct {
	noteRepo      *fakeNoteRepo
	groupRepo     *fakeGroupRepo
	archivedRepo  *fakeArchivedNoteRepo
	lifecycleRepo *fakeLifecycleEventRepo

	began      int
	committed  int
	rolledBack int
}

func (u *fakeUnitOfWork) Begin(ctx context.Context) error { u.began++; return nil }

func (u *fakeUnitOfWork) Commit() error { u.committed++; return nil }

func (u *fakeUnitOfWork) Rollback() error {
	if u.committed == 0 {
		u.rolledBack++
	}
	return nil
}

func (u *fakeUnitOfWork) NoteRepository() contract.NoteRepository { return u.noteRepo }

func (u *fakeUnitOfWork) GroupRepository() contract.GroupRepository { return u.groupRepo }

func (u *fakeUnitOfWork) ArchivedNoteRepository() contract.ArchivedNoteRepository {
	return u.archivedRepo
}

func (u *fakeUnitOfWork) LifecycleEventRepository() contract.LifecycleEventRepository {
	return u.lifecycleRepo
}

type fakeFactory struct {
	uow *fakeUnitOfWork
}

func newFakeFactory() *fakeFactory {
	return &fakeFactory{
		uow: &fakeUnitOfWork{
			noteRepo:      newFakeNoteRepo(),
			groupRepo:     newFakeGroupRepo(),
			archivedRepo:  newFakeArchivedNoteRepo(),
			lifecycleRepo: &fakeLifecycleEventRepo{},
		},
	}
}

func (f *fakeFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork { return f.uow }

type noopLogger struct{}

func (noopLogger) Debug(module, message string, details map[string]interface{}) {}
func (noopLogger) Info(module, message string, details map[string]interface{})  {}
func (noopLogger) Warn(module, message string, details map[string]interface{})  {}
func (noopLogger) Error(module, message string, details map[string]interface{}) {}
func (noopLogger) Sync() error                                                  { return nil }

type fakePublisher struct {
	published []*dto.LifecycleEventMessage
	err       error
}

func (p *fakePublisher) Publish(ctx context.Context, msg *dto.LifecycleEventMessage) error {
	if p.err != nil {
		return p.err
	}
	p.published = append(p.published, msg)
	return nil
}

func (p *fakePublisher) eventTypes() []string {
	types := make([]string, len(p.published))
	for i, m := range p.published {
		types[i] = m.Type
	}
	return types
}
