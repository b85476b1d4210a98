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

const defaultGroupColor = "#3b82f6"

const (
	GroupDeleteModeReassign = "reassign"
	GroupDeleteModeCascade  = "cascade"
)

type IGroupService interface {
	Create(ctx context.Context, userId uuid.UUID, req *dto.CreateGroupRequest) (*dto.GroupResponse, error)
	Show(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.GroupResponse, error)
	ListWithCounts(ctx context.Context, userId uuid.UUID) ([]*dto.GroupWithCountResponse, error)
	Update(ctx context.Context, userId uuid.UUID, req *dto.UpdateGroupRequest) (*dto.GroupResponse, error)
	Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID, mode string) (bool, error)
}

type groupService struct {
	uowFactory       unitofwork.RepositoryFactory
	publisherService IPublisherService
	logger           logger.ILogger
}

func NewGroupService(
	uowFactory unitofwork.RepositoryFactory,
	publisherService IPublisherService,
	log logger.ILogger,
) IGroupService {
	return &groupService{
		uowFactory:       uowFactory,
		publisherService: publisherService,
		logger:           log,
	}
}

func (s *groupService) Create(ctx context.Context, userId uuid.UUID, req *dto.CreateGroupRequest) (*dto.GroupResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	repo := uow.GroupRepository()

	existing, err := repo.FindOne(ctx,
		specification.OwnedBy{UserID: userId},
		specification.ByName{Name: req.Name},
	)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperrors.NewConflictError("a group with this name already exists")
	}

	color := req.Color
	if color == "" {
		color = defaultGroupColor
	}

	group := entity.Group{
		Id:          uuid.New(),
		UserId:      userId,
		Name:        req.Name,
		Description: req.Description,
		Color:       color,
		CreatedAt:   time.Now(),
	}
	if err := repo.Create(ctx, &group); err != nil {
		return nil, err
	}

	return groupToResponse(&group), nil
}

func (s *groupService) Show(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.GroupResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	group, err := uow.GroupRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.OwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if group == nil {
		return nil, nil
	}
	return groupToResponse(group), nil
}

func (s *groupService) ListWithCounts(ctx context.Context, userId uuid.UUID) ([]*dto.GroupWithCountResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	groups, err := uow.GroupRepository().FindAll(ctx,
		specification.OwnedBy{UserID: userId},
		specification.OrderBy{Field: "created_at", Desc: false},
	)
	if err != nil {
		return nil, err
	}

	counts, err := uow.NoteRepository().ActiveCountPerGroup(ctx, userId)
	if err != nil {
		return nil, err
	}

	res := make([]*dto.GroupWithCountResponse, len(groups))
	for i, g := range groups {
		res[i] = &dto.GroupWithCountResponse{
			GroupResponse:   *groupToResponse(g),
			ActiveNoteCount: counts[g.Id],
		}
	}
	return res, nil
}

func (s *groupService) Update(ctx context.Context, userId uuid.UUID, req *dto.UpdateGroupRequest) (*dto.GroupResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	repo := uow.GroupRepository()

	group, err := repo.FindOne(ctx,
		specification.ByID{ID: req.Id},
		specification.OwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if group == nil {
		return nil, nil
	}

	if req.Name != nil && *req.Name != group.Name {
		duplicate, err := repo.FindOne(ctx,
			specification.OwnedBy{UserID: userId},
			specification.ByName{Name: *req.Name},
			specification.ExcludeID{ID: group.Id},
		)
		if err != nil {
			return nil, err
		}
		if duplicate != nil {
			return nil, apperrors.NewConflictError("a group with this name already exists")
		}
		group.Name = *req.Name
	}
	if req.Description != nil {
		group.Description = *req.Description
	}
	if req.Color != nil {
		group.Color = *req.Color
	}

	now := time.Now()
	group.UpdatedAt = &now

	if err := repo.Update(ctx, group); err != nil {
		return nil, err
	}
	return groupToResponse(group), nil
}

// Delete removes a group in one of two modes. Reassign, the default,
// detaches the group's notes before deleting so they survive as
// ungrouped. Cascade deletes the notes along with the group via the
// foreign key. Both run inside a single transaction.
func (s *groupService) Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID, mode string) (bool, error) {
	if mode == "" {
		mode = GroupDeleteModeReassign
	}
	if mode != GroupDeleteModeReassign && mode != GroupDeleteModeCascade {
		return false, apperrors.NewValidationError("mode", "must be reassign or cascade")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	group, err := uow.GroupRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.OwnedBy{UserID: userId},
	)
	if err != nil {
		return false, err
	}
	if group == nil {
		return false, nil
	}

	if err := uow.Begin(ctx); err != nil {
		return false, err
	}
	defer uow.Rollback()

	if mode == GroupDeleteModeReassign {
		if err := uow.NoteRepository().ClearGroup(ctx, id, userId); err != nil {
			return false, err
		}
	}

	if err := uow.GroupRepository().Delete(ctx, id); err != nil {
		return false, err
	}

	if err := uow.Commit(); err != nil {
		return false, err
	}

	s.publishGroupDeleted(ctx, group, mode)
	return true, nil
}

func (s *groupService) publishGroupDeleted(ctx context.Context, group *entity.Group, mode string) {
	if s.publisherService == nil {
		return
	}

	groupId := group.Id
	msg := &dto.LifecycleEventMessage{
		Type:       entity.EventGroupDeleted,
		UserId:     group.UserId,
		EntityType: "group",
		EntityId:   &groupId,
		Data: map[string]interface{}{
			"name": group.Name,
			"mode": mode,
		},
		OccurredAt: time.Now(),
	}
	if err := s.publisherService.Publish(ctx, msg); err != nil {
		s.logger.Warn("GroupService", "Failed to publish lifecycle event", map[string]interface{}{
			"type":  entity.EventGroupDeleted,
			"error": err.Error(),
		})
	}
}

func groupToResponse(g *entity.Group) *dto.GroupResponse {
	return &dto.GroupResponse{
		Id:          g.Id,
		UserId:      g.UserId,
		Name:        g.Name,
		Description: g.Description,
		Color:       g.Color,
		CreatedAt:   g.CreatedAt,
		UpdatedAt:   g.UpdatedAt,
	}
}
