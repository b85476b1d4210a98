package controller

import (
	"task-tracking-be/internal/dto"
	"task-tracking-be/internal/pkg/serverutils"
	"task-tracking-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IGroupController interface {
	RegisterRoutes(r fiber.Router)
	Create(ctx *fiber.Ctx) error
	List(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	Update(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
}

type groupController struct {
	groupService service.IGroupService
}

func NewGroupController(groupService service.IGroupService) IGroupController {
	return &groupController{
		groupService: groupService,
	}
}

func (c *groupController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/group/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Post("", c.Create)
	h.Get("", c.List)
	h.Get(":id", c.Show)
	h.Patch(":id", c.Update)
	h.Delete(":id", c.Delete)
}

func (c *groupController) Create(ctx *fiber.Ctx) error {
	userId := currentUserId(ctx)

	var req dto.CreateGroupRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.ErrBadRequest
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.groupService.Create(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success create group", res))
}

func (c *groupController) List(ctx *fiber.Ctx) error {
	userId := currentUserId(ctx)

	res, err := c.groupService.ListWithCounts(ctx.Context(), userId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list groups", res))
}

func (c *groupController) Show(ctx *fiber.Ctx) error {
	userId := currentUserId(ctx)

	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.ErrBadRequest
	}

	res, err := c.groupService.Show(ctx.Context(), userId, id)
	if err != nil {
		return err
	}
	if res == nil {
		return fiber.ErrNotFound
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show group", res))
}

func (c *groupController) Update(ctx *fiber.Ctx) error {
	userId := currentUserId(ctx)

	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.ErrBadRequest
	}

	var req dto.UpdateGroupRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.ErrBadRequest
	}
	req.Id = id

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.groupService.Update(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}
	if res == nil {
		return fiber.ErrNotFound
	}

	return ctx.JSON(serverutils.SuccessResponse("Success update group", res))
}

func (c *groupController) Delete(ctx *fiber.Ctx) error {
	userId := currentUserId(ctx)

	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.ErrBadRequest
	}

	// mode defaults to reassign so notes survive their group.
	mode := ctx.Query("mode", service.GroupDeleteModeReassign)

	deleted, err := c.groupService.Delete(ctx.Context(), userId, id, mode)
	if err != nil {
		return err
	}
	if !deleted {
		return fiber.ErrNotFound
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success delete group", nil))
}
