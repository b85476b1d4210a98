package controller

import (
	"strconv"

	"task-tracking-be/internal/dto"
	"task-tracking-be/internal/pkg/serverutils"
	"task-tracking-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type INoteController interface {
	RegisterRoutes(r fiber.Router)
	Create(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	List(ctx *fiber.Ctx) error
	Update(ctx *fiber.Ctx) error
	SetStatus(ctx *fiber.Ctx) error
	Archive(ctx *fiber.Ctx) error
	Unarchive(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
	StatusCounts(ctx *fiber.Ctx) error
	PriorityCounts(ctx *fiber.Ctx) error
}

type noteController struct {
	noteService service.INoteService
}

func NewNoteController(noteService service.INoteService) INoteController {
	return &noteController{
		noteService: noteService,
	}
}

func (c *noteController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/note/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Get("stats/status", c.StatusCounts)
	h.Get("stats/priority", c.PriorityCounts)
	h.Post("", c.Create)
	h.Get("", c.List)
	h.Get(":id", c.Show)
	h.Patch(":id", c.Update)
	h.Patch(":id/status", c.SetStatus)
	h.Post(":id/archive", c.Archive)
	h.Post(":id/unarchive", c.Unarchive)
	h.Delete(":id", c.Delete)
}

func (c *noteController) Create(ctx *fiber.Ctx) error {
	userId := currentUserId(ctx)

	var req dto.CreateNoteRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.ErrBadRequest
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.noteService.Create(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success create note", res))
}

func (c *noteController) Show(ctx *fiber.Ctx) error {
	userId := currentUserId(ctx)

	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.ErrBadRequest
	}

	res, err := c.noteService.Show(ctx.Context(), userId, id)
	if err != nil {
		return err
	}
	if res == nil {
		return fiber.ErrNotFound
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show note", res))
}

func (c *noteController) List(ctx *fiber.Ctx) error {
	userId := currentUserId(ctx)

	query := dto.ListNotesQuery{
		Status:   ctx.Query("status"),
		Priority: ctx.Query("priority"),
		GroupId:  ctx.Query("group_id"),
		Search:   ctx.Query("search"),
		SortBy:   ctx.Query("sort_by"),
		Order:    ctx.Query("order"),
		Page:     queryInt(ctx, "page"),
		Limit:    queryInt(ctx, "limit"),
	}

	if err := serverutils.ValidateRequest(query); err != nil {
		return err
	}

	res, err := c.noteService.List(ctx.Context(), userId, &query)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list notes", res))
}

func (c *noteController) Update(ctx *fiber.Ctx) error {
	userId := currentUserId(ctx)

	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.ErrBadRequest
	}

	var req dto.UpdateNoteRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.ErrBadRequest
	}
	req.Id = id

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.noteService.Update(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}
	if res == nil {
		return fiber.ErrNotFound
	}

	return ctx.JSON(serverutils.SuccessResponse("Success update note", res))
}

func (c *noteController) SetStatus(ctx *fiber.Ctx) error {
	userId := currentUserId(ctx)

	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.ErrBadRequest
	}

	var req dto.UpdateNoteStatusRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.ErrBadRequest
	}
	req.Id = id

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.noteService.SetStatus(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}
	if res == nil {
		return fiber.ErrNotFound
	}

	return ctx.JSON(serverutils.SuccessResponse("Success update note status", res))
}

func (c *noteController) Archive(ctx *fiber.Ctx) error {
	userId := currentUserId(ctx)

	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.ErrBadRequest
	}

	res, err := c.noteService.Archive(ctx.Context(), userId, id)
	if err != nil {
		return err
	}
	if res == nil {
		return fiber.ErrNotFound
	}

	return ctx.JSON(serverutils.SuccessResponse("Success archive note", res))
}

func (c *noteController) Unarchive(ctx *fiber.Ctx) error {
	userId := currentUserId(ctx)

	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.ErrBadRequest
	}

	res, err := c.noteService.Unarchive(ctx.Context(), userId, id)
	if err != nil {
		return err
	}
	if res == nil {
		return fiber.ErrNotFound
	}

	return ctx.JSON(serverutils.SuccessResponse("Success unarchive note", res))
}

func (c *noteController) Delete(ctx *fiber.Ctx) error {
	userId := currentUserId(ctx)

	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.ErrBadRequest
	}

	deleted, err := c.noteService.Delete(ctx.Context(), userId, id)
	if err != nil {
		return err
	}
	if !deleted {
		return fiber.ErrNotFound
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success delete note", nil))
}

func (c *noteController) StatusCounts(ctx *fiber.Ctx) error {
	userId := currentUserId(ctx)

	res, err := c.noteService.StatusCounts(ctx.Context(), userId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success count notes by status", res))
}

func (c *noteController) PriorityCounts(ctx *fiber.Ctx) error {
	userId := currentUserId(ctx)

	res, err := c.noteService.PriorityCounts(ctx.Context(), userId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success count notes by priority", res))
}

func currentUserId(ctx *fiber.Ctx) uuid.UUID {
	userIdStr, _ := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)
	return userId
}

func queryInt(ctx *fiber.Ctx, key string) int {
	v, _ := strconv.Atoi(ctx.Query(key))
	return v
}
