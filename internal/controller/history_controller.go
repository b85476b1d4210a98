package controller

import (
	"task-tracking-be/internal/dto"
	"task-tracking-be/internal/pkg/serverutils"
	"task-tracking-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IHistoryController interface {
	RegisterRoutes(r fiber.Router)
	List(ctx *fiber.Ctx) error
	DailyStats(ctx *fiber.Ctx) error
	ShowByNote(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
}

type historyController struct {
	historyService service.IHistoryService
	archiveService service.IArchiveService
}

func NewHistoryController(historyService service.IHistoryService, archiveService service.IArchiveService) IHistoryController {
	return &historyController{
		historyService: historyService,
		archiveService: archiveService,
	}
}

func (c *historyController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/history/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Get("", c.List)
	h.Get("daily-stats", c.DailyStats)
	h.Get("by-note/:noteId", c.ShowByNote)
	h.Delete(":id", c.Delete)
}

func (c *historyController) List(ctx *fiber.Ctx) error {
	userId := currentUserId(ctx)

	query := dto.HistoryQuery{
		Priority:      ctx.Query("priority"),
		GroupName:     ctx.Query("group_name"),
		GroupMatch:    ctx.Query("group_match"),
		Search:        ctx.Query("search"),
		CompletedFrom: ctx.Query("completed_from"),
		CompletedTo:   ctx.Query("completed_to"),
		SortBy:        ctx.Query("sort_by"),
		Order:         ctx.Query("order"),
		Page:          queryInt(ctx, "page"),
		Limit:         queryInt(ctx, "limit"),
	}

	if err := serverutils.ValidateRequest(query); err != nil {
		return err
	}

	res, err := c.historyService.Query(ctx.Context(), userId, &query)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list archived notes", res))
}

func (c *historyController) DailyStats(ctx *fiber.Ctx) error {
	userId := currentUserId(ctx)

	query := dto.DailyStatsQuery{
		From: ctx.Query("from"),
		To:   ctx.Query("to"),
		Days: queryInt(ctx, "days"),
	}

	if err := serverutils.ValidateRequest(query); err != nil {
		return err
	}

	res, err := c.historyService.DailyStats(ctx.Context(), userId, &query)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success daily completion stats", res))
}

func (c *historyController) ShowByNote(ctx *fiber.Ctx) error {
	userId := currentUserId(ctx)

	noteId, err := uuid.Parse(ctx.Params("noteId"))
	if err != nil {
		return fiber.ErrBadRequest
	}

	res, err := c.archiveService.FindByOriginalNote(ctx.Context(), userId, noteId)
	if err != nil {
		return err
	}
	if res == nil {
		return fiber.ErrNotFound
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show archived note", res))
}

func (c *historyController) Delete(ctx *fiber.Ctx) error {
	userId := currentUserId(ctx)

	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.ErrBadRequest
	}

	deleted, err := c.archiveService.Delete(ctx.Context(), userId, id)
	if err != nil {
		return err
	}
	if !deleted {
		return fiber.ErrNotFound
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success delete archived note", nil))
}
