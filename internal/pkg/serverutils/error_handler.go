package serverutils

import (
	"errors"

	"task-tracking-be/internal/pkg/apperrors"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandlerMiddleware maps domain errors onto HTTP statuses in one
// place so handlers can just return them.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		var validationErr *apperrors.ValidationError
		if errors.As(err, &validationErr) {
			return ctx.Status(fiber.StatusBadRequest).JSON(ErrorResponse(400, validationErr.Error()))
		}

		var conflictErr *apperrors.ConflictError
		if errors.As(err, &conflictErr) {
			return ctx.Status(fiber.StatusConflict).JSON(ErrorResponse(409, conflictErr.Error()))
		}

		var archiveErr *apperrors.ArchiveError
		if errors.As(err, &archiveErr) {
			return ctx.Status(fiber.StatusInternalServerError).JSON(ErrorResponse(500, archiveErr.Error()))
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return ctx.Status(fiberErr.Code).JSON(ErrorResponse(fiberErr.Code, fiberErr.Message))
		}

		return ctx.Status(fiber.StatusInternalServerError).JSON(ErrorResponse(500, "Internal server error"))
	}
}
