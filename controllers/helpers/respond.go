package helpers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/tommy-vpr/Warehouse-Management-System-sub002/services"
)

// ServiceError maps a service error to its HTTP response. Unrecognized
// errors become a 500 with the raw message.
func ServiceError(ctx *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError

	switch {
	case errors.Is(err, services.ErrUnauthenticated):
		status = fiber.StatusUnauthorized
	case errors.Is(err, services.ErrForbidden):
		status = fiber.StatusForbidden
	case errors.Is(err, services.ErrNotFound), errors.Is(err, services.ErrUserNotFound):
		status = fiber.StatusNotFound
	case errors.Is(err, services.ErrValidation),
		errors.Is(err, services.ErrNothingToReassign),
		errors.Is(err, services.ErrInvalidState),
		errors.Is(err, services.ErrInsufficientStock):
		status = fiber.StatusBadRequest
	case errors.Is(err, services.ErrConflict):
		status = fiber.StatusConflict
	}

	return ctx.Status(status).JSON(fiber.Map{
		"error": err.Error(),
	})
}
