package handlers

import (
	"errors"

	"github.com/WNVissie/Shiftroster/internal/core/domain"
	"github.com/WNVissie/Shiftroster/internal/core/services"
	"github.com/WNVissie/Shiftroster/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// serviceError maps a domain error kind onto its HTTP status. Every
// handler funnels service failures through here so the mapping lives in
// one place.
func serviceError(c *fiber.Ctx, err error) error {
	var bulkErr *services.BulkValidationError
	if errors.As(err, &bulkErr) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   bulkErr.Error(),
			"errors":  bulkErr.Errors,
		})
	}

	switch {
	case errors.Is(err, domain.ErrUnauthenticated):
		return response.Unauthorized(c, err.Error())
	case errors.Is(err, domain.ErrPermissionDenied):
		return response.Forbidden(c, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		return response.NotFound(c, err.Error())
	case errors.Is(err, domain.ErrInvalidInput):
		return response.BadRequest(c, err.Error())
	case errors.Is(err, domain.ErrConflict):
		return response.Conflict(c, err.Error())
	default:
		return response.InternalServerError(c, "Internal server error")
	}
}
