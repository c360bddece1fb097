package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/mgudino/stock-ledger-api/internal/application/dto"
	"github.com/mgudino/stock-ledger-api/internal/domain"
)

// respondError maps domain error kinds to HTTP status codes: validation and
// not-found to 4xx, conflicts to 409 (retryable by re-reading), storage and
// unknown failures to 500.
func respondError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "warehouse or stock line not found"})
	case errors.Is(err, domain.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFLICT", Message: "concurrent update, retry with fresh state"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "internal error"})
	}
}
