package handlers

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/terrawatch/report-engine/internal/dto"
	"github.com/terrawatch/report-engine/internal/services"
)

// engineError translates an engine failure into the HTTP surface, carrying
// the stable numeric code external indexers key on.
func engineError(c *fiber.Ctx, err error) error {
	code := services.CodeOf(err)
	if code == 0 {
		slog.Error("engine operation failed", "method", c.Method(), "path", c.Path(), "error", err.Error())
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Internal server error",
		})
	}

	status := fiber.StatusBadRequest
	switch {
	case err == services.ErrReportNotFound:
		status = fiber.StatusNotFound
	case code == services.CodeUnauthorized:
		status = fiber.StatusForbidden
	case code == services.CodeReportExists, code == services.CodeMaxVersionsReached:
		status = fiber.StatusConflict
	case code == services.CodePaused:
		status = fiber.StatusServiceUnavailable
	}

	return c.Status(status).JSON(dto.ErrorResponse{
		Error: true, Code: int(code), Message: err.Error(),
	})
}

func unauthorized(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
		Error: true, Message: "Unauthorized",
	})
}

func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
		Error: true, Message: msg,
	})
}
