package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terrawatch/report-engine/internal/dto"
	"github.com/terrawatch/report-engine/internal/identity"
	"github.com/terrawatch/report-engine/internal/models"
	"github.com/terrawatch/report-engine/internal/services"
)

type StatusHandler struct {
	statusService *services.StatusService
}

func NewStatusHandler(statusService *services.StatusService) *StatusHandler {
	return &StatusHandler{statusService: statusService}
}

func (h *StatusHandler) UpdateStatus(c *fiber.Ctx) error {
	caller, err := identity.CallerID(c)
	if err != nil {
		return unauthorized(c)
	}

	id, err := parseReportID(c)
	if err != nil {
		return badRequest(c, "Invalid report ID")
	}

	var req dto.UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	if err := h.statusService.UpdateStatus(caller, id, models.ReportStatus(req.Status), req.Visible); err != nil {
		return engineError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Status updated"})
}

func (h *StatusHandler) History(c *fiber.Ctx) error {
	id, err := parseReportID(c)
	if err != nil {
		return badRequest(c, "Invalid report ID")
	}

	records, err := h.statusService.History(id)
	if err != nil {
		return engineError(c, err)
	}
	return c.JSON(fiber.Map{"report_id": id, "history": records})
}
