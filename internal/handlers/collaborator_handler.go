package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terrawatch/report-engine/internal/dto"
	"github.com/terrawatch/report-engine/internal/identity"
	"github.com/terrawatch/report-engine/internal/services"
)

type CollaboratorHandler struct {
	collaboratorService *services.CollaboratorService
}

func NewCollaboratorHandler(collaboratorService *services.CollaboratorService) *CollaboratorHandler {
	return &CollaboratorHandler{collaboratorService: collaboratorService}
}

func (h *CollaboratorHandler) AddCollaborator(c *fiber.Ctx) error {
	caller, err := identity.CallerID(c)
	if err != nil {
		return unauthorized(c)
	}

	id, err := parseReportID(c)
	if err != nil {
		return badRequest(c, "Invalid report ID")
	}

	var req dto.AddCollaboratorRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	if err := h.collaboratorService.AddCollaborator(caller, id, &req); err != nil {
		return engineError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Collaborator added"})
}

func (h *CollaboratorHandler) ListCollaborators(c *fiber.Ctx) error {
	id, err := parseReportID(c)
	if err != nil {
		return badRequest(c, "Invalid report ID")
	}

	collabs, err := h.collaboratorService.ListCollaborators(id)
	if err != nil {
		return engineError(c, err)
	}
	return c.JSON(fiber.Map{"report_id": id, "collaborators": collabs})
}
