package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terrawatch/report-engine/internal/dto"
	"github.com/terrawatch/report-engine/internal/identity"
	"github.com/terrawatch/report-engine/internal/services"
)

type VersionHandler struct {
	versionService *services.VersionService
}

func NewVersionHandler(versionService *services.VersionService) *VersionHandler {
	return &VersionHandler{versionService: versionService}
}

func (h *VersionHandler) AddVersion(c *fiber.Ctx) error {
	caller, err := identity.CallerID(c)
	if err != nil {
		return unauthorized(c)
	}

	id, err := parseReportID(c)
	if err != nil {
		return badRequest(c, "Invalid report ID")
	}

	var req dto.AddVersionRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	version, err := h.versionService.AddVersion(caller, id, &req)
	if err != nil {
		return engineError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"report_id": id, "version": version})
}

func (h *VersionHandler) ListVersions(c *fiber.Ctx) error {
	id, err := parseReportID(c)
	if err != nil {
		return badRequest(c, "Invalid report ID")
	}

	versions, err := h.versionService.ListVersions(id)
	if err != nil {
		return engineError(c, err)
	}

	resp := make([]dto.VersionResponse, len(versions))
	for i := range versions {
		resp[i] = dto.NewVersionResponse(&versions[i])
	}
	return c.JSON(fiber.Map{"report_id": id, "versions": resp})
}
