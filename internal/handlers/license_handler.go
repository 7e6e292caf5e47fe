package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terrawatch/report-engine/internal/dto"
	"github.com/terrawatch/report-engine/internal/identity"
	"github.com/terrawatch/report-engine/internal/services"
)

type LicenseHandler struct {
	licenseService *services.LicenseService
}

func NewLicenseHandler(licenseService *services.LicenseService) *LicenseHandler {
	return &LicenseHandler{licenseService: licenseService}
}

func (h *LicenseHandler) GrantLicense(c *fiber.Ctx) error {
	caller, err := identity.CallerID(c)
	if err != nil {
		return unauthorized(c)
	}

	id, err := parseReportID(c)
	if err != nil {
		return badRequest(c, "Invalid report ID")
	}

	var req dto.GrantLicenseRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	if err := h.licenseService.GrantLicense(caller, id, &req); err != nil {
		return engineError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "License granted"})
}

func (h *LicenseHandler) ListLicenses(c *fiber.Ctx) error {
	id, err := parseReportID(c)
	if err != nil {
		return badRequest(c, "Invalid report ID")
	}

	licenses, err := h.licenseService.ListLicenses(id)
	if err != nil {
		return engineError(c, err)
	}
	return c.JSON(fiber.Map{"report_id": id, "licenses": licenses})
}
