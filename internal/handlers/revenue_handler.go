package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terrawatch/report-engine/internal/dto"
	"github.com/terrawatch/report-engine/internal/identity"
	"github.com/terrawatch/report-engine/internal/services"
)

type RevenueHandler struct {
	revenueService *services.RevenueService
}

func NewRevenueHandler(revenueService *services.RevenueService) *RevenueHandler {
	return &RevenueHandler{revenueService: revenueService}
}

func (h *RevenueHandler) SetShare(c *fiber.Ctx) error {
	caller, err := identity.CallerID(c)
	if err != nil {
		return unauthorized(c)
	}

	id, err := parseReportID(c)
	if err != nil {
		return badRequest(c, "Invalid report ID")
	}

	var req dto.SetShareRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	if err := h.revenueService.SetShare(caller, id, req.Participant, req.Percentage); err != nil {
		return engineError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Share set"})
}

func (h *RevenueHandler) ListShares(c *fiber.Ctx) error {
	id, err := parseReportID(c)
	if err != nil {
		return badRequest(c, "Invalid report ID")
	}

	shares, err := h.revenueService.ListShares(id)
	if err != nil {
		return engineError(c, err)
	}
	return c.JSON(fiber.Map{"report_id": id, "shares": shares})
}
