package handlers

import (
	"crypto/subtle"
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/terrawatch/report-engine/internal/dto"
	"github.com/terrawatch/report-engine/internal/services"
)

// WebhookHandler is the reward-distribution collaborator's write path for
// cumulative received totals. Authenticated by a shared token, no JWT.
type WebhookHandler struct {
	revenueService   *services.RevenueService
	distributorToken string
}

func NewWebhookHandler(revenueService *services.RevenueService, distributorToken string) *WebhookHandler {
	return &WebhookHandler{revenueService: revenueService, distributorToken: distributorToken}
}

func (h *WebhookHandler) HandleDistribution(c *fiber.Ctx) error {
	if h.distributorToken == "" {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: true, Message: "Distribution webhook not configured",
		})
	}

	auth := c.Get("X-Distributor-Token")
	if subtle.ConstantTimeCompare([]byte(auth), []byte(h.distributorToken)) != 1 {
		return unauthorized(c)
	}

	var req dto.DistributionRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid webhook payload")
	}

	if err := h.revenueService.RecordDistribution(req.ReportID, req.Participant, req.Amount); err != nil {
		if errors.Is(err, services.ErrShareNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		slog.Error("distribution webhook failed", "report_id", req.ReportID, "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to record distribution",
		})
	}

	return c.JSON(fiber.Map{"message": "Distribution recorded"})
}
