package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terrawatch/report-engine/internal/dto"
	"github.com/terrawatch/report-engine/internal/identity"
	"github.com/terrawatch/report-engine/internal/services"
)

// EngineHandler exposes the admin/pause controls. Authorization is the
// engine's own admin-identity check, not an HTTP-layer role.
type EngineHandler struct {
	adminService *services.AdminService
}

func NewEngineHandler(adminService *services.AdminService) *EngineHandler {
	return &EngineHandler{adminService: adminService}
}

func (h *EngineHandler) State(c *fiber.Ctx) error {
	state, err := h.adminService.State()
	if err != nil {
		return engineError(c, err)
	}
	return c.JSON(state)
}

func (h *EngineHandler) Pause(c *fiber.Ctx) error {
	caller, err := identity.CallerID(c)
	if err != nil {
		return unauthorized(c)
	}
	if err := h.adminService.Pause(caller); err != nil {
		return engineError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Engine paused"})
}

func (h *EngineHandler) Unpause(c *fiber.Ctx) error {
	caller, err := identity.CallerID(c)
	if err != nil {
		return unauthorized(c)
	}
	if err := h.adminService.Unpause(caller); err != nil {
		return engineError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Engine unpaused"})
}

func (h *EngineHandler) SetAdmin(c *fiber.Ctx) error {
	caller, err := identity.CallerID(c)
	if err != nil {
		return unauthorized(c)
	}

	var req dto.SetAdminRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	if err := h.adminService.SetAdmin(caller, req.NewAdmin); err != nil {
		return engineError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Admin transferred"})
}
