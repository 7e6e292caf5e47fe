package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terrawatch/report-engine/internal/dto"
	"github.com/terrawatch/report-engine/internal/identity"
	"github.com/terrawatch/report-engine/internal/services"
)

type CategoryHandler struct {
	categoryService *services.CategoryService
}

func NewCategoryHandler(categoryService *services.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

func (h *CategoryHandler) SetCategory(c *fiber.Ctx) error {
	caller, err := identity.CallerID(c)
	if err != nil {
		return unauthorized(c)
	}

	id, err := parseReportID(c)
	if err != nil {
		return badRequest(c, "Invalid report ID")
	}

	var req dto.SetCategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	if err := h.categoryService.SetCategory(caller, id, &req); err != nil {
		return engineError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Category set"})
}

func (h *CategoryHandler) GetCategory(c *fiber.Ctx) error {
	id, err := parseReportID(c)
	if err != nil {
		return badRequest(c, "Invalid report ID")
	}

	cat, err := h.categoryService.GetCategory(id)
	if err != nil {
		return engineError(c, err)
	}
	if cat == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: true, Message: "No category set for this report",
		})
	}

	return c.JSON(dto.CategoryResponse{
		ReportID: cat.ReportID,
		Category: cat.Category,
		Tags:     services.DecodeTags(cat),
	})
}
