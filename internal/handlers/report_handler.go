package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/terrawatch/report-engine/internal/dto"
	"github.com/terrawatch/report-engine/internal/identity"
	"github.com/terrawatch/report-engine/internal/services"
)

type ReportHandler struct {
	reportService *services.ReportService
}

func NewReportHandler(reportService *services.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

func (h *ReportHandler) Submit(c *fiber.Ctx) error {
	caller, err := identity.CallerID(c)
	if err != nil {
		return unauthorized(c)
	}

	var req dto.SubmitReportRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	report, err := h.reportService.Submit(caller, &req)
	if err != nil {
		return engineError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(dto.NewReportResponse(report))
}

func (h *ReportHandler) Get(c *fiber.Ctx) error {
	id, err := parseReportID(c)
	if err != nil {
		return badRequest(c, "Invalid report ID")
	}

	report, err := h.reportService.Get(id)
	if err != nil {
		return engineError(c, err)
	}
	if report == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: true, Message: "Report not found",
		})
	}

	return c.JSON(dto.NewReportResponse(report))
}

func (h *ReportHandler) List(c *fiber.Ctx) error {
	status := c.Query("status", "")
	limit, _ := strconv.Atoi(c.Query("limit", "20"))
	offset, _ := strconv.Atoi(c.Query("offset", "0"))

	reports, total, err := h.reportService.List(status, limit, offset)
	if err != nil {
		return engineError(c, err)
	}

	resp := dto.ReportListResponse{
		Reports: make([]dto.ReportResponse, len(reports)),
		Total:   total,
		Limit:   limit,
		Offset:  offset,
	}
	for i := range reports {
		resp.Reports[i] = *dto.NewReportResponse(&reports[i])
	}
	return c.JSON(resp)
}

func (h *ReportHandler) UpdateMetadata(c *fiber.Ctx) error {
	caller, err := identity.CallerID(c)
	if err != nil {
		return unauthorized(c)
	}

	id, err := parseReportID(c)
	if err != nil {
		return badRequest(c, "Invalid report ID")
	}

	var req dto.UpdateMetadataRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	if err := h.reportService.UpdateMetadata(caller, id, req.Metadata); err != nil {
		return engineError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Metadata updated"})
}

func parseReportID(c *fiber.Ctx) (uint64, error) {
	return strconv.ParseUint(c.Params("id"), 10, 64)
}
