package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/terrawatch/report-engine/internal/services"
)

// EventHandler serves the ordered observation stream to external indexers.
type EventHandler struct {
	eventService *services.EventService
}

func NewEventHandler(eventService *services.EventService) *EventHandler {
	return &EventHandler{eventService: eventService}
}

func (h *EventHandler) List(c *fiber.Ctx) error {
	after, _ := strconv.ParseUint(c.Query("after", "0"), 10, 64)
	limit, _ := strconv.Atoi(c.Query("limit", "100"))

	events, err := h.eventService.List(after, limit)
	if err != nil {
		return engineError(c, err)
	}

	var next uint64
	if len(events) > 0 {
		next = events[len(events)-1].Seq
	}
	return c.JSON(fiber.Map{"events": events, "next": next})
}
