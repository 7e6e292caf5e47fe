package services

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/terrawatch/report-engine/internal/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// emitEvent appends an observation inside the transaction of the state change
// it describes, so the stream is ordered and never ahead of committed state.
func emitEvent(tx *gorm.DB, name string, reportID uint64, actor uuid.UUID, height uint64, payload map[string]interface{}) error {
	var raw datatypes.JSON
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to encode %s payload: %w", name, err)
		}
		raw = datatypes.JSON(b)
	}

	ev := models.Event{
		Name:     name,
		ReportID: reportID,
		Actor:    actor,
		Height:   height,
		Payload:  raw,
	}
	if err := tx.Create(&ev).Error; err != nil {
		return fmt.Errorf("failed to append %s event: %w", name, err)
	}

	slog.Info("event emitted", "name", name, "report_id", reportID, "actor", actor.String(), "height", height)
	return nil
}

// EventService exposes the ordered observation stream to external consumers.
type EventService struct {
	db *gorm.DB
}

func NewEventService(db *gorm.DB) *EventService {
	return &EventService{db: db}
}

// List returns events with seq > after, oldest first.
func (s *EventService) List(after uint64, limit int) ([]models.Event, error) {
	if limit < 1 || limit > 500 {
		limit = 100
	}
	var events []models.Event
	if err := s.db.Where("seq > ?", after).Order("seq ASC").Limit(limit).Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}
