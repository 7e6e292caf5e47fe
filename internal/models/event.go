package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Engine observation names. Events are appended in the same transaction as
// the state change they describe, ordered by Seq.
const (
	EventReportSubmitted = "report-submitted"
	EventVersionAdded    = "report-version-added"
	EventStatusUpdated   = "status-updated"
	EventLicenseGranted  = "license-granted"
)

// Event is one entry of the append-only observation stream consumed by
// external indexers (reward distribution, geospatial index, bounty funding).
type Event struct {
	Seq       uint64         `gorm:"primaryKey;autoIncrement" json:"seq"`
	Name      string         `gorm:"size:50;not null;index" json:"name"`
	ReportID  uint64         `gorm:"not null;index" json:"report_id"`
	Actor     uuid.UUID      `gorm:"type:uuid;not null" json:"actor"`
	Height    uint64         `gorm:"not null" json:"height"`
	Payload   datatypes.JSON `gorm:"type:jsonb" json:"payload"`
	CreatedAt time.Time      `json:"created_at"`
}

func (Event) TableName() string {
	return "events"
}
