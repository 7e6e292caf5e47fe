package models

import (
	"time"

	"github.com/google/uuid"
)

// StatusRecord is one entry of a report's append-only status audit trail.
// Sequence numbers start at 1 and are strictly increasing per report; the
// first record is written atomically with report creation.
type StatusRecord struct {
	ReportID   uint64       `gorm:"primaryKey;autoIncrement:false" json:"report_id"`
	Seq        uint32       `gorm:"primaryKey;autoIncrement:false" json:"seq"`
	Status     ReportStatus `gorm:"size:20;not null" json:"status"`
	Visible    bool         `gorm:"not null" json:"visible"`
	RecordedAt uint64       `gorm:"not null" json:"recorded_at"`
	UpdatedBy  uuid.UUID    `gorm:"type:uuid;not null" json:"updated_by"`
	CreatedAt  time.Time    `json:"created_at"`
}

func (StatusRecord) TableName() string {
	return "status_records"
}
