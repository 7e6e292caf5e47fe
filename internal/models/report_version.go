package models

import (
	"time"

	"github.com/google/uuid"
)

// ReportVersion is an immutable revision entry. Versions start at 1 and are
// gap-free per report; the count per report is capped by configuration.
type ReportVersion struct {
	ReportID       uint64    `gorm:"primaryKey;autoIncrement:false" json:"report_id"`
	Version        uint32    `gorm:"primaryKey;autoIncrement:false" json:"version"`
	EvidenceDigest []byte    `gorm:"type:bytea;not null" json:"-"`
	Notes          string    `gorm:"size:256" json:"notes,omitempty"`
	Author         uuid.UUID `gorm:"type:uuid;not null" json:"author"`
	RecordedAt     uint64    `gorm:"not null" json:"recorded_at"`
	CreatedAt      time.Time `json:"created_at"`
}

func (ReportVersion) TableName() string {
	return "report_versions"
}
