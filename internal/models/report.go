package models

import (
	"time"

	"github.com/google/uuid"
)

// ReportStatus is the closed lifecycle enum of a report. Any status may
// follow any other; there is no transition graph.
type ReportStatus string

const (
	StatusPending  ReportStatus = "pending"
	StatusVerified ReportStatus = "verified"
	StatusRejected ReportStatus = "rejected"
	StatusArchived ReportStatus = "archived"
)

// ValidStatus reports whether s is a member of the status enum.
func ValidStatus(s ReportStatus) bool {
	switch s {
	case StatusPending, StatusVerified, StatusRejected, StatusArchived:
		return true
	}
	return false
}

// Report is a submitted environmental threat observation. IDs are assigned
// sequentially and never reused. Only Status and Metadata are mutable after
// creation; reports are never deleted (archival is a status).
type Report struct {
	ID             uint64       `gorm:"primaryKey;autoIncrement:false" json:"id"`
	Submitter      uuid.UUID    `gorm:"type:uuid;not null;index" json:"submitter"`
	Latitude       int64        `gorm:"not null" json:"latitude"`
	Longitude      int64        `gorm:"not null" json:"longitude"`
	EvidenceDigest []byte       `gorm:"type:bytea;not null" json:"-"`
	ThreatType     string       `gorm:"size:32;not null" json:"threat_type"`
	Description    string       `gorm:"size:512;not null" json:"description"`
	Metadata       string       `gorm:"size:1024" json:"metadata,omitempty"`
	Status         ReportStatus `gorm:"size:20;not null;index" json:"status"`
	Flagged        bool         `gorm:"not null;default:false" json:"flagged"`
	SubmittedAt    uint64       `gorm:"not null" json:"submitted_at"`
	CreatedAt      time.Time    `json:"created_at"`
	UpdatedAt      time.Time    `json:"updated_at"`
}
