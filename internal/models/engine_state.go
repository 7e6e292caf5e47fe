package models

import (
	"time"

	"github.com/google/uuid"
)

// EngineStateID is the fixed primary key of the singleton EngineState row.
const EngineStateID = 1

// EngineState holds the process-wide engine controls: the pause flag (which
// gates submission only), the current admin identity, and the next report id
// to allocate.
type EngineState struct {
	ID           uint32    `gorm:"primaryKey;autoIncrement:false" json:"-"`
	Paused       bool      `gorm:"not null;default:false" json:"paused"`
	AdminID      uuid.UUID `gorm:"type:uuid;not null" json:"admin_id"`
	NextReportID uint64    `gorm:"not null" json:"next_report_id"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (EngineState) TableName() string {
	return "engine_state"
}

// ReportCounter maps a report id directly to its running version count and
// last status sequence. Keyed by report id, not positional, so identifiers
// never need to be dense or contiguous.
type ReportCounter struct {
	ReportID     uint64 `gorm:"primaryKey;autoIncrement:false" json:"report_id"`
	VersionCount uint32 `gorm:"not null;default:0" json:"version_count"`
	StatusSeq    uint32 `gorm:"not null;default:0" json:"status_seq"`
}

func (ReportCounter) TableName() string {
	return "report_counters"
}
