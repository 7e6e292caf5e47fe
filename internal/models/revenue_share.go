package models

import (
	"time"

	"github.com/google/uuid"
)

// RevenueShare declares a participant's percentage allocation of future
// proceeds from a report. TotalReceived is written only through the external
// reward-distribution path, never by the engine surface.
type RevenueShare struct {
	ReportID      uint64    `gorm:"primaryKey;autoIncrement:false" json:"report_id"`
	Participant   uuid.UUID `gorm:"type:uuid;primaryKey" json:"participant"`
	Percentage    int       `gorm:"not null" json:"percentage"`
	TotalReceived uint64    `gorm:"not null;default:0" json:"total_received"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (RevenueShare) TableName() string {
	return "revenue_shares"
}
