package models

import (
	"time"

	"github.com/google/uuid"
)

// License is a time-bounded usage grant over a report's data. Expiry is a
// stored logical-clock deadline only; consumers compare it against the
// current clock at use time, nothing deactivates it in place.
type License struct {
	ReportID  uint64    `gorm:"primaryKey;autoIncrement:false" json:"report_id"`
	Licensee  uuid.UUID `gorm:"type:uuid;primaryKey" json:"licensee"`
	ExpiresAt uint64    `gorm:"not null" json:"expires_at"`
	Terms     string    `gorm:"size:256" json:"terms,omitempty"`
	Active    bool      `gorm:"not null;default:true" json:"active"`
	GrantedAt uint64    `gorm:"not null" json:"granted_at"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (License) TableName() string {
	return "licenses"
}
