package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Capability is a named permission a collaborator holds against one report.
// The set is closed to keep typo'd permission strings out of the registry.
type Capability string

const (
	CapabilityEdit   Capability = "edit"
	CapabilityVerify Capability = "verify"
)

// ValidCapability reports whether c names a known capability.
func ValidCapability(c Capability) bool {
	switch c {
	case CapabilityEdit, CapabilityVerify:
		return true
	}
	return false
}

// Collaborator grants per-report capabilities to a non-owner identity.
// Adding an existing (report, user) pair overwrites the entry wholesale.
type Collaborator struct {
	ReportID     uint64         `gorm:"primaryKey;autoIncrement:false" json:"report_id"`
	UserID       uuid.UUID      `gorm:"type:uuid;primaryKey" json:"user_id"`
	Role         string         `gorm:"size:50;not null" json:"role"`
	Capabilities datatypes.JSON `gorm:"type:jsonb;not null" json:"capabilities"`
	AddedAt      uint64         `gorm:"not null" json:"added_at"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

func (Collaborator) TableName() string {
	return "collaborators"
}
