package models

import (
	"time"

	"gorm.io/datatypes"
)

// ReportCategory is the single active classification record of a report.
// Re-setting replaces the record wholesale, tags included.
type ReportCategory struct {
	ReportID  uint64         `gorm:"primaryKey;autoIncrement:false" json:"report_id"`
	Category  string         `gorm:"size:50;not null" json:"category"`
	Tags      datatypes.JSON `gorm:"type:jsonb" json:"tags"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

func (ReportCategory) TableName() string {
	return "report_categories"
}
