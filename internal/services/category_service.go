package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/terrawatch/report-engine/internal/dto"
	"github.com/terrawatch/report-engine/internal/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// CategoryService keeps at most one classification record per report.
type CategoryService struct {
	db    *gorm.DB
	locks *ReportLocks
}

func NewCategoryService(db *gorm.DB, locks *ReportLocks) *CategoryService {
	return &CategoryService{db: db, locks: locks}
}

// SetCategory replaces the report's category record wholesale. Submitter only.
func (s *CategoryService) SetCategory(caller uuid.UUID, reportID uint64, req *dto.SetCategoryRequest) error {
	unlock := s.locks.Lock(reportID)
	defer unlock()

	return s.db.Transaction(func(tx *gorm.DB) error {
		report, err := getReport(tx, reportID)
		if err != nil {
			return err
		}
		if report.Submitter != caller {
			return ErrUnauthorized
		}

		if strings.TrimSpace(req.Category) == "" {
			return invalidInput("category is required")
		}
		if len(req.Category) > maxCategoryLen {
			return invalidInput("category must be at most 50 characters")
		}
		if len(req.Tags) > maxTagCount {
			return invalidInput("at most 15 tags are allowed")
		}

		tags := req.Tags
		if tags == nil {
			tags = []string{}
		}
		raw, err := json.Marshal(tags)
		if err != nil {
			return fmt.Errorf("failed to encode tags: %w", err)
		}

		// Wholesale replace, not a merge.
		if err := tx.Where("report_id = ?", reportID).Delete(&models.ReportCategory{}).Error; err != nil {
			return err
		}
		return tx.Create(&models.ReportCategory{
			ReportID: reportID,
			Category: req.Category,
			Tags:     datatypes.JSON(raw),
		}).Error
	})
}

// GetCategory returns the active category record, or nil when none is set.
func (s *CategoryService) GetCategory(reportID uint64) (*models.ReportCategory, error) {
	var cat models.ReportCategory
	err := s.db.First(&cat, "report_id = ?", reportID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &cat, nil
}

// DecodeTags unpacks a category's tag list from its stored JSON form.
func DecodeTags(cat *models.ReportCategory) []string {
	if cat == nil || len(cat.Tags) == 0 {
		return nil
	}
	var tags []string
	if err := json.Unmarshal(cat.Tags, &tags); err != nil {
		return nil
	}
	return tags
}
