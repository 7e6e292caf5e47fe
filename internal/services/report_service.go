package services

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/terrawatch/report-engine/internal/chain"
	"github.com/terrawatch/report-engine/internal/dto"
	"github.com/terrawatch/report-engine/internal/models"
	"gorm.io/gorm"
)

// ReportService owns the canonical report store and id allocation.
type ReportService struct {
	db     *gorm.DB
	clock  chain.Clock
	locks  *ReportLocks
	filter *ContentFilter
}

func NewReportService(db *gorm.DB, clock chain.Clock, locks *ReportLocks, filter *ContentFilter) *ReportService {
	return &ReportService{db: db, clock: clock, locks: locks, filter: filter}
}

// Submit creates a report with the next sequential id, writes the first
// status record atomically with it, and emits the report-submitted event.
// Submission is the only operation gated by the pause flag.
func (s *ReportService) Submit(caller uuid.UUID, req *dto.SubmitReportRequest) (*models.Report, error) {
	unlock := s.locks.LockAllocator()
	defer unlock()

	height := s.clock.Height()

	var report models.Report
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var state models.EngineState
		if err := tx.First(&state, "id = ?", models.EngineStateID).Error; err != nil {
			return fmt.Errorf("engine state missing: %w", err)
		}
		if state.Paused {
			return ErrPaused
		}

		digest, err := validateSubmission(req)
		if err != nil {
			return err
		}

		id := state.NextReportID
		var existing models.Report
		if err := tx.First(&existing, "id = ?", id).Error; err == nil {
			// Structurally impossible under sequential allocation; kept as a
			// consistency guard.
			return ErrReportExists
		}

		flagged := false
		if s.filter != nil {
			if ok, reason := s.filter.Check(req.Description); !ok {
				flagged = true
				slog.Warn("report content flagged", "report_id", id, "reason", reason)
			}
		}

		report = models.Report{
			ID:             id,
			Submitter:      caller,
			Latitude:       req.Latitude,
			Longitude:      req.Longitude,
			EvidenceDigest: digest,
			ThreatType:     strings.TrimSpace(req.ThreatType),
			Description:    req.Description,
			Metadata:       req.Metadata,
			Status:         models.StatusPending,
			Flagged:        flagged,
			SubmittedAt:    height,
		}
		if err := tx.Create(&report).Error; err != nil {
			return fmt.Errorf("failed to create report: %w", err)
		}

		if err := tx.Create(&models.ReportCounter{ReportID: id, VersionCount: 0, StatusSeq: 1}).Error; err != nil {
			return fmt.Errorf("failed to create counter row: %w", err)
		}

		first := models.StatusRecord{
			ReportID:   id,
			Seq:        1,
			Status:     models.StatusPending,
			Visible:    true,
			RecordedAt: height,
			UpdatedBy:  caller,
		}
		if err := tx.Create(&first).Error; err != nil {
			return fmt.Errorf("failed to create initial status record: %w", err)
		}

		if err := tx.Model(&models.EngineState{}).
			Where("id = ?", models.EngineStateID).
			Update("next_report_id", id+1).Error; err != nil {
			return fmt.Errorf("failed to advance report counter: %w", err)
		}

		return emitEvent(tx, models.EventReportSubmitted, id, caller, height, map[string]interface{}{
			"submitter": caller.String(),
		})
	})
	if err != nil {
		return nil, err
	}
	return &report, nil
}

// Get is a pure read; an absent report is a valid empty result, not an error.
func (s *ReportService) Get(id uint64) (*models.Report, error) {
	var r models.Report
	err := s.db.First(&r, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// List returns reports newest first, optionally filtered by status.
func (s *ReportService) List(status string, limit, offset int) ([]models.Report, int64, error) {
	if limit < 1 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	var reports []models.Report
	var total int64

	query := s.db.Model(&models.Report{})
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := query.Order("id DESC").Limit(limit).Offset(offset).Find(&reports).Error; err != nil {
		return nil, 0, err
	}
	return reports, total, nil
}

// UpdateMetadata replaces the report's free-form metadata blob. Metadata is
// the only report attribute besides status that stays mutable after creation.
func (s *ReportService) UpdateMetadata(caller uuid.UUID, reportID uint64, metadata string) error {
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
		if len(metadata) > maxMetadataLen {
			return invalidInput("metadata must be at most 1024 characters")
		}
		return tx.Model(&models.Report{}).Where("id = ?", reportID).Update("metadata", metadata).Error
	})
}

func validateSubmission(req *dto.SubmitReportRequest) ([]byte, error) {
	if strings.TrimSpace(req.ThreatType) == "" {
		return nil, invalidInput("threat type is required")
	}
	if len(req.ThreatType) > maxThreatTypeLen {
		return nil, invalidInput("threat type must be at most 32 characters")
	}
	if strings.TrimSpace(req.Description) == "" {
		return nil, invalidInput("description is required")
	}
	if len(req.Description) > maxDescriptionLen {
		return nil, invalidInput("description must be at most 512 characters")
	}
	if len(req.Metadata) > maxMetadataLen {
		return nil, invalidInput("metadata must be at most 1024 characters")
	}
	if req.Latitude < -maxLatitudeMicro || req.Latitude > maxLatitudeMicro {
		return nil, invalidInput("latitude out of range")
	}
	if req.Longitude < -maxLongitudeMicro || req.Longitude > maxLongitudeMicro {
		return nil, invalidInput("longitude out of range")
	}
	return decodeDigest(req.EvidenceDigest)
}
