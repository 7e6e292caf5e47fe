package services

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/terrawatch/report-engine/internal/chain"
	"github.com/terrawatch/report-engine/internal/dto"
	"github.com/terrawatch/report-engine/internal/models"
	"gorm.io/gorm"
)

// VersionService keeps the bounded, append-only revision ledger per report.
type VersionService struct {
	db          *gorm.DB
	clock       chain.Clock
	locks       *ReportLocks
	maxVersions int
}

func NewVersionService(db *gorm.DB, clock chain.Clock, locks *ReportLocks, maxVersions int) *VersionService {
	return &VersionService{db: db, clock: clock, locks: locks, maxVersions: maxVersions}
}

// AddVersion appends a revision for the submitter or a collaborator holding
// the edit capability. Returns the new version number.
func (s *VersionService) AddVersion(caller uuid.UUID, reportID uint64, req *dto.AddVersionRequest) (uint32, error) {
	unlock := s.locks.Lock(reportID)
	defer unlock()

	height := s.clock.Height()

	var version uint32
	err := s.db.Transaction(func(tx *gorm.DB) error {
		report, err := getReport(tx, reportID)
		if err != nil {
			return err
		}
		if report.Submitter != caller && !hasCapability(tx, reportID, caller, models.CapabilityEdit) {
			return ErrUnauthorized
		}

		digest, err := decodeDigest(req.EvidenceDigest)
		if err != nil {
			return err
		}
		if len(req.Notes) > maxNotesLen {
			return invalidInput("notes must be at most 256 characters")
		}

		counter, err := getCounter(tx, reportID)
		if err != nil {
			return err
		}
		if int(counter.VersionCount) >= s.maxVersions {
			return ErrMaxVersionsReached
		}

		version = counter.VersionCount + 1
		rv := models.ReportVersion{
			ReportID:       reportID,
			Version:        version,
			EvidenceDigest: digest,
			Notes:          req.Notes,
			Author:         caller,
			RecordedAt:     height,
		}
		if err := tx.Create(&rv).Error; err != nil {
			return fmt.Errorf("failed to create version: %w", err)
		}

		if err := tx.Model(&models.ReportCounter{}).
			Where("report_id = ?", reportID).
			Update("version_count", version).Error; err != nil {
			return fmt.Errorf("failed to persist version count: %w", err)
		}

		return emitEvent(tx, models.EventVersionAdded, reportID, caller, height, map[string]interface{}{
			"version": version,
		})
	})
	if err != nil {
		return 0, err
	}
	return version, nil
}

// ListVersions returns a report's revisions in version order.
func (s *VersionService) ListVersions(reportID uint64) ([]models.ReportVersion, error) {
	var versions []models.ReportVersion
	if err := s.db.Where("report_id = ?", reportID).Order("version ASC").Find(&versions).Error; err != nil {
		return nil, err
	}
	return versions, nil
}
