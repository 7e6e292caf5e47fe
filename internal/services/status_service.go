package services

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/terrawatch/report-engine/internal/chain"
	"github.com/terrawatch/report-engine/internal/models"
	"gorm.io/gorm"
)

// StatusService mutates report status and appends the audit trail. The status
// set is closed but transitions are unrestricted: any value may follow any
// other.
type StatusService struct {
	db        *gorm.DB
	clock     chain.Clock
	locks     *ReportLocks
	isTrusted func(uuid.UUID) bool
}

// NewStatusService takes the trusted-verification-authority predicate as an
// injected function so substitutes can stand in for the real authority.
func NewStatusService(db *gorm.DB, clock chain.Clock, locks *ReportLocks, isTrusted func(uuid.UUID) bool) *StatusService {
	if isTrusted == nil {
		isTrusted = func(uuid.UUID) bool { return false }
	}
	return &StatusService{db: db, clock: clock, locks: locks, isTrusted: isTrusted}
}

// UpdateStatus overwrites the report's status and appends the next audit
// record. Allowed for the submitter, a holder of the verify capability, or
// the trusted verification authority.
func (s *StatusService) UpdateStatus(caller uuid.UUID, reportID uint64, status models.ReportStatus, visible bool) error {
	unlock := s.locks.Lock(reportID)
	defer unlock()

	height := s.clock.Height()

	return s.db.Transaction(func(tx *gorm.DB) error {
		report, err := getReport(tx, reportID)
		if err != nil {
			return err
		}
		if !models.ValidStatus(status) {
			return ErrInvalidStatus
		}
		if caller != report.Submitter &&
			!hasCapability(tx, reportID, caller, models.CapabilityVerify) &&
			!s.isTrusted(caller) {
			return ErrUnauthorized
		}

		counter, err := getCounter(tx, reportID)
		if err != nil {
			return err
		}
		seq := counter.StatusSeq + 1

		if err := tx.Model(&models.Report{}).Where("id = ?", reportID).Update("status", status).Error; err != nil {
			return fmt.Errorf("failed to update report status: %w", err)
		}

		record := models.StatusRecord{
			ReportID:   reportID,
			Seq:        seq,
			Status:     status,
			Visible:    visible,
			RecordedAt: height,
			UpdatedBy:  caller,
		}
		if err := tx.Create(&record).Error; err != nil {
			return fmt.Errorf("failed to append status record: %w", err)
		}

		if err := tx.Model(&models.ReportCounter{}).
			Where("report_id = ?", reportID).
			Update("status_seq", seq).Error; err != nil {
			return fmt.Errorf("failed to persist status sequence: %w", err)
		}

		return emitEvent(tx, models.EventStatusUpdated, reportID, caller, height, map[string]interface{}{
			"new_status": string(status),
		})
	})
}

// History returns a report's audit trail in sequence order.
func (s *StatusService) History(reportID uint64) ([]models.StatusRecord, error) {
	var records []models.StatusRecord
	if err := s.db.Where("report_id = ?", reportID).Order("seq ASC").Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}
