package services

import (
	"errors"

	"github.com/google/uuid"
	"github.com/terrawatch/report-engine/internal/models"
	"gorm.io/gorm"
)

// ErrShareNotFound signals a distribution against a participant with no
// declared share. Infrastructure-level, not part of the engine taxonomy: the
// distribution path belongs to the external reward collaborator.
var ErrShareNotFound = errors.New("revenue share not found")

// RevenueService keeps percentage allocations and running totals per
// participant. The engine surface writes percentages only; received totals
// are written exclusively through the distribution path.
type RevenueService struct {
	db    *gorm.DB
	locks *ReportLocks
}

func NewRevenueService(db *gorm.DB, locks *ReportLocks) *RevenueService {
	return &RevenueService{db: db, locks: locks}
}

// SetShare declares or overwrites a participant's percentage. Submitter only.
// Overwriting never resets the cumulative received total.
func (s *RevenueService) SetShare(caller uuid.UUID, reportID uint64, participant uuid.UUID, percentage int) error {
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

		if participant == uuid.Nil {
			return invalidInput("participant identity is required")
		}
		if percentage < 1 || percentage > 100 {
			return ErrInvalidShare
		}

		var existing models.RevenueShare
		err = tx.First(&existing, "report_id = ? AND participant = ?", reportID, participant).Error
		switch {
		case err == nil:
			return tx.Model(&existing).Update("percentage", percentage).Error
		case errors.Is(err, gorm.ErrRecordNotFound):
			return tx.Create(&models.RevenueShare{
				ReportID:    reportID,
				Participant: participant,
				Percentage:  percentage,
			}).Error
		default:
			return err
		}
	})
}

// ListShares returns a report's revenue allocations.
func (s *RevenueService) ListShares(reportID uint64) ([]models.RevenueShare, error) {
	var shares []models.RevenueShare
	if err := s.db.Where("report_id = ?", reportID).Order("participant ASC").Find(&shares).Error; err != nil {
		return nil, err
	}
	return shares, nil
}

// RecordDistribution adds a paid-out amount to a participant's running total.
// Called only from the reward-distribution webhook, never from the engine's
// own operation surface.
func (s *RevenueService) RecordDistribution(reportID uint64, participant uuid.UUID, amount uint64) error {
	unlock := s.locks.Lock(reportID)
	defer unlock()

	return s.db.Transaction(func(tx *gorm.DB) error {
		var share models.RevenueShare
		if err := tx.First(&share, "report_id = ? AND participant = ?", reportID, participant).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrShareNotFound
			}
			return err
		}
		return tx.Model(&share).
			Update("total_received", gorm.Expr("total_received + ?", amount)).Error
	})
}
