package services

import (
	"errors"

	"github.com/google/uuid"
	"github.com/terrawatch/report-engine/internal/chain"
	"github.com/terrawatch/report-engine/internal/dto"
	"github.com/terrawatch/report-engine/internal/models"
	"gorm.io/gorm"
)

// LicenseService records time-bounded usage grants. Expiry is a stored
// deadline only; nothing deactivates a license in place.
type LicenseService struct {
	db    *gorm.DB
	clock chain.Clock
	locks *ReportLocks
}

func NewLicenseService(db *gorm.DB, clock chain.Clock, locks *ReportLocks) *LicenseService {
	return &LicenseService{db: db, clock: clock, locks: locks}
}

// GrantLicense writes or overwrites the (report, licensee) license as active.
// Submitter only; expiry must be strictly in the future.
func (s *LicenseService) GrantLicense(caller uuid.UUID, reportID uint64, req *dto.GrantLicenseRequest) error {
	unlock := s.locks.Lock(reportID)
	defer unlock()

	height := s.clock.Height()

	return s.db.Transaction(func(tx *gorm.DB) error {
		report, err := getReport(tx, reportID)
		if err != nil {
			return err
		}
		if report.Submitter != caller {
			return ErrUnauthorized
		}

		if req.Licensee == uuid.Nil {
			return invalidInput("licensee identity is required")
		}
		if req.Licensee == caller {
			return invalidLicense("licensee must differ from the submitter")
		}
		if req.ExpiresAt <= height {
			return ErrInvalidLicense
		}
		if len(req.Terms) > maxTermsLen {
			return invalidInput("terms must be at most 256 characters")
		}

		var existing models.License
		err = tx.First(&existing, "report_id = ? AND licensee = ?", reportID, req.Licensee).Error
		switch {
		case err == nil:
			if err := tx.Model(&existing).Updates(map[string]interface{}{
				"expires_at": req.ExpiresAt,
				"terms":      req.Terms,
				"active":     true,
				"granted_at": height,
			}).Error; err != nil {
				return err
			}
		case errors.Is(err, gorm.ErrRecordNotFound):
			if err := tx.Create(&models.License{
				ReportID:  reportID,
				Licensee:  req.Licensee,
				ExpiresAt: req.ExpiresAt,
				Terms:     req.Terms,
				Active:    true,
				GrantedAt: height,
			}).Error; err != nil {
				return err
			}
		default:
			return err
		}

		return emitEvent(tx, models.EventLicenseGranted, reportID, caller, height, map[string]interface{}{
			"licensee": req.Licensee.String(),
		})
	})
}

// ListLicenses returns all licenses over a report's data.
func (s *LicenseService) ListLicenses(reportID uint64) ([]models.License, error) {
	var licenses []models.License
	if err := s.db.Where("report_id = ?", reportID).Order("licensee ASC").Find(&licenses).Error; err != nil {
		return nil, err
	}
	return licenses, nil
}
