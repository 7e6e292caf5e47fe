package services

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/terrawatch/report-engine/internal/chain"
	"github.com/terrawatch/report-engine/internal/dto"
	"github.com/terrawatch/report-engine/internal/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// CollaboratorService is the per-report access-control registry. Its
// capability sets are the sole authorization surface for non-owner actors.
type CollaboratorService struct {
	db    *gorm.DB
	clock chain.Clock
	locks *ReportLocks
}

func NewCollaboratorService(db *gorm.DB, clock chain.Clock, locks *ReportLocks) *CollaboratorService {
	return &CollaboratorService{db: db, clock: clock, locks: locks}
}

// AddCollaborator upserts the (report, collaborator) entry wholesale.
// Submitter only; self-collaboration is forbidden.
func (s *CollaboratorService) AddCollaborator(caller uuid.UUID, reportID uint64, req *dto.AddCollaboratorRequest) error {
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

		if req.UserID == uuid.Nil {
			return invalidInput("collaborator identity is required")
		}
		if req.UserID == caller {
			return invalidInput("cannot add yourself as a collaborator")
		}
		if len(req.Role) > maxRoleLen {
			return invalidInput("role must be at most 50 characters")
		}
		if len(req.Capabilities) > maxCapabilityCount {
			return invalidInput("at most 10 capabilities are allowed")
		}
		for _, c := range req.Capabilities {
			if !models.ValidCapability(models.Capability(c)) {
				return invalidInput("unknown capability: " + c)
			}
		}

		caps := req.Capabilities
		if caps == nil {
			caps = []string{}
		}
		raw, err := json.Marshal(caps)
		if err != nil {
			return fmt.Errorf("failed to encode capabilities: %w", err)
		}

		var existing models.Collaborator
		err = tx.First(&existing, "report_id = ? AND user_id = ?", reportID, req.UserID).Error
		switch {
		case err == nil:
			return tx.Model(&existing).Updates(map[string]interface{}{
				"role":         req.Role,
				"capabilities": datatypes.JSON(raw),
				"added_at":     height,
			}).Error
		case errors.Is(err, gorm.ErrRecordNotFound):
			return tx.Create(&models.Collaborator{
				ReportID:     reportID,
				UserID:       req.UserID,
				Role:         req.Role,
				Capabilities: datatypes.JSON(raw),
				AddedAt:      height,
			}).Error
		default:
			return err
		}
	})
}

// HasCapability reports whether identity holds the capability on the report.
// Absence of an entry yields false, never an error.
func (s *CollaboratorService) HasCapability(reportID uint64, id uuid.UUID, cap models.Capability) bool {
	return hasCapability(s.db, reportID, id, cap)
}

// ListCollaborators returns a report's registry entries.
func (s *CollaboratorService) ListCollaborators(reportID uint64) ([]models.Collaborator, error) {
	var collabs []models.Collaborator
	if err := s.db.Where("report_id = ?", reportID).Order("user_id ASC").Find(&collabs).Error; err != nil {
		return nil, err
	}
	return collabs, nil
}

// decodeCapabilities unpacks a stored capability set; malformed data grants
// nothing.
func decodeCapabilities(raw datatypes.JSON) []models.Capability {
	if len(raw) == 0 {
		return nil
	}
	var strs []string
	if err := json.Unmarshal(raw, &strs); err != nil {
		return nil
	}
	caps := make([]models.Capability, len(strs))
	for i, s := range strs {
		caps[i] = models.Capability(s)
	}
	return caps
}
