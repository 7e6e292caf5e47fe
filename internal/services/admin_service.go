package services

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/terrawatch/report-engine/internal/models"
	"gorm.io/gorm"
)

// AdminService owns the singleton engine state: the pause flag and the admin
// identity. Pause gates submission only; every other operation ignores it.
type AdminService struct {
	db *gorm.DB
}

func NewAdminService(db *gorm.DB) *AdminService {
	return &AdminService{db: db}
}

// EnsureState seeds the singleton state row on first boot. Subsequent boots
// leave the stored admin and pause flag untouched.
func (s *AdminService) EnsureState(adminID uuid.UUID) error {
	var state models.EngineState
	err := s.db.First(&state, "id = ?", models.EngineStateID).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	if adminID == uuid.Nil {
		return errors.New("engine admin identity is required for first boot")
	}
	state = models.EngineState{
		ID:           models.EngineStateID,
		Paused:       false,
		AdminID:      adminID,
		NextReportID: 1,
	}
	if err := s.db.Create(&state).Error; err != nil {
		return fmt.Errorf("failed to seed engine state: %w", err)
	}
	slog.Info("engine state seeded", "admin_id", adminID.String())
	return nil
}

// State returns the current engine state.
func (s *AdminService) State() (*models.EngineState, error) {
	var state models.EngineState
	if err := s.db.First(&state, "id = ?", models.EngineStateID).Error; err != nil {
		return nil, err
	}
	return &state, nil
}

// Pause halts submission. Admin only.
func (s *AdminService) Pause(caller uuid.UUID) error {
	return s.setPaused(caller, true)
}

// Unpause resumes submission. Admin only.
func (s *AdminService) Unpause(caller uuid.UUID) error {
	return s.setPaused(caller, false)
}

func (s *AdminService) setPaused(caller uuid.UUID, paused bool) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var state models.EngineState
		if err := tx.First(&state, "id = ?", models.EngineStateID).Error; err != nil {
			return err
		}
		if state.AdminID != caller {
			return ErrUnauthorized
		}
		if err := tx.Model(&state).Update("paused", paused).Error; err != nil {
			return err
		}
		slog.Info("engine pause flag changed", "paused", paused, "admin_id", caller.String())
		return nil
	})
}

// SetAdmin transfers the admin identity. Admin only.
func (s *AdminService) SetAdmin(caller, newAdmin uuid.UUID) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var state models.EngineState
		if err := tx.First(&state, "id = ?", models.EngineStateID).Error; err != nil {
			return err
		}
		if state.AdminID != caller {
			return ErrUnauthorized
		}
		if newAdmin == uuid.Nil {
			return invalidInput("new admin identity is required")
		}
		return tx.Model(&state).Update("admin_id", newAdmin).Error
	})
}
