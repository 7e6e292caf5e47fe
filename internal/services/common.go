package services

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/terrawatch/report-engine/internal/models"
	"gorm.io/gorm"
)

const evidenceDigestLen = 32

const (
	maxThreatTypeLen   = 32
	maxDescriptionLen  = 512
	maxMetadataLen     = 1024
	maxNotesLen        = 256
	maxCategoryLen     = 50
	maxTagCount        = 15
	maxRoleLen         = 50
	maxCapabilityCount = 10
	maxTermsLen        = 256
	maxLatitudeMicro   = 90_000_000
	maxLongitudeMicro  = 180_000_000
)

// getReport resolves the target report or fails fast. Mutating operations on
// an absent report are an input error, not a distinct failure kind.
func getReport(tx *gorm.DB, id uint64) (*models.Report, error) {
	var r models.Report
	if err := tx.First(&r, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReportNotFound
		}
		return nil, err
	}
	return &r, nil
}

// getCounter loads the per-report counter row. The row is written atomically
// with report creation, so its absence indicates corrupted state.
func getCounter(tx *gorm.DB, reportID uint64) (*models.ReportCounter, error) {
	var c models.ReportCounter
	if err := tx.First(&c, "report_id = ?", reportID).Error; err != nil {
		return nil, fmt.Errorf("counter row missing for report %d: %w", reportID, err)
	}
	return &c, nil
}

// decodeDigest parses a hex-encoded evidence digest and enforces the exact
// 32-byte length.
func decodeDigest(s string) ([]byte, error) {
	b, err := hex.DecodeString(strings.TrimSpace(s))
	if err != nil || len(b) != evidenceDigestLen {
		return nil, invalidInput("evidence digest must be exactly 32 bytes of hex")
	}
	return b, nil
}

// hasCapability reports whether identity holds the capability on the report.
// Absence of a collaborator entry yields false, never an error.
func hasCapability(tx *gorm.DB, reportID uint64, id uuid.UUID, cap models.Capability) bool {
	var collab models.Collaborator
	if err := tx.First(&collab, "report_id = ? AND user_id = ?", reportID, id).Error; err != nil {
		return false
	}
	for _, c := range decodeCapabilities(collab.Capabilities) {
		if c == cap {
			return true
		}
	}
	return false
}
