package dto

import (
	"encoding/hex"

	"github.com/google/uuid"
	"github.com/terrawatch/report-engine/internal/models"
)

// SubmitReportRequest carries a new observation. Latitude/longitude are
// signed micro-degrees; the evidence digest is hex-encoded on the wire.
type SubmitReportRequest struct {
	Latitude       int64  `json:"latitude"`
	Longitude      int64  `json:"longitude"`
	EvidenceDigest string `json:"evidence_digest"`
	ThreatType     string `json:"threat_type"`
	Description    string `json:"description"`
	Metadata       string `json:"metadata,omitempty"`
}

type ReportResponse struct {
	ID             uint64 `json:"id"`
	Submitter      string `json:"submitter"`
	Latitude       int64  `json:"latitude"`
	Longitude      int64  `json:"longitude"`
	EvidenceDigest string `json:"evidence_digest"`
	ThreatType     string `json:"threat_type"`
	Description    string `json:"description"`
	Metadata       string `json:"metadata,omitempty"`
	Status         string `json:"status"`
	Flagged        bool   `json:"flagged"`
	SubmittedAt    uint64 `json:"submitted_at"`
}

func NewReportResponse(r *models.Report) *ReportResponse {
	return &ReportResponse{
		ID:             r.ID,
		Submitter:      r.Submitter.String(),
		Latitude:       r.Latitude,
		Longitude:      r.Longitude,
		EvidenceDigest: hex.EncodeToString(r.EvidenceDigest),
		ThreatType:     r.ThreatType,
		Description:    r.Description,
		Metadata:       r.Metadata,
		Status:         string(r.Status),
		Flagged:        r.Flagged,
		SubmittedAt:    r.SubmittedAt,
	}
}

type ReportListResponse struct {
	Reports []ReportResponse `json:"reports"`
	Total   int64            `json:"total"`
	Limit   int              `json:"limit"`
	Offset  int              `json:"offset"`
}

type UpdateMetadataRequest struct {
	Metadata string `json:"metadata"`
}

type AddVersionRequest struct {
	EvidenceDigest string `json:"evidence_digest"`
	Notes          string `json:"notes,omitempty"`
}

type VersionResponse struct {
	ReportID       uint64 `json:"report_id"`
	Version        uint32 `json:"version"`
	EvidenceDigest string `json:"evidence_digest"`
	Notes          string `json:"notes,omitempty"`
	Author         string `json:"author"`
	RecordedAt     uint64 `json:"recorded_at"`
}

func NewVersionResponse(v *models.ReportVersion) VersionResponse {
	return VersionResponse{
		ReportID:       v.ReportID,
		Version:        v.Version,
		EvidenceDigest: hex.EncodeToString(v.EvidenceDigest),
		Notes:          v.Notes,
		Author:         v.Author.String(),
		RecordedAt:     v.RecordedAt,
	}
}

type SetCategoryRequest struct {
	Category string   `json:"category"`
	Tags     []string `json:"tags"`
}

type CategoryResponse struct {
	ReportID uint64   `json:"report_id"`
	Category string   `json:"category"`
	Tags     []string `json:"tags"`
}

type AddCollaboratorRequest struct {
	UserID       uuid.UUID `json:"user_id"`
	Role         string    `json:"role"`
	Capabilities []string  `json:"capabilities"`
}

type UpdateStatusRequest struct {
	Status  string `json:"status"`
	Visible bool   `json:"visible"`
}

type GrantLicenseRequest struct {
	Licensee  uuid.UUID `json:"licensee"`
	ExpiresAt uint64    `json:"expires_at"`
	Terms     string    `json:"terms,omitempty"`
}

type SetShareRequest struct {
	Participant uuid.UUID `json:"participant"`
	Percentage  int       `json:"percentage"`
}

type SetAdminRequest struct {
	NewAdmin uuid.UUID `json:"new_admin"`
}

// DistributionRequest is the reward-distribution webhook payload.
type DistributionRequest struct {
	ReportID    uint64    `json:"report_id"`
	Participant uuid.UUID `json:"participant"`
	Amount      uint64    `json:"amount"`
}
