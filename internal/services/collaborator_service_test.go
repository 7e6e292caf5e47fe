package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/terrawatch/report-engine/internal/dto"
	"github.com/terrawatch/report-engine/internal/models"
)

func TestAddCollaboratorGrantsCapabilities(t *testing.T) {
	e := newTestEngine(t)
	reporter := uuid.New()
	helper := uuid.New()
	report := mustSubmit(t, e, reporter)

	addCollaborator(t, e, reporter, report.ID, helper, "edit", "verify")

	if !e.collaborators.HasCapability(report.ID, helper, models.CapabilityEdit) {
		t.Fatal("expected edit capability")
	}
	if !e.collaborators.HasCapability(report.ID, helper, models.CapabilityVerify) {
		t.Fatal("expected verify capability")
	}
	if e.collaborators.HasCapability(report.ID, uuid.New(), models.CapabilityEdit) {
		t.Fatal("stranger must not hold capabilities")
	}
}

func TestAddCollaboratorUpsertReplacesEntry(t *testing.T) {
	e := newTestEngine(t)
	reporter := uuid.New()
	helper := uuid.New()
	report := mustSubmit(t, e, reporter)

	addCollaborator(t, e, reporter, report.ID, helper, "edit")
	addCollaborator(t, e, reporter, report.ID, helper, "verify")

	if e.collaborators.HasCapability(report.ID, helper, models.CapabilityEdit) {
		t.Fatal("old edit capability must be replaced, not merged")
	}
	if !e.collaborators.HasCapability(report.ID, helper, models.CapabilityVerify) {
		t.Fatal("expected verify capability after replacement")
	}

	collabs, err := e.collaborators.ListCollaborators(report.ID)
	if err != nil {
		t.Fatalf("list collaborators failed: %v", err)
	}
	if len(collabs) != 1 {
		t.Fatalf("expected single entry after upsert, got %d", len(collabs))
	}
}

func TestSelfCollaborationForbidden(t *testing.T) {
	e := newTestEngine(t)
	reporter := uuid.New()
	report := mustSubmit(t, e, reporter)

	err := e.collaborators.AddCollaborator(reporter, report.ID, &dto.AddCollaboratorRequest{
		UserID:       reporter,
		Capabilities: []string{"edit"},
	})
	wantCode(t, err, CodeInvalidInput)
}

func TestAddCollaboratorOnlySubmitter(t *testing.T) {
	e := newTestEngine(t)
	reporter := uuid.New()
	report := mustSubmit(t, e, reporter)

	err := e.collaborators.AddCollaborator(uuid.New(), report.ID, &dto.AddCollaboratorRequest{
		UserID:       uuid.New(),
		Capabilities: []string{"edit"},
	})
	wantCode(t, err, CodeUnauthorized)
}

func TestUnknownCapabilityRejected(t *testing.T) {
	e := newTestEngine(t)
	reporter := uuid.New()
	report := mustSubmit(t, e, reporter)

	err := e.collaborators.AddCollaborator(reporter, report.ID, &dto.AddCollaboratorRequest{
		UserID:       uuid.New(),
		Capabilities: []string{"delete"},
	})
	wantCode(t, err, CodeInvalidInput)
}

func TestEmptyCapabilitySetGrantsNothing(t *testing.T) {
	e := newTestEngine(t)
	reporter := uuid.New()
	helper := uuid.New()
	report := mustSubmit(t, e, reporter)

	addCollaborator(t, e, reporter, report.ID, helper)

	if e.collaborators.HasCapability(report.ID, helper, models.CapabilityEdit) {
		t.Fatal("empty capability set must grant nothing")
	}
	collabs, err := e.collaborators.ListCollaborators(report.ID)
	if err != nil {
		t.Fatalf("list collaborators failed: %v", err)
	}
	if len(collabs) != 1 {
		t.Fatalf("expected entry to exist despite empty capabilities, got %d", len(collabs))
	}
}
