package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/terrawatch/report-engine/internal/models"
)

func TestVerificationByCollaborator(t *testing.T) {
	e := newTestEngine(t)
	reporter := uuid.New()
	verifier := uuid.New()
	report := mustSubmit(t, e, reporter)
	addCollaborator(t, e, reporter, report.ID, verifier, "verify")

	e.clock.Advance(5)
	if err := e.statuses.UpdateStatus(verifier, report.ID, models.StatusVerified, false); err != nil {
		t.Fatalf("update status failed: %v", err)
	}

	got, err := e.reports.Get(report.ID)
	if err != nil || got == nil {
		t.Fatalf("get failed: %v", err)
	}
	if got.Status != models.StatusVerified {
		t.Fatalf("expected verified status, got %s", got.Status)
	}

	records, err := e.statuses.History(report.ID)
	if err != nil {
		t.Fatalf("history failed: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 status records, got %d", len(records))
	}
	second := records[1]
	if second.Seq != 2 || second.Status != models.StatusVerified || second.Visible ||
		second.UpdatedBy != verifier || second.RecordedAt != 1005 {
		t.Fatalf("unexpected second status record: %+v", second)
	}

	ev := lastEvent(t, e, models.EventStatusUpdated)
	if ev.ReportID != report.ID || ev.Actor != verifier || ev.Height != 1005 {
		t.Fatalf("unexpected status-updated event: %+v", ev)
	}
}

func TestInvalidStatusRejected(t *testing.T) {
	e := newTestEngine(t)
	reporter := uuid.New()
	report := mustSubmit(t, e, reporter)

	err := e.statuses.UpdateStatus(reporter, report.ID, models.ReportStatus("published"), true)
	wantCode(t, err, CodeInvalidStatus)

	// An unknown status fails the same way regardless of who calls.
	err = e.statuses.UpdateStatus(uuid.New(), report.ID, models.ReportStatus("published"), true)
	wantCode(t, err, CodeInvalidStatus)

	records, err := e.statuses.History(report.ID)
	if err != nil {
		t.Fatalf("history failed: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("rejected updates must not append records, got %d", len(records))
	}
}

func TestTrustedAuthorityCanUpdateStatus(t *testing.T) {
	e := newTestEngine(t)
	reporter := uuid.New()
	report := mustSubmit(t, e, reporter)

	if err := e.statuses.UpdateStatus(e.trusted, report.ID, models.StatusRejected, true); err != nil {
		t.Fatalf("trusted authority update failed: %v", err)
	}
	got, err := e.reports.Get(report.ID)
	if err != nil || got == nil {
		t.Fatalf("get failed: %v", err)
	}
	if got.Status != models.StatusRejected {
		t.Fatalf("expected rejected status, got %s", got.Status)
	}
}

func TestUnauthorizedStatusUpdate(t *testing.T) {
	e := newTestEngine(t)
	reporter := uuid.New()
	report := mustSubmit(t, e, reporter)

	err := e.statuses.UpdateStatus(uuid.New(), report.ID, models.StatusVerified, true)
	wantCode(t, err, CodeUnauthorized)
}

func TestStatusTransitionsUnrestricted(t *testing.T) {
	e := newTestEngine(t)
	reporter := uuid.New()
	report := mustSubmit(t, e, reporter)

	steps := []models.ReportStatus{
		models.StatusVerified,
		models.StatusArchived,
		models.StatusPending,
		models.StatusRejected,
	}
	for _, status := range steps {
		if err := e.statuses.UpdateStatus(reporter, report.ID, status, true); err != nil {
			t.Fatalf("transition to %s failed: %v", status, err)
		}
	}

	records, err := e.statuses.History(report.ID)
	if err != nil {
		t.Fatalf("history failed: %v", err)
	}
	if len(records) != len(steps)+1 {
		t.Fatalf("expected %d status records, got %d", len(steps)+1, len(records))
	}
	for i, rec := range records {
		if rec.Seq != uint32(i+1) {
			t.Fatalf("expected contiguous sequence, record %d has seq %d", i, rec.Seq)
		}
	}
}

func TestUpdateStatusMissingReport(t *testing.T) {
	e := newTestEngine(t)

	err := e.statuses.UpdateStatus(uuid.New(), 7, models.StatusVerified, true)
	if err != ErrReportNotFound {
		t.Fatalf("expected ErrReportNotFound, got %v", err)
	}
}
