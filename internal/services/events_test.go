package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/terrawatch/report-engine/internal/models"
)

func TestEventStreamOrderAndCursor(t *testing.T) {
	e := newTestEngine(t)
	reporter := uuid.New()

	report := mustSubmit(t, e, reporter)
	if err := e.statuses.UpdateStatus(reporter, report.ID, models.StatusVerified, true); err != nil {
		t.Fatalf("update status failed: %v", err)
	}
	mustSubmit(t, e, reporter)

	events, err := e.events.List(0, 100)
	if err != nil {
		t.Fatalf("list events failed: %v", err)
	}
	if len(events) != 3 {
		t.Fatalf("expected 3 events, got %d", len(events))
	}
	names := []string{models.EventReportSubmitted, models.EventStatusUpdated, models.EventReportSubmitted}
	for i, ev := range events {
		if ev.Name != names[i] {
			t.Fatalf("event %d: expected %s, got %s", i, names[i], ev.Name)
		}
		if i > 0 && ev.Seq <= events[i-1].Seq {
			t.Fatalf("event sequence not strictly increasing at %d", i)
		}
	}

	// Cursor resumes strictly after the given sequence number.
	tail, err := e.events.List(events[0].Seq, 100)
	if err != nil {
		t.Fatalf("cursor list failed: %v", err)
	}
	if len(tail) != 2 || tail[0].Seq != events[1].Seq {
		t.Fatalf("unexpected cursor result: %+v", tail)
	}
}

func TestFailedOperationEmitsNoEvent(t *testing.T) {
	e := newTestEngine(t)
	reporter := uuid.New()
	report := mustSubmit(t, e, reporter)

	before, err := e.events.List(0, 100)
	if err != nil {
		t.Fatalf("list events failed: %v", err)
	}

	err = e.statuses.UpdateStatus(uuid.New(), report.ID, models.StatusVerified, true)
	wantCode(t, err, CodeUnauthorized)

	after, err := e.events.List(0, 100)
	if err != nil {
		t.Fatalf("list events failed: %v", err)
	}
	if len(after) != len(before) {
		t.Fatalf("failed operation must not emit events: before=%d after=%d", len(before), len(after))
	}
}
