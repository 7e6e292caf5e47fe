package services

import (
	"testing"

	"github.com/google/uuid"
)

func TestSetShare(t *testing.T) {
	e := newTestEngine(t)
	reporter := uuid.New()
	participant := uuid.New()
	report := mustSubmit(t, e, reporter)

	if err := e.revenue.SetShare(reporter, report.ID, participant, 40); err != nil {
		t.Fatalf("set share failed: %v", err)
	}

	shares, err := e.revenue.ListShares(report.ID)
	if err != nil {
		t.Fatalf("list shares failed: %v", err)
	}
	if len(shares) != 1 || shares[0].Participant != participant || shares[0].Percentage != 40 {
		t.Fatalf("unexpected shares: %+v", shares)
	}
}

func TestSetShareRange(t *testing.T) {
	e := newTestEngine(t)
	reporter := uuid.New()
	report := mustSubmit(t, e, reporter)

	err := e.revenue.SetShare(reporter, report.ID, uuid.New(), 0)
	wantCode(t, err, CodeInvalidShare)

	err = e.revenue.SetShare(reporter, report.ID, uuid.New(), 101)
	wantCode(t, err, CodeInvalidShare)

	if err := e.revenue.SetShare(reporter, report.ID, uuid.New(), 1); err != nil {
		t.Fatalf("percentage 1 must be accepted: %v", err)
	}
	if err := e.revenue.SetShare(reporter, report.ID, uuid.New(), 100); err != nil {
		t.Fatalf("percentage 100 must be accepted: %v", err)
	}
}

func TestSetShareOnlySubmitter(t *testing.T) {
	e := newTestEngine(t)
	reporter := uuid.New()
	report := mustSubmit(t, e, reporter)

	err := e.revenue.SetShare(uuid.New(), report.ID, uuid.New(), 50)
	wantCode(t, err, CodeUnauthorized)
}

func TestOverwriteShareKeepsTotal(t *testing.T) {
	e := newTestEngine(t)
	reporter := uuid.New()
	participant := uuid.New()
	report := mustSubmit(t, e, reporter)

	if err := e.revenue.SetShare(reporter, report.ID, participant, 40); err != nil {
		t.Fatalf("set share failed: %v", err)
	}
	if err := e.revenue.RecordDistribution(report.ID, participant, 500); err != nil {
		t.Fatalf("record distribution failed: %v", err)
	}
	if err := e.revenue.SetShare(reporter, report.ID, participant, 60); err != nil {
		t.Fatalf("overwrite share failed: %v", err)
	}

	shares, err := e.revenue.ListShares(report.ID)
	if err != nil {
		t.Fatalf("list shares failed: %v", err)
	}
	if len(shares) != 1 {
		t.Fatalf("expected single share, got %d", len(shares))
	}
	if shares[0].Percentage != 60 || shares[0].TotalReceived != 500 {
		t.Fatalf("overwrite must keep the received total: %+v", shares[0])
	}
}

func TestRecordDistributionAccumulates(t *testing.T) {
	e := newTestEngine(t)
	reporter := uuid.New()
	participant := uuid.New()
	report := mustSubmit(t, e, reporter)

	if err := e.revenue.SetShare(reporter, report.ID, participant, 50); err != nil {
		t.Fatalf("set share failed: %v", err)
	}
	if err := e.revenue.RecordDistribution(report.ID, participant, 300); err != nil {
		t.Fatalf("first distribution failed: %v", err)
	}
	if err := e.revenue.RecordDistribution(report.ID, participant, 200); err != nil {
		t.Fatalf("second distribution failed: %v", err)
	}

	shares, err := e.revenue.ListShares(report.ID)
	if err != nil {
		t.Fatalf("list shares failed: %v", err)
	}
	if shares[0].TotalReceived != 500 {
		t.Fatalf("expected accumulated total 500, got %d", shares[0].TotalReceived)
	}
}

func TestRecordDistributionUnknownShare(t *testing.T) {
	e := newTestEngine(t)
	reporter := uuid.New()
	report := mustSubmit(t, e, reporter)

	err := e.revenue.RecordDistribution(report.ID, uuid.New(), 100)
	if err != ErrShareNotFound {
		t.Fatalf("expected ErrShareNotFound, got %v", err)
	}
}
