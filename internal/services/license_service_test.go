package services

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/terrawatch/report-engine/internal/dto"
	"github.com/terrawatch/report-engine/internal/models"
)

func TestGrantLicense(t *testing.T) {
	e := newTestEngine(t)
	reporter := uuid.New()
	licensee := uuid.New()
	report := mustSubmit(t, e, reporter)

	err := e.licenses.GrantLicense(reporter, report.ID, &dto.GrantLicenseRequest{
		Licensee:  licensee,
		ExpiresAt: 2000,
		Terms:     "research use only",
	})
	if err != nil {
		t.Fatalf("grant license failed: %v", err)
	}

	licenses, err := e.licenses.ListLicenses(report.ID)
	if err != nil {
		t.Fatalf("list licenses failed: %v", err)
	}
	if len(licenses) != 1 {
		t.Fatalf("expected 1 license, got %d", len(licenses))
	}
	lic := licenses[0]
	if lic.Licensee != licensee || lic.ExpiresAt != 2000 || !lic.Active || lic.GrantedAt != 1000 {
		t.Fatalf("unexpected license: %+v", lic)
	}

	ev := lastEvent(t, e, models.EventLicenseGranted)
	if ev.ReportID != report.ID || ev.Actor != reporter {
		t.Fatalf("unexpected license-granted event: %+v", ev)
	}
}

func TestLicenseExpiryMustBeFuture(t *testing.T) {
	e := newTestEngine(t)
	reporter := uuid.New()
	report := mustSubmit(t, e, reporter)

	// Expiry equal to the current height is already expired.
	err := e.licenses.GrantLicense(reporter, report.ID, &dto.GrantLicenseRequest{
		Licensee:  uuid.New(),
		ExpiresAt: 1000,
	})
	wantCode(t, err, CodeInvalidLicense)

	err = e.licenses.GrantLicense(reporter, report.ID, &dto.GrantLicenseRequest{
		Licensee:  uuid.New(),
		ExpiresAt: 999,
	})
	wantCode(t, err, CodeInvalidLicense)
}

func TestSelfLicenseForbidden(t *testing.T) {
	e := newTestEngine(t)
	reporter := uuid.New()
	report := mustSubmit(t, e, reporter)

	err := e.licenses.GrantLicense(reporter, report.ID, &dto.GrantLicenseRequest{
		Licensee:  reporter,
		ExpiresAt: 2000,
	})
	wantCode(t, err, CodeInvalidLicense)
}

func TestGrantLicenseOnlySubmitter(t *testing.T) {
	e := newTestEngine(t)
	reporter := uuid.New()
	report := mustSubmit(t, e, reporter)

	err := e.licenses.GrantLicense(uuid.New(), report.ID, &dto.GrantLicenseRequest{
		Licensee:  uuid.New(),
		ExpiresAt: 2000,
	})
	wantCode(t, err, CodeUnauthorized)
}

func TestGrantLicenseValidation(t *testing.T) {
	e := newTestEngine(t)
	reporter := uuid.New()
	report := mustSubmit(t, e, reporter)

	err := e.licenses.GrantLicense(reporter, report.ID, &dto.GrantLicenseRequest{
		ExpiresAt: 2000,
	})
	wantCode(t, err, CodeInvalidInput)

	err = e.licenses.GrantLicense(reporter, report.ID, &dto.GrantLicenseRequest{
		Licensee:  uuid.New(),
		ExpiresAt: 2000,
		Terms:     strings.Repeat("x", 257),
	})
	wantCode(t, err, CodeInvalidInput)
}

func TestGrantLicenseOverwrites(t *testing.T) {
	e := newTestEngine(t)
	reporter := uuid.New()
	licensee := uuid.New()
	report := mustSubmit(t, e, reporter)

	if err := e.licenses.GrantLicense(reporter, report.ID, &dto.GrantLicenseRequest{
		Licensee:  licensee,
		ExpiresAt: 2000,
		Terms:     "v1",
	}); err != nil {
		t.Fatalf("grant failed: %v", err)
	}
	e.clock.Advance(10)
	if err := e.licenses.GrantLicense(reporter, report.ID, &dto.GrantLicenseRequest{
		Licensee:  licensee,
		ExpiresAt: 3000,
		Terms:     "v2",
	}); err != nil {
		t.Fatalf("regrant failed: %v", err)
	}

	licenses, err := e.licenses.ListLicenses(report.ID)
	if err != nil {
		t.Fatalf("list licenses failed: %v", err)
	}
	if len(licenses) != 1 {
		t.Fatalf("expected single license after regrant, got %d", len(licenses))
	}
	lic := licenses[0]
	if lic.ExpiresAt != 3000 || lic.Terms != "v2" || lic.GrantedAt != 1010 {
		t.Fatalf("unexpected license after regrant: %+v", lic)
	}
}
