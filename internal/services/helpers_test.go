package services

import (
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/terrawatch/report-engine/internal/chain"
	"github.com/terrawatch/report-engine/internal/database"
	"github.com/terrawatch/report-engine/internal/dto"
	"github.com/terrawatch/report-engine/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testVersionCap = 3

// digestHex is a valid 32-byte evidence digest in wire form.
var digestHex = strings.Repeat("ab", 32)

type testEngine struct {
	db      *gorm.DB
	clock   *chain.ManualClock
	admin   uuid.UUID
	trusted uuid.UUID

	reports       *ReportService
	versions      *VersionService
	categories    *CategoryService
	collaborators *CollaboratorService
	statuses      *StatusService
	licenses      *LicenseService
	revenue       *RevenueService
	engine        *AdminService
	events        *EventService
}

func newTestEngine(t *testing.T) *testEngine {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	// A single connection keeps every query on the same in-memory database.
	sqlDB.SetMaxOpenConns(1)

	if err := database.Migrate(db); err != nil {
		t.Fatalf("migration failed: %v", err)
	}

	clock := chain.NewManualClock(1000)
	locks := NewReportLocks()
	admin := uuid.New()
	trusted := uuid.New()

	e := &testEngine{
		db:      db,
		clock:   clock,
		admin:   admin,
		trusted: trusted,

		reports:       NewReportService(db, clock, locks, NewContentFilter()),
		versions:      NewVersionService(db, clock, locks, testVersionCap),
		categories:    NewCategoryService(db, locks),
		collaborators: NewCollaboratorService(db, clock, locks),
		statuses:      NewStatusService(db, clock, locks, func(id uuid.UUID) bool { return id == trusted }),
		licenses:      NewLicenseService(db, clock, locks),
		revenue:       NewRevenueService(db, locks),
		engine:        NewAdminService(db),
		events:        NewEventService(db),
	}

	if err := e.engine.EnsureState(admin); err != nil {
		t.Fatalf("failed to seed engine state: %v", err)
	}
	return e
}

func validSubmission() *dto.SubmitReportRequest {
	return &dto.SubmitReportRequest{
		Latitude:       40_000_000,
		Longitude:      -74_000_000,
		EvidenceDigest: digestHex,
		ThreatType:     "deforestation",
		Description:    "Trees being cut down",
		Metadata:       `{"source":"field"}`,
	}
}

func mustSubmit(t *testing.T, e *testEngine, caller uuid.UUID) *models.Report {
	t.Helper()
	report, err := e.reports.Submit(caller, validSubmission())
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	return report
}

func lastEvent(t *testing.T, e *testEngine, name string) *models.Event {
	t.Helper()
	var ev models.Event
	if err := e.db.Where("name = ?", name).Order("seq DESC").First(&ev).Error; err != nil {
		t.Fatalf("no %s event found: %v", name, err)
	}
	return &ev
}

func wantCode(t *testing.T, err error, code ErrorCode) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected engine error with code %d, got nil", code)
	}
	if got := CodeOf(err); got != code {
		t.Fatalf("expected error code %d, got %d (%v)", code, got, err)
	}
}
