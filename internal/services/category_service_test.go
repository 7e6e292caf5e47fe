package services

import (
	"reflect"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/terrawatch/report-engine/internal/dto"
)

func TestCategoryRoundTrip(t *testing.T) {
	e := newTestEngine(t)
	reporter := uuid.New()
	report := mustSubmit(t, e, reporter)

	err := e.categories.SetCategory(reporter, report.ID, &dto.SetCategoryRequest{
		Category: "forest",
		Tags:     []string{"amazon", "illegal-logging"},
	})
	if err != nil {
		t.Fatalf("set category failed: %v", err)
	}

	cat, err := e.categories.GetCategory(report.ID)
	if err != nil {
		t.Fatalf("get category failed: %v", err)
	}
	if cat == nil || cat.Category != "forest" {
		t.Fatalf("unexpected category: %+v", cat)
	}
	if tags := DecodeTags(cat); !reflect.DeepEqual(tags, []string{"amazon", "illegal-logging"}) {
		t.Fatalf("unexpected tags: %v", tags)
	}
}

func TestSetCategoryReplacesWholesale(t *testing.T) {
	e := newTestEngine(t)
	reporter := uuid.New()
	report := mustSubmit(t, e, reporter)

	if err := e.categories.SetCategory(reporter, report.ID, &dto.SetCategoryRequest{
		Category: "forest",
		Tags:     []string{"amazon"},
	}); err != nil {
		t.Fatalf("set category failed: %v", err)
	}
	if err := e.categories.SetCategory(reporter, report.ID, &dto.SetCategoryRequest{
		Category: "water",
	}); err != nil {
		t.Fatalf("second set category failed: %v", err)
	}

	cat, err := e.categories.GetCategory(report.ID)
	if err != nil {
		t.Fatalf("get category failed: %v", err)
	}
	if cat == nil || cat.Category != "water" {
		t.Fatalf("expected replacement category, got %+v", cat)
	}
	if tags := DecodeTags(cat); len(tags) != 0 {
		t.Fatalf("expected old tags discarded, got %v", tags)
	}
}

func TestSetCategoryAuthorization(t *testing.T) {
	e := newTestEngine(t)
	reporter := uuid.New()
	report := mustSubmit(t, e, reporter)

	err := e.categories.SetCategory(uuid.New(), report.ID, &dto.SetCategoryRequest{Category: "forest"})
	wantCode(t, err, CodeUnauthorized)
}

func TestSetCategoryValidation(t *testing.T) {
	e := newTestEngine(t)
	reporter := uuid.New()
	report := mustSubmit(t, e, reporter)

	err := e.categories.SetCategory(reporter, report.ID, &dto.SetCategoryRequest{Category: "  "})
	wantCode(t, err, CodeInvalidInput)

	err = e.categories.SetCategory(reporter, report.ID, &dto.SetCategoryRequest{Category: strings.Repeat("x", 51)})
	wantCode(t, err, CodeInvalidInput)

	tooMany := make([]string, 16)
	for i := range tooMany {
		tooMany[i] = "tag"
	}
	err = e.categories.SetCategory(reporter, report.ID, &dto.SetCategoryRequest{Category: "forest", Tags: tooMany})
	wantCode(t, err, CodeInvalidInput)
}

func TestGetCategoryAbsent(t *testing.T) {
	e := newTestEngine(t)
	reporter := uuid.New()
	report := mustSubmit(t, e, reporter)

	cat, err := e.categories.GetCategory(report.ID)
	if err != nil {
		t.Fatalf("get category failed: %v", err)
	}
	if cat != nil {
		t.Fatalf("expected nil for unset category, got %+v", cat)
	}
}
