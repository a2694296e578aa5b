package migrate

import (
	"errors"
	"testing"

	"github.com/pmclSF/hamlet-sub002/frameworks/pytest"
	"github.com/pmclSF/hamlet-sub002/frameworks/unittest"
	"github.com/pmclSF/hamlet-sub002/internal/migration"
	"github.com/pmclSF/hamlet-sub002/internal/report"
)

func TestNewRegistryRegistersEveryFramework(t *testing.T) {
	reg := NewRegistry()
	for _, name := range []string{"cypress", "playwright", "jest", "vitest", "junit4", "junit5", "pytest", "unittest"} {
		if !reg.Has(name, "") {
			t.Errorf("registry missing plugin %q", name)
		}
	}
}

func TestTransformForOnlyWiresThePytestUnittestPair(t *testing.T) {
	if transformFor(pytest.Name, unittest.Name) == nil {
		t.Fatal("transformFor(pytest, unittest) = nil, want unittest.Transform")
	}
	if transformFor("jest", "vitest") != nil {
		t.Fatal("transformFor(jest, vitest) should be nil (same paradigm)")
	}
}

func TestForbiddenIdentifiersForKnownSourceFrameworks(t *testing.T) {
	cases := map[string]string{
		"cypress": "cy.",
		"jest":    "jest.",
	}
	for source, want := range cases {
		ids := forbiddenIdentifiersFor(source)
		found := false
		for _, id := range ids {
			if id == want {
				found = true
			}
		}
		if !found {
			t.Errorf("forbiddenIdentifiersFor(%q) = %v, want it to include %q", source, ids, want)
		}
	}
}

func TestForbiddenIdentifiersForUnknownFrameworkIsEmpty(t *testing.T) {
	if ids := forbiddenIdentifiersFor("nonexistent"); len(ids) != 0 {
		t.Fatalf("forbiddenIdentifiersFor(unknown) = %v, want none", ids)
	}
}

func TestToProjectReportCountsStatuses(t *testing.T) {
	result := migration.Result{
		Files: []report.FileEntry{
			{Path: "a_test.py", Status: "converted"},
			{Path: "b_test.py", Status: "converted", Error: "boom"},
			{Path: "c_test.py", Status: "skipped"},
		},
	}

	pr := toProjectReport(result, nil)
	if !pr.Success {
		t.Fatal("Success = false, want true when runErr is nil")
	}
	if pr.Summary.Converted != 1 || pr.Summary.Failed != 1 || pr.Summary.Skipped != 1 {
		t.Fatalf("Summary = %+v, want 1 converted, 1 failed, 1 skipped", pr.Summary)
	}
}

func TestToProjectReportReportsTopLevelFailure(t *testing.T) {
	pr := toProjectReport(migration.Result{}, errors.New("scan failed"))
	if pr.Success {
		t.Fatal("Success = true, want false on top-level failure")
	}
	if pr.Error != "scan failed" {
		t.Fatalf("Error = %q, want %q", pr.Error, "scan failed")
	}
}
