package report

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/pmclSF/hamlet-sub002/internal/scorer"
)

func TestFromScorerCopiesFieldsAndCoverage(t *testing.T) {
	sr := scorer.Report{
		Confidence: 71, Level: scorer.LevelMedium, Converted: 4, Unconvertible: 2, Total: 6,
		Details: []scorer.Detail{{Type: "unconvertible", NodeType: "Assertion", Line: 10, HasLine: true}},
		IRCoverage: &scorer.IRCoverage{
			ByVariant:        map[string]*scorer.VariantCoverage{"Assertion": {Total: 2, Supported: 1}},
			UnsupportedKinds: map[string]struct{}{"custom.matcher": {}},
			CoveragePercent:  50,
		},
	}

	fr := FromScorer(sr)
	if fr.Confidence != 71 || fr.Level != "medium" || fr.Total != 6 {
		t.Fatalf("FileReport = %+v", fr)
	}
	if len(fr.Details) != 1 || fr.Details[0].Line != 10 {
		t.Fatalf("Details = %+v", fr.Details)
	}
	if fr.IRCoverage == nil || fr.IRCoverage.CoveragePercent != 50 {
		t.Fatalf("IRCoverage = %+v", fr.IRCoverage)
	}
	if len(fr.IRCoverage.UnsupportedKinds) != 1 || fr.IRCoverage.UnsupportedKinds[0] != "custom.matcher" {
		t.Fatalf("UnsupportedKinds = %v", fr.IRCoverage.UnsupportedKinds)
	}
}

func TestFromScorerOmitsIRCoverageWhenNil(t *testing.T) {
	fr := FromScorer(scorer.Report{Confidence: 100, Level: scorer.LevelHigh})
	if fr.IRCoverage != nil {
		t.Fatal("expected nil IRCoverage to stay nil")
	}
}

func TestFailureShape(t *testing.T) {
	pr := Failure(errors.New("root directory not found"))
	if pr.Success {
		t.Fatal("Failure must set Success=false")
	}
	if pr.Error != "root directory not found" {
		t.Fatalf("Error = %q", pr.Error)
	}
}

func TestWriteJSONIsIndented(t *testing.T) {
	var buf bytes.Buffer
	err := WriteJSON(&buf, ProjectReport{Success: true, Summary: Summary{Converted: 1}})
	if err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}
	if !strings.Contains(buf.String(), "  \"success\"") {
		t.Fatalf("output not indented: %s", buf.String())
	}
}

func TestBuildChecklistBucketsByConfidenceAndStatus(t *testing.T) {
	md := BuildChecklist([]ChecklistEntry{
		{Path: "a.test.js", Status: "converted", Confidence: 95},
		{Path: "b.test.js", Status: "converted", Confidence: 60, Warnings: []string{"unknown assertion"}},
		{Path: "c.test.js", Status: "failed", Confidence: 0, TODOs: []string{"manual rewrite needed"}},
		{Path: "jest.config.js", Status: "converted", Confidence: 100, IsConfig: true},
	})

	if !strings.Contains(md, "Converted: 3") {
		t.Fatalf("missing summary count:\n%s", md)
	}
	if !strings.Contains(md, "`a.test.js`") {
		t.Fatal("expected a.test.js under Fully Converted")
	}
	if !strings.Contains(md, "`b.test.js`") || !strings.Contains(md, "unknown assertion") {
		t.Fatal("expected b.test.js with its warning under Needs Review")
	}
	if !strings.Contains(md, "`c.test.js`") || !strings.Contains(md, "manual rewrite needed") {
		t.Fatal("expected c.test.js with its TODO under Manual Steps")
	}
	if !strings.Contains(md, "`jest.config.js`") {
		t.Fatal("expected jest.config.js under Config Changes")
	}
}

func TestBuildChecklistEmptySectionsSayNone(t *testing.T) {
	md := BuildChecklist(nil)
	if strings.Count(md, "_none_") != 4 {
		t.Fatalf("expected all four sections to read _none_, got:\n%s", md)
	}
}
