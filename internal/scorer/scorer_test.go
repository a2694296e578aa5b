package scorer

import (
	"testing"

	"github.com/pmclSF/hamlet-sub002/internal/ir"
)

// TestScorerMixedScenario is spec.md §8 scenario 1, verbatim:
// TestSuite(converted, [TestCase(converted, [Assertion(converted),
// Assertion(converted), Assertion(unconvertible,line=10),
// Assertion(unconvertible,line=15)])]) -> confidence 71, medium,
// converted 4, unconvertible 2, total 6.
func TestScorerMixedScenario(t *testing.T) {
	a1 := ir.NewAssertion(ir.AssertEqual, "a", "a")
	a2 := ir.NewAssertion(ir.AssertTruthy, "b", "")
	a3 := ir.NewAssertion(ir.AssertUnknown, "c", "")
	ir.SetLoc(a3, ir.Location{Line: 10})
	a4 := ir.NewAssertion(ir.AssertUnknown, "d", "")
	ir.SetLoc(a4, ir.Location{Line: 15})

	tc := ir.NewTestCase("mixed")
	tc.Body = append(tc.Body, a1, a2, a3, a4)

	suite := ir.NewTestSuite("suite")
	suite.Tests = append(suite.Tests, tc)

	report := Score(suite, EmitterStats{})

	if report.Confidence != 71 {
		t.Fatalf("Confidence = %d, want 71", report.Confidence)
	}
	if report.Level != LevelMedium {
		t.Fatalf("Level = %s, want medium", report.Level)
	}
	if report.Converted != 4 {
		t.Fatalf("Converted = %d, want 4", report.Converted)
	}
	if report.Unconvertible != 2 {
		t.Fatalf("Unconvertible = %d, want 2", report.Unconvertible)
	}
	if report.Total != 6 {
		t.Fatalf("Total = %d, want 6", report.Total)
	}
}

// TestScorerEmptyIR is spec.md §8 scenario 2: TestFile(body=[]) ->
// confidence 100, high, total 0.
func TestScorerEmptyIR(t *testing.T) {
	file := ir.NewTestFile("javascript")
	report := Score(file, EmitterStats{})

	if report.Confidence != 100 {
		t.Fatalf("Confidence = %d, want 100", report.Confidence)
	}
	if report.Level != LevelHigh {
		t.Fatalf("Level = %s, want high", report.Level)
	}
	if report.Total != 0 {
		t.Fatalf("Total = %d, want 0", report.Total)
	}
}

func TestScoreBoundsAndLevelMapping(t *testing.T) {
	cases := []struct {
		score int
		want  Level
	}{
		{100, LevelHigh}, {90, LevelHigh}, {89, LevelMedium}, {70, LevelMedium}, {69, LevelLow}, {0, LevelLow},
	}
	for _, c := range cases {
		if got := levelFor(c.score); got != c.want {
			t.Errorf("levelFor(%d) = %s, want %s", c.score, got, c.want)
		}
	}
}

// TestIRPatchRatioBoost is spec.md §8 scenario 3's coverage shape: one
// supported kind, one unsupported, applied as the emitter ratio boost.
func TestIRPatchRatioBoost(t *testing.T) {
	a1 := ir.NewAssertion(ir.AssertBeVisible, "el", "")
	a2 := ir.NewAssertion(ir.AssertUnknown, "el", "")
	a2.RawKind = "custom.matcher"

	tc := ir.NewTestCase("visibility")
	tc.Body = append(tc.Body, a1, a2)

	withoutBoost := Score(tc, EmitterStats{})
	withBoost := Score(tc, EmitterStats{Active: true, Attempted: 2, Succeeded: 1})

	if withBoost.Confidence <= withoutBoost.Confidence {
		t.Fatalf("expected ratio boost to raise confidence: without=%d with=%d",
			withoutBoost.Confidence, withBoost.Confidence)
	}
	if withBoost.IRCoverage == nil {
		t.Fatal("expected IRCoverage to be populated when stats.Active")
	}
	if withoutBoost.IRCoverage != nil {
		t.Fatal("expected IRCoverage to be nil when no IR emitter was active")
	}
}

func TestScoreRecordsSupportedAndUnsupportedKinds(t *testing.T) {
	a1 := ir.NewAssertion(ir.AssertBeVisible, "el", "")
	a2 := ir.NewAssertion(ir.AssertUnknown, "el", "")
	a2.RawKind = "custom.matcher"

	tc := ir.NewTestCase("visibility")
	tc.Body = append(tc.Body, a1, a2)

	report := Score(tc, EmitterStats{
		Active: true, Attempted: 2, Succeeded: 1,
		Supported: func(n ir.Node) bool {
			a, ok := n.(*ir.Assertion)
			return ok && a.Kind == ir.AssertBeVisible
		},
	})

	if report.IRCoverage.CoveragePercent != 50 {
		t.Fatalf("CoveragePercent = %d, want 50", report.IRCoverage.CoveragePercent)
	}
	kinds := report.IRCoverage.UnsupportedKindList()
	if len(kinds) != 1 || kinds[0] != "custom.matcher" {
		t.Fatalf("UnsupportedKindList = %v, want [custom.matcher]", kinds)
	}
}

func TestIRCoverageFinalizeAndUnsupportedKinds(t *testing.T) {
	cov := &IRCoverage{ByVariant: make(map[string]*VariantCoverage), UnsupportedKinds: make(map[string]struct{})}
	cov.RecordIRSupport("Assertion", "be.visible", true)
	cov.RecordIRSupport("Assertion", "custom.matcher", false)
	cov.Finalize()

	if cov.CoveragePercent != 50 {
		t.Fatalf("CoveragePercent = %d, want 50", cov.CoveragePercent)
	}
	kinds := cov.UnsupportedKindList()
	if len(kinds) != 1 || kinds[0] != "custom.matcher" {
		t.Fatalf("UnsupportedKindList = %v, want [custom.matcher]", kinds)
	}
}
