// Package scorer implements the Confidence Scorer and IR-Coverage
// computation (spec.md §4.5), walking an IR tree to a weighted 0-100
// score and an emittable-node coverage breakdown.
//
// The weighted-sum-then-bucketed-level shape mirrors
// gorisk/internal/priority.Compute (CompositeScore, modifiers capped
// and combined into one number, deriveLevel threshold switch) and
// gorisk/internal/capability.CapabilitySet.RiskLevel (weight table +
// threshold mapping).
package scorer

import (
	"math"
	"sort"

	"github.com/pmclSF/hamlet-sub002/internal/ir"
)

// Level is the coarse confidence bucket derived from Score.
type Level string

const (
	LevelHigh   Level = "high"
	LevelMedium Level = "medium"
	LevelLow    Level = "low"
)

// weights is the per-variant base weight table from spec.md §4.5.
var weights = map[string]int{
	"TestSuite":       3,
	"TestCase":        3,
	"Hook":            3,
	"Assertion":       2,
	"Navigation":      2,
	"MockCall":        2,
	"ImportStatement": 1,
	"RawCode":         1,
	"SharedVariable":  1,
	"Modifier":        1,
	"ParameterSet":    1,
	"TestFile":        0,
	"Comment":         0,
}

// Detail is one flagged node in the report.
type Detail struct {
	Type     string // "unconvertible" | "warning"
	NodeType string
	Line     int
	HasLine  bool
	Source   string
}

// VariantCoverage is the per-variant breakdown inside IRCoverage.
type VariantCoverage struct {
	Total     int
	Supported int
}

// IRCoverage is populated only when an IR emitter was active
// (spec.md §4.5 "irCoverage?").
type IRCoverage struct {
	ByVariant        map[string]*VariantCoverage
	UnsupportedKinds map[string]struct{}
	CoveragePercent  int
}

// Report is the scorer's output (spec.md §4.5 "Report fields").
type Report struct {
	Confidence    int
	Level         Level
	Converted     int
	Unconvertible int
	Warnings      int
	Total         int
	Details       []Detail
	IRCoverage    *IRCoverage
}

// EmitterStats carries the ir-patch/ir-full attempted/succeeded counts
// so Score can apply the ratio boost (spec.md §4.5).
type EmitterStats struct {
	Active    bool
	Attempted int
	Succeeded int
	// Supported, when non-nil, is consulted once per Assertion/
	// Navigation/MockCall node to build the per-variant IRCoverage
	// breakdown. Active with a nil Supported still yields an
	// IRCoverage with Total counts but no Supported/unsupported-kind
	// detail.
	Supported func(n ir.Node) bool
}

// emittableVariants are the leaf kinds IRCoverage restricts to
// (spec.md §4.5 "restricted to leaf emittable variants").
var emittableVariants = map[string]bool{
	"Assertion":  true,
	"Navigation": true,
	"MockCall":   true,
}

// Score walks root and computes its Report. stats may be the zero
// value when no IR emitter was involved in this conversion.
func Score(root ir.Node, stats EmitterStats) Report {
	var (
		totalWeight     int
		convertedWeight int
		report          Report
	)

	cov := &IRCoverage{
		ByVariant:        make(map[string]*VariantCoverage),
		UnsupportedKinds: make(map[string]struct{}),
	}

	_ = ir.Walk(root, func(n ir.Node) error {
		kind := ir.KindName(n)
		w := weights[kind]
		totalWeight += w

		conf := ir.ConfidenceOf(n)
		switch conf {
		case ir.Converted, ir.Warning:
			convertedWeight += w
		}

		// Zero-weight variants (TestFile, Comment) never appear in the
		// per-node report counts — only in the weighted sum above,
		// where they contribute nothing either way. This matches
		// spec.md §8 scenario 2: an empty TestFile scores {total: 0}.
		if w == 0 {
			return nil
		}

		switch conf {
		case ir.Unconvertible:
			report.Unconvertible++
			report.Details = append(report.Details, detailFor(n, "unconvertible"))
		case ir.Warning:
			report.Warnings++
			report.Details = append(report.Details, detailFor(n, "warning"))
		case ir.Converted:
			report.Converted++
		}

		if emittableVariants[kind] {
			vc, ok := cov.ByVariant[kind]
			if !ok {
				vc = &VariantCoverage{}
				cov.ByVariant[kind] = vc
			}
			vc.Total++
			if stats.Active && stats.Supported != nil {
				if stats.Supported(n) {
					vc.Supported++
				} else if ak := assertionKindString(n); ak != "" {
					cov.UnsupportedKinds[ak] = struct{}{}
				}
			}
		}

		report.Total++
		return nil
	})

	var confidence int
	if totalWeight > 0 {
		confidence = int(math.Round(100 * float64(convertedWeight) / float64(totalWeight)))
	} else {
		confidence = 100
	}

	if stats.Active && stats.Attempted >= 1 {
		boost := int(math.Round(5 * float64(stats.Succeeded) / float64(stats.Attempted)))
		confidence += boost
		if confidence > 100 {
			confidence = 100
		}
	}

	report.Confidence = confidence
	report.Level = levelFor(confidence)

	if stats.Active {
		cov.Finalize()
		report.IRCoverage = cov
	}

	return report
}

// assertionKindString returns the emitted-kind string used for the
// unsupported-kind set: the assertion kind (or its raw source text when
// out of vocabulary), the navigation action, or the mock call kind.
func assertionKindString(n ir.Node) string {
	switch v := n.(type) {
	case *ir.Assertion:
		if v.Kind == ir.AssertUnknown {
			return v.RawKind
		}
		return string(v.Kind)
	case *ir.Navigation:
		return string(v.Action)
	case *ir.MockCall:
		return v.Kind
	default:
		return ""
	}
}

// RecordIRSupport records one Assertion/Navigation/MockCall node
// considered by an IR emitter into c: the node counts toward its
// variant's Total, and toward Supported when the emitter handled it;
// otherwise its kind string joins UnsupportedKinds. Score builds its
// own IRCoverage from EmitterStats.Supported and does not read one
// filled in through this method.
func (c *IRCoverage) RecordIRSupport(kind string, assertionKind string, supported bool) {
	if c == nil {
		return
	}
	vc, ok := c.ByVariant[kind]
	if !ok {
		vc = &VariantCoverage{}
		c.ByVariant[kind] = vc
	}
	vc.Total++
	if supported {
		vc.Supported++
	} else if assertionKind != "" {
		c.UnsupportedKinds[assertionKind] = struct{}{}
	}
}

// Finalize computes CoveragePercent from the accumulated per-variant
// totals, restricted to Assertion+Navigation+MockCall (spec.md §4.5).
func (c *IRCoverage) Finalize() {
	var total, supported int
	for _, vc := range c.ByVariant {
		total += vc.Total
		supported += vc.Supported
	}
	if total > 0 {
		c.CoveragePercent = int(math.Round(100 * float64(supported) / float64(total)))
	}
}

// UnsupportedKindList returns the lexicographically sorted set of
// unsupported assertion kind strings (spec.md §4.5 "union of
// unsupported kind strings"), so the JSON report is byte-stable across
// runs instead of reflecting map iteration order.
func (c *IRCoverage) UnsupportedKindList() []string {
	out := make([]string, 0, len(c.UnsupportedKinds))
	for k := range c.UnsupportedKinds {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func levelFor(score int) Level {
	switch {
	case score >= 90:
		return LevelHigh
	case score >= 70:
		return LevelMedium
	default:
		return LevelLow
	}
}

func detailFor(n ir.Node, typ string) Detail {
	d := Detail{Type: typ, NodeType: ir.KindName(n), Source: ir.OriginalSourceOf(n)}
	if loc, ok := ir.Loc(n); ok {
		d.Line = loc.Line
		d.HasLine = true
	}
	return d
}
