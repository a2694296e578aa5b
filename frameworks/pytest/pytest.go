// Package pytest implements the pytest framework plugin (spec.md
// §4.2): detect, parse into IR, and the legacy emitter for the
// pytest -> unittest pair. pytest is Hamlet's only function-paradigm
// source framework; its bare `assert` statements are mapped onto the
// same closed assertion vocabulary frameworks/unittest speaks, using
// this package's own regexes rather than internal/pypatterns' table.
// It is the one pair that exercises the Conversion
// Pipeline's cross-paradigm Transform stage (frameworks/unittest's
// Transform wraps these flat functions in a TestCase class).
package pytest

import (
	"regexp"
	"strings"

	"github.com/pmclSF/hamlet-sub002/internal/ir"
	"github.com/pmclSF/hamlet-sub002/internal/pyparse"
	"github.com/pmclSF/hamlet-sub002/internal/registry"
)

const Name = "pytest"

var (
	detectRe      = regexp.MustCompile(`\bimport pytest\b|\bdef test_\w+\s*\(|@pytest\.`)
	unittestRe    = regexp.MustCompile(`\bunittest\.TestCase\b`)
	raisesRe      = regexp.MustCompile(`^with\s+pytest\.raises\(\s*([\w.]+)[^)]*\)\s*:$`)
	isNotNoneRe   = regexp.MustCompile(`^assert\s+(.+?)\s+is\s+not\s+None\s*$`)
	isNoneRe      = regexp.MustCompile(`^assert\s+(.+?)\s+is\s+None\s*$`)
	lenEqRe       = regexp.MustCompile(`^assert\s+len\(\s*(.+?)\s*\)\s*==\s*(.+)$`)
	inRe          = regexp.MustCompile(`^assert\s+(.+?)\s+in\s+(.+)$`)
	notInRe       = regexp.MustCompile(`^assert\s+(.+?)\s+not\s+in\s+(.+)$`)
	reMatchRe     = regexp.MustCompile(`^assert\s+re\.match\(\s*(.+?)\s*,\s*(.+?)\s*\)\s*$`)
	eqRe          = regexp.MustCompile(`^assert\s+(.+?)\s*==\s*(.+)$`)
	notRe         = regexp.MustCompile(`^assert\s+not\s+(.+)$`)
	bareRe        = regexp.MustCompile(`^assert\s+(.+?)(?:,\s*.+)?$`)
	monkeypatchRe = regexp.MustCompile(`^monkeypatch\.setattr\(\s*(.+?)\s*\)`)
	mockerPatchRe = regexp.MustCompile(`^mocker\.patch\(\s*['"]([^'"]+)['"]`)
)

// Plugin returns the pytest registry.Plugin.
func Plugin() registry.Plugin {
	return registry.Plugin{
		Name:     Name,
		Language: "python",
		Paradigm: registry.ParadigmFunction,
		Detect:   detect,
		Parse:    parse,
		Emit:     emit,
		Imports:  func(specifier string) string { return specifier },
	}
}

func detect(src string) int {
	if unittestRe.MatchString(src) {
		return 0
	}
	matches := detectRe.FindAllStringIndex(src, -1)
	if len(matches) == 0 {
		return 0
	}
	score := 50 + len(matches)*10
	if score > 100 {
		score = 100
	}
	return score
}

func parse(src string) (*ir.TestFile, error) {
	return pyparse.Parse(src, "python", pyparse.Roles{
		Hooks:          map[string]ir.HookType{}, // pytest has no setUp/tearDown of its own
		SkipDecorators: []string{"@pytest.mark.skip", "@pytest.mark.skipif"},
	}, pyparse.LineClassifier{
		Assertion: parseAssertion,
		MockCall:  parseMockCall,
	}), nil
}

func parseAssertion(line string) (*ir.Assertion, bool) {
	if m := raisesRe.FindStringSubmatch(line); m != nil {
		return ir.NewAssertion(ir.AssertThrows, "", m[1]), true
	}
	if m := isNotNoneRe.FindStringSubmatch(line); m != nil {
		return ir.NewAssertion(ir.AssertIsDefined, m[1], ""), true
	}
	if m := isNoneRe.FindStringSubmatch(line); m != nil {
		return ir.NewAssertion(ir.AssertIsNull, m[1], ""), true
	}
	if m := lenEqRe.FindStringSubmatch(line); m != nil {
		return ir.NewAssertion(ir.AssertHaveLength, m[1], m[2]), true
	}
	if m := reMatchRe.FindStringSubmatch(line); m != nil {
		return ir.NewAssertion(ir.AssertMatch, m[2], m[1]), true
	}
	if m := notInRe.FindStringSubmatch(line); m != nil {
		a := ir.NewAssertion(ir.AssertContains, m[2], m[1])
		a.IsNegated = true
		return a, true
	}
	if m := inRe.FindStringSubmatch(line); m != nil {
		return ir.NewAssertion(ir.AssertContains, m[2], m[1]), true
	}
	if m := eqRe.FindStringSubmatch(line); m != nil {
		return ir.NewAssertion(ir.AssertEqual, m[1], m[2]), true
	}
	if m := notRe.FindStringSubmatch(line); m != nil {
		return ir.NewAssertion(ir.AssertFalsy, m[1], ""), true
	}
	if m := bareRe.FindStringSubmatch(line); m != nil {
		return ir.NewAssertion(ir.AssertTruthy, strings.TrimSpace(m[1]), ""), true
	}
	return nil, false
}

func parseMockCall(line string) (*ir.MockCall, bool) {
	if m := monkeypatchRe.FindStringSubmatch(line); m != nil {
		return ir.NewMockCall("monkeypatch", m[1]), true
	}
	if m := mockerPatchRe.FindStringSubmatch(line); m != nil {
		return ir.NewMockCall("patch", m[1]), true
	}
	return nil, false
}

func emit(file *ir.TestFile, _ string) (string, error) {
	return pyparse.Emit(file, pyparse.Renderer{
		Assertion:     renderAssertion,
		MockCall:      renderMockCall,
		ClassHeader:   nil, // pytest renders flat functions, never a wrapping class
		HookDef:       func(ir.HookType) (string, bool) { return "", false },
		SkipDecorator: "@pytest.mark.skip",
	}), nil
}

func renderAssertion(a *ir.Assertion) string {
	switch a.Kind {
	case ir.AssertThrows:
		return "" // pytest.raises is a context manager, not a single line; see HAMLET-TODO fallback
	case ir.AssertIsDefined:
		return "assert " + a.Subject + " is not None"
	case ir.AssertIsNull:
		return "assert " + a.Subject + " is None"
	case ir.AssertHaveLength:
		return "assert len(" + a.Subject + ") == " + a.Expected
	case ir.AssertMatch:
		return "assert re.match(" + a.Expected + ", " + a.Subject + ")"
	case ir.AssertContains:
		if a.IsNegated {
			return "assert " + a.Expected + " not in " + a.Subject
		}
		return "assert " + a.Expected + " in " + a.Subject
	case ir.AssertEqual, ir.AssertStrictEqual:
		return "assert " + a.Subject + " == " + a.Expected
	case ir.AssertFalsy:
		return "assert not " + a.Subject
	case ir.AssertTruthy:
		return "assert " + a.Subject
	default:
		return ""
	}
}

func renderMockCall(m *ir.MockCall) string {
	switch m.Kind {
	case "monkeypatch":
		return "monkeypatch.setattr(" + m.Target + ")"
	case "patch":
		return "mocker.patch('" + m.Target + "')"
	default:
		return ""
	}
}
