// Package jest implements the Jest framework plugin (spec.md §4.2):
// detect, parse into IR, and the legacy emitter for the Jest <->
// Vitest pair. Jest and Vitest share almost the same expect() API, so
// the interesting conversion work is the mock namespace (jest.* ->
// vi.*) and the explicit import Vitest requires where Jest relies on
// globals.
package jest

import (
	"regexp"
	"strings"

	"github.com/pmclSF/hamlet-sub002/internal/ir"
	"github.com/pmclSF/hamlet-sub002/internal/jsassert"
	"github.com/pmclSF/hamlet-sub002/internal/jsparse"
	"github.com/pmclSF/hamlet-sub002/internal/registry"
)

const Name = "jest"

var (
	jestCallRe  = regexp.MustCompile(`\bjest\.[a-zA-Z]+\(`)
	mockFnRe    = regexp.MustCompile(`^(?:const\s+\w+\s*=\s*)?jest\.fn\(`)
	jestMockRe  = regexp.MustCompile(`^jest\.mock\(\s*['"]([^'"]+)['"]`)
	spyOnRe     = regexp.MustCompile(`^jest\.spyOn\(\s*([^,]+),\s*['"]([^'"]+)['"]`)
	blockCallRe = regexp.MustCompile(`^\s*(?:describe|it|test)(?:\.(?:only|skip))?\(`)
)

// Plugin returns the Jest registry.Plugin.
func Plugin() registry.Plugin {
	return registry.Plugin{
		Name:     Name,
		Language: "javascript",
		Paradigm: registry.ParadigmBDD,
		Detect:   detect,
		Parse:    parse,
		Emit:     emit,
		Imports:  func(specifier string) string { return specifier },
	}
}

func detect(src string) int {
	score := 0
	if m := jestCallRe.FindAllStringIndex(src, -1); len(m) > 0 {
		score += 40 + len(m)*10
	}
	if strings.Contains(src, "from 'jest'") || strings.Contains(src, `from "jest"`) {
		score += 30
	}
	if blockCallRe.MatchString(src) && score == 0 {
		score = 20
	}
	if score > 100 {
		score = 100
	}
	return score
}

func parse(src string) (*ir.TestFile, error) {
	return jsparse.Parse(src, "javascript", jsparse.LineClassifier{
		Assertion:  parseAssertion,
		Navigation: noNavigation,
		MockCall:   parseMockCall,
	}), nil
}

func parseAssertion(line string) (*ir.Assertion, bool) {
	kind, subject, expected, ok := jsassert.Match(line)
	if !ok {
		if strings.Contains(line, "expect(") {
			a := ir.NewAssertion(ir.AssertUnknown, "", "")
			a.RawKind = line
			return a, true
		}
		return nil, false
	}
	return ir.NewAssertion(kind, subject, expected), true
}

func noNavigation(string) (*ir.Navigation, bool) { return nil, false }

func parseMockCall(line string) (*ir.MockCall, bool) {
	if mockFnRe.MatchString(line) {
		return ir.NewMockCall("fn", ""), true
	}
	if m := jestMockRe.FindStringSubmatch(line); m != nil {
		return ir.NewMockCall("mock", m[1]), true
	}
	if m := spyOnRe.FindStringSubmatch(line); m != nil {
		return ir.NewMockCall("spyOn", strings.TrimSpace(m[1])+"."+m[2]), true
	}
	return nil, false
}

func emit(file *ir.TestFile, _ string) (string, error) {
	return jsparse.Emit(file, jsparse.LineRenderer{
		Assertion:  renderAssertion,
		Navigation: func(*ir.Navigation) string { return "" },
		MockCall:   renderMockCall,
	}), nil
}

func renderAssertion(a *ir.Assertion) string {
	if a.Kind == ir.AssertUnknown {
		return ""
	}
	matcher, ok := jsassert.MatcherFor(a.Kind)
	if !ok {
		return ""
	}
	if a.Expected == "" {
		return "expect(" + a.Subject + ")." + matcher + "()"
	}
	return "expect(" + a.Subject + ")." + matcher + "(" + a.Expected + ")"
}

func renderMockCall(m *ir.MockCall) string {
	switch m.Kind {
	case "fn":
		return "jest.fn()"
	case "mock":
		return "jest.mock('" + m.Target + "')"
	case "spyOn":
		parts := strings.SplitN(m.Target, ".", 2)
		if len(parts) != 2 {
			return ""
		}
		return "jest.spyOn(" + parts[0] + ", '" + parts[1] + "')"
	default:
		return ""
	}
}
