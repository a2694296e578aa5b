// Package vitest implements the Vitest framework plugin (spec.md
// §4.2), the target side of the Jest <-> Vitest pair. It reuses
// frameworks/jest's jsassert-backed parsing almost unchanged; the only
// real differences are the mock namespace (vi.* instead of jest.*) and
// Vitest's explicit "import { ... } from 'vitest'" where Jest relies
// on ambient globals.
package vitest

import (
	"regexp"
	"strings"

	"github.com/pmclSF/hamlet-sub002/internal/ir"
	"github.com/pmclSF/hamlet-sub002/internal/jsassert"
	"github.com/pmclSF/hamlet-sub002/internal/jsparse"
	"github.com/pmclSF/hamlet-sub002/internal/registry"
)

const Name = "vitest"

var (
	viCallRe    = regexp.MustCompile(`\bvi\.[a-zA-Z]+\(`)
	mockFnRe    = regexp.MustCompile(`^(?:const\s+\w+\s*=\s*)?vi\.fn\(`)
	viMockRe    = regexp.MustCompile(`^vi\.mock\(\s*['"]([^'"]+)['"]`)
	spyOnRe     = regexp.MustCompile(`^vi\.spyOn\(\s*([^,]+),\s*['"]([^'"]+)['"]`)
	vitestImpRe = regexp.MustCompile(`from\s+['"]vitest['"]`)
)

// Plugin returns the Vitest registry.Plugin.
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
	if vitestImpRe.MatchString(src) {
		score += 50
	}
	if m := viCallRe.FindAllStringIndex(src, -1); len(m) > 0 {
		score += 30 + len(m)*10
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
	if m := viMockRe.FindStringSubmatch(line); m != nil {
		return ir.NewMockCall("mock", m[1]), true
	}
	if m := spyOnRe.FindStringSubmatch(line); m != nil {
		return ir.NewMockCall("spyOn", strings.TrimSpace(m[1])+"."+m[2]), true
	}
	return nil, false
}

// emit renders the IR back to Vitest source, prepending the explicit
// "import ... from 'vitest'" line Vitest needs where Jest does not,
// per spec.md §6's per-target import convention.
func emit(file *ir.TestFile, _ string) (string, error) {
	body := jsparse.Emit(file, jsparse.LineRenderer{
		Assertion:  renderAssertion,
		Navigation: func(*ir.Navigation) string { return "" },
		MockCall:   renderMockCall,
	})
	if hasVitestImport(file) {
		return body, nil
	}
	return vitestImportLine(file) + "\n" + body, nil
}

func hasVitestImport(file *ir.TestFile) bool {
	for _, imp := range file.Imports {
		if imp.Source == "vitest" {
			return true
		}
	}
	return false
}

func vitestImportLine(file *ir.TestFile) string {
	names := []string{"describe", "it", "expect"}
	if usesMocks(file.Body) {
		names = append(names, "vi")
	}
	return "import { " + strings.Join(names, ", ") + " } from 'vitest';"
}

func usesMocks(nodes []ir.Node) bool {
	for _, n := range nodes {
		switch v := n.(type) {
		case *ir.MockCall:
			return true
		case *ir.TestSuite:
			for _, h := range v.Hooks {
				if usesMocks(h.Body) {
					return true
				}
			}
			if usesMocks(v.Tests) {
				return true
			}
		case *ir.TestCase:
			if usesMocks(v.Body) {
				return true
			}
		case *ir.Hook:
			if usesMocks(v.Body) {
				return true
			}
		}
	}
	return false
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
		return "vi.fn()"
	case "mock":
		return "vi.mock('" + m.Target + "')"
	case "spyOn":
		parts := strings.SplitN(m.Target, ".", 2)
		if len(parts) != 2 {
			return ""
		}
		return "vi.spyOn(" + parts[0] + ", '" + parts[1] + "')"
	default:
		return ""
	}
}
