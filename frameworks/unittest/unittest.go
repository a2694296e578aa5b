// Package unittest implements the unittest framework plugin (spec.md
// §4.2), the target side of the pytest -> unittest pair. Parsing and
// rendering share frameworks/pytest's internal/pyparse scaffolding;
// assertion call recognition comes from internal/pypatterns' shared
// self.assertX(...) table, the same plugin-owns-data split
// frameworks/junit4 and frameworks/junit5 use for their annotations.
package unittest

import (
	"regexp"
	"strings"

	"github.com/pmclSF/hamlet-sub002/internal/ir"
	"github.com/pmclSF/hamlet-sub002/internal/pypatterns"
	"github.com/pmclSF/hamlet-sub002/internal/pyparse"
	"github.com/pmclSF/hamlet-sub002/internal/registry"
)

const Name = "unittest"

var (
	detectRe        = regexp.MustCompile(`\bimport unittest\b|\bunittest\.TestCase\b|\bself\.assert\w+\(`)
	assertRaisesRe  = regexp.MustCompile(`^with\s+self\.assertRaises\(\s*([\w.]+)[^)]*\)\s*:$`)
	assertLenEqRe   = regexp.MustCompile(`^self\.assertEqual\(\s*len\(\s*(.+?)\s*\)\s*,\s*(.+?)\s*\)\s*$`)
	mockPatchRe     = regexp.MustCompile(`^self\.(\w+)\s*=\s*unittest\.mock\.patch\(\s*['"]([^'"]+)['"]`)
	hookNames       = map[string]ir.HookType{
		"setUp":         ir.BeforeEach,
		"tearDown":      ir.AfterEach,
		"setUpClass":    ir.BeforeAll,
		"tearDownClass": ir.AfterAll,
	}
	hookMethodNames = map[ir.HookType]string{
		ir.BeforeEach: "setUp",
		ir.AfterEach:  "tearDown",
		ir.BeforeAll:  "setUpClass",
		ir.AfterAll:   "tearDownClass",
	}
)

// Plugin returns the unittest registry.Plugin.
func Plugin() registry.Plugin {
	return registry.Plugin{
		Name:     Name,
		Language: "python",
		Paradigm: registry.ParadigmXUnit,
		Detect:   detect,
		Parse:    parse,
		Emit:     emit,
		Imports:  func(specifier string) string { return specifier },
	}
}

func detect(src string) int {
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
		Hooks:          hookNames,
		SkipDecorators: []string{"@unittest.skip"},
	}, pyparse.LineClassifier{
		Assertion: parseAssertion,
		MockCall:  parseMockCall,
	}), nil
}

func parseAssertion(line string) (*ir.Assertion, bool) {
	if m := assertRaisesRe.FindStringSubmatch(line); m != nil {
		return ir.NewAssertion(ir.AssertThrows, "", m[1]), true
	}
	if m := assertLenEqRe.FindStringSubmatch(line); m != nil {
		return ir.NewAssertion(ir.AssertHaveLength, m[1], m[2]), true
	}
	kind, args, ok := pypatterns.Match(line)
	if !ok {
		if !strings.HasPrefix(line, "self.assert") {
			return nil, false
		}
		a := ir.NewAssertion(ir.AssertUnknown, "", "")
		a.RawKind = line
		return a, true
	}
	switch kind {
	case ir.AssertEqual:
		if len(args) < 2 {
			return nil, false
		}
		return ir.NewAssertion(kind, args[0], args[1]), true
	case ir.AssertStrictEqual:
		if len(args) < 2 {
			return nil, false
		}
		return ir.NewAssertion(kind, args[0], args[1]), true
	case ir.AssertContains, ir.AssertMatch:
		if len(args) < 2 {
			return nil, false
		}
		return ir.NewAssertion(kind, args[1], args[0]), true
	default:
		if len(args) < 1 {
			return nil, false
		}
		return ir.NewAssertion(kind, args[0], ""), true
	}
}

func parseMockCall(line string) (*ir.MockCall, bool) {
	if m := mockPatchRe.FindStringSubmatch(line); m != nil {
		return ir.NewMockCall("patch", m[2]), true
	}
	return nil, false
}

func emit(file *ir.TestFile, _ string) (string, error) {
	return pyparse.Emit(file, pyparse.Renderer{
		Assertion: renderAssertion,
		MockCall:  renderMockCall,
		ClassHeader: func(name string) string {
			return "class " + name + "(unittest.TestCase):"
		},
		HookDef: func(kind ir.HookType) (string, bool) {
			name, ok := hookMethodNames[kind]
			return name, ok
		},
		SkipDecorator: "@unittest.skip(\"skipped\")",
	}), nil
}

func renderAssertion(a *ir.Assertion) string {
	switch a.Kind {
	case ir.AssertThrows:
		return "" // self.assertRaises is a context manager; see HAMLET-TODO fallback
	case ir.AssertHaveLength:
		return "self.assertEqual(len(" + a.Subject + "), " + a.Expected + ")"
	case ir.AssertContains:
		return "self.assertIn(" + a.Expected + ", " + a.Subject + ")"
	case ir.AssertMatch:
		return "self.assertRegex(" + a.Subject + ", " + a.Expected + ")"
	}
	method, ok := pypatterns.MethodFor(a.Kind)
	if !ok {
		return ""
	}
	if a.Expected == "" {
		return "self." + method + "(" + a.Subject + ")"
	}
	return "self." + method + "(" + a.Subject + ", " + a.Expected + ")"
}

func renderMockCall(m *ir.MockCall) string {
	if m.Kind != "patch" {
		return ""
	}
	return "self.mock = unittest.mock.patch('" + m.Target + "')"
}
