// Package junit4 implements the JUnit4 framework plugin (spec.md
// §4.2): detect, parse into IR, and the legacy emitter for the
// JUnit4 -> JUnit5 pair. Hook/test/skip annotation names come from
// internal/junitpatterns' shared table rather than being hardcoded
// here, the same plugin-owns-data split frameworks/cypress and
// frameworks/jest use.
package junit4

import (
	"regexp"
	"strings"

	"github.com/pmclSF/hamlet-sub002/internal/ir"
	"github.com/pmclSF/hamlet-sub002/internal/javaparse"
	"github.com/pmclSF/hamlet-sub002/internal/junitpatterns"
	"github.com/pmclSF/hamlet-sub002/internal/registry"
)

const Name = "junit4"

var (
	verifyRe = regexp.MustCompile(`^verify\(([^)]+)\)`)
	whenRe   = regexp.MustCompile(`^when\(([^)]+)\)`)
	detectRe = regexp.MustCompile(`org\.junit\.Test|org\.junit\.(?:Before|After)\b|@Test\b`)
	jupiter  = regexp.MustCompile(`org\.junit\.jupiter`)
)

// Plugin returns the JUnit4 registry.Plugin.
func Plugin() registry.Plugin {
	return registry.Plugin{
		Name:     Name,
		Language: "java",
		Paradigm: registry.ParadigmXUnit,
		Detect:   detect,
		Parse:    parse,
		Emit:     emit,
		Imports:  func(specifier string) string { return specifier },
	}
}

func detect(src string) int {
	if jupiter.MatchString(src) {
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

func annotations() javaparse.Annotations {
	return javaparse.Annotations{
		Test:  "Test",
		Skip:  "Ignore",
		Hooks: junitpatterns.HookAnnotationNames("junit4"),
	}
}

func parse(src string) (*ir.TestFile, error) {
	return javaparse.Parse(src, "java", annotations(), javaparse.LineClassifier{
		Assertion: parseAssertion,
		MockCall:  parseMockCall,
	}), nil
}

func parseAssertion(line string) (*ir.Assertion, bool) {
	kind, args, ok := junitpatterns.MatchAssertion(line)
	if !ok {
		if strings.HasPrefix(line, "assert") {
			a := ir.NewAssertion(ir.AssertUnknown, "", "")
			a.RawKind = line
			return a, true
		}
		return nil, false
	}
	switch kind {
	case ir.AssertEqual:
		if len(args) < 2 {
			return nil, false
		}
		return ir.NewAssertion(kind, args[1], args[0]), true
	case ir.AssertThrows:
		return nil, false
	default:
		if len(args) < 1 {
			return nil, false
		}
		return ir.NewAssertion(kind, args[0], ""), true
	}
}

func parseMockCall(line string) (*ir.MockCall, bool) {
	if m := verifyRe.FindStringSubmatch(line); m != nil {
		return ir.NewMockCall("verify", m[1]), true
	}
	if m := whenRe.FindStringSubmatch(line); m != nil {
		return ir.NewMockCall("when", m[1]), true
	}
	return nil, false
}

func emit(file *ir.TestFile, _ string) (string, error) {
	return javaparse.Emit(file, javaparse.Renderer{
		Assertion:      renderAssertion,
		MockCall:       renderMockCall,
		TestAnnotation: "Test",
		SkipAnnotation: "Ignore",
		HookAnnotation: func(kind ir.HookType) string {
			name, _ := junitpatterns.HookAnnotationFor("junit4", kind)
			return name
		},
	}), nil
}

func renderAssertion(a *ir.Assertion) string {
	method, ok := junitpatterns.AssertMethodFor(a.Kind)
	if !ok {
		return ""
	}
	if a.Kind == ir.AssertEqual {
		return method + "(" + a.Expected + ", " + a.Subject + ")"
	}
	if a.Subject == "" {
		return ""
	}
	return method + "(" + a.Subject + ")"
}

func renderMockCall(m *ir.MockCall) string {
	switch m.Kind {
	case "verify":
		return "verify(" + m.Target + ")"
	case "when":
		return "when(" + m.Target + ")"
	default:
		return ""
	}
}
