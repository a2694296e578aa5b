package javaparse

import (
	"fmt"
	"strings"

	"github.com/pmclSF/hamlet-sub002/internal/ir"
)

// Renderer lets a framework plugin render its own annotation and
// assertion/mock-call syntax. Returning "" from Assertion/MockCall
// falls back to a HAMLET-TODO comment citing the node's original
// source, per spec.md §7.
type Renderer struct {
	Assertion func(a *ir.Assertion) string
	MockCall  func(m *ir.MockCall) string

	// TestAnnotation/SkipAnnotation are the bare annotation names
	// (without '@') this version uses to mark a test method / a
	// skipped test, e.g. "Test" and "Ignore" (JUnit4) or "Disabled"
	// (JUnit5).
	TestAnnotation string
	SkipAnnotation string
	// HookAnnotation renders the bare annotation name for a lifecycle
	// hook kind, e.g. "Before" (JUnit4) or "BeforeEach" (JUnit5).
	HookAnnotation func(kind ir.HookType) string
}

var hookMethodNames = map[ir.HookType]string{
	ir.BeforeEach: "setUp",
	ir.AfterEach:  "tearDown",
	ir.BeforeAll:  "setUpClass",
	ir.AfterAll:   "tearDownClass",
}

// Emit regenerates file's full Java text using r, the "legacy"
// regex/template emitter each plugin supplies as the ir-patch/ir-full
// baseline (spec.md §4.3 "emit").
func Emit(file *ir.TestFile, r Renderer) string {
	var b strings.Builder
	for _, imp := range file.Imports {
		fmt.Fprintf(&b, "import %s;\n", imp.Source)
	}
	if len(file.Imports) > 0 {
		b.WriteString("\n")
	}
	emitBody(&b, file.Body, 0, r)
	return b.String()
}

func emitBody(b *strings.Builder, nodes []ir.Node, depth int, r Renderer) {
	indent := strings.Repeat("    ", depth)
	for _, n := range nodes {
		switch v := n.(type) {
		case *ir.TestSuite:
			fmt.Fprintf(b, "%spublic class %s {\n", indent, v.Name)
			for _, h := range v.Hooks {
				emitBody(b, []ir.Node{h}, depth+1, r)
			}
			for _, t := range v.Tests {
				emitBody(b, []ir.Node{t}, depth+1, r)
			}
			fmt.Fprintf(b, "%s}\n", indent)

		case *ir.TestCase:
			for _, m := range v.Modifiers {
				if m.ModifierType == ir.ModSkip && r.SkipAnnotation != "" {
					fmt.Fprintf(b, "%s@%s\n", indent, r.SkipAnnotation)
				}
			}
			fmt.Fprintf(b, "%s@%s\n", indent, r.TestAnnotation)
			fmt.Fprintf(b, "%spublic void %s() {\n", indent, v.Name)
			emitBody(b, v.Body, depth+1, r)
			fmt.Fprintf(b, "%s}\n", indent)

		case *ir.Hook:
			if r.HookAnnotation != nil {
				fmt.Fprintf(b, "%s@%s\n", indent, r.HookAnnotation(v.HookType))
			}
			name := hookMethodNames[v.HookType]
			fmt.Fprintf(b, "%spublic void %s() {\n", indent, name)
			emitBody(b, v.Body, depth+1, r)
			fmt.Fprintf(b, "%s}\n", indent)

		case *ir.Assertion:
			line := r.Assertion(v)
			writeLineOrTODO(b, indent, line, v.OriginalSource)

		case *ir.MockCall:
			line := r.MockCall(v)
			writeLineOrTODO(b, indent, line, v.OriginalSource)

		case *ir.RawCode:
			fmt.Fprintf(b, "%s%s\n", indent, v.Source)

		case *ir.Comment:
			fmt.Fprintf(b, "%s// %s\n", indent, v.Text)

		case *ir.Modifier:
			// folded into the enclosing @Test/@Ignore annotation above.
		}
	}
}

func writeLineOrTODO(b *strings.Builder, indent, line, original string) {
	if line == "" {
		fmt.Fprintf(b, "%s// HAMLET-TODO [unsupported-construct]: %s\n", indent, original)
		return
	}
	fmt.Fprintf(b, "%s%s;\n", indent, line)
}
