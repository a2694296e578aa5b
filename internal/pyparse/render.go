package pyparse

import (
	"fmt"
	"strings"

	"github.com/pmclSF/hamlet-sub002/internal/ir"
)

// Renderer lets a framework plugin render its own assertion/mock-call
// syntax and choose whether tests render flat (pytest, ClassHeader
// nil) or wrapped in a class (unittest). Returning "" from
// Assertion/MockCall falls back to a HAMLET-TODO comment citing the
// node's original source, per spec.md §7.
type Renderer struct {
	Assertion func(a *ir.Assertion) string
	MockCall  func(m *ir.MockCall) string

	// ClassHeader renders the `class Name(...):` line for a TestSuite,
	// or nil to flatten suites (pytest has no class concept of its
	// own for function-style tests).
	ClassHeader func(name string) string
	// HookDef renders the bare method name for a hook kind (e.g.
	// "setUp"), or ok=false when this target has no equivalent.
	HookDef func(kind ir.HookType) (name string, ok bool)
	// SkipDecorator is the full `@...` line emitted above a test
	// method carrying ModSkip, or "" to omit it.
	SkipDecorator string
}

const indentUnit = "    "

// Emit regenerates file's full Python text from render, the "legacy"
// regex/template emitter each plugin supplies as the ir-patch/ir-full
// baseline (spec.md §4.3 "emit").
func Emit(file *ir.TestFile, r Renderer) string {
	var b strings.Builder
	for _, imp := range file.Imports {
		fmt.Fprintf(&b, "import %s\n", imp.Source)
	}
	if len(file.Imports) > 0 {
		b.WriteString("\n")
	}
	emitBody(&b, file.Body, 0, r)
	return b.String()
}

func emitBody(b *strings.Builder, nodes []ir.Node, depth int, r Renderer) {
	indent := strings.Repeat(indentUnit, depth)
	selfArg := ""
	if r.ClassHeader != nil {
		selfArg = "self"
	}

	for _, n := range nodes {
		switch v := n.(type) {
		case *ir.TestSuite:
			if r.ClassHeader != nil {
				fmt.Fprintf(b, "%s%s\n", indent, r.ClassHeader(v.Name))
				for _, h := range v.Hooks {
					emitBody(b, []ir.Node{h}, depth+1, r)
				}
				for _, t := range v.Tests {
					emitBody(b, []ir.Node{t}, depth+1, r)
				}
			} else {
				for _, h := range v.Hooks {
					emitBody(b, []ir.Node{h}, depth, r)
				}
				for _, t := range v.Tests {
					emitBody(b, []ir.Node{t}, depth, r)
				}
			}

		case *ir.TestCase:
			for _, m := range v.Modifiers {
				if m.ModifierType == ir.ModSkip && r.SkipDecorator != "" {
					fmt.Fprintf(b, "%s%s\n", indent, r.SkipDecorator)
				}
			}
			fmt.Fprintf(b, "%sdef %s(%s):\n", indent, v.Name, selfArg)
			emitSuite(b, v.Body, depth+1, r)

		case *ir.Hook:
			name, ok := r.HookDef(v.HookType)
			if !ok {
				continue
			}
			fmt.Fprintf(b, "%sdef %s(%s):\n", indent, name, selfArg)
			emitSuite(b, v.Body, depth+1, r)

		case *ir.Assertion:
			line := r.Assertion(v)
			writeLineOrTODO(b, indent, line, v.OriginalSource)

		case *ir.MockCall:
			line := r.MockCall(v)
			writeLineOrTODO(b, indent, line, v.OriginalSource)

		case *ir.RawCode:
			fmt.Fprintf(b, "%s%s\n", indent, v.Source)

		case *ir.Comment:
			fmt.Fprintf(b, "%s# %s\n", indent, v.Text)

		case *ir.Modifier:
			// folded into the preceding decorator line above.
		}
	}
}

// emitSuite emits a function/method body, falling back to a bare
// `pass` when the parser recorded no body lines — Python has no empty
// block syntax.
func emitSuite(b *strings.Builder, body []ir.Node, depth int, r Renderer) {
	if len(body) == 0 {
		fmt.Fprintf(b, "%spass\n", strings.Repeat(indentUnit, depth))
		return
	}
	emitBody(b, body, depth, r)
}

func writeLineOrTODO(b *strings.Builder, indent, line, original string) {
	if line == "" {
		fmt.Fprintf(b, "%s# HAMLET-TODO [unsupported-construct]: %s\n", indent, original)
		return
	}
	fmt.Fprintf(b, "%s%s\n", indent, line)
}
