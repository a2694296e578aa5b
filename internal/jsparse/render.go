package jsparse

import (
	"fmt"
	"strings"

	"github.com/pmclSF/hamlet-sub002/internal/ir"
)

// LineRenderer lets a framework plugin render its own assertion,
// navigation, and mock-call syntax. Returning "" falls back to a
// HAMLET-TODO comment citing the node's original source, per spec.md
// §7 ("never silently drop a construct the parser recorded").
type LineRenderer struct {
	Assertion  func(a *ir.Assertion) string
	Navigation func(n *ir.Navigation) string
	MockCall   func(m *ir.MockCall) string
}

// Emit regenerates file's full JavaScript/TypeScript text from scratch
// using render, the "legacy" regex/template emitter every plugin
// supplies as the ir-patch/ir-full baseline (spec.md §4.3 "emit").
func Emit(file *ir.TestFile, render LineRenderer) string {
	var b strings.Builder
	for _, imp := range file.Imports {
		fmt.Fprintf(&b, "import %s from '%s';\n", importBindingList(imp), imp.Source)
	}
	if len(file.Imports) > 0 {
		b.WriteString("\n")
	}
	emitBody(&b, file.Body, 0, render)
	return b.String()
}

func importBindingList(imp *ir.ImportStatement) string {
	if len(imp.Bindings) == 0 {
		return "{}"
	}
	names := make([]string, 0, len(imp.Bindings))
	for _, bnd := range imp.Bindings {
		switch {
		case bnd.IsDefault:
			names = append(names, bnd.Local)
		case bnd.IsNamespace:
			names = append(names, "* as "+bnd.Local)
		default:
			names = append(names, bnd.Imported)
		}
	}
	return "{ " + strings.Join(names, ", ") + " }"
}

func emitBody(b *strings.Builder, nodes []ir.Node, depth int, render LineRenderer) {
	indent := strings.Repeat("  ", depth)
	for _, n := range nodes {
		switch v := n.(type) {
		case *ir.TestSuite:
			fmt.Fprintf(b, "%sdescribe('%s', () => {\n", indent, v.Name)
			for _, h := range v.Hooks {
				emitBody(b, []ir.Node{h}, depth+1, render)
			}
			for _, t := range v.Tests {
				emitBody(b, []ir.Node{t}, depth+1, render)
			}
			fmt.Fprintf(b, "%s});\n", indent)

		case *ir.TestCase:
			fmt.Fprintf(b, "%sit('%s', () => {\n", indent, v.Name)
			emitBody(b, v.Body, depth+1, render)
			fmt.Fprintf(b, "%s});\n", indent)

		case *ir.Hook:
			fmt.Fprintf(b, "%s%s(() => {\n", indent, v.HookType)
			emitBody(b, v.Body, depth+1, render)
			fmt.Fprintf(b, "%s});\n", indent)

		case *ir.Assertion:
			line := render.Assertion(v)
			writeLineOrTODO(b, indent, line, v.OriginalSource)

		case *ir.Navigation:
			line := render.Navigation(v)
			writeLineOrTODO(b, indent, line, v.OriginalSource)

		case *ir.MockCall:
			line := render.MockCall(v)
			writeLineOrTODO(b, indent, line, v.OriginalSource)

		case *ir.RawCode:
			fmt.Fprintf(b, "%s%s\n", indent, v.Source)

		case *ir.Comment:
			fmt.Fprintf(b, "%s// %s\n", indent, v.Text)

		case *ir.Modifier:
			// Modifier nodes are not rendered: describe/it calls are
			// emitted without .only/.skip.
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
