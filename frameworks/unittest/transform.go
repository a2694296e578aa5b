package unittest

import (
	"strings"

	"github.com/fatih/camelcase"

	"github.com/pmclSF/hamlet-sub002/internal/ir"
	"github.com/pmclSF/hamlet-sub002/internal/registry"
)

// Transform wraps a function-paradigm source's flat top-level
// TestCase/Hook nodes in one synthesized TestSuite, the restructuring
// spec.md §9 calls out as the pytest -> unittest pair's cross-paradigm
// Transform stage. It is a no-op when file.Body already contains a
// TestSuite (the source framework already grouped its tests).
//
// This is the one pipeline.TransformFunc Hamlet registers; every other
// pair shares a single paradigm and passes a nil Transform. Its
// signature matches pipeline.TransformFunc structurally, so this file
// does not need to import internal/pipeline — only cmd/hamlet, which
// assigns it to a pipeline.Options.Transform field, imports both.
func Transform(file *ir.TestFile, source, target registry.Plugin) (*ir.TestFile, error) {
	if source.Paradigm == target.Paradigm {
		return file, nil
	}
	if source.Paradigm != registry.ParadigmFunction || target.Paradigm != registry.ParadigmXUnit {
		return file, nil
	}

	for _, n := range file.Body {
		if _, ok := n.(*ir.TestSuite); ok {
			return file, nil
		}
	}

	suite := ir.NewTestSuite(suiteName(file.Body))
	var rest []ir.Node
	for _, n := range file.Body {
		switch v := n.(type) {
		case *ir.TestCase:
			suite.Tests = append(suite.Tests, v)
		case *ir.Hook:
			suite.Hooks = append(suite.Hooks, v)
		default:
			rest = append(rest, n)
		}
	}

	out := ir.NewTestFile(file.Language)
	out.Imports = file.Imports
	out.Body = append(rest, suite)
	return out, nil
}

// suiteName derives a PascalCase "...TestCase" class name from the
// first test function's name, stripping a leading "test"/"test_" the
// way pytest's own discovery convention requires one, and splitting
// the remainder on underscores and camelCase boundaries.
func suiteName(body []ir.Node) string {
	for _, n := range body {
		tc, ok := n.(*ir.TestCase)
		if !ok {
			continue
		}
		name := strings.TrimPrefix(tc.Name, "test_")
		name = strings.TrimPrefix(name, "test")
		name = strings.Trim(name, "_")
		if name == "" {
			break
		}
		var words []string
		for _, part := range strings.Split(name, "_") {
			words = append(words, camelcase.Split(part)...)
		}
		var b strings.Builder
		for _, w := range words {
			if w == "" {
				continue
			}
			b.WriteString(strings.ToUpper(w[:1]))
			b.WriteString(strings.ToLower(w[1:]))
		}
		if b.Len() > 0 {
			return b.String() + "TestCase"
		}
	}
	return "ConvertedTestCase"
}
