// Package jsparse implements the shared line-oriented parser every
// JavaScript-family framework plugin (cypress, playwright, jest,
// vitest) builds its Parse function from: a brace-tracking scan that
// recognizes describe/it/test/hook block openings by regex and hands
// every other line to a plugin-supplied LineClassifier so each
// framework only has to own its own call-pattern table, not a second
// copy of the block-nesting state machine.
//
// Grounded on gorisk/internal/capability/patternset.go's idea of
// separating the scanning engine from the per-language pattern data,
// and on spec.md §1's explicit Non-goal of full syntactic parsing —
// this is deliberately line-oriented, not an AST.
package jsparse

import (
	"regexp"
	"strings"

	"github.com/pmclSF/hamlet-sub002/internal/ir"
)

// LineClassifier lets a framework plugin recognize its own assertion,
// navigation, and mock-call call patterns. Each func returns ok=false
// when line does not match its pattern.
type LineClassifier struct {
	Assertion  func(line string) (*ir.Assertion, bool)
	Navigation func(line string) (*ir.Navigation, bool)
	MockCall   func(line string) (*ir.MockCall, bool)
}

var (
	describeRe = regexp.MustCompile(`^\s*describe(?:\.(?:only|skip))?\(\s*['"` + "`" + `]([^'"` + "`" + `]*)['"` + "`" + `]`)
	itRe       = regexp.MustCompile(`^\s*(?:it|test)(?:\.(?:only|skip))?\(\s*['"` + "`" + `]([^'"` + "`" + `]*)['"` + "`" + `]`)
	hookRe     = regexp.MustCompile(`^\s*(beforeEach|afterEach|beforeAll|afterAll)\s*\(`)
	importRe   = regexp.MustCompile(`^\s*import\s+.*\bfrom\s+['"]([^'"]+)['"]`)
	closeRe    = regexp.MustCompile(`^\s*\}\s*\)?\s*;?\s*$`)
)

type frame struct {
	kind string // "suite" | "case" | "hook"
	node ir.Node
}

// Parse scans src line by line, building a TestFile for language.
// Every recognized construct is appended to the innermost open
// suite/case/hook; anything the classifier does not recognize, inside
// a test case or hook body, becomes an Unconvertible RawCode line so
// no source text is silently dropped (spec.md §7).
func Parse(src, language string, classify LineClassifier) *ir.TestFile {
	file := ir.NewTestFile(language)
	var stack []frame

	appendNode := func(n ir.Node) {
		if len(stack) == 0 {
			file.Body = append(file.Body, n)
			return
		}
		top := stack[len(stack)-1]
		switch v := top.node.(type) {
		case *ir.TestSuite:
			if tc, ok := n.(*ir.TestCase); ok {
				v.Tests = append(v.Tests, tc)
			} else if ts, ok := n.(*ir.TestSuite); ok {
				v.Tests = append(v.Tests, ts)
			} else if h, ok := n.(*ir.Hook); ok {
				v.Hooks = append(v.Hooks, h)
			}
		case *ir.TestCase:
			v.Body = append(v.Body, n)
		case *ir.Hook:
			v.Body = append(v.Body, n)
		}
	}

	for _, raw := range strings.Split(src, "\n") {
		trimmed := strings.TrimSpace(raw)
		if trimmed == "" {
			continue
		}

		switch {
		case describeRe.MatchString(raw):
			m := describeRe.FindStringSubmatch(raw)
			suite := ir.NewTestSuite(m[1])
			ir.SetOriginalSource(suite, raw)
			appendNode(suite)
			stack = append(stack, frame{kind: "suite", node: suite})
			continue

		case itRe.MatchString(raw):
			m := itRe.FindStringSubmatch(raw)
			tc := ir.NewTestCase(m[1])
			ir.SetOriginalSource(tc, raw)
			appendNode(tc)
			stack = append(stack, frame{kind: "case", node: tc})
			continue

		case hookRe.MatchString(raw):
			m := hookRe.FindStringSubmatch(raw)
			hook := ir.NewHook(ir.HookType(m[1]))
			ir.SetOriginalSource(hook, raw)
			appendNode(hook)
			stack = append(stack, frame{kind: "hook", node: hook})
			continue

		case importRe.MatchString(raw):
			m := importRe.FindStringSubmatch(raw)
			imp := ir.NewImportStatement(m[1])
			ir.SetOriginalSource(imp, raw)
			file.Imports = append(file.Imports, imp)
			continue

		case closeRe.MatchString(raw) && len(stack) > 0:
			stack = stack[:len(stack)-1]
			continue
		}

		if len(stack) == 0 {
			continue // top-level boilerplate (braces, blank config) outside any block
		}

		if a, ok := classify.Assertion(trimmed); ok {
			ir.SetOriginalSource(a, raw)
			appendNode(a)
			continue
		}
		if n, ok := classify.Navigation(trimmed); ok {
			ir.SetOriginalSource(n, raw)
			appendNode(n)
			continue
		}
		if mc, ok := classify.MockCall(trimmed); ok {
			ir.SetOriginalSource(mc, raw)
			appendNode(mc)
			continue
		}

		appendNode(ir.NewRawCode(trimmed))
	}

	return file
}
