// Package pyparse implements the shared indentation-aware scanner
// frameworks/pytest and frameworks/unittest build their Parse
// functions from: rather than Java/JS's brace tracking, each open
// class/def block is tracked by the indentation of its own header
// line, and popped once a later line dedents to or past that level.
// Every other line is handed to a plugin-supplied LineClassifier.
//
// Grounded on internal/javaparse and internal/jsparse's identical
// split between scanning engine and per-language pattern data, itself
// grounded on gorisk/internal/capability/patternset.go. Deliberately
// line-oriented, not an AST, per spec.md §1's Non-goal of full
// syntactic parsing.
package pyparse

import (
	"regexp"
	"strings"

	"github.com/pmclSF/hamlet-sub002/internal/ir"
)

// LineClassifier lets a framework plugin recognize its own assertion
// and mock-call statements.
type LineClassifier struct {
	Assertion func(line string) (*ir.Assertion, bool)
	MockCall  func(line string) (*ir.MockCall, bool)
}

// Roles tells Parse which bare function name marks a lifecycle hook
// and which decorator prefixes mark a test skipped.
type Roles struct {
	Hooks          map[string]ir.HookType
	SkipDecorators []string
}

var (
	classRe     = regexp.MustCompile(`^class\s+(\w+)\s*(?:\(([^)]*)\))?\s*:`)
	defRe       = regexp.MustCompile(`^(?:async\s+)?def\s+(\w+)\s*\(([^)]*)\)\s*:`)
	importRe    = regexp.MustCompile(`^(?:import\s+([\w.]+)|from\s+([\w.]+)\s+import\s+)`)
	decoratorRe = regexp.MustCompile(`^@([\w.]+)`)
)

type frame struct {
	kind         string // "suite" | "case" | "hook" | "other"
	node         ir.Node
	headerIndent int
}

// Parse scans src line by line, building a TestFile for language.
func Parse(src, language string, roles Roles, classify LineClassifier) *ir.TestFile {
	file := ir.NewTestFile(language)
	var stack []frame
	var pending []string // raw decorator lines, reset at each def/class

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
			} else if h, ok := n.(*ir.Hook); ok {
				v.Hooks = append(v.Hooks, h)
			}
		case *ir.TestCase:
			v.Body = append(v.Body, n)
		case *ir.Hook:
			v.Body = append(v.Body, n)
		}
	}

	hasSkipDecorator := func() bool {
		for _, p := range pending {
			for _, prefix := range roles.SkipDecorators {
				if strings.HasPrefix(p, prefix) {
					return true
				}
			}
		}
		return false
	}

	popTo := func(indent int) {
		for len(stack) > 0 && indent <= stack[len(stack)-1].headerIndent {
			stack = stack[:len(stack)-1]
		}
	}

	for _, raw := range strings.Split(src, "\n") {
		trimmed := strings.TrimSpace(raw)
		if trimmed == "" {
			continue
		}
		indent := leadingWidth(raw)
		popTo(indent)

		switch {
		case decoratorRe.MatchString(trimmed):
			pending = append(pending, trimmed)
			continue

		case importRe.MatchString(trimmed):
			imp := ir.NewImportStatement(importSource(trimmed))
			ir.SetOriginalSource(imp, raw)
			file.Imports = append(file.Imports, imp)
			pending = nil
			continue

		case classRe.MatchString(trimmed):
			m := classRe.FindStringSubmatch(trimmed)
			suite := ir.NewTestSuite(m[1])
			ir.SetOriginalSource(suite, raw)
			appendNode(suite)
			stack = append(stack, frame{kind: "suite", node: suite, headerIndent: indent})
			pending = nil
			continue

		case defRe.MatchString(trimmed):
			m := defRe.FindStringSubmatch(trimmed)
			name := m[1]
			switch {
			case strings.HasPrefix(name, "test"):
				tc := ir.NewTestCase(name)
				ir.SetOriginalSource(tc, raw)
				if hasSkipDecorator() {
					tc.Modifiers = append(tc.Modifiers, ir.NewModifier(ir.ModSkip))
				}
				appendNode(tc)
				stack = append(stack, frame{kind: "case", node: tc, headerIndent: indent})
			default:
				if hook, ok := roles.Hooks[name]; ok {
					h := ir.NewHook(hook)
					ir.SetOriginalSource(h, raw)
					appendNode(h)
					stack = append(stack, frame{kind: "hook", node: h, headerIndent: indent})
				} else {
					// non-test, non-hook def (a fixture or plain
					// helper): its body is dropped from the IR the
					// same way javaparse drops a non-@Test method's
					// body — not modeled, not a test construct.
					stack = append(stack, frame{kind: "other", node: ir.NewRawCode(trimmed), headerIndent: indent})
				}
			}
			pending = nil
			continue
		}

		if len(stack) == 0 || stack[len(stack)-1].kind == "other" {
			continue
		}

		if a, ok := classify.Assertion(trimmed); ok {
			ir.SetOriginalSource(a, raw)
			appendNode(a)
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

// leadingWidth counts raw's leading indentation, expanding tabs to the
// next multiple of 8 the way Python's own tokenizer does for mixed
// indentation — "simple format only" per spec.md §9, not a validator.
func leadingWidth(raw string) int {
	n := 0
	for _, r := range raw {
		switch r {
		case ' ':
			n++
		case '\t':
			n += 8 - (n % 8)
		default:
			return n
		}
	}
	return n
}

func importSource(trimmed string) string {
	m := importRe.FindStringSubmatch(trimmed)
	if m[1] != "" {
		return m[1]
	}
	return m[2]
}
