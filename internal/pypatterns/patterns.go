// Package pypatterns holds the unittest self.assertX(...) method
// table used by frameworks/unittest's parser and renderer, loaded
// once from embedded YAML the same way
// internal/testpatterns, internal/jsassert, and internal/junitpatterns
// load theirs.
//
// Grounded on gorisk/internal/capability/patternset.go's embedded,
// validated-at-load pattern tables.
package pypatterns

import (
	_ "embed"
	"regexp"

	"gopkg.in/yaml.v3"

	"github.com/pmclSF/hamlet-sub002/internal/ir"
)

//go:embed patterns.yaml
var raw []byte

// Entry pairs an assertion kind with the unittest static method name
// that expresses it.
type Entry struct {
	Kind   ir.AssertionKind `yaml:"kind"`
	Method string           `yaml:"method"`
}

var Table []Entry

func init() {
	if err := yaml.Unmarshal(raw, &Table); err != nil {
		panic("pypatterns: invalid embedded patterns.yaml: " + err.Error())
	}
}

// MethodFor returns the unittest method name for kind.
func MethodFor(kind ir.AssertionKind) (string, bool) {
	for _, e := range Table {
		if e.Kind == kind {
			return e.Method, true
		}
	}
	return "", false
}

// selfCallRe matches `self.method(args)`, built lazily per method name
// since it varies by table entry.
func selfCallRe(method string) *regexp.Regexp {
	return regexp.MustCompile(`^self\.` + regexp.QuoteMeta(method) + `\(\s*(.*?)\s*\)\s*$`)
}

// Match tries every table entry's self.method(...) pattern against
// line, returning the matching kind and its comma-split arguments
// (does not split on commas nested inside parens/strings — "simple
// format only" per spec.md §9, matching internal/junitpatterns).
func Match(line string) (kind ir.AssertionKind, args []string, ok bool) {
	for _, e := range Table {
		m := selfCallRe(e.Method).FindStringSubmatch(line)
		if m == nil {
			continue
		}
		return e.Kind, splitArgs(m[1]), true
	}
	return ir.AssertUnknown, nil, false
}

func splitArgs(s string) []string {
	if s == "" {
		return nil
	}
	var args []string
	depth := 0
	start := 0
	for i, r := range s {
		switch r {
		case '(', '[', '{':
			depth++
		case ')', ']', '}':
			depth--
		case ',':
			if depth == 0 {
				args = append(args, trimSpace(s[start:i]))
				start = i + 1
			}
		}
	}
	args = append(args, trimSpace(s[start:]))
	return args
}

func trimSpace(s string) string {
	start, end := 0, len(s)
	for start < end && (s[start] == ' ' || s[start] == '\t') {
		start++
	}
	for end > start && (s[end-1] == ' ' || s[end-1] == '\t') {
		end--
	}
	return s[start:end]
}
