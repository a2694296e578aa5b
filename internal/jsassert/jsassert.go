// Package jsassert holds the expect(...).matcher(...) table shared by
// frameworks/jest and frameworks/vitest. Unlike frameworks/cypress and
// frameworks/playwright, which speak genuinely different assertion
// syntaxes (internal/testpatterns carries two regex columns per kind),
// Jest and Vitest's expect API is the same call shape, so one compiled
// pattern per matcher serves both plugins.
//
// Grounded on internal/testpatterns' embedded-YAML-table idiom, itself
// grounded on gorisk/internal/capability/patternset.go.
package jsassert

import (
	_ "embed"
	"regexp"

	"gopkg.in/yaml.v3"

	"github.com/pmclSF/hamlet-sub002/internal/ir"
)

//go:embed patterns.yaml
var raw []byte

// Entry pairs one assertion kind with the Jest/Vitest matcher name
// that expresses it, e.g. kind "strictEqual" <-> matcher "toBe".
// Multiple entries may share a kind (toContain/toContainEqual both
// mean AssertContains); the first Table entry wins when rendering.
type Entry struct {
	Kind    ir.AssertionKind `yaml:"kind"`
	Matcher string           `yaml:"matcher"`

	Re *regexp.Regexp `yaml:"-"`
}

var Table []Entry

func init() {
	var raws []struct {
		Kind    string `yaml:"kind"`
		Matcher string `yaml:"matcher"`
	}
	if err := yaml.Unmarshal(raw, &raws); err != nil {
		panic("jsassert: invalid embedded patterns.yaml: " + err.Error())
	}
	Table = make([]Entry, 0, len(raws))
	for _, r := range raws {
		pattern := `^expect\(\s*(.*?)\s*\)\.` + regexp.QuoteMeta(r.Matcher) + `\(\s*(.*?)\s*\)`
		Table = append(Table, Entry{
			Kind:    ir.AssertionKind(r.Kind),
			Matcher: r.Matcher,
			Re:      regexp.MustCompile(pattern),
		})
	}
}

// MatcherFor returns the matcher name this package renders for kind,
// i.e. the first Table entry with that kind.
func MatcherFor(kind ir.AssertionKind) (string, bool) {
	for _, e := range Table {
		if e.Kind == kind {
			return e.Matcher, true
		}
	}
	return "", false
}

// Match tries every entry's pattern against line, returning the
// matching kind, the expect() subject expression, and the matcher's
// argument expression (empty for zero-arg matchers like toBeTruthy).
func Match(line string) (kind ir.AssertionKind, subject, expected string, ok bool) {
	for _, e := range Table {
		if m := e.Re.FindStringSubmatch(line); m != nil {
			return e.Kind, m[1], m[2], true
		}
	}
	return ir.AssertUnknown, "", "", false
}
