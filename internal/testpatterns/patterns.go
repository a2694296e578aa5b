// Package testpatterns holds the Cypress<->Playwright assertion
// pattern table shared by frameworks/cypress and frameworks/playwright,
// loaded once from an embedded YAML file the way
// gorisk/internal/capability/patternset.go loads its per-language
// capability patterns: data, not code, so adding an assertion kind
// never touches either plugin's Go source.
package testpatterns

import (
	_ "embed"
	"regexp"

	"gopkg.in/yaml.v3"

	"github.com/pmclSF/hamlet-sub002/internal/ir"
)

//go:embed patterns.yaml
var raw []byte

// Entry pairs one assertion kind with its Cypress and Playwright
// regex forms. Subject is captured by the first submatch group when
// the pattern has one; patterns with no subject (page-level
// assertions such as url.equal) leave it absent.
type Entry struct {
	Kind       ir.AssertionKind `yaml:"kind"`
	Cypress    string           `yaml:"cypress"`
	Playwright string           `yaml:"playwright"`

	CypressRe    *regexp.Regexp `yaml:"-"`
	PlaywrightRe *regexp.Regexp `yaml:"-"`
}

// Table is the parsed, compiled pattern list, built once at package
// init time. A malformed embedded file is a programmer error, not a
// runtime condition to recover from, so init panics the way
// gorisk/internal/capability/patternset.go's MustLoad does for its own
// embedded tables.
var Table []Entry

func init() {
	var raws []struct {
		Kind       string `yaml:"kind"`
		Cypress    string `yaml:"cypress"`
		Playwright string `yaml:"playwright"`
	}
	if err := yaml.Unmarshal(raw, &raws); err != nil {
		panic("testpatterns: invalid embedded patterns.yaml: " + err.Error())
	}
	Table = make([]Entry, 0, len(raws))
	for _, r := range raws {
		Table = append(Table, Entry{
			Kind:         ir.AssertionKind(r.Kind),
			Cypress:      r.Cypress,
			Playwright:   r.Playwright,
			CypressRe:    regexp.MustCompile(r.Cypress),
			PlaywrightRe: regexp.MustCompile(r.Playwright),
		})
	}
}

// ByKind returns the table entry for kind, if any.
func ByKind(kind ir.AssertionKind) (Entry, bool) {
	for _, e := range Table {
		if e.Kind == kind {
			return e, true
		}
	}
	return Entry{}, false
}

// subjectOf returns m's first capture group, or "" when the pattern
// captured none (page-level assertions).
func subjectOf(m []string) string {
	if len(m) > 1 {
		return m[1]
	}
	return ""
}

// MatchCypress tries every entry's Cypress pattern against line,
// returning the matching kind and captured subject.
func MatchCypress(line string) (ir.AssertionKind, string, bool) {
	for _, e := range Table {
		if m := e.CypressRe.FindStringSubmatch(line); m != nil {
			return e.Kind, subjectOf(m), true
		}
	}
	return ir.AssertUnknown, "", false
}

// MatchPlaywright tries every entry's Playwright pattern against line,
// returning the matching kind and captured subject.
func MatchPlaywright(line string) (ir.AssertionKind, string, bool) {
	for _, e := range Table {
		if m := e.PlaywrightRe.FindStringSubmatch(line); m != nil {
			return e.Kind, subjectOf(m), true
		}
	}
	return ir.AssertUnknown, "", false
}
