// Package junitpatterns holds the JUnit4<->JUnit5 annotation-rename
// table and the static-assert-method table, both loaded from embedded
// YAML the way internal/testpatterns and internal/jsassert are: plugin
// data, not per-framework Go code, so frameworks/junit4 and
// frameworks/junit5 share one source of truth for
// "@Before means beforeEach" instead of each hardcoding half of it.
//
// Grounded on gorisk/internal/capability/patternset.go's embedded,
// validated-at-load pattern tables.
package junitpatterns

import (
	_ "embed"
	"regexp"

	"gopkg.in/yaml.v3"

	"github.com/pmclSF/hamlet-sub002/internal/ir"
)

//go:embed annotations.yaml
var rawAnnotations []byte

//go:embed roles.yaml
var rawRoles []byte

//go:embed assertions.yaml
var rawAssertions []byte

// AnnotationEntry pairs one lifecycle hook with its JUnit4 and JUnit5
// annotation names (without the leading '@').
type AnnotationEntry struct {
	Hook   ir.HookType `yaml:"hook"`
	JUnit4 string      `yaml:"junit4"`
	JUnit5 string      `yaml:"junit5"`
}

// RoleEntry pairs a non-hook annotation role (test method marker,
// skip marker) with its per-version name.
type RoleEntry struct {
	Role   string `yaml:"role"`
	JUnit4 string `yaml:"junit4"`
	JUnit5 string `yaml:"junit5"`
}

// AssertEntry pairs an assertion kind with the static-import assert
// method name shared by both JUnit versions.
type AssertEntry struct {
	Kind   ir.AssertionKind `yaml:"kind"`
	Method string           `yaml:"method"`
}

var (
	Annotations []AnnotationEntry
	Roles       []RoleEntry
	Assertions  []AssertEntry
)

func init() {
	if err := yaml.Unmarshal(rawAnnotations, &Annotations); err != nil {
		panic("junitpatterns: invalid embedded annotations.yaml: " + err.Error())
	}
	if err := yaml.Unmarshal(rawRoles, &Roles); err != nil {
		panic("junitpatterns: invalid embedded roles.yaml: " + err.Error())
	}
	if err := yaml.Unmarshal(rawAssertions, &Assertions); err != nil {
		panic("junitpatterns: invalid embedded assertions.yaml: " + err.Error())
	}
}

// HookAnnotationNames returns the version column ("junit4" or
// "junit5") of Annotations as annotation-name -> HookType.
func HookAnnotationNames(version string) map[string]ir.HookType {
	out := make(map[string]ir.HookType, len(Annotations))
	for _, e := range Annotations {
		name := e.JUnit4
		if version == "junit5" {
			name = e.JUnit5
		}
		out[name] = e.Hook
	}
	return out
}

// HookAnnotationFor renders the version-appropriate annotation name
// for a hook type, the reverse of HookAnnotationNames.
func HookAnnotationFor(version string, hook ir.HookType) (string, bool) {
	for _, e := range Annotations {
		if e.Hook != hook {
			continue
		}
		if version == "junit5" {
			return e.JUnit5, true
		}
		return e.JUnit4, true
	}
	return "", false
}

// RoleName returns the version-appropriate annotation name for role
// ("test" or "skip").
func RoleName(version, role string) (string, bool) {
	for _, e := range Roles {
		if e.Role != role {
			continue
		}
		if version == "junit5" {
			return e.JUnit5, true
		}
		return e.JUnit4, true
	}
	return "", false
}

// AssertMethodFor returns the static-assert method name for kind.
func AssertMethodFor(kind ir.AssertionKind) (string, bool) {
	for _, e := range Assertions {
		if e.Kind == kind {
			return e.Method, true
		}
	}
	return "", false
}

// assertCallRe matches `methodName(args);` once methodName is known,
// built lazily per call since the method name varies by entry.
func assertCallRe(method string) *regexp.Regexp {
	return regexp.MustCompile(`^` + regexp.QuoteMeta(method) + `\(\s*(.*?)\s*\)\s*;?\s*$`)
}

// MatchAssertion tries every known assert method's call pattern
// against line, splitting its comma-separated arguments (does not
// attempt to split on commas nested inside parens/strings, matching
// spec.md's "simple format only" stance elsewhere).
func MatchAssertion(line string) (kind ir.AssertionKind, args []string, ok bool) {
	for _, e := range Assertions {
		re := assertCallRe(e.Method)
		m := re.FindStringSubmatch(line)
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
