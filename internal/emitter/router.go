// Package emitter implements the Emitter Router (spec.md §4.4): the
// legacy/ir-patch/ir-full/auto emission strategies and Policy B's
// per-node baseline patching.
//
// IR emitters are plugin data the Router loads by target name, the way
// gorisk/internal/capability/patternset.go loads a per-language
// PatternSet by key — no dynamic module loading, just an explicit
// lookup table populated at startup (spec.md §9 "Dynamic emitter
// loading -> plugin table").
package emitter

import (
	"strings"

	"github.com/pmclSF/hamlet-sub002/internal/ir"
)

// Strategy selects among the four emission strategies (spec.md §4.3
// options table).
type Strategy string

const (
	StrategyLegacy  Strategy = "legacy"
	StrategyIRPatch Strategy = "ir-patch"
	StrategyIRFull  Strategy = "ir-full"
	StrategyAuto    Strategy = "auto"
)

// EmitNodeResult is the per-node emission outcome.
type EmitNodeResult struct {
	Supported bool
	Code      string
}

// IREmitter is the three-operation contract a target framework may
// implement for structural (non-regex) emission (spec.md §4.4).
// A target with no IR emitter registered always falls back to Emit
// (the regex baseline) — nil is a legitimate, expected value.
type IREmitter interface {
	// EmitNode produces one line's worth of target code for an
	// Assertion/Navigation/MockCall node.
	EmitNode(n ir.Node) EmitNodeResult
	// MatchesBaseline reports whether line (already trimmed by the
	// caller) is the regex-emitter's line corresponding to n.
	MatchesBaseline(line string, n ir.Node) bool
	// EmitFullFile renders the whole file from ir, or returns ("",
	// false) when full-tree emission isn't implemented for this
	// target, signalling fallback to ir-patch.
	EmitFullFile(file *ir.TestFile) (string, bool)
}

// Registry maps target framework name to its IR emitter. Absence of an
// entry models "no IR emitter available" (spec.md §9).
type Registry struct {
	emitters map[string]IREmitter
}

func NewRegistry() *Registry { return &Registry{emitters: make(map[string]IREmitter)} }

func (r *Registry) Register(targetName string, e IREmitter) { r.emitters[targetName] = e }

func (r *Registry) Lookup(targetName string) (IREmitter, bool) {
	e, ok := r.emitters[targetName]
	return e, ok
}

// emittableNodes collects, in IR pre-order, every Assertion/Navigation/
// MockCall node — the node kinds an IR emitter can act on.
func emittableNodes(file *ir.TestFile) []ir.Node {
	var out []ir.Node
	_ = ir.Walk(file, func(n ir.Node) error {
		switch n.(type) {
		case *ir.Assertion, *ir.Navigation, *ir.MockCall:
			out = append(out, n)
		}
		return nil
	})
	return out
}

// PatchResult reports how many nodes ir-patch attempted and how many
// of those replacements actually landed, feeding the scorer's ratio
// boost (spec.md §4.5).
type PatchResult struct {
	Code        string
	Attempted   int
	Succeeded   int
	PerNode     map[ir.Node]bool // which nodes were actually replaced
}

// Patch implements the ir-patch algorithm (Policy B) exactly as pinned
// by spec.md §4.4: collect Assertion/Navigation/MockCall nodes in IR
// pre-order; for each with EmitNode(n).Supported and a non-empty
// OriginalSource, replace the first not-yet-consumed baseline line
// whose trimmed form satisfies MatchesBaseline, preserving the line's
// indentation and (if present) a trailing semicolon.
func Patch(e IREmitter, file *ir.TestFile, baseline string) PatchResult {
	lines := splitKeepingLineEnding(baseline)
	consumed := make([]bool, len(lines))

	result := PatchResult{Attempted: 0, Succeeded: 0, PerNode: make(map[ir.Node]bool)}

	nodes := emittableNodes(file)
	for _, n := range nodes {
		if ir.OriginalSourceOf(n) == "" {
			continue
		}
		res := e.EmitNode(n)
		if !res.Supported {
			continue
		}
		result.Attempted++

		matched := false
		for i, line := range lines {
			if consumed[i] {
				continue
			}
			body, ending := splitLineEnding(line)
			trimmed := strings.TrimSpace(body)
			if trimmed == "" {
				continue
			}
			if !e.MatchesBaseline(trimmed, n) {
				continue
			}

			indent := body[:len(body)-len(strings.TrimLeft(body, " \t"))]
			trailingSemi := ""
			if strings.HasSuffix(strings.TrimRight(body, " \t"), ";") {
				trailingSemi = ";"
			}
			code := strings.TrimSuffix(res.Code, ";")
			lines[i] = indent + code + trailingSemi + ending
			consumed[i] = true
			matched = true
			break
		}
		if matched {
			result.Succeeded++
		}
		result.PerNode[n] = matched
	}

	result.Code = strings.Join(lines, "")
	return result
}

// FullOrPatch implements the ir-full algorithm: invoke EmitFullFile; if
// it declines, fall back to Patch.
func FullOrPatch(e IREmitter, file *ir.TestFile, baseline string) (string, PatchResult, bool) {
	if code, ok := e.EmitFullFile(file); ok {
		return code, PatchResult{}, true
	}
	res := Patch(e, file, baseline)
	return res.Code, res, false
}

// Auto implements the auto algorithm: try ir-full, then ir-patch, then
// the regex baseline, in that order, as the first available strategy
// succeeds.
func Auto(e IREmitter, hasEmitter bool, file *ir.TestFile, baseline string) (string, PatchResult, bool) {
	if !hasEmitter {
		return baseline, PatchResult{}, false
	}
	code, res, usedFull := FullOrPatch(e, file, baseline)
	return code, res, usedFull
}

// splitKeepingLineEnding splits s into lines, each retaining its
// trailing "\n" (or none, for a final partial line), so Patch can
// rejoin losslessly.
func splitKeepingLineEnding(s string) []string {
	if s == "" {
		return nil
	}
	var lines []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			lines = append(lines, s[start:i+1])
			start = i + 1
		}
	}
	if start < len(s) {
		lines = append(lines, s[start:])
	}
	return lines
}

func splitLineEnding(line string) (body, ending string) {
	if strings.HasSuffix(line, "\n") {
		return line[:len(line)-1], "\n"
	}
	return line, ""
}
