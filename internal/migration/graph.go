package migration

import (
	"path"
	"path/filepath"
	"sort"
	"strings"
)

// DependencyGraph mirrors spec.md §3's "Dependency graph" data model.
// Nodes are the full set of scanned file paths; Edges maps a path to
// the resolved-relative-import paths it depends on (target of the
// import, i.e. the file it imports).
type DependencyGraph struct {
	Nodes  map[string]bool
	Edges  map[string][]string
	Cycles [][]string
}

var resolveExtensions = []string{"", ".ts", ".tsx", ".js", ".jsx", ".mjs", ".cjs", ".py"}
var indexBasenames = []string{"index.ts", "index.tsx", "index.js", "index.jsx"}

// ResolveImport resolves a relative specifier seen in fromFile against
// the known project file set: try the path directly, then with each
// common extension appended, then as `<dir>/index.*` (spec.md §4.6
// step 4).
func ResolveImport(fromFile, specifier string, known map[string]bool) (string, bool) {
	if !IsRelative(specifier) {
		return "", false
	}
	base := path.Join(filepath.ToSlash(filepath.Dir(fromFile)), specifier)

	for _, ext := range resolveExtensions {
		candidate := base + ext
		if known[candidate] {
			return candidate, true
		}
	}
	for _, idx := range indexBasenames {
		candidate := base + "/" + idx
		if known[candidate] {
			return candidate, true
		}
	}
	return "", false
}

// BuildGraph extracts import specifiers from each (path, content) pair,
// resolves the relative ones against the known node set, and records
// an edge for each resolution. Unresolved relative imports are dropped
// with a warning (spec.md §7 UnresolvedImport), never an error.
func BuildGraph(files map[string]string) (*DependencyGraph, []string) {
	g := &DependencyGraph{
		Nodes: make(map[string]bool, len(files)),
		Edges: make(map[string][]string),
	}
	known := make(map[string]bool, len(files))
	for p := range files {
		slash := filepath.ToSlash(p)
		g.Nodes[slash] = true
		known[slash] = true
	}

	var warnings []string
	for p, content := range files {
		slashP := filepath.ToSlash(p)
		for _, spec := range ExtractImportSpecifiers(content) {
			if !IsRelative(spec) {
				continue
			}
			resolved, ok := ResolveImport(slashP, spec, known)
			if !ok {
				warnings = append(warnings, "unresolved import "+spec+" in "+slashP)
				continue
			}
			g.Edges[slashP] = append(g.Edges[slashP], resolved)
		}
		sort.Strings(g.Edges[slashP])
	}

	g.Cycles = detectCycles(g)
	sort.Strings(warnings)
	return g, warnings
}

type color int

const (
	white color = iota
	grey
	black
)

// detectCycles runs a coloured (white/grey/black) DFS over g, reporting
// every cycle found as a reported list of paths, never erroring
// (spec.md §4.6 step 4: "cycles are reported, not errors").
func detectCycles(g *DependencyGraph) [][]string {
	colors := make(map[string]color, len(g.Nodes))
	var cycles [][]string
	var stack []string

	nodes := make([]string, 0, len(g.Nodes))
	for n := range g.Nodes {
		nodes = append(nodes, n)
	}
	sort.Strings(nodes)

	var visit func(node string)
	visit = func(node string) {
		colors[node] = grey
		stack = append(stack, node)

		edges := append([]string(nil), g.Edges[node]...)
		sort.Strings(edges)
		for _, next := range edges {
			switch colors[next] {
			case white:
				visit(next)
			case grey:
				cycles = append(cycles, extractCycle(stack, next))
			case black:
				// already fully explored, no cycle through it
			}
		}

		stack = stack[:len(stack)-1]
		colors[node] = black
	}

	for _, n := range nodes {
		if colors[n] == white {
			visit(n)
		}
	}
	return cycles
}

// extractCycle returns the portion of stack from the first occurrence
// of target to the end, plus target again to close the loop.
func extractCycle(stack []string, target string) []string {
	for i, n := range stack {
		if n == target {
			cycle := append([]string(nil), stack[i:]...)
			return append(cycle, target)
		}
	}
	return []string{target}
}

// describeCycles renders cycles for diagnostics.
func describeCycles(cycles [][]string) string {
	var parts []string
	for _, c := range cycles {
		parts = append(parts, strings.Join(c, " -> "))
	}
	return strings.Join(parts, "; ")
}
