package migration

import "sort"

// TopologicalSort orders g's nodes so that every file appears after
// the files it imports, via Kahn's algorithm with a lexicographic
// tie-break: among nodes currently at in-degree zero, the
// lexicographically smallest is emitted next. When a cycle leaves no
// zero-in-degree node, the remaining lexicographically smallest node
// is forced out to keep the sort total (spec.md §4.6 step 5).
//
// g.Edges[p] lists the dependencies p imports, so the precedence graph
// this function sorts runs the other way: a dependency must precede
// every file that imports it.
func TopologicalSort(g *DependencyGraph) []string {
	inDegree := make(map[string]int, len(g.Nodes))
	successors := make(map[string][]string, len(g.Nodes))
	for n := range g.Nodes {
		inDegree[n] = 0
	}
	for p, deps := range g.Edges {
		for _, d := range deps {
			if !g.Nodes[d] {
				continue
			}
			inDegree[p]++
			successors[d] = append(successors[d], p)
		}
	}
	for d := range successors {
		sort.Strings(successors[d])
	}

	remaining := make(map[string]bool, len(g.Nodes))
	for n := range g.Nodes {
		remaining[n] = true
	}

	var order []string
	for len(remaining) > 0 {
		next := pickZeroInDegree(remaining, inDegree)
		if next == "" {
			next = pickLexicographicallySmallest(remaining)
		}

		order = append(order, next)
		delete(remaining, next)
		for _, s := range successors[next] {
			if remaining[s] {
				inDegree[s]--
			}
		}
	}
	return order
}

func pickZeroInDegree(remaining map[string]bool, inDegree map[string]int) string {
	candidates := make([]string, 0, len(remaining))
	for n := range remaining {
		if inDegree[n] <= 0 {
			candidates = append(candidates, n)
		}
	}
	if len(candidates) == 0 {
		return ""
	}
	sort.Strings(candidates)
	return candidates[0]
}

func pickLexicographicallySmallest(remaining map[string]bool) string {
	candidates := make([]string, 0, len(remaining))
	for n := range remaining {
		candidates = append(candidates, n)
	}
	sort.Strings(candidates)
	return candidates[0]
}
