package migration

import "strings"

// RenamedPath applies the output filename convention (spec.md §6
// "Output filename convention"): Cypress's `.cy.*` becomes Playwright's
// `.spec.*` and vice versa; `.py`/`.java` are preserved; everything
// else is left untouched.
func RenamedPath(path, sourceFramework, targetFramework string) string {
	switch {
	case sourceFramework == "cypress" && targetFramework == "playwright":
		return replaceDoubleExt(path, ".cy.", ".spec.")
	case sourceFramework == "playwright" && targetFramework == "cypress":
		return replaceDoubleExt(path, ".spec.", ".cy.")
	default:
		return path
	}
}

// replaceDoubleExt replaces the first occurrence of from immediately
// preceding the file's final extension (e.g. ".cy.ts" -> ".spec.ts"),
// leaving every other occurrence of the substring untouched.
func replaceDoubleExt(path, from, to string) string {
	idx := strings.LastIndex(path, from)
	if idx < 0 {
		return path
	}
	rest := path[idx+len(from):]
	if strings.Contains(rest, "/") {
		return path
	}
	return path[:idx] + to + rest
}
