package migration

import "testing"

func TestRewriteImportsAppliesExactRename(t *testing.T) {
	src := `import { login } from './helpers.cy.js';`
	renames := map[string]string{"./helpers.cy.js": "./helpers.spec.js"}
	got := RewriteImports(src, renames)
	want := `import { login } from './helpers.spec.js';`
	if got != want {
		t.Fatalf("RewriteImports = %q, want %q", got, want)
	}
}

func TestRewriteImportsMatchesWithoutExtension(t *testing.T) {
	src := `import { login } from './helpers.cy';`
	renames := map[string]string{"./helpers.cy.js": "./helpers.spec.js"}
	got := RewriteImports(src, renames)
	want := `import { login } from './helpers.spec.js';`
	if got != want {
		t.Fatalf("RewriteImports = %q, want %q", got, want)
	}
}

func TestRewriteImportsLeavesUnmappedSpecifiersUntouched(t *testing.T) {
	src := `import { expect } from 'vitest';`
	renames := map[string]string{"./helpers.cy.js": "./helpers.spec.js"}
	got := RewriteImports(src, renames)
	if got != src {
		t.Fatalf("RewriteImports = %q, want unchanged", got)
	}
}

func TestRewriteImportsIgnoresMatchesInsideComments(t *testing.T) {
	src := "// import './helpers.cy.js';\nimport './helpers.cy.js';"
	renames := map[string]string{"./helpers.cy.js": "./helpers.spec.js"}
	got := RewriteImports(src, renames)
	want := "// import './helpers.cy.js';\nimport './helpers.spec.js';"
	if got != want {
		t.Fatalf("RewriteImports = %q, want %q", got, want)
	}
}

func TestRewriteImportsNoRenamesReturnsContentUnchanged(t *testing.T) {
	src := `import './helpers.cy.js';`
	if got := RewriteImports(src, nil); got != src {
		t.Fatalf("RewriteImports = %q, want unchanged", got)
	}
}

func TestRewriteImportsHandlesRequireCalls(t *testing.T) {
	src := `const helpers = require('./helpers.cy.js');`
	renames := map[string]string{"./helpers.cy.js": "./helpers.spec.js"}
	got := RewriteImports(src, renames)
	want := `const helpers = require('./helpers.spec.js');`
	if got != want {
		t.Fatalf("RewriteImports = %q, want %q", got, want)
	}
}
