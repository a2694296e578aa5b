package migration

import "testing"

func TestExtractImportSpecifiersFromStatement(t *testing.T) {
	src := `import { test, expect } from './helpers.cy.js';`
	got := ExtractImportSpecifiers(src)
	if len(got) != 1 || got[0] != "./helpers.cy.js" {
		t.Fatalf("ExtractImportSpecifiers = %v, want [./helpers.cy.js]", got)
	}
}

func TestExtractImportSpecifiersBareImport(t *testing.T) {
	got := ExtractImportSpecifiers(`import './setup.js';`)
	if len(got) != 1 || got[0] != "./setup.js" {
		t.Fatalf("ExtractImportSpecifiers = %v, want [./setup.js]", got)
	}
}

func TestExtractImportSpecifiersRequire(t *testing.T) {
	got := ExtractImportSpecifiers(`const helper = require("../lib/helper");`)
	if len(got) != 1 || got[0] != "../lib/helper" {
		t.Fatalf("ExtractImportSpecifiers = %v, want [../lib/helper]", got)
	}
}

func TestExtractImportSpecifiersDynamicImport(t *testing.T) {
	got := ExtractImportSpecifiers(`const mod = await import('./lazy.js');`)
	if len(got) != 1 || got[0] != "./lazy.js" {
		t.Fatalf("ExtractImportSpecifiers = %v, want [./lazy.js]", got)
	}
}

func TestExtractImportSpecifiersReExport(t *testing.T) {
	got := ExtractImportSpecifiers(`export * from './matchers.js';`)
	if len(got) != 1 || got[0] != "./matchers.js" {
		t.Fatalf("ExtractImportSpecifiers = %v, want [./matchers.js]", got)
	}
}

func TestExtractImportSpecifiersIgnoresCommentedOutImports(t *testing.T) {
	src := "// import './dead.js';\nimport './live.js';"
	got := ExtractImportSpecifiers(src)
	if len(got) != 1 || got[0] != "./live.js" {
		t.Fatalf("ExtractImportSpecifiers = %v, want only [./live.js]", got)
	}
}

func TestExtractImportSpecifiersIgnoresBlockComments(t *testing.T) {
	src := "/* import './dead.js'; */\nimport './live.js';"
	got := ExtractImportSpecifiers(src)
	if len(got) != 1 || got[0] != "./live.js" {
		t.Fatalf("ExtractImportSpecifiers = %v, want only [./live.js]", got)
	}
}

func TestExtractImportSpecifiersLeavesURLInStringUntouched(t *testing.T) {
	src := `const url = "https://example.com"; import './live.js';`
	got := ExtractImportSpecifiers(src)
	if len(got) != 1 || got[0] != "./live.js" {
		t.Fatalf("ExtractImportSpecifiers = %v, want only [./live.js]", got)
	}
}

func TestIsRelative(t *testing.T) {
	cases := map[string]bool{
		"./helper":  true,
		"../helper": true,
		"lodash":    false,
		"@scope/x":  false,
	}
	for spec, want := range cases {
		if got := IsRelative(spec); got != want {
			t.Fatalf("IsRelative(%q) = %v, want %v", spec, got, want)
		}
	}
}

func TestMaskCommentsPreservesLength(t *testing.T) {
	src := "foo() // trailing comment\n/* block\ncomment */\nbar()"
	masked := maskComments(src)
	if len(masked) != len(src) {
		t.Fatalf("len(masked) = %d, want %d", len(masked), len(src))
	}
}

func TestMaskCommentsLeavesStringsAlone(t *testing.T) {
	src := `const x = "// not a comment";`
	masked := maskComments(src)
	if masked != src {
		t.Fatalf("maskComments(%q) = %q, want unchanged", src, masked)
	}
}
