package migration

import (
	"path/filepath"
	"regexp"
	"strings"
)

// FileKind is a file's role in the project (spec.md §4.6 step 3).
type FileKind string

const (
	KindTest    FileKind = "test"
	KindHelper  FileKind = "helper"
	KindConfig  FileKind = "config"
	KindFixture FileKind = "fixture"
	KindTypeDef FileKind = "type-def"
	KindOther   FileKind = "other"
)

// Classification is one file's classify-stage result.
type Classification struct {
	Kind      FileKind
	Framework string // best-effort guess, "" if unclear
}

var testNameRe = regexp.MustCompile(`\.(test|spec|cy)\.[a-zA-Z]+$`)

var configNames = []string{
	"jest.config", "cypress.config", "playwright.config", "vitest.config",
	".mocharc", "pytest.ini", "testng.xml", "build.gradle", "pom.xml",
}

// Classify assigns path a FileKind from its name and, where that's
// ambiguous, its content (spec.md §6 "Input files").
func Classify(path, content string) Classification {
	base := filepath.Base(path)
	lower := strings.ToLower(base)

	if strings.HasSuffix(lower, ".d.ts") {
		return Classification{Kind: KindTypeDef}
	}
	if testNameRe.MatchString(base) || strings.Contains(filepath.ToSlash(path), "__tests__/") {
		return Classification{Kind: KindTest, Framework: guessFramework(path, content)}
	}
	for _, cfg := range configNames {
		if strings.HasPrefix(lower, cfg) {
			return Classification{Kind: KindConfig}
		}
	}
	if strings.Contains(filepath.ToSlash(path), "fixtures/") {
		return Classification{Kind: KindFixture}
	}
	if looksLikeHelper(base, content) {
		return Classification{Kind: KindHelper, Framework: guessFramework(path, content)}
	}
	return Classification{Kind: KindOther}
}

func looksLikeHelper(base, content string) bool {
	lower := strings.ToLower(base)
	if strings.Contains(lower, "helper") || strings.Contains(lower, "setup") || strings.Contains(lower, "util") {
		return true
	}
	return strings.Contains(content, "beforeEach") || strings.Contains(content, "afterEach")
}

// guessFramework returns a best-effort framework name from path
// extension and content signatures, used only to pick a default
// source plugin for the conversion loop — the Pipeline's own Detect
// step is authoritative.
func guessFramework(path, content string) string {
	switch {
	case strings.HasSuffix(path, ".py"):
		if strings.Contains(content, "import unittest") {
			return "unittest"
		}
		return "pytest"
	case strings.HasSuffix(path, ".java"):
		if strings.Contains(content, "org.junit.jupiter") {
			return "junit5"
		}
		return "junit4"
	case strings.Contains(path, ".cy."):
		return "cypress"
	case strings.Contains(content, "@playwright/test"):
		return "playwright"
	case strings.Contains(content, "from 'vitest'") || strings.Contains(content, "\"vitest\""):
		return "vitest"
	default:
		return "jest"
	}
}
