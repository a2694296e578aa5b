package migration

import (
	"regexp"
	"strings"
)

// The five specifier patterns spec.md §6 requires recognizing in
// JavaScript-family sources. Order matters only for readability; all
// five are applied to the same comment-stripped text.
var (
	importFromRe  = regexp.MustCompile(`\bimport\s+(?:type\s+)?[^;'"]*?\bfrom\s+['"]([^'"]+)['"]`)
	bareImportRe  = regexp.MustCompile(`\bimport\s+['"]([^'"]+)['"]`)
	requireRe     = regexp.MustCompile(`\brequire\(\s*['"]([^'"]+)['"]\s*\)`)
	dynamicImport = regexp.MustCompile(`\bimport\(\s*['"]([^'"]+)['"]\s*\)`)
	reExportRe    = regexp.MustCompile(`\bexport\s+(?:\*|\{[^}]*\})\s*from\s+['"]([^'"]+)['"]`)
)

// ExtractImportSpecifiers returns every import/require/re-export
// specifier found in src, in order of appearance, after stripping
// line and block comments so a specifier-shaped substring inside a
// comment is never mistaken for a real import.
func ExtractImportSpecifiers(src string) []string {
	stripped := stripComments(src)

	var specs []string
	for _, re := range []*regexp.Regexp{importFromRe, bareImportRe, requireRe, dynamicImport, reExportRe} {
		for _, m := range re.FindAllStringSubmatch(stripped, -1) {
			specs = append(specs, m[1])
		}
	}
	return specs
}

// stripComments removes `//` line comments and `/* */` block comments
// while leaving string/template literal contents untouched, so a
// specifier string containing `//` (a URL, say) is never truncated.
func stripComments(src string) string {
	var b strings.Builder
	b.Grow(len(src))

	runes := []rune(src)
	inString := rune(0)
	for i := 0; i < len(runes); i++ {
		r := runes[i]

		if inString != 0 {
			b.WriteRune(r)
			if r == '\\' && i+1 < len(runes) {
				i++
				b.WriteRune(runes[i])
				continue
			}
			if r == inString {
				inString = 0
			}
			continue
		}

		switch {
		case r == '\'' || r == '"' || r == '`':
			inString = r
			b.WriteRune(r)
		case r == '/' && i+1 < len(runes) && runes[i+1] == '/':
			for i < len(runes) && runes[i] != '\n' {
				i++
			}
			if i < len(runes) {
				b.WriteRune('\n')
			}
		case r == '/' && i+1 < len(runes) && runes[i+1] == '*':
			i += 2
			for i+1 < len(runes) && !(runes[i] == '*' && runes[i+1] == '/') {
				if runes[i] == '\n' {
					b.WriteRune('\n')
				}
				i++
			}
			i++ // consume trailing '/'
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// IsRelative reports whether specifier is a relative path import
// (`./...` or `../...`) as opposed to a bare package specifier.
func IsRelative(specifier string) bool {
	return strings.HasPrefix(specifier, "./") || strings.HasPrefix(specifier, "../")
}

// maskComments returns a byte-for-byte-same-length copy of src with
// `//` and `/* */` comment bodies blanked out to spaces (newlines
// preserved), so byte offsets found by matching against the result
// still index correctly into the original src. Used by RewriteImports,
// which must edit the original text in place.
func maskComments(src string) string {
	b := []byte(src)
	inString := byte(0)
	for i := 0; i < len(b); i++ {
		c := b[i]

		if inString != 0 {
			if c == '\\' && i+1 < len(b) {
				i++
				continue
			}
			if c == inString {
				inString = 0
			}
			continue
		}

		switch {
		case c == '\'' || c == '"' || c == '`':
			inString = c
		case c == '/' && i+1 < len(b) && b[i+1] == '/':
			for i < len(b) && b[i] != '\n' {
				b[i] = ' '
				i++
			}
		case c == '/' && i+1 < len(b) && b[i+1] == '*':
			b[i], b[i+1] = ' ', ' '
			i += 2
			for i < len(b) && !(b[i] == '*' && i+1 < len(b) && b[i+1] == '/') {
				if b[i] != '\n' {
					b[i] = ' '
				}
				i++
			}
			if i < len(b) {
				b[i] = ' '
			}
			if i+1 < len(b) {
				b[i+1] = ' '
			}
			i++
		}
	}
	return string(b)
}
