package migration

import (
	"regexp"
	"sort"
	"strings"
)

// RewriteImports replaces every relative import specifier in content
// that matches a key in renames — tried as-is, then with each common
// extension appended, then with its own extension stripped — with
// that key's mapped value. A specifier absent from renames after that
// search is left byte-for-byte untouched; a specifier occurring inside
// a comment is never considered a match (spec.md §4.6 step 7, law 6).
func RewriteImports(content string, renames map[string]string) string {
	if len(renames) == 0 {
		return content
	}
	masked := maskComments(content)

	type span struct{ start, end int }
	var matches []span
	for _, re := range []*regexp.Regexp{importFromRe, bareImportRe, requireRe, dynamicImport, reExportRe} {
		for _, idx := range re.FindAllStringSubmatchIndex(masked, -1) {
			matches = append(matches, span{idx[2], idx[3]})
		}
	}
	sort.Slice(matches, func(i, j int) bool { return matches[i].start < matches[j].start })

	var b strings.Builder
	last := 0
	for _, m := range matches {
		if m.start < last {
			continue // overlapping match from more than one pattern
		}
		spec := content[m.start:m.end]
		if replacement, ok := lookupRename(spec, renames); ok {
			b.WriteString(content[last:m.start])
			b.WriteString(replacement)
			last = m.end
		}
	}
	b.WriteString(content[last:])
	return b.String()
}

func lookupRename(spec string, renames map[string]string) (string, bool) {
	if v, ok := renames[spec]; ok {
		return v, true
	}
	for _, ext := range resolveExtensions {
		if ext == "" {
			continue
		}
		if v, ok := renames[spec+ext]; ok {
			return v, true
		}
		if strings.HasSuffix(spec, ext) {
			if v, ok := renames[strings.TrimSuffix(spec, ext)]; ok {
				return v, true
			}
		}
	}
	return "", false
}
