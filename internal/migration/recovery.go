package migration

import "strings"

// RecoverLineByLine implements the ParseError fallback spec.md §7
// describes: "attempt line-by-line recovery; if recovery succeeds,
// confidence <- 30". Hamlet cannot re-parse a file the framework
// plugin's own parser rejected, so recovery does not reattempt
// parsing — it passes the original source through unchanged, prefixed
// with a diagnostic marker flagging every file for manual review, the
// same HAMLET-TODO convention the IR emitters leave on unconvertible
// nodes (spec.md §6 "Diagnostic marker format").
func RecoverLineByLine(src, commentPrefix string) string {
	var b strings.Builder
	b.WriteString(commentPrefix)
	b.WriteString(" HAMLET-TODO [parse-failure]: automatic conversion failed, reproducing source unchanged for manual migration\n")

	lines := strings.Split(src, "\n")
	for i, line := range lines {
		b.WriteString(line)
		if i < len(lines)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}
