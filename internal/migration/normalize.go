package migration

import (
	"bytes"
	"strings"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// NormalizeResult carries the normalized text plus any non-fatal
// issues spotted along the way (spec.md §7 NormalizationIssue).
type NormalizeResult struct {
	Text     string
	IsBinary bool
	Issues   []string
}

// Normalize strips a UTF-8 BOM, converts CRLF/CR to LF, and flags
// binary content (spec.md §6 "BOM and CRLF are normalized to LF";
// §7 BinaryFile).
func Normalize(raw []byte) NormalizeResult {
	if looksBinary(raw) {
		return NormalizeResult{IsBinary: true}
	}

	var issues []string
	if bytes.HasPrefix(raw, utf8BOM) {
		raw = raw[len(utf8BOM):]
		issues = append(issues, "stripped UTF-8 BOM")
	}

	text := string(raw)
	if strings.Contains(text, "\r\n") {
		text = strings.ReplaceAll(text, "\r\n", "\n")
		issues = append(issues, "normalized CRLF to LF")
	}
	if strings.Contains(text, "\r") {
		text = strings.ReplaceAll(text, "\r", "\n")
		issues = append(issues, "normalized bare CR to LF")
	}

	return NormalizeResult{Text: text, Issues: issues}
}

// looksBinary applies the conventional "NUL byte in the first 8000
// bytes" heuristic.
func looksBinary(raw []byte) bool {
	limit := len(raw)
	if limit > 8000 {
		limit = 8000
	}
	return bytes.IndexByte(raw[:limit], 0) >= 0
}
