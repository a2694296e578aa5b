package migration

import (
	"strings"

	"github.com/pmclSF/hamlet-sub002/internal/ir"
)

// ValidateOutput runs the structural checks spec.md §4.6 step 6
// requires of emitted code: balanced brackets and absence of
// source-framework API identifiers outside comments/strings. A
// non-empty return means validation failed and the caller should cap
// confidence at 70 (spec.md §7 ValidationIssue).
func ValidateOutput(code string, forbiddenIdentifiers []string) []string {
	var issues []string
	if !bracketsBalanced(code) {
		issues = append(issues, "unbalanced brackets in emitted output")
	}
	masked := maskStringsAndComments(code)
	for _, ident := range forbiddenIdentifiers {
		if strings.Contains(masked, ident) {
			issues = append(issues, "source-framework identifier left in output: "+ident)
		}
	}
	return issues
}

// ValidateIR checks the IR-level structural invariants spec.md §4.6
// step 6 also requires: non-empty test bodies, non-empty import
// sources.
func ValidateIR(file *ir.TestFile) []string {
	var issues []string
	_ = ir.Walk(file, func(n ir.Node) error {
		switch v := n.(type) {
		case *ir.TestCase:
			if len(v.Body) == 0 {
				issues = append(issues, "empty test case body: "+v.Name)
			}
		case *ir.ImportStatement:
			if v.Source == "" {
				issues = append(issues, "import statement with empty source")
			}
		}
		return nil
	})
	return issues
}

func bracketsBalanced(code string) bool {
	masked := maskStringsAndComments(code)
	var stack []byte
	pairs := map[byte]byte{')': '(', ']': '[', '}': '{'}
	for i := 0; i < len(masked); i++ {
		c := masked[i]
		switch c {
		case '(', '[', '{':
			stack = append(stack, c)
		case ')', ']', '}':
			if len(stack) == 0 || stack[len(stack)-1] != pairs[c] {
				return false
			}
			stack = stack[:len(stack)-1]
		}
	}
	return len(stack) == 0
}

// maskStringsAndComments blanks both comment bodies and string/
// template literal contents (keeping their delimiters) to spaces,
// same length as code, so bracket and identifier scans never look
// inside either.
func maskStringsAndComments(code string) string {
	b := []byte(maskComments(code))
	inString := byte(0)
	for i := 0; i < len(b); i++ {
		c := b[i]
		if inString != 0 {
			if c == '\\' && i+1 < len(b) {
				b[i+1] = ' '
				i++
				continue
			}
			if c == inString {
				inString = 0
				continue
			}
			b[i] = ' '
			continue
		}
		if c == '\'' || c == '"' || c == '`' {
			inString = c
		}
	}
	return string(b)
}
