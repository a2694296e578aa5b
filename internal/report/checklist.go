package report

import (
	"fmt"
	"strings"
)

// ChecklistEntry is one file's row feeding the markdown checklist
// (spec.md §4.6 step 8).
type ChecklistEntry struct {
	Path       string
	Status     string // "converted" | "failed" | "skipped"
	Confidence int
	Warnings   []string
	TODOs      []string
	IsConfig   bool
}

// BuildChecklist renders the Summary / Fully Converted / Needs Review /
// Manual Steps / Config Changes sections, hand-built with
// strings.Builder + fmt.Fprintf the way gorisk/internal/report/text.go
// renders its tables — no templating library.
func BuildChecklist(entries []ChecklistEntry) string {
	var b strings.Builder

	var converted, failed, skipped int
	var fullyConverted, needsReview, manualSteps, configChanges []ChecklistEntry
	for _, e := range entries {
		switch e.Status {
		case "converted":
			converted++
		case "failed":
			failed++
		case "skipped":
			skipped++
		}

		switch {
		case e.IsConfig:
			configChanges = append(configChanges, e)
		case e.Status == "failed" || (e.Status == "converted" && e.Confidence == 0):
			manualSteps = append(manualSteps, e)
		case e.Status == "converted" && e.Confidence >= 90:
			fullyConverted = append(fullyConverted, e)
		case e.Status == "converted":
			needsReview = append(needsReview, e)
		}
	}

	fmt.Fprintln(&b, "# Migration Checklist")
	fmt.Fprintln(&b)
	fmt.Fprintln(&b, "## Summary")
	fmt.Fprintln(&b)
	fmt.Fprintf(&b, "- Converted: %d\n", converted)
	fmt.Fprintf(&b, "- Skipped: %d\n", skipped)
	fmt.Fprintf(&b, "- Failed: %d\n", failed)
	fmt.Fprintln(&b)

	writeSection(&b, "Fully Converted", fullyConverted)
	writeSection(&b, "Needs Review", needsReview)
	writeSection(&b, "Manual Steps", manualSteps)
	writeSection(&b, "Config Changes", configChanges)

	return b.String()
}

func writeSection(b *strings.Builder, title string, entries []ChecklistEntry) {
	fmt.Fprintf(b, "## %s\n\n", title)
	if len(entries) == 0 {
		fmt.Fprintln(b, "_none_")
		fmt.Fprintln(b)
		return
	}
	for _, e := range entries {
		fmt.Fprintf(b, "- [ ] `%s` (confidence %d%%)\n", e.Path, e.Confidence)
		for _, w := range e.Warnings {
			fmt.Fprintf(b, "  - warning: %s\n", w)
		}
		for _, t := range e.TODOs {
			fmt.Fprintf(b, "  - TODO: %s\n", t)
		}
	}
	fmt.Fprintln(b)
}
