// Package report defines Hamlet's two JSON-serializable report shapes
// (per-file confidence report and project-level migration summary) and
// the markdown checklist builder (spec.md §4.5, §6).
//
// Grounded on gorisk/internal/report/report.go's plain-struct report
// types and json.go's json.NewEncoder(...).SetIndent pattern.
package report

import (
	"encoding/json"
	"io"

	"github.com/pmclSF/hamlet-sub002/internal/scorer"
)

// Detail mirrors scorer.Detail for JSON purposes (line? is omitted
// when the node carried no source location).
type Detail struct {
	Type     string `json:"type"`
	NodeType string `json:"nodeType"`
	Line     int    `json:"line,omitempty"`
	Source   string `json:"source,omitempty"`
}

// VariantCoverage mirrors scorer.VariantCoverage.
type VariantCoverage struct {
	Total     int `json:"total"`
	Supported int `json:"supported"`
}

// IRCoverage mirrors scorer.IRCoverage for JSON purposes.
type IRCoverage struct {
	ByVariant        map[string]VariantCoverage `json:"byVariant"`
	UnsupportedKinds []string                   `json:"unsupportedKinds"`
	CoveragePercent  int                        `json:"coveragePercent"`
}

// FileReport is the per-file confidence report (spec.md §4.5 "Report
// fields").
type FileReport struct {
	Confidence    int         `json:"confidence"`
	Level         string      `json:"level"`
	Converted     int         `json:"converted"`
	Unconvertible int         `json:"unconvertible"`
	Warnings      int         `json:"warnings"`
	Total         int         `json:"total"`
	Details       []Detail    `json:"details"`
	IRCoverage    *IRCoverage `json:"irCoverage,omitempty"`
}

// FromScorer converts a scorer.Report into its JSON-shaped twin.
func FromScorer(r scorer.Report) FileReport {
	fr := FileReport{
		Confidence:    r.Confidence,
		Level:         string(r.Level),
		Converted:     r.Converted,
		Unconvertible: r.Unconvertible,
		Warnings:      r.Warnings,
		Total:         r.Total,
	}
	for _, d := range r.Details {
		fr.Details = append(fr.Details, Detail{
			Type: d.Type, NodeType: d.NodeType, Line: d.Line, Source: d.Source,
		})
	}
	if r.IRCoverage != nil {
		byVariant := make(map[string]VariantCoverage, len(r.IRCoverage.ByVariant))
		for k, vc := range r.IRCoverage.ByVariant {
			byVariant[k] = VariantCoverage{Total: vc.Total, Supported: vc.Supported}
		}
		fr.IRCoverage = &IRCoverage{
			ByVariant:        byVariant,
			UnsupportedKinds: r.IRCoverage.UnsupportedKindList(),
			CoveragePercent:  r.IRCoverage.CoveragePercent,
		}
	}
	return fr
}

// FileEntry is one file's row in the project-level report (spec.md §6
// "Report JSON schema").
type FileEntry struct {
	Path       string   `json:"path"`
	Confidence int      `json:"confidence"`
	Status     string   `json:"status"`
	Warnings   int      `json:"warnings"`
	TODOs      int      `json:"todos"`
	Error      string   `json:"error,omitempty"`
}

// Summary is the converted/skipped/failed tally.
type Summary struct {
	Converted int `json:"converted"`
	Skipped   int `json:"skipped"`
	Failed    int `json:"failed"`
}

// ProjectReport is the top-level document emitted when the JSON report
// flag is set.
type ProjectReport struct {
	Success bool        `json:"success"`
	Summary Summary     `json:"summary"`
	Files   []FileEntry `json:"files"`
	Error   string      `json:"error,omitempty"`
}

// Failure builds the top-level-failure shape: {success: false, error}.
func Failure(err error) ProjectReport {
	return ProjectReport{Success: false, Error: err.Error()}
}

// WriteJSON writes r to w as indented JSON, matching gorisk's
// json.NewEncoder(...).SetIndent("", "  ") convention.
func WriteJSON(w io.Writer, r ProjectReport) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}
