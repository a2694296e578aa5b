package migration

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/spf13/afero"

	"github.com/pmclSF/hamlet-sub002/internal/logging"
	"github.com/pmclSF/hamlet-sub002/internal/pipeline"
	"github.com/pmclSF/hamlet-sub002/internal/registry"
	"github.com/pmclSF/hamlet-sub002/internal/report"
)

const defaultStateDir = ".hamlet"

// ProgressStatus is the value passed to a progress callback (spec.md
// §6 "Progress callback contract").
type ProgressStatus string

const (
	ProgressConverted        ProgressStatus = "converted"
	ProgressFailed           ProgressStatus = "failed"
	ProgressSkipped          ProgressStatus = "skipped"
	ProgressSkippedConverted ProgressStatus = "skipped-converted"
)

// ProgressFunc is invoked synchronously after each file is processed.
type ProgressFunc func(relPath string, status ProgressStatus, confidence *int)

// Options configures one Migrate call (spec.md §4.6).
type Options struct {
	Continue        bool
	RetryFailed     bool
	StateDir        string // relative to rootDir; defaults to ".hamlet"
	IncludeGlobs    []string
	SourceFramework string
	TargetFramework string
	Language        string
	// ForbiddenIdentifiers lists the source-framework API prefixes
	// that must not survive in converted output (spec.md §8 "No
	// source-API residue"), e.g. ["cy.", "jest."].
	ForbiddenIdentifiers []string
	PipelineOptions      pipeline.Options
	Progress             ProgressFunc
}

// Result is Migrate's return value (spec.md §4.6 "migrate(rootDir,
// opts) -> {results, checklist, state}").
type Result struct {
	Files     []report.FileEntry
	Checklist string
	State     *State
}

// Engine owns the Registry and filesystem for one or more
// migration runs (spec.md §3 "Ownership and lifecycle").
type Engine struct {
	FS       afero.Fs
	Registry *registry.Registry
}

// NewEngine returns an Engine backed by fs and reg.
func NewEngine(fs afero.Fs, reg *registry.Registry) *Engine {
	return &Engine{FS: fs, Registry: reg}
}

// Migrate runs the full nine-phase migration (spec.md §4.6).
func (e *Engine) Migrate(rootDir string, opts Options) (Result, error) {
	log := logging.For("migration")
	stateDir := opts.StateDir
	if stateDir == "" {
		stateDir = defaultStateDir
	}
	fullStateDir := filepath.ToSlash(filepath.Join(rootDir, stateDir))

	state, loadErr := LoadState(e.FS, fullStateDir)
	if loadErr != nil {
		log.Warn().Err(loadErr).Msg("state corrupted, reinitializing")
		state = nil
	}
	if state == nil || !(opts.Continue || opts.RetryFailed) {
		state = NewState(opts.SourceFramework, opts.TargetFramework, time.Now().UTC().Format(time.RFC3339))
	}

	globs := opts.IncludeGlobs
	if globs == nil {
		globs = DefaultIncludeGlobs
	}
	paths, err := Scan(e.FS, rootDir, globs, stateDir)
	if err != nil {
		return Result{}, fmt.Errorf("migration: scan: %w", err)
	}

	contents := make(map[string]string, len(paths))
	classifications := make(map[string]Classification, len(paths))
	var merr *multierror.Error

	for _, p := range paths {
		rel := relPath(rootDir, p)
		raw, readErr := afero.ReadFile(e.FS, p)
		if readErr != nil {
			merr = multierror.Append(merr, fmt.Errorf("read %s: %w", rel, readErr))
			continue
		}
		norm := Normalize(raw)
		if norm.IsBinary {
			state.Files[rel] = FileState{Status: StatusSkipped, Reason: "binary file"}
			if serr := e.saveState(fullStateDir, state); serr != nil {
				merr = multierror.Append(merr, serr)
			}
			e.notify(opts.Progress, rel, ProgressSkipped, nil)
			continue
		}
		for _, issue := range norm.Issues {
			log.Warn().Str("file", rel).Msg(issue)
		}
		contents[p] = norm.Text
		classifications[p] = Classify(p, norm.Text)
	}

	graph, warnings := BuildGraph(contents)
	for _, w := range warnings {
		log.Warn().Msg(w)
	}
	if len(graph.Cycles) > 0 {
		log.Warn().Str("cycles", describeCycles(graph.Cycles)).Msg("dependency cycles detected")
	}

	order := TopologicalSort(graph)

	renames := make(map[string]string)
	var entries []report.FileEntry

	for _, p := range order {
		rel := relPath(rootDir, p)
		cls, known := classifications[p]
		if !known {
			continue // binary or unreadable, already recorded above
		}

		entry, newStatus, confidence, convErr := e.convertOne(rootDir, p, rel, cls, contents[p], opts, state, renames, fullStateDir)
		if convErr != nil {
			merr = multierror.Append(merr, convErr)
		}
		entries = append(entries, entry)
		e.notify(opts.Progress, rel, newStatus, confidence)
	}

	e.rewriteImports(rootDir, order, classifications, renames)

	checklist := report.BuildChecklist(toChecklistEntries(entries))

	if err := e.saveState(fullStateDir, state); err != nil {
		merr = multierror.Append(merr, err)
	}

	return Result{Files: entries, Checklist: checklist, State: state}, merr.ErrorOrNil()
}

// saveState persists state immediately, the way every file transition
// must (spec.md §3 "state is flushed to disk after each file
// transition"; §5 "write output -> update state -> save state").
func (e *Engine) saveState(fullStateDir string, state *State) error {
	if err := SaveState(e.FS, fullStateDir, state); err != nil {
		return fmt.Errorf("migration: save state: %w", err)
	}
	return nil
}

// convertOne drives the per-file state machine (spec.md §4.6 "State
// machine for a single file"), flushing state to disk after every
// transition (spec.md §3, §5) and returning any save/write error so
// the caller can fold it into the run's accumulated error.
func (e *Engine) convertOne(
	rootDir, path, rel string, cls Classification, content string, opts Options,
	state *State, renames map[string]string, fullStateDir string,
) (report.FileEntry, ProgressStatus, *int, error) {
	prior, hadPrior := state.Files[rel]

	switch cls.Kind {
	case KindFixture, KindTypeDef:
		state.Files[rel] = FileState{Status: StatusSkipped, Reason: "classification: " + string(cls.Kind)}
		return report.FileEntry{Path: rel, Status: string(StatusSkipped)}, ProgressSkipped, nil, e.saveState(fullStateDir, state)

	case KindConfig:
		state.Files[rel] = FileState{Status: StatusSkipped, Reason: "config file: convert separately"}
		return report.FileEntry{Path: rel, Status: string(StatusSkipped)}, ProgressSkipped, nil, e.saveState(fullStateDir, state)

	case KindOther:
		state.Files[rel] = FileState{Status: StatusSkipped, Reason: "unclassified"}
		return report.FileEntry{Path: rel, Status: string(StatusSkipped)}, ProgressSkipped, nil, e.saveState(fullStateDir, state)
	}

	if opts.Continue && !opts.RetryFailed && hadPrior && prior.Status == StatusConverted {
		return report.FileEntry{Path: rel, Status: string(StatusConverted), Confidence: valueOr(prior.Confidence, 0)},
			ProgressSkippedConverted, prior.Confidence, nil
	}
	if opts.RetryFailed && hadPrior && prior.Status != StatusFailed {
		return report.FileEntry{Path: rel, Status: string(prior.Status), Confidence: valueOr(prior.Confidence, 0)},
			ProgressSkipped, prior.Confidence, nil
	}

	sourceName := cls.Framework
	if sourceName == "" {
		sourceName = opts.SourceFramework
	}

	result, convErr := pipeline.Convert(e.Registry, content, sourceName, opts.TargetFramework, opts.PipelineOptions)
	if convErr != nil {
		recovered := RecoverLineByLine(content, commentPrefixFor(path))
		confidence := 30
		issues := ValidateOutput(recovered, opts.ForbiddenIdentifiers)
		if len(issues) > 0 && confidence > 70 {
			confidence = 70
		}

		newPath, writeErr := e.writeOutput(rootDir, path, sourceName, opts.TargetFramework, recovered, renames)
		if writeErr != nil {
			state.Files[rel] = FileState{Status: StatusFailed, Error: writeErr.Error(), Reason: "write failed after line-by-line recovery"}
			saveErr := e.saveState(fullStateDir, state)
			return report.FileEntry{Path: rel, Status: string(StatusFailed), Error: writeErr.Error()},
				ProgressFailed, nil, firstErr(writeErr, saveErr)
		}
		_ = newPath

		state.Files[rel] = FileState{
			Status: StatusConverted, ConvertedAt: time.Now().UTC().Format(time.RFC3339),
			Confidence: &confidence, Error: convErr.Error(), Reason: "recovered via line-by-line reprocessing",
		}
		saveErr := e.saveState(fullStateDir, state)
		return report.FileEntry{Path: rel, Confidence: confidence, Status: string(StatusConverted), Error: convErr.Error()},
			ProgressConverted, &confidence, saveErr
	}

	confidence := result.Report.Confidence
	issues := ValidateOutput(result.Code, opts.ForbiddenIdentifiers)
	if result.IR != nil {
		issues = append(issues, ValidateIR(result.IR)...)
	}
	if len(issues) > 0 && confidence > 70 {
		confidence = 70
	}

	newPath, writeErr := e.writeOutput(rootDir, path, sourceName, opts.TargetFramework, result.Code, renames)
	if writeErr != nil {
		state.Files[rel] = FileState{Status: StatusFailed, Error: writeErr.Error()}
		saveErr := e.saveState(fullStateDir, state)
		return report.FileEntry{Path: rel, Status: string(StatusFailed), Error: writeErr.Error()},
			ProgressFailed, nil, firstErr(writeErr, saveErr)
	}
	_ = newPath

	state.Files[rel] = FileState{
		Status: StatusConverted, ConvertedAt: time.Now().UTC().Format(time.RFC3339),
		Confidence: &confidence,
	}
	saveErr := e.saveState(fullStateDir, state)
	return report.FileEntry{
			Path: rel, Confidence: confidence, Status: string(StatusConverted),
			Warnings: result.Report.Warnings, TODOs: result.Report.Unconvertible,
		},
		ProgressConverted, &confidence, saveErr
}

// writeOutput computes the renamed path (recording it in renames when
// it differs), rejects it if it would resolve outside rootDir
// (spec.md §5, §7 PathTraversalViolation), writes code there
// atomically, and returns the path written to. A non-nil error means
// nothing was written and the caller must mark the file failed
// (spec.md §7 IOError: "per-file IO fails that file").
func (e *Engine) writeOutput(rootDir, oldPath, sourceFramework, targetFramework, code string, renames map[string]string) (string, error) {
	newPath := RenamedPath(oldPath, sourceFramework, targetFramework)
	if err := checkPathSafety(rootDir, newPath); err != nil {
		return "", err
	}
	if newPath != oldPath {
		renames[oldPath] = newPath
	}
	if err := writeAtomic(e.FS, newPath, []byte(code)); err != nil {
		return "", fmt.Errorf("write %s: %w", newPath, err)
	}
	if newPath != oldPath {
		_ = e.FS.Remove(oldPath)
	}
	return newPath, nil
}

// firstErr returns the first non-nil error among errs, or nil.
func firstErr(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

// rewriteImports is phase 7 (spec.md §4.6 step 7): after every file is
// converted, update import specifiers in converted files that pointed
// at a renamed path.
func (e *Engine) rewriteImports(rootDir string, order []string, classifications map[string]Classification, renames map[string]string) {
	if len(renames) == 0 {
		return
	}
	for _, p := range order {
		cls, ok := classifications[p]
		if !ok || (cls.Kind != KindTest && cls.Kind != KindHelper) {
			continue
		}
		outPath := p
		if np, ok := renames[p]; ok {
			outPath = np
		}
		raw, err := afero.ReadFile(e.FS, outPath)
		if err != nil {
			continue
		}
		specifierRenames := relativeSpecifierRenames(outPath, renames)
		rewritten := RewriteImports(string(raw), specifierRenames)
		if rewritten != string(raw) {
			_ = writeAtomic(e.FS, outPath, []byte(rewritten))
		}
	}
}

// relativeSpecifierRenames projects the global oldPath->newPath rename
// map into the relative-specifier form a file at fromFile would use to
// reference each renamed file, in both directions (with and without
// extension), so RewriteImports's plain string lookup finds it however
// the original source wrote the specifier.
func relativeSpecifierRenames(fromFile string, renames map[string]string) map[string]string {
	out := make(map[string]string, len(renames)*2)
	fromDir := filepath.ToSlash(filepath.Dir(fromFile))
	for oldPath, newPath := range renames {
		oldRel := toSpecifier(fromDir, oldPath)
		newRel := toSpecifier(fromDir, newPath)
		out[oldRel] = newRel
		out[stripExt(oldRel)] = stripExt(newRel)
	}
	return out
}

func toSpecifier(fromDir, target string) string {
	rel, err := filepath.Rel(fromDir, target)
	if err != nil {
		return target
	}
	rel = filepath.ToSlash(rel)
	if !strings.HasPrefix(rel, ".") {
		rel = "./" + rel
	}
	return rel
}

func stripExt(s string) string {
	ext := filepath.Ext(s)
	return strings.TrimSuffix(s, ext)
}

func relPath(rootDir, path string) string {
	rel, err := filepath.Rel(rootDir, path)
	if err != nil {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}

func writeAtomic(fs afero.Fs, path string, data []byte) error {
	if err := fs.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := afero.WriteFile(fs, tmp, data, 0o644); err != nil {
		return err
	}
	if err := fs.Rename(tmp, path); err != nil {
		_ = fs.Remove(tmp)
		return err
	}
	return nil
}

func commentPrefixFor(path string) string {
	switch {
	case strings.HasSuffix(path, ".py"):
		return "#"
	default:
		return "//"
	}
}

func valueOr(p *int, def int) int {
	if p == nil {
		return def
	}
	return *p
}

func toChecklistEntries(entries []report.FileEntry) []report.ChecklistEntry {
	out := make([]report.ChecklistEntry, 0, len(entries))
	for _, e := range entries {
		out = append(out, report.ChecklistEntry{
			Path: e.Path, Status: e.Status, Confidence: e.Confidence,
			IsConfig: strings.Contains(e.Path, "config"),
		})
	}
	return out
}

func (e *Engine) notify(cb ProgressFunc, rel string, status ProgressStatus, confidence *int) {
	if cb != nil {
		cb(rel, status, confidence)
	}
}
