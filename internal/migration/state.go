// Package migration implements the project-wide Migration Engine
// (spec.md §4.6): scan, classify, dependency graph, topological
// conversion order, per-file conversion loop with recovery, atomic
// output and state persistence, import rewriting, and checklist
// generation.
package migration

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/spf13/afero"
)

// FileStatus is one file's terminal state in a migration run.
type FileStatus string

const (
	StatusConverted FileStatus = "converted"
	StatusFailed    FileStatus = "failed"
	StatusSkipped   FileStatus = "skipped"
)

// FileState is one file's persisted entry (spec.md §3 "Migration
// state").
type FileState struct {
	Status      FileStatus `json:"status"`
	ConvertedAt string     `json:"convertedAt,omitempty"`
	Confidence  *int       `json:"confidence,omitempty"`
	Error       string     `json:"error,omitempty"`
	Reason      string     `json:"reason,omitempty"`
}

// State is the single persisted document for one migration run
// (spec.md §6 "Persisted state format").
type State struct {
	Version   int                  `json:"version"`
	StartedAt string               `json:"startedAt"`
	Source    string               `json:"source"`
	Target    string               `json:"target"`
	Files     map[string]FileState `json:"files"`
}

// NewState returns a fresh, empty state document.
func NewState(source, target, startedAt string) *State {
	return &State{
		Version:   1,
		StartedAt: startedAt,
		Source:    source,
		Target:    target,
		Files:     make(map[string]FileState),
	}
}

const stateFileName = "state.json"
const stateTmpName = "state.tmp.json"

// LoadState loads the state document at <stateDir>/state.json. A
// missing file is not an error — it signals "no prior state", and the
// caller should fall back to a fresh State. A present-but-corrupted
// file returns a non-nil error wrapping the JSON decode failure so the
// caller can reinitialize with a warning rather than silently
// discarding invalid data (spec.md §4.6 step 1 / §7 StateCorruption).
func LoadState(fs afero.Fs, stateDir string) (*State, error) {
	path := stateDir + "/" + stateFileName
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("migration: read state: %w", err)
	}
	var s State
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("migration: corrupted state at %s: %w", path, err)
	}
	return &s, nil
}

// SaveState writes s to <stateDir>/state.json atomically: write to
// state.tmp.json, then rename over the target, the way
// write-temp-then-os.Rename guards against a half-written state
// document on crash.
func SaveState(fs afero.Fs, stateDir string, s *State) error {
	if err := fs.MkdirAll(stateDir, 0o755); err != nil {
		return fmt.Errorf("migration: mkdir state dir: %w", err)
	}
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("migration: marshal state: %w", err)
	}
	tmpPath := stateDir + "/" + stateTmpName
	finalPath := stateDir + "/" + stateFileName
	if err := afero.WriteFile(fs, tmpPath, data, 0o644); err != nil {
		return fmt.Errorf("migration: write temp state: %w", err)
	}
	if err := fs.Rename(tmpPath, finalPath); err != nil {
		_ = fs.Remove(tmpPath)
		return fmt.Errorf("migration: rename temp state: %w", err)
	}
	return nil
}

// SortedPaths returns s.Files's keys sorted, for deterministic
// iteration order over a map.
func (s *State) SortedPaths() []string {
	paths := make([]string, 0, len(s.Files))
	for p := range s.Files {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}
