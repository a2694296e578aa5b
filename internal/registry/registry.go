// Package registry implements the Framework Registry and the plugin
// contract every framework implementation must satisfy (spec.md §4.2).
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/pmclSF/hamlet-sub002/internal/ir"
)

// Paradigm classifies a test framework's structural idiom.
type Paradigm string

const (
	ParadigmBDD      Paradigm = "bdd"
	ParadigmXUnit    Paradigm = "xunit"
	ParadigmFunction Paradigm = "function"
)

// DetectFunc scores how confidently src looks like this plugin's
// framework, 0 (not at all) to 100 (certain).
type DetectFunc func(src string) int

// ParseFunc converts src into an IR tree. Unrecognized constructs must
// be preserved as RawCode/Assertion nodes flagged Unconvertible, never
// silently dropped (spec.md §7).
type ParseFunc func(src string) (*ir.TestFile, error)

// EmitFunc renders an IR tree back to framework source text using the
// regex/template baseline (the "legacy" emitter, spec.md §4.3 option
// table). src is the original source, supplied so the baseline emitter
// can fall back to passing through constructs it does not itself
// synthesize.
type EmitFunc func(file *ir.TestFile, src string) (string, error)

// ImportRewriter rewrites one import specifier that referred to a
// file which the Migration Engine renamed, returning the rewritten
// specifier (spec.md §4.6 step 7, §6 "Output filename convention").
type ImportRewriter func(specifier string) string

// Plugin is gorisk's Analyzer interface generalized from one method
// (Load) to the five-field immutable record spec.md §3 calls for.
// Plugins are value-typed and owned by the Registry for the process
// lifetime; nothing here mutates after Register.
type Plugin struct {
	Name     string
	Language string
	Paradigm Paradigm
	Detect   DetectFunc
	Parse    ParseFunc
	Emit     EmitFunc
	Imports  ImportRewriter
}

// key is the Registry's composite lookup key, "{language}:{name}".
func key(language, name string) string {
	return language + ":" + name
}

// Registry owns a set of Plugins for one process (or one Engine,
// per SPEC_FULL.md's "per-Engine value" decision — see DESIGN.md).
// Safe for concurrent read access once populated; Register/clear take
// a write lock.
type Registry struct {
	mu      sync.RWMutex
	plugins map[string]Plugin
	byName  map[string][]string // name -> keys, for language-less lookup
}

// New returns an empty Registry.
func New() *Registry {
	return &Registry{
		plugins: make(map[string]Plugin),
		byName:  make(map[string][]string),
	}
}

// Register adds plugin to the registry, rejecting it if any required
// field is absent (spec.md §4.2). Re-registering the same (language,
// name) pair overwrites the prior entry (last-writer-wins) — the only
// supported mutation after startup.
func (r *Registry) Register(p Plugin) error {
	if p.Name == "" || p.Language == "" || p.Paradigm == "" ||
		p.Detect == nil || p.Parse == nil || p.Emit == nil || p.Imports == nil {
		return fmt.Errorf("registry: plugin missing a required field: %+v", p)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	k := key(p.Language, p.Name)
	if _, exists := r.plugins[k]; !exists {
		r.byName[p.Name] = append(r.byName[p.Name], k)
	}
	r.plugins[k] = p
	return nil
}

// Get looks up a plugin by name, optionally disambiguated by language.
// With language == "", the first match (by sorted key) whose Name
// equals name wins.
func (r *Registry) Get(name, language string) (Plugin, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if language != "" {
		p, ok := r.plugins[key(language, name)]
		return p, ok
	}

	keys := append([]string(nil), r.byName[name]...)
	if len(keys) == 0 {
		return Plugin{}, false
	}
	sort.Strings(keys)
	return r.plugins[keys[0]], true
}

// Has reports whether a matching plugin is registered.
func (r *Registry) Has(name, language string) bool {
	_, ok := r.Get(name, language)
	return ok
}

// List returns every registered plugin, optionally filtered to one
// language, sorted by (language, name) for determinism.
func (r *Registry) List(language string) []Plugin {
	r.mu.RLock()
	defer r.mu.RUnlock()

	keys := make([]string, 0, len(r.plugins))
	for k := range r.plugins {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]Plugin, 0, len(keys))
	for _, k := range keys {
		p := r.plugins[k]
		if language == "" || p.Language == language {
			out = append(out, p)
		}
	}
	return out
}

// Clear removes every registered plugin. Kept for test isolation, per
// spec.md §4.2.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.plugins = make(map[string]Plugin)
	r.byName = make(map[string][]string)
}
