// Package pipeline implements the Conversion Pipeline (spec.md §4.3):
// detect -> parse -> transform -> emit -> score for a single file.
//
// The detect-then-dispatch shape is grounded on
// gorisk/internal/capability/detector.go's Detect-then-walk flow;
// orchestrating the stages into one call mirrors
// gorisk/internal/adapters/go/adapter.go's Load method.
package pipeline

import (
	"github.com/pmclSF/hamlet-sub002/internal/emitter"
	"github.com/pmclSF/hamlet-sub002/internal/ir"
	"github.com/pmclSF/hamlet-sub002/internal/registry"
	"github.com/pmclSF/hamlet-sub002/internal/scorer"
)

// TransformFunc restructures an IR tree for a cross-paradigm target
// (spec.md §4.3 step 3). It must never introduce confidence values the
// parser did not already assign — only rearrange structure. Node
// counts are preserved except for the one restructuring spec.md §9
// itself names (wrapping function-paradigm tests in a synthesized
// xunit-paradigm suite), which necessarily adds the wrapping TestSuite
// node; see frameworks/unittest's Transform.
type TransformFunc func(file *ir.TestFile, source, target registry.Plugin) (*ir.TestFile, error)

// Options configures one Convert call (spec.md §4.3 "Options").
type Options struct {
	// Emitter selects the emission strategy. Empty means "use the
	// default" (legacy, or ir-patch if ExperimentalIR is set) — an
	// explicit non-empty value always wins over ExperimentalIR.
	Emitter emitter.Strategy
	// ExperimentalIR is an alias for Emitter=ir-patch, overridden by
	// any explicit Emitter.
	ExperimentalIR bool
	// Language disambiguates homonymous framework names, forwarded to
	// registry.Get.
	Language string
	// IREmitters supplies the registered IR emitters consulted by the
	// ir-patch/ir-full/auto strategies. A nil Registry, or one with no
	// entry for the target, behaves as "no IR emitter available".
	IREmitters *emitter.Registry
	// Transform supplies the cross-paradigm restructuring applied when
	// source.Paradigm != target.Paradigm. Nil means identity — per
	// spec.md §9's Open Question, no cross-paradigm restructuring is
	// invented without a registered Transform backing it.
	Transform TransformFunc
}

// Result is one file's conversion outcome.
type Result struct {
	Code   string
	Report scorer.Report
	// IR is the (possibly transformed) tree the emitter and scorer ran
	// over, exposed so callers can run further IR-level checks (e.g.
	// ValidateIR) without re-parsing.
	IR *ir.TestFile
}

// Convert runs one file through the five pipeline stages.
func Convert(reg *registry.Registry, src, sourceName, targetName string, opts Options) (Result, error) {
	source, ok := reg.Get(sourceName, opts.Language)
	if !ok {
		return Result{}, &UnknownFrameworkError{Name: sourceName, Language: opts.Language}
	}
	target, ok := reg.Get(targetName, opts.Language)
	if !ok {
		return Result{}, &UnknownFrameworkError{Name: targetName, Language: opts.Language}
	}
	if source.Name == target.Name && source.Language == target.Language {
		return Result{}, &SameFrameworkErrorDetail{Name: source.Name}
	}

	if src != "" && source.Detect(src) == 0 {
		return Result{}, &DetectionMismatchDetail{Name: source.Name}
	}

	file, err := source.Parse(src)
	if err != nil {
		return Result{}, &ParseError{Framework: source.Name, Err: err}
	}

	if source.Paradigm != target.Paradigm && opts.Transform != nil {
		transformed, err := opts.Transform(file, source, target)
		if err != nil {
			return Result{}, &ParseError{Framework: source.Name, Err: err}
		}
		file = transformed
	}

	code, stats, err := emit(file, src, target, opts)
	if err != nil {
		return Result{}, err
	}

	report := scorer.Score(file, stats)
	return Result{Code: code, Report: report, IR: file}, nil
}

// emit routes per opts (spec.md §4.3 options table / §4.4 algorithms).
func emit(file *ir.TestFile, src string, target registry.Plugin, opts Options) (string, scorer.EmitterStats, error) {
	legacyCode, err := target.Emit(file, src)
	if err != nil {
		return "", scorer.EmitterStats{}, err
	}

	strategy := opts.Emitter
	if strategy == "" {
		if opts.ExperimentalIR {
			strategy = emitter.StrategyIRPatch
		} else {
			strategy = emitter.StrategyLegacy
		}
	}

	if strategy == emitter.StrategyLegacy {
		return legacyCode, scorer.EmitterStats{}, nil
	}

	var e emitter.IREmitter
	var found bool
	if opts.IREmitters != nil {
		e, found = opts.IREmitters.Lookup(target.Name)
	}
	if !found {
		return legacyCode, scorer.EmitterStats{}, nil
	}

	switch strategy {
	case emitter.StrategyIRPatch:
		res := emitter.Patch(e, file, legacyCode)
		return res.Code, statsFromPatch(e, res), nil

	case emitter.StrategyIRFull:
		code, res, usedFull := emitter.FullOrPatch(e, file, legacyCode)
		if usedFull {
			return code, scorer.EmitterStats{Active: true, Supported: supportOf(e)}, nil
		}
		return code, statsFromPatch(e, res), nil

	case emitter.StrategyAuto:
		code, res, usedFull := emitter.Auto(e, found, file, legacyCode)
		if usedFull {
			return code, scorer.EmitterStats{Active: true, Supported: supportOf(e)}, nil
		}
		return code, statsFromPatch(e, res), nil

	default:
		return legacyCode, scorer.EmitterStats{}, nil
	}
}

func statsFromPatch(e emitter.IREmitter, res emitter.PatchResult) scorer.EmitterStats {
	return scorer.EmitterStats{
		Active:    true,
		Attempted: res.Attempted,
		Succeeded: res.Succeeded,
		Supported: supportOf(e),
	}
}

// supportOf adapts an IREmitter's EmitNode into the scorer's
// per-node Supported predicate, used to build the IRCoverage
// breakdown independent of whether ir-patch actually found a baseline
// line to replace.
func supportOf(e emitter.IREmitter) func(ir.Node) bool {
	return func(n ir.Node) bool {
		return e.EmitNode(n).Supported
	}
}
