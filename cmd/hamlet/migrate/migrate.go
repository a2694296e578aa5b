// Package migrate implements the `hamlet migrate` subcommand: wires
// every framework plugin and IR emitter into a migration.Engine and
// runs it over a project directory (spec.md §4.6, §6).
//
// Grounded on gorisk/cmd/gorisk/scan.Run's flag.NewFlagSet + os.Exit
// code shape.
package migrate

import (
	"flag"
	"fmt"
	"os"

	"github.com/spf13/afero"

	"github.com/pmclSF/hamlet-sub002/frameworks/cypress"
	"github.com/pmclSF/hamlet-sub002/frameworks/jest"
	"github.com/pmclSF/hamlet-sub002/frameworks/junit4"
	"github.com/pmclSF/hamlet-sub002/frameworks/junit5"
	"github.com/pmclSF/hamlet-sub002/frameworks/playwright"
	"github.com/pmclSF/hamlet-sub002/frameworks/pytest"
	"github.com/pmclSF/hamlet-sub002/frameworks/unittest"
	"github.com/pmclSF/hamlet-sub002/frameworks/vitest"
	"github.com/pmclSF/hamlet-sub002/internal/emitter"
	"github.com/pmclSF/hamlet-sub002/internal/logging"
	"github.com/pmclSF/hamlet-sub002/internal/migration"
	"github.com/pmclSF/hamlet-sub002/internal/pipeline"
	"github.com/pmclSF/hamlet-sub002/internal/registry"
	"github.com/pmclSF/hamlet-sub002/internal/report"
)

// NewRegistry registers every known framework plugin, the way
// gorisk/internal/analyzer.ForLang picks an Analyzer by name but
// generalized to a whole table instead of one selection.
func NewRegistry() *registry.Registry {
	reg := registry.New()
	for _, p := range []registry.Plugin{
		cypress.Plugin(), playwright.Plugin(),
		jest.Plugin(), vitest.Plugin(),
		junit4.Plugin(), junit5.Plugin(),
		pytest.Plugin(), unittest.Plugin(),
	} {
		if err := reg.Register(p); err != nil {
			panic("migrate: " + err.Error())
		}
	}
	return reg
}

// NewIREmitters registers every target framework's structural emitter.
// Absent entries fall back to the legacy regex emitter (spec.md §9).
func NewIREmitters() *emitter.Registry {
	reg := emitter.NewRegistry()
	reg.Register(playwright.Name, playwright.IREmitter)
	return reg
}

// transformFor returns the cross-paradigm Transform for one
// source/target pair, or nil when the pair shares a paradigm and needs
// none (spec.md §9's Open Question: no restructuring is invented
// beyond the one pair the spec names by example).
func transformFor(source, target string) pipeline.TransformFunc {
	if source == pytest.Name && target == unittest.Name {
		return unittest.Transform
	}
	return nil
}

// sourceAPIPrefixes maps a source framework name to the namespaced API
// identifiers that must not survive into converted output (spec.md §6
// "Diagnostic markers", §8 "No source-API residue", e.g. cy.*, jest.*).
var sourceAPIPrefixes = map[string][]string{
	cypress.Name:    {"cy."},
	playwright.Name: {"page.", "test.step("},
	jest.Name:       {"jest."},
	vitest.Name:     {"vi."},
	junit4.Name:     {"@Before", "@After", "org.junit.Assert."},
	junit5.Name:     {"org.junit.jupiter."},
	pytest.Name:     {"pytest."},
	unittest.Name:   {"self.assert"},
}

// forbiddenIdentifiersFor returns the source framework's API prefixes,
// forwarded as Options.ForbiddenIdentifiers so ValidateOutput actually
// enforces the "no dangling source-API identifiers" check end-to-end
// (spec.md §4.6 step 6) instead of only checking bracket balance.
func forbiddenIdentifiersFor(source string) []string {
	return sourceAPIPrefixes[source]
}

func Run(args []string) int {
	fs := flag.NewFlagSet("migrate", flag.ExitOnError)
	source := fs.String("source", "", "source framework name (required)")
	target := fs.String("target", "", "target framework name (required)")
	lang := fs.String("lang", "", "disambiguates homonymous framework names")
	root := fs.String("root", ".", "project root directory")
	cont := fs.Bool("continue", false, "skip files already converted in a prior run")
	retryFailed := fs.Bool("retry-failed", false, "reprocess only previously failed files")
	experimentalIR := fs.Bool("experimental-ir", false, "use the ir-patch emission strategy")
	jsonOut := fs.Bool("json", false, "emit the project report as JSON")
	verbose := fs.Bool("verbose", false, "enable debug logging")
	fs.Parse(args)

	if *verbose {
		logging.SetVerbose(true)
	}

	if *source == "" || *target == "" {
		fmt.Fprintln(os.Stderr, "migrate: --source and --target are required")
		return 2
	}

	reg := NewRegistry()
	engine := migration.NewEngine(afero.NewOsFs(), reg)

	opts := migration.Options{
		Continue:             *cont,
		RetryFailed:          *retryFailed,
		SourceFramework:      *source,
		TargetFramework:      *target,
		Language:             *lang,
		ForbiddenIdentifiers: forbiddenIdentifiersFor(*source),
		PipelineOptions: pipeline.Options{
			ExperimentalIR: *experimentalIR,
			Language:       *lang,
			IREmitters:     NewIREmitters(),
			Transform:      transformFor(*source, *target),
		},
	}

	result, err := engine.Migrate(*root, opts)
	if err != nil {
		fmt.Fprintln(os.Stderr, "migrate:", err)
		if !*jsonOut {
			return 1
		}
	}

	if *jsonOut {
		pr := toProjectReport(result, err)
		if werr := report.WriteJSON(os.Stdout, pr); werr != nil {
			fmt.Fprintln(os.Stderr, "migrate: write report:", werr)
			return 2
		}
		if !pr.Success {
			return 1
		}
		return 0
	}

	fmt.Fprintln(os.Stdout, result.Checklist)
	if err != nil {
		return 1
	}
	return 0
}

func toProjectReport(result migration.Result, runErr error) report.ProjectReport {
	if runErr != nil && len(result.Files) == 0 {
		return report.Failure(runErr)
	}

	var summary report.Summary
	for _, f := range result.Files {
		switch {
		case f.Error != "":
			summary.Failed++
		case f.Status == "skipped":
			summary.Skipped++
		default:
			summary.Converted++
		}
	}

	pr := report.ProjectReport{Success: runErr == nil, Summary: summary, Files: result.Files}
	if runErr != nil {
		pr.Error = runErr.Error()
	}
	return pr
}
