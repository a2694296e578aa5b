package pipeline

import (
	"errors"
	"strings"
	"testing"

	"github.com/pmclSF/hamlet-sub002/internal/emitter"
	"github.com/pmclSF/hamlet-sub002/internal/ir"
	"github.com/pmclSF/hamlet-sub002/internal/registry"
)

// jestLikePlugin and vitestLikePlugin are minimal stand-ins for the
// real framework plugins: detect by substring, parse one assertion out
// of a single `expect(x).toBeVisible();` line, emit it back as either
// dialect's call syntax.
func jestLikePlugin() registry.Plugin {
	return registry.Plugin{
		Name:     "jest",
		Language: "javascript",
		Paradigm: registry.ParadigmFunction,
		Detect: func(src string) int {
			if strings.Contains(src, "test(") {
				return 90
			}
			return 0
		},
		Parse: func(src string) (*ir.TestFile, error) {
			file := ir.NewTestFile("javascript")
			tc := ir.NewTestCase("example")
			a := ir.NewAssertion(ir.AssertBeVisible, "el", "")
			ir.SetOriginalSource(a, `expect(el).toBeVisible();`)
			tc.Body = append(tc.Body, a)
			file.Body = append(file.Body, tc)
			return file, nil
		},
		Emit: func(file *ir.TestFile, src string) (string, error) {
			return "expect(el).toBeVisible();\n", nil
		},
		Imports: func(s string) string { return s },
	}
}

func vitestLikePlugin() registry.Plugin {
	p := jestLikePlugin()
	p.Name = "vitest"
	p.Emit = func(file *ir.TestFile, src string) (string, error) {
		return "expect(el).toBeVisible();\n", nil
	}
	return p
}

func brokenParsePlugin() registry.Plugin {
	p := jestLikePlugin()
	p.Name = "broken"
	p.Parse = func(src string) (*ir.TestFile, error) {
		return nil, errors.New("malformed input")
	}
	return p
}

func newStubRegistry(t *testing.T, plugins ...registry.Plugin) *registry.Registry {
	t.Helper()
	r := registry.New()
	for _, p := range plugins {
		if err := r.Register(p); err != nil {
			t.Fatalf("Register(%s): %v", p.Name, err)
		}
	}
	return r
}

func TestConvertUnknownSourceFramework(t *testing.T) {
	r := newStubRegistry(t, vitestLikePlugin())
	_, err := Convert(r, "test('x', () => {})", "jest", "vitest", Options{})

	var want *UnknownFrameworkError
	if !errors.As(err, &want) || want.Name != "jest" {
		t.Fatalf("err = %v, want UnknownFrameworkError for jest", err)
	}
}

func TestConvertUnknownTargetFramework(t *testing.T) {
	r := newStubRegistry(t, jestLikePlugin())
	_, err := Convert(r, "test('x', () => {})", "jest", "vitest", Options{})

	var want *UnknownFrameworkError
	if !errors.As(err, &want) || want.Name != "vitest" {
		t.Fatalf("err = %v, want UnknownFrameworkError for vitest", err)
	}
}

func TestConvertSameFrameworkRejected(t *testing.T) {
	r := newStubRegistry(t, jestLikePlugin())
	_, err := Convert(r, "test('x', () => {})", "jest", "jest", Options{})

	if !errors.Is(err, ErrSameFramework) {
		t.Fatalf("err = %v, want ErrSameFramework", err)
	}
}

func TestConvertDetectionMismatch(t *testing.T) {
	r := newStubRegistry(t, jestLikePlugin(), vitestLikePlugin())
	_, err := Convert(r, "describe-only cypress fixture", "jest", "vitest", Options{})

	if !errors.Is(err, ErrDetectionMismatch) {
		t.Fatalf("err = %v, want ErrDetectionMismatch", err)
	}
}

func TestConvertEmptySourceSkipsDetection(t *testing.T) {
	r := newStubRegistry(t, jestLikePlugin(), vitestLikePlugin())
	_, err := Convert(r, "", "jest", "vitest", Options{})
	if err != nil {
		t.Fatalf("Convert with empty src: %v", err)
	}
}

func TestConvertParseErrorWraps(t *testing.T) {
	r := newStubRegistry(t, brokenParsePlugin(), vitestLikePlugin())
	_, err := Convert(r, "test('x', () => {})", "broken", "vitest", Options{})

	var want *ParseError
	if !errors.As(err, &want) {
		t.Fatalf("err = %v, want *ParseError", err)
	}
	if want.Framework != "broken" {
		t.Fatalf("ParseError.Framework = %q, want broken", want.Framework)
	}
}

func TestConvertLegacyStrategyUsesTargetEmit(t *testing.T) {
	r := newStubRegistry(t, jestLikePlugin(), vitestLikePlugin())
	result, err := Convert(r, "test('x', () => {})", "jest", "vitest", Options{})
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	if result.Code != "expect(el).toBeVisible();\n" {
		t.Fatalf("Code = %q", result.Code)
	}
	if result.Report.IRCoverage != nil {
		t.Fatal("legacy strategy must not populate IRCoverage")
	}
}

// fakePlaywrightEmitter supports be.visible and renders Playwright's
// await-expect form.
type fakePlaywrightEmitter struct{}

func (fakePlaywrightEmitter) EmitNode(n ir.Node) emitter.EmitNodeResult {
	a, ok := n.(*ir.Assertion)
	if !ok || a.Kind != ir.AssertBeVisible {
		return emitter.EmitNodeResult{Supported: false}
	}
	return emitter.EmitNodeResult{Supported: true, Code: "await expect(el).toBeVisible();"}
}

func (fakePlaywrightEmitter) MatchesBaseline(line string, n ir.Node) bool {
	return strings.Contains(line, "toBeVisible")
}

func (fakePlaywrightEmitter) EmitFullFile(file *ir.TestFile) (string, bool) { return "", false }

func TestConvertIRPatchStrategyAppliesPolicyB(t *testing.T) {
	r := newStubRegistry(t, jestLikePlugin(), vitestLikePlugin())
	emitters := emitter.NewRegistry()
	emitters.Register("vitest", fakePlaywrightEmitter{})

	result, err := Convert(r, "test('x', () => {})", "jest", "vitest", Options{
		Emitter:    emitter.StrategyIRPatch,
		IREmitters: emitters,
	})
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	if !strings.Contains(result.Code, "await expect") {
		t.Fatalf("Code = %q, want Policy B replacement applied", result.Code)
	}
	if result.Report.IRCoverage == nil {
		t.Fatal("expected IRCoverage when an IR emitter is active")
	}
	if result.Report.IRCoverage.CoveragePercent != 100 {
		t.Fatalf("CoveragePercent = %d, want 100 (the only assertion is supported)",
			result.Report.IRCoverage.CoveragePercent)
	}
}

func TestConvertExperimentalIRAliasesIRPatch(t *testing.T) {
	r := newStubRegistry(t, jestLikePlugin(), vitestLikePlugin())
	emitters := emitter.NewRegistry()
	emitters.Register("vitest", fakePlaywrightEmitter{})

	result, err := Convert(r, "test('x', () => {})", "jest", "vitest", Options{
		ExperimentalIR: true,
		IREmitters:     emitters,
	})
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	if !strings.Contains(result.Code, "await expect") {
		t.Fatalf("Code = %q, want ir-patch applied via ExperimentalIR alias", result.Code)
	}
}

func TestConvertExplicitLegacyOverridesExperimentalIR(t *testing.T) {
	r := newStubRegistry(t, jestLikePlugin(), vitestLikePlugin())
	emitters := emitter.NewRegistry()
	emitters.Register("vitest", fakePlaywrightEmitter{})

	result, err := Convert(r, "test('x', () => {})", "jest", "vitest", Options{
		Emitter:        emitter.StrategyLegacy,
		ExperimentalIR: true,
		IREmitters:     emitters,
	})
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	if strings.Contains(result.Code, "await expect") {
		t.Fatal("explicit emitter=legacy must override ExperimentalIR")
	}
}

func TestConvertIRPatchFallsBackToLegacyWithoutRegisteredEmitter(t *testing.T) {
	r := newStubRegistry(t, jestLikePlugin(), vitestLikePlugin())
	result, err := Convert(r, "test('x', () => {})", "jest", "vitest", Options{
		Emitter: emitter.StrategyIRPatch,
	})
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	if result.Code != "expect(el).toBeVisible();\n" {
		t.Fatalf("Code = %q, want legacy fallback output", result.Code)
	}
	if result.Report.IRCoverage != nil {
		t.Fatal("fallback to legacy must not populate IRCoverage")
	}
}

func TestConvertTransformAppliedOnlyOnParadigmMismatch(t *testing.T) {
	source := jestLikePlugin()
	target := vitestLikePlugin()
	target.Paradigm = registry.ParadigmXUnit // force a mismatch

	r := newStubRegistry(t, source, target)

	called := false
	_, err := Convert(r, "test('x', () => {})", "jest", "vitest", Options{
		Transform: func(file *ir.TestFile, src, tgt registry.Plugin) (*ir.TestFile, error) {
			called = true
			return file, nil
		},
	})
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	if !called {
		t.Fatal("expected Transform to run when paradigms differ")
	}
}

func TestConvertTransformSkippedOnMatchingParadigm(t *testing.T) {
	r := newStubRegistry(t, jestLikePlugin(), vitestLikePlugin())

	called := false
	_, err := Convert(r, "test('x', () => {})", "jest", "vitest", Options{
		Transform: func(file *ir.TestFile, src, tgt registry.Plugin) (*ir.TestFile, error) {
			called = true
			return file, nil
		},
	})
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	if called {
		t.Fatal("Transform must not run when source and target paradigms match")
	}
}
