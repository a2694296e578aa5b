// Package playwright implements the Playwright framework plugin and
// its IR emitter (spec.md §4.2, §4.4): the only target in this build
// that demonstrates Policy B's ir-patch/ir-full structural emission
// against a real assertion table, shared with frameworks/cypress via
// internal/testpatterns.
package playwright

import (
	"regexp"
	"strings"

	"github.com/pmclSF/hamlet-sub002/internal/emitter"
	"github.com/pmclSF/hamlet-sub002/internal/ir"
	"github.com/pmclSF/hamlet-sub002/internal/jsparse"
	"github.com/pmclSF/hamlet-sub002/internal/registry"
	"github.com/pmclSF/hamlet-sub002/internal/testpatterns"
)

const Name = "playwright"

var (
	gotoRe      = regexp.MustCompile(`^await page\.goto\('([^']*)'\)`)
	reloadRe    = regexp.MustCompile(`^await page\.reload\(\)`)
	goBackRe    = regexp.MustCompile(`^await page\.goBack\(\)`)
	goForwardRe = regexp.MustCompile(`^await page\.goForward\(\)`)
	routeRe     = regexp.MustCompile(`^await page\.route\('([^']*)'`)
	detectRe    = regexp.MustCompile(`\bpage\.[a-zA-Z]+\(|@playwright/test`)
)

// Plugin returns the Playwright registry.Plugin.
func Plugin() registry.Plugin {
	return registry.Plugin{
		Name:     Name,
		Language: "javascript",
		Paradigm: registry.ParadigmBDD,
		Detect:   detect,
		Parse:    parse,
		Emit:     emit,
		Imports:  func(specifier string) string { return specifier },
	}
}

func detect(src string) int {
	matches := detectRe.FindAllStringIndex(src, -1)
	if len(matches) == 0 {
		return 0
	}
	score := 40 + len(matches)*10
	if score > 100 {
		score = 100
	}
	return score
}

func parse(src string) (*ir.TestFile, error) {
	return jsparse.Parse(src, "javascript", jsparse.LineClassifier{
		Assertion:  parseAssertion,
		Navigation: parseNavigation,
		MockCall:   parseMockCall,
	}), nil
}

func parseAssertion(line string) (*ir.Assertion, bool) {
	kind, subject, ok := testpatterns.MatchPlaywright(line)
	if !ok {
		if strings.Contains(line, "await expect(") {
			a := ir.NewAssertion(ir.AssertUnknown, "", "")
			a.RawKind = line
			return a, true
		}
		return nil, false
	}
	return ir.NewAssertion(kind, subject, ""), true
}

func parseNavigation(line string) (*ir.Navigation, bool) {
	if m := gotoRe.FindStringSubmatch(line); m != nil {
		return ir.NewNavigation(ir.NavVisit, m[1]), true
	}
	if reloadRe.MatchString(line) {
		return ir.NewNavigation(ir.NavReload, ""), true
	}
	if goBackRe.MatchString(line) {
		return ir.NewNavigation(ir.NavGoBack, ""), true
	}
	if goForwardRe.MatchString(line) {
		return ir.NewNavigation(ir.NavGoForward, ""), true
	}
	return nil, false
}

func parseMockCall(line string) (*ir.MockCall, bool) {
	if m := routeRe.FindStringSubmatch(line); m != nil {
		return ir.NewMockCall("intercept", m[1]), true
	}
	return nil, false
}

func emit(file *ir.TestFile, _ string) (string, error) {
	return jsparse.Emit(file, jsparse.LineRenderer{
		Assertion:  renderAssertion,
		Navigation: renderNavigation,
		MockCall:   renderMockCall,
	}), nil
}

func renderAssertion(a *ir.Assertion) string {
	code, ok := emitAssertionCode(a)
	if !ok {
		return ""
	}
	return code
}

// emitAssertionCode is shared between the legacy renderer and the IR
// emitter below, the one place Playwright's assertion syntax lives.
func emitAssertionCode(a *ir.Assertion) (string, bool) {
	locator := "page.locator('" + a.Subject + "')"
	switch a.Kind {
	case ir.AssertBeVisible:
		return "await expect(" + locator + ").toBeVisible()", true
	case ir.AssertBeChecked:
		return "await expect(" + locator + ").toBeChecked()", true
	case ir.AssertBeDisabled:
		return "await expect(" + locator + ").toBeDisabled()", true
	case ir.AssertBeEnabled:
		return "await expect(" + locator + ").toBeEnabled()", true
	case ir.AssertBeEmpty:
		return "await expect(" + locator + ").toBeEmpty()", true
	case ir.AssertBeFocused:
		return "await expect(" + locator + ").toBeFocused()", true
	case ir.AssertHaveLength:
		return "await expect(" + locator + ").toHaveCount(" + a.Expected + ")", true
	case ir.AssertHaveText:
		return "await expect(" + locator + ").toHaveText(" + a.Expected + ")", true
	case ir.AssertHaveAttr:
		return "await expect(" + locator + ").toHaveAttribute(" + a.Expected + ")", true
	case ir.AssertHaveClass:
		return "await expect(" + locator + ").toHaveClass(" + a.Expected + ")", true
	case ir.AssertHaveValue:
		return "await expect(" + locator + ").toHaveValue(" + a.Expected + ")", true
	case ir.AssertURLInclude, ir.AssertURLEqual:
		return "await expect(page).toHaveURL(" + a.Expected + ")", true
	case ir.AssertTitleEqual:
		return "await expect(page).toHaveTitle(" + a.Expected + ")", true
	default:
		return "", false
	}
}

func renderNavigation(n *ir.Navigation) string {
	switch n.Action {
	case ir.NavVisit:
		return "await page.goto('" + n.URL + "')"
	case ir.NavReload:
		return "await page.reload()"
	case ir.NavGoBack:
		return "await page.goBack()"
	case ir.NavGoForward:
		return "await page.goForward()"
	default:
		return ""
	}
}

func renderMockCall(m *ir.MockCall) string {
	if m.Kind != "intercept" {
		return ""
	}
	return "await page.route('" + m.Target + "', route => route.continue())"
}

// --- IR emitter (spec.md §4.4): the Policy B demonstration target ---

type irEmitter struct{}

// IREmitter is the Playwright IR emitter Policy B drives. Only a
// subset of assertion kinds are "supported" here deliberately, so a
// converted file genuinely exercises both the ir-patch replace path
// (supported kinds) and the HAMLET-TODO fallback path (everything
// else) the way spec.md §8's literal be.visible/custom.matcher
// scenario expects.
var IREmitter emitter.IREmitter = irEmitter{}

func (irEmitter) EmitNode(n ir.Node) emitter.EmitNodeResult {
	switch v := n.(type) {
	case *ir.Assertion:
		code, ok := emitAssertionCode(v)
		return emitter.EmitNodeResult{Supported: ok, Code: code}
	case *ir.Navigation:
		code := renderNavigation(v)
		return emitter.EmitNodeResult{Supported: code != "", Code: code}
	case *ir.MockCall:
		code := renderMockCall(v)
		return emitter.EmitNodeResult{Supported: code != "", Code: code}
	default:
		return emitter.EmitNodeResult{}
	}
}

// MatchesBaseline interprets line as Playwright's own legacy emission:
// target.Emit produces the baseline Patch diffs against, so the
// baseline is always in the target's syntax, never the source's.
func (irEmitter) MatchesBaseline(line string, n ir.Node) bool {
	switch v := n.(type) {
	case *ir.Assertion:
		kind, subject, ok := testpatterns.MatchPlaywright(line)
		return ok && kind == v.Kind && subject == v.Subject
	case *ir.Navigation:
		switch v.Action {
		case ir.NavVisit:
			return strings.HasPrefix(line, "await page.goto('"+v.URL+"')")
		case ir.NavReload:
			return strings.HasPrefix(line, "await page.reload()")
		case ir.NavGoBack:
			return strings.HasPrefix(line, "await page.goBack()")
		case ir.NavGoForward:
			return strings.HasPrefix(line, "await page.goForward()")
		}
		return false
	case *ir.MockCall:
		return strings.HasPrefix(line, "await page.route(") && strings.Contains(line, "'"+v.Target+"'")
	default:
		return false
	}
}

// EmitFullFile declines full-tree emission: Playwright's table only
// covers assertion/navigation/mock-call rendering, not suite/hook
// structure, so ir-full always falls back to ir-patch here (spec.md
// §4.4 "EmitFullFile ... ('', false) signals fallback").
func (irEmitter) EmitFullFile(*ir.TestFile) (string, bool) {
	return "", false
}
