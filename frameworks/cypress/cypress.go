// Package cypress implements the Cypress framework plugin (spec.md
// §4.2, GLOSSARY "Cypress"): detect, parse into IR, and the legacy
// regex/template emitter. Cypress is Hamlet's reference source
// framework for the Cypress -> Playwright pair; frameworks/playwright
// carries the IR emitter that demonstrates Policy B against it.
package cypress

import (
	"regexp"
	"strings"

	"github.com/pmclSF/hamlet-sub002/internal/ir"
	"github.com/pmclSF/hamlet-sub002/internal/jsparse"
	"github.com/pmclSF/hamlet-sub002/internal/registry"
	"github.com/pmclSF/hamlet-sub002/internal/testpatterns"
)

const Name = "cypress"

var (
	visitRe     = regexp.MustCompile(`^cy\.visit\('([^']*)'\)`)
	reloadRe    = regexp.MustCompile(`^cy\.reload\(\)`)
	goRe        = regexp.MustCompile(`^cy\.go\('(back|forward)'\)`)
	interceptRe = regexp.MustCompile(`^cy\.intercept\(\s*'[^']*'\s*,\s*'([^']*)'`)
	detectRe    = regexp.MustCompile(`\bcy\.[a-zA-Z]+\(|\bcypress\b`)
)

// Plugin returns the Cypress registry.Plugin.
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
	kind, subject, ok := testpatterns.MatchCypress(line)
	if !ok {
		if strings.Contains(line, ".should(") {
			a := ir.NewAssertion(ir.AssertUnknown, "", "")
			a.RawKind = line
			return a, true
		}
		return nil, false
	}
	return ir.NewAssertion(kind, subject, ""), true
}

func parseNavigation(line string) (*ir.Navigation, bool) {
	if m := visitRe.FindStringSubmatch(line); m != nil {
		return ir.NewNavigation(ir.NavVisit, m[1]), true
	}
	if reloadRe.MatchString(line) {
		return ir.NewNavigation(ir.NavReload, ""), true
	}
	if m := goRe.FindStringSubmatch(line); m != nil {
		action := ir.NavGoBack
		if m[1] == "forward" {
			action = ir.NavGoForward
		}
		return ir.NewNavigation(action, ""), true
	}
	return nil, false
}

func parseMockCall(line string) (*ir.MockCall, bool) {
	if m := interceptRe.FindStringSubmatch(line); m != nil {
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
	if a.Kind == ir.AssertUnknown {
		return ""
	}
	switch a.Kind {
	case ir.AssertHaveLength, ir.AssertHaveText, ir.AssertHaveAttr, ir.AssertHaveClass, ir.AssertHaveValue:
		return "cy.get('" + a.Subject + "').should('" + string(a.Kind) + "', " + a.Expected + ")"
	case ir.AssertURLInclude:
		return "cy.url().should('include', " + a.Expected + ")"
	case ir.AssertURLEqual:
		return "cy.url().should('eq', " + a.Expected + ")"
	case ir.AssertTitleEqual:
		return "cy.title().should('eq', " + a.Expected + ")"
	default:
		return "cy.get('" + a.Subject + "').should('" + string(a.Kind) + "')"
	}
}

func renderNavigation(n *ir.Navigation) string {
	switch n.Action {
	case ir.NavVisit:
		return "cy.visit('" + n.URL + "')"
	case ir.NavReload:
		return "cy.reload()"
	case ir.NavGoBack:
		return "cy.go('back')"
	case ir.NavGoForward:
		return "cy.go('forward')"
	default:
		return ""
	}
}

func renderMockCall(m *ir.MockCall) string {
	if m.Kind != "intercept" {
		return ""
	}
	return "cy.intercept('GET', '" + m.Target + "')"
}
