// Package ir defines Hamlet's framework-agnostic Intermediate
// Representation: a tree of tagged variants describing test-framework
// constructs (suites, cases, hooks, assertions, navigation, mocks,
// imports, modifiers, shared state, and raw/verbatim fragments).
//
// Nodes are immutable once constructed. Transforms produce new trees
// rather than mutating existing ones.
package ir

// Confidence tags how faithfully a single node could be translated.
type Confidence string

const (
	Converted    Confidence = "converted"
	Warning      Confidence = "warning"
	Unconvertible Confidence = "unconvertible"
)

// Location is an optional source position carried by most node kinds.
type Location struct {
	Line   int
	Column int
}

// Node is implemented by every IR variant. node is unexported so the
// variant set is closed to this package: adding a new variant forces
// every exhaustive switch in the module to be updated explicitly,
// which is the Go analogue of the spec's "compile-time/test-time
// break, not a silent fallback" contract for Node-kind handling.
type Node interface {
	node()
	// Children returns the node's direct descendants in stored order.
	Children() []Node
}

// base is embedded by every variant to carry the attributes common to
// all of them, the root TestFile included.
type base struct {
	Location       Location
	HasLocation    bool
	OriginalSource string
	Confidence     Confidence
}

func (base) node() {}

// TestFile is the IR root.
type TestFile struct {
	base
	Language string
	Imports  []*ImportStatement
	Body     []Node // *TestSuite | *TestCase | *RawCode | *Comment
}

func (f *TestFile) Children() []Node {
	out := make([]Node, 0, len(f.Imports)+len(f.Body))
	for _, n := range f.Imports {
		out = append(out, n)
	}
	out = append(out, f.Body...)
	return out
}

// TestSuite groups hooks and nested tests/suites under a name.
type TestSuite struct {
	base
	Name      string
	Hooks     []*Hook
	Tests     []Node // *TestCase | *TestSuite
	Modifiers []*Modifier
}

func (s *TestSuite) Children() []Node {
	out := make([]Node, 0, len(s.Hooks)+len(s.Tests)+len(s.Modifiers))
	for _, n := range s.Hooks {
		out = append(out, n)
	}
	out = append(out, s.Tests...)
	for _, n := range s.Modifiers {
		out = append(out, n)
	}
	return out
}

// TestCase is a single test. Per invariant I2, Body holds only
// Assertion/MockCall/Navigation/RawCode/Comment — never a TestSuite.
type TestCase struct {
	base
	Name      string
	Body      []Node
	Modifiers []*Modifier
}

func (c *TestCase) Children() []Node {
	out := make([]Node, 0, len(c.Body)+len(c.Modifiers))
	out = append(out, c.Body...)
	for _, n := range c.Modifiers {
		out = append(out, n)
	}
	return out
}

// HookType enumerates the four lifecycle hook positions.
type HookType string

const (
	BeforeEach HookType = "beforeEach"
	AfterEach  HookType = "afterEach"
	BeforeAll  HookType = "beforeAll"
	AfterAll   HookType = "afterAll"
)

// Hook is a suite-level setup/teardown block.
type Hook struct {
	base
	HookType HookType
	Body     []Node
}

func (h *Hook) Children() []Node { return h.Body }

// AssertionKind is the closed vocabulary of recognized assertion
// semantics (spec.md GLOSSARY). Parsers must map anything outside this
// vocabulary to Unconvertible at parse time (invariant I4), never pass
// an arbitrary string through silently.
type AssertionKind string

const (
	AssertEqual        AssertionKind = "equal"
	AssertStrictEqual  AssertionKind = "strictEqual"
	AssertTruthy       AssertionKind = "truthy"
	AssertFalsy        AssertionKind = "falsy"
	AssertIsNull       AssertionKind = "isNull"
	AssertIsDefined    AssertionKind = "isDefined"
	AssertContains     AssertionKind = "contains"
	AssertHaveLength   AssertionKind = "have.length"
	AssertHaveText     AssertionKind = "have.text"
	AssertHaveAttr     AssertionKind = "have.attr"
	AssertHaveClass    AssertionKind = "have.class"
	AssertHaveValue    AssertionKind = "have.value"
	AssertBeVisible    AssertionKind = "be.visible"
	AssertBeChecked    AssertionKind = "be.checked"
	AssertBeDisabled   AssertionKind = "be.disabled"
	AssertBeEnabled    AssertionKind = "be.enabled"
	AssertBeEmpty      AssertionKind = "be.empty"
	AssertBeFocused    AssertionKind = "be.focused"
	AssertMatch        AssertionKind = "match"
	AssertURLInclude   AssertionKind = "url.include"
	AssertURLEqual     AssertionKind = "url.equal"
	AssertTitleEqual   AssertionKind = "title.equal"
	AssertThrows       AssertionKind = "throws"
	AssertCalled       AssertionKind = "called"
	// AssertUnknown is not part of the closed vocabulary; it is only
	// ever used as the Kind of a node whose Confidence is
	// Unconvertible, recording the unrecognized source text so a
	// HAMLET-TODO can cite it.
	AssertUnknown AssertionKind = ""
)

// KnownAssertionKinds lists every vocabulary entry every target emitter
// must be able to at least recognize (not necessarily support).
var KnownAssertionKinds = []AssertionKind{
	AssertEqual, AssertStrictEqual, AssertTruthy, AssertFalsy, AssertIsNull,
	AssertIsDefined, AssertContains, AssertHaveLength, AssertHaveText,
	AssertHaveAttr, AssertHaveClass, AssertHaveValue, AssertBeVisible,
	AssertBeChecked, AssertBeDisabled, AssertBeEnabled, AssertBeEmpty,
	AssertBeFocused, AssertMatch, AssertURLInclude, AssertURLEqual,
	AssertTitleEqual, AssertThrows, AssertCalled,
}

// IsKnownAssertionKind reports whether kind is in the closed vocabulary.
func IsKnownAssertionKind(kind AssertionKind) bool {
	for _, k := range KnownAssertionKinds {
		if k == kind {
			return true
		}
	}
	return false
}

// Assertion is a single expectation.
type Assertion struct {
	base
	Kind       AssertionKind
	RawKind    string // original source text when Kind is AssertUnknown
	Subject    string
	Expected   string
	IsNegated  bool
}

func (a *Assertion) Children() []Node { return nil }

// NavAction enumerates browser/page navigation actions.
type NavAction string

const (
	NavVisit    NavAction = "visit"
	NavGoBack   NavAction = "goBack"
	NavGoForward NavAction = "goForward"
	NavReload   NavAction = "reload"
)

// Navigation is a single browser navigation step.
type Navigation struct {
	base
	Action NavAction
	URL    string
}

func (n *Navigation) Children() []Node { return nil }

// MockCall is a mocking/stubbing/interception construct.
type MockCall struct {
	base
	Kind   string
	Target string
}

func (m *MockCall) Children() []Node { return nil }

// Binding is one name bound by an ImportStatement.
type Binding struct {
	Local     string
	Imported  string // "" for default/namespace bindings
	IsDefault bool
	IsNamespace bool
}

// ImportStatement is a single import/require/re-export line.
type ImportStatement struct {
	base
	Source   string
	Bindings []Binding
}

func (i *ImportStatement) Children() []Node { return nil }

// ModifierType enumerates the three recognized test/suite modifiers.
type ModifierType string

const (
	ModOnly ModifierType = "only"
	ModSkip ModifierType = "skip"
	ModTodo ModifierType = "todo"
)

// Modifier tags a suite/case as focused, skipped, or pending.
type Modifier struct {
	base
	ModifierType ModifierType
}

func (m *Modifier) Children() []Node { return nil }

// SharedVariable is a variable declared in a suite/file scope and
// referenced by its tests (fixtures, shared state).
type SharedVariable struct {
	base
	Name        string
	Initializer string
}

func (s *SharedVariable) Children() []Node { return nil }

// RawCode is a verbatim fragment the parser could not otherwise model.
type RawCode struct {
	base
	Source string
}

func (r *RawCode) Children() []Node { return nil }

// Comment is a verbatim comment. It has zero scoring weight.
type Comment struct {
	base
	Text string
}

func (c *Comment) Children() []Node { return nil }

// --- constructors (set Confidence=Converted by default; callers flip
// it explicitly when a parser recognizes it could not translate a
// construct faithfully, per invariant I4) ---

func NewTestFile(language string) *TestFile {
	return &TestFile{base: base{Confidence: Converted}, Language: language}
}

func NewTestSuite(name string) *TestSuite {
	return &TestSuite{base: base{Confidence: Converted}, Name: name}
}

func NewTestCase(name string) *TestCase {
	return &TestCase{base: base{Confidence: Converted}, Name: name}
}

func NewHook(kind HookType) *Hook {
	return &Hook{base: base{Confidence: Converted}, HookType: kind}
}

func NewAssertion(kind AssertionKind, subject, expected string) *Assertion {
	conf := Converted
	if kind == AssertUnknown || !IsKnownAssertionKind(kind) {
		conf = Unconvertible
	}
	return &Assertion{base: base{Confidence: conf}, Kind: kind, Subject: subject, Expected: expected}
}

func NewNavigation(action NavAction, url string) *Navigation {
	return &Navigation{base: base{Confidence: Converted}, Action: action, URL: url}
}

func NewMockCall(kind, target string) *MockCall {
	return &MockCall{base: base{Confidence: Converted}, Kind: kind, Target: target}
}

func NewImportStatement(source string) *ImportStatement {
	return &ImportStatement{base: base{Confidence: Converted}, Source: source}
}

func NewModifier(kind ModifierType) *Modifier {
	return &Modifier{base: base{Confidence: Converted}, ModifierType: kind}
}

func NewSharedVariable(name, initializer string) *SharedVariable {
	return &SharedVariable{base: base{Confidence: Converted}, Name: name, Initializer: initializer}
}

func NewRawCode(source string) *RawCode {
	return &RawCode{base: base{Confidence: Unconvertible}, Source: source}
}

func NewComment(text string) *Comment {
	return &Comment{base: base{Confidence: Converted}, Text: text}
}

// --- shared accessors ---

// Loc returns the node's source location and whether it has one.
func Loc(n Node) (Location, bool) {
	switch v := n.(type) {
	case *TestFile:
		return v.Location, v.HasLocation
	case *TestSuite:
		return v.Location, v.HasLocation
	case *TestCase:
		return v.Location, v.HasLocation
	case *Hook:
		return v.Location, v.HasLocation
	case *Assertion:
		return v.Location, v.HasLocation
	case *Navigation:
		return v.Location, v.HasLocation
	case *MockCall:
		return v.Location, v.HasLocation
	case *ImportStatement:
		return v.Location, v.HasLocation
	case *Modifier:
		return v.Location, v.HasLocation
	case *SharedVariable:
		return v.Location, v.HasLocation
	case *RawCode:
		return v.Location, v.HasLocation
	case *Comment:
		return v.Location, v.HasLocation
	default:
		return Location{}, false
	}
}

// SetLoc sets n's source location.
func SetLoc(n Node, loc Location) {
	switch v := n.(type) {
	case *TestFile:
		v.Location, v.HasLocation = loc, true
	case *TestSuite:
		v.Location, v.HasLocation = loc, true
	case *TestCase:
		v.Location, v.HasLocation = loc, true
	case *Hook:
		v.Location, v.HasLocation = loc, true
	case *Assertion:
		v.Location, v.HasLocation = loc, true
	case *Navigation:
		v.Location, v.HasLocation = loc, true
	case *MockCall:
		v.Location, v.HasLocation = loc, true
	case *ImportStatement:
		v.Location, v.HasLocation = loc, true
	case *Modifier:
		v.Location, v.HasLocation = loc, true
	case *SharedVariable:
		v.Location, v.HasLocation = loc, true
	case *RawCode:
		v.Location, v.HasLocation = loc, true
	case *Comment:
		v.Location, v.HasLocation = loc, true
	}
}

// ConfidenceOf returns n's own confidence tag.
func ConfidenceOf(n Node) Confidence {
	switch v := n.(type) {
	case *TestFile:
		return v.Confidence
	case *TestSuite:
		return v.Confidence
	case *TestCase:
		return v.Confidence
	case *Hook:
		return v.Confidence
	case *Assertion:
		return v.Confidence
	case *Navigation:
		return v.Confidence
	case *MockCall:
		return v.Confidence
	case *ImportStatement:
		return v.Confidence
	case *Modifier:
		return v.Confidence
	case *SharedVariable:
		return v.Confidence
	case *RawCode:
		return v.Confidence
	case *Comment:
		return v.Confidence
	default:
		return Converted
	}
}

// SetConfidence sets n's own confidence tag.
func SetConfidence(n Node, c Confidence) {
	switch v := n.(type) {
	case *TestFile:
		v.Confidence = c
	case *TestSuite:
		v.Confidence = c
	case *TestCase:
		v.Confidence = c
	case *Hook:
		v.Confidence = c
	case *Assertion:
		v.Confidence = c
	case *Navigation:
		v.Confidence = c
	case *MockCall:
		v.Confidence = c
	case *ImportStatement:
		v.Confidence = c
	case *Modifier:
		v.Confidence = c
	case *SharedVariable:
		v.Confidence = c
	case *RawCode:
		v.Confidence = c
	case *Comment:
		v.Confidence = c
	}
}

// OriginalSourceOf returns the verbatim source snippet n was parsed
// from, if the parser recorded one.
func OriginalSourceOf(n Node) string {
	switch v := n.(type) {
	case *TestFile:
		return v.OriginalSource
	case *TestSuite:
		return v.OriginalSource
	case *TestCase:
		return v.OriginalSource
	case *Hook:
		return v.OriginalSource
	case *Assertion:
		return v.OriginalSource
	case *Navigation:
		return v.OriginalSource
	case *MockCall:
		return v.OriginalSource
	case *ImportStatement:
		return v.OriginalSource
	case *Modifier:
		return v.OriginalSource
	case *SharedVariable:
		return v.OriginalSource
	case *RawCode:
		return v.OriginalSource
	case *Comment:
		return v.OriginalSource
	default:
		return ""
	}
}

// SetOriginalSource records the verbatim snippet n was parsed from.
func SetOriginalSource(n Node, src string) {
	switch v := n.(type) {
	case *TestFile:
		v.OriginalSource = src
	case *TestSuite:
		v.OriginalSource = src
	case *TestCase:
		v.OriginalSource = src
	case *Hook:
		v.OriginalSource = src
	case *Assertion:
		v.OriginalSource = src
	case *Navigation:
		v.OriginalSource = src
	case *MockCall:
		v.OriginalSource = src
	case *ImportStatement:
		v.OriginalSource = src
	case *Modifier:
		v.OriginalSource = src
	case *SharedVariable:
		v.OriginalSource = src
	case *RawCode:
		v.OriginalSource = src
	case *Comment:
		v.OriginalSource = src
	}
}

// KindName returns a stable, human-readable tag for n's variant, used
// by the scorer and diagnostics (report "nodeType" field).
func KindName(n Node) string {
	switch n.(type) {
	case *TestFile:
		return "TestFile"
	case *TestSuite:
		return "TestSuite"
	case *TestCase:
		return "TestCase"
	case *Hook:
		return "Hook"
	case *Assertion:
		return "Assertion"
	case *Navigation:
		return "Navigation"
	case *MockCall:
		return "MockCall"
	case *ImportStatement:
		return "ImportStatement"
	case *Modifier:
		return "Modifier"
	case *SharedVariable:
		return "SharedVariable"
	case *RawCode:
		return "RawCode"
	case *Comment:
		return "Comment"
	default:
		return "Unknown"
	}
}

// Walk visits root and every descendant in deterministic pre-order
// (parent before children, children in stored order). visit returning
// an error stops the walk and propagates the error.
func Walk(root Node, visit func(Node) error) error {
	if root == nil {
		return nil
	}
	if err := visit(root); err != nil {
		return err
	}
	for _, child := range root.Children() {
		if err := Walk(child, visit); err != nil {
			return err
		}
	}
	return nil
}

// Count returns the total number of nodes in the tree rooted at root.
func Count(root Node) int {
	n := 0
	_ = Walk(root, func(Node) error { n++; return nil })
	return n
}
