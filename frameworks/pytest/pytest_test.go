package pytest

import (
	"strings"
	"testing"

	"github.com/pmclSF/hamlet-sub002/internal/ir"
)

func TestDetectRecognizesPytestSyntax(t *testing.T) {
	src := "import pytest\n\ndef test_adds():\n    assert 1 + 1 == 2\n"
	if got := detect(src); got == 0 {
		t.Fatalf("detect = %d, want nonzero", got)
	}
}

func TestDetectRejectsUnittestSource(t *testing.T) {
	src := "import unittest\n\nclass MathTest(unittest.TestCase):\n    def test_adds(self):\n        self.assertEqual(1 + 1, 2)\n"
	if got := detect(src); got != 0 {
		t.Fatalf("detect = %d, want 0 for unittest.TestCase source", got)
	}
}

func TestParseBuildsFlatTestCaseAndAssertion(t *testing.T) {
	src := "import pytest\n\ndef test_adds():\n    assert 1 + 1 == 2\n"

	file, err := parse(src)
	if err != nil {
		t.Fatal(err)
	}
	tc, ok := file.Body[0].(*ir.TestCase)
	if !ok {
		t.Fatalf("Body[0] = %T, want *ir.TestCase", file.Body[0])
	}
	a := tc.Body[0].(*ir.Assertion)
	if a.Kind != ir.AssertEqual || a.Subject != "1 + 1" || a.Expected != "2" {
		t.Fatalf("Body[0] = %+v, want equal(1 + 1, 2)", tc.Body[0])
	}
}

func TestParseRecognizesRaisesContextManager(t *testing.T) {
	src := "import pytest\n\ndef test_raises():\n    with pytest.raises(ValueError):\n        do_thing()\n"

	file, err := parse(src)
	if err != nil {
		t.Fatal(err)
	}
	tc := file.Body[0].(*ir.TestCase)
	a, ok := tc.Body[0].(*ir.Assertion)
	if !ok {
		t.Fatalf("Body[0] = %T, want *ir.Assertion", tc.Body[0])
	}
	if a.Kind != ir.AssertThrows || a.Expected != "ValueError" {
		t.Fatalf("Body[0] = %+v, want throws(ValueError)", a)
	}
}

func TestParseSkipsFixtureBody(t *testing.T) {
	src := "import pytest\n\ndef make_widget():\n    return Widget()\n\ndef test_uses_widget():\n    assert make_widget() is not None\n"

	file, err := parse(src)
	if err != nil {
		t.Fatal(err)
	}
	if len(file.Body) != 1 {
		t.Fatalf("Body = %v, want only the test function (fixture dropped)", file.Body)
	}
}

func TestEmitRendersFlatFunctionNoClass(t *testing.T) {
	tc := ir.NewTestCase("test_adds")
	tc.Body = append(tc.Body, ir.NewAssertion(ir.AssertEqual, "1 + 1", "2"))
	file := ir.NewTestFile("python")
	file.Body = append(file.Body, tc)

	code, err := emit(file, "")
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(code, "class ") {
		t.Fatalf("code = %q, want no wrapping class", code)
	}
	if !strings.Contains(code, "def test_adds():") {
		t.Fatalf("code = %q, want a bare test function", code)
	}
	if !strings.Contains(code, "assert 1 + 1 == 2") {
		t.Fatalf("code = %q, want the rendered assertion", code)
	}
}

func TestEmitRendersSkipMarker(t *testing.T) {
	tc := ir.NewTestCase("test_adds")
	tc.Modifiers = append(tc.Modifiers, ir.NewModifier(ir.ModSkip))
	file := ir.NewTestFile("python")
	file.Body = append(file.Body, tc)

	code, err := emit(file, "")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(code, "@pytest.mark.skip") {
		t.Fatalf("code = %q, want @pytest.mark.skip", code)
	}
}
