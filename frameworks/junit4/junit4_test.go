package junit4

import (
	"strings"
	"testing"

	"github.com/pmclSF/hamlet-sub002/internal/ir"
)

func TestDetectRecognizesJUnit4Syntax(t *testing.T) {
	src := "import org.junit.Test;\nimport org.junit.Before;\npublic class MathTest {\n  @Before\n  public void setUp() {\n  }\n  @Test\n  public void testAdds() {\n    assertEquals(2, 1 + 1);\n  }\n}\n"
	if got := detect(src); got == 0 {
		t.Fatalf("detect = %d, want nonzero", got)
	}
}

func TestDetectRejectsJUnit5Syntax(t *testing.T) {
	src := "import org.junit.jupiter.api.Test;\n"
	if got := detect(src); got != 0 {
		t.Fatalf("detect = %d, want 0", got)
	}
}

func TestParseBuildsSuiteHookAndAssertion(t *testing.T) {
	src := "import org.junit.Test;\n" +
		"import org.junit.Before;\n" +
		"public class MathTest {\n" +
		"  @Before\n" +
		"  public void setUp() {\n" +
		"  }\n" +
		"  @Test\n" +
		"  public void testAdds() {\n" +
		"    assertEquals(2, 1 + 1);\n" +
		"  }\n" +
		"}\n"

	file, err := parse(src)
	if err != nil {
		t.Fatal(err)
	}
	suite := file.Body[0].(*ir.TestSuite)
	if suite.Name != "MathTest" {
		t.Fatalf("suite.Name = %q", suite.Name)
	}
	if len(suite.Hooks) != 1 || suite.Hooks[0].HookType != ir.BeforeEach {
		t.Fatalf("Hooks = %v, want one beforeEach hook", suite.Hooks)
	}
	tc := suite.Tests[0].(*ir.TestCase)
	if tc.Name != "testAdds" {
		t.Fatalf("tc.Name = %q", tc.Name)
	}
	a := tc.Body[0].(*ir.Assertion)
	if a.Kind != ir.AssertEqual || a.Subject != "1 + 1" || a.Expected != "2" {
		t.Fatalf("Body[0] = %+v, want equal(1 + 1, 2)", tc.Body[0])
	}
}

func TestParseFlagsExpectedExceptionAnnotation(t *testing.T) {
	src := "public class MathTest {\n" +
		"  @Test(expected = IllegalArgumentException.class)\n" +
		"  public void testThrows() {\n" +
		"    divide(1, 0);\n" +
		"  }\n" +
		"}\n"
	file, err := parse(src)
	if err != nil {
		t.Fatal(err)
	}
	suite := file.Body[0].(*ir.TestSuite)
	tc := suite.Tests[0].(*ir.TestCase)
	c, ok := tc.Body[0].(*ir.Comment)
	if !ok || !strings.Contains(c.Text, "IllegalArgumentException") {
		t.Fatalf("Body[0] = %+v, want a HAMLET-TODO comment citing the exception", tc.Body[0])
	}
}

func TestEmitRendersAnnotationAndAssertion(t *testing.T) {
	tc := ir.NewTestCase("testAdds")
	tc.Body = append(tc.Body, ir.NewAssertion(ir.AssertEqual, "1 + 1", "2"))
	suite := ir.NewTestSuite("MathTest")
	suite.Tests = append(suite.Tests, tc)
	file := ir.NewTestFile("java")
	file.Body = append(file.Body, suite)

	code, err := emit(file, "")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(code, "@Test") {
		t.Fatalf("code = %q, want @Test annotation", code)
	}
	if !strings.Contains(code, "assertEquals(2, 1 + 1)") {
		t.Fatalf("code = %q, want assertEquals call", code)
	}
}
