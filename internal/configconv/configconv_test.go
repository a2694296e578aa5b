package configconv

import "testing"

func TestParseFlatSkipsCommentsAndBlankLines(t *testing.T) {
	src := "# comment\n\ntestTimeout = 5000\nverbose: true\n// trailing comment\n"
	entries := ParseFlat(src)
	if len(entries) != 2 {
		t.Fatalf("len(entries) = %d, want 2: %+v", len(entries), entries)
	}
	if entries[0] != (Entry{Key: "testTimeout", Value: "5000"}) {
		t.Fatalf("entries[0] = %+v", entries[0])
	}
	if entries[1] != (Entry{Key: "verbose", Value: "true"}) {
		t.Fatalf("entries[1] = %+v", entries[1])
	}
}

func TestParseFlatUnquotesStringValues(t *testing.T) {
	entries := ParseFlat(`testEnvironment = "node"`)
	if len(entries) != 1 || entries[0].Value != "node" {
		t.Fatalf("entries = %+v, want unquoted node", entries)
	}
}

func TestParseJSObjectLiteralTopLevelOnly(t *testing.T) {
	src := `module.exports = {
  testTimeout: 5000,
  verbose: true,
  moduleNameMapper: {
    '^@/(.*)$': '<rootDir>/src/$1',
  },
};`
	entries := ParseJSObjectLiteral(src)

	byKey := map[string]string{}
	for _, e := range entries {
		byKey[e.Key] = e.Value
	}
	if byKey["testTimeout"] != "5000" {
		t.Fatalf("testTimeout = %q", byKey["testTimeout"])
	}
	if byKey["verbose"] != "true" {
		t.Fatalf("verbose = %q", byKey["verbose"])
	}
	if _, ok := byKey["moduleNameMapper"]; !ok {
		t.Fatal("expected moduleNameMapper to be recorded verbatim, not parsed into")
	}
}

func TestConvertRenamesMappedKeysAndFlagsUnmapped(t *testing.T) {
	entries := []Entry{
		{Key: "testTimeout", Value: "5000"},
		{Key: "someExoticOption", Value: "1"},
	}
	keys := KeyMap{"testTimeout": "testTimeout"}

	res := Convert(entries, keys)
	if len(res.Entries) != 2 {
		t.Fatalf("len(Entries) = %d, want 2", len(res.Entries))
	}
	if len(res.Unmapped) != 1 || res.Unmapped[0] != "someExoticOption" {
		t.Fatalf("Unmapped = %v, want [someExoticOption]", res.Unmapped)
	}
}

func TestRenderFlatRoundTrip(t *testing.T) {
	out := Render([]Entry{{Key: "verbose", Value: "true"}})
	if out != "verbose = true\n" {
		t.Fatalf("Render = %q", out)
	}
}
