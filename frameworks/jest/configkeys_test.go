package jest

import "testing"

func TestConvertConfigRenamesKnownKeys(t *testing.T) {
	src := "module.exports = {\n  testEnvironment: 'jsdom',\n  clearMocks: true,\n}\n"

	result := ConvertConfig(src)

	got := make(map[string]string, len(result.Entries))
	for _, e := range result.Entries {
		got[e.Key] = e.Value
	}
	if got["environment"] != "jsdom" {
		t.Fatalf("environment = %q, want jsdom (renamed from testEnvironment)", got["environment"])
	}
	if got["clearMocks"] != "true" {
		t.Fatalf("clearMocks = %q, want true", got["clearMocks"])
	}
	if len(result.Unmapped) != 0 {
		t.Fatalf("Unmapped = %v, want none", result.Unmapped)
	}
}

func TestConvertConfigFlagsUnmappedKeys(t *testing.T) {
	src := "module.exports = {\n  customReporterOption: 'foo',\n}\n"

	result := ConvertConfig(src)

	if len(result.Unmapped) != 1 || result.Unmapped[0] != "customReporterOption" {
		t.Fatalf("Unmapped = %v, want [customReporterOption]", result.Unmapped)
	}
}
