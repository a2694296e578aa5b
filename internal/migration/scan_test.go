package migration

import (
	"testing"

	"github.com/spf13/afero"
)

func TestScanFindsMatchingFilesAndSkipsStateDir(t *testing.T) {
	fs := afero.NewMemMapFs()
	files := map[string]string{
		"/project/math.test.js":        "test('adds', () => {})",
		"/project/helper.js":           "module.exports = {}",
		"/project/notes.md":            "# notes",
		"/project/.hamlet/state.json":  `{"version":1}`,
		"/project/sub/other.test.js":   "test('x', () => {})",
	}
	for p, content := range files {
		if err := afero.WriteFile(fs, p, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	got, err := Scan(fs, "/project", []string{"*.js"}, ".hamlet")
	if err != nil {
		t.Fatal(err)
	}

	want := []string{"/project/helper.js", "/project/math.test.js", "/project/sub/other.test.js"}
	if len(got) != len(want) {
		t.Fatalf("Scan = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Scan[%d] = %q, want %q (full: %v)", i, got[i], want[i], got)
		}
	}
}

func TestScanResultsAreSorted(t *testing.T) {
	fs := afero.NewMemMapFs()
	for _, p := range []string{"/project/z.test.js", "/project/a.test.js", "/project/m.test.js"} {
		if err := afero.WriteFile(fs, p, []byte("test('x', () => {})"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	got, err := Scan(fs, "/project", DefaultIncludeGlobs, ".hamlet")
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"/project/a.test.js", "/project/m.test.js", "/project/z.test.js"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Scan = %v, want %v", got, want)
		}
	}
}
