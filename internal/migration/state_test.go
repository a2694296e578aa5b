package migration

import (
	"strings"
	"testing"

	"github.com/spf13/afero"
)

func TestLoadStateMissingReturnsNilNil(t *testing.T) {
	fs := afero.NewMemMapFs()
	s, err := LoadState(fs, "/project/.hamlet")
	if err != nil {
		t.Fatalf("LoadState error = %v, want nil", err)
	}
	if s != nil {
		t.Fatalf("LoadState = %+v, want nil", s)
	}
}

func TestLoadStateCorruptedReturnsError(t *testing.T) {
	fs := afero.NewMemMapFs()
	if err := afero.WriteFile(fs, "/project/.hamlet/state.json", []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := LoadState(fs, "/project/.hamlet")
	if err == nil {
		t.Fatal("LoadState error = nil, want corruption error")
	}
	if !strings.Contains(err.Error(), "corrupted") {
		t.Fatalf("error = %q, want it to mention corruption", err.Error())
	}
}

func TestSaveStateThenLoadStateRoundTrips(t *testing.T) {
	fs := afero.NewMemMapFs()
	s := NewState("jest", "vitest", "2026-01-01T00:00:00Z")
	conf := 90
	s.Files["a.test.js"] = FileState{Status: StatusConverted, Confidence: &conf}

	if err := SaveState(fs, "/project/.hamlet", s); err != nil {
		t.Fatal(err)
	}
	exists, err := afero.Exists(fs, "/project/.hamlet/state.tmp.json")
	if err != nil {
		t.Fatal(err)
	}
	if exists {
		t.Fatal("temp state file should be renamed away after a successful save")
	}

	loaded, err := LoadState(fs, "/project/.hamlet")
	if err != nil {
		t.Fatal(err)
	}
	if loaded.Source != "jest" || loaded.Target != "vitest" {
		t.Fatalf("loaded = %+v, want source/target preserved", loaded)
	}
	got := loaded.Files["a.test.js"]
	if got.Status != StatusConverted || got.Confidence == nil || *got.Confidence != 90 {
		t.Fatalf("loaded file state = %+v", got)
	}
}

func TestSortedPathsIsDeterministic(t *testing.T) {
	s := NewState("jest", "vitest", "2026-01-01T00:00:00Z")
	s.Files["z.test.js"] = FileState{Status: StatusConverted}
	s.Files["a.test.js"] = FileState{Status: StatusConverted}
	s.Files["m.test.js"] = FileState{Status: StatusConverted}

	got := s.SortedPaths()
	want := []string{"a.test.js", "m.test.js", "z.test.js"}
	if len(got) != len(want) {
		t.Fatalf("SortedPaths = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("SortedPaths = %v, want %v", got, want)
		}
	}
}
