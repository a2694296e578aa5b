package migration

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/afero"
)

// Scan walks rootDir collecting files whose base name matches any of
// includeGlobs, skipping anything under stateDir (spec.md §4.6 step 2).
// Results are returned sorted for deterministic downstream processing.
func Scan(fs afero.Fs, rootDir string, includeGlobs []string, stateDir string) ([]string, error) {
	absStateDir := filepath.ToSlash(filepath.Join(rootDir, stateDir))

	var out []string
	err := afero.Walk(fs, rootDir, func(path string, info os.FileInfo, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		slashPath := filepath.ToSlash(path)
		if info.IsDir() {
			if slashPath == absStateDir || strings.HasPrefix(slashPath, absStateDir+"/") {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasPrefix(slashPath, absStateDir+"/") {
			return nil
		}
		if matchesAny(filepath.Base(path), includeGlobs) {
			out = append(out, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(out)
	return out, nil
}

func matchesAny(name string, globs []string) bool {
	for _, g := range globs {
		if ok, _ := filepath.Match(g, name); ok {
			return true
		}
	}
	return false
}

// DefaultIncludeGlobs matches the host-language source extensions
// spec.md §6 lists under "Input files", plus their test/config/fixture
// naming conventions.
var DefaultIncludeGlobs = []string{
	"*.js", "*.jsx", "*.ts", "*.tsx", "*.mjs", "*.cjs",
	"*.py", "*.java",
	"*.json", "*.xml", "*.gradle", "*.ini",
}
