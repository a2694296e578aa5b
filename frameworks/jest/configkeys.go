package jest

import "github.com/pmclSF/hamlet-sub002/internal/configconv"

// VitestConfigKeys renames jest.config.js's top-level keys to their
// vitest.config.js equivalent (spec.md §4.6 step 8 "Config Changes").
// Keys absent here (e.g. a project-specific custom key) pass through
// unchanged and are reported in configconv.Result.Unmapped so the
// caller can flag a HAMLET-TODO.
var VitestConfigKeys = configconv.KeyMap{
	"testEnvironment":  "environment",
	"setupFilesAfterEach": "setupFiles",
	"moduleNameMapper": "resolve.alias",
	"testPathIgnorePatterns": "exclude",
	"collectCoverage":  "coverage.enabled",
	"coverageReporters": "coverage.reporter",
	"testTimeout":      "testTimeout",
	"globals":          "globals",
	"clearMocks":       "clearMocks",
	"restoreMocks":     "restoreMocks",
}

// ConvertConfig rewrites a jest.config.js source's single top-level
// object literal into vitest.config.js's key vocabulary. It is invoked
// independently of the per-test-file Migration Engine loop, which
// classifies config files and defers them (spec.md §4.6's "config
// file: convert separately").
func ConvertConfig(src string) configconv.Result {
	entries := configconv.ParseJSObjectLiteral(src)
	return configconv.Convert(entries, VitestConfigKeys)
}
