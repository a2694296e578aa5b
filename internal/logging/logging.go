// Package logging provides the single structured logger used by every
// core component. It never influences converted output bytes — it is
// observability only, so the determinism law (spec.md §8) holds
// regardless of log level or destination.
package logging

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

// base is the package-level logger. Components call
// logging.For(component) rather than holding their own
// zerolog.Logger, mirroring the single
// package-level Logger gorisk's internal/interproc/logger.go wraps.
var base = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, NoColor: false}).
	With().Timestamp().Logger().Level(zerolog.WarnLevel)

func init() {
	if os.Getenv("HAMLET_VERBOSE") == "1" {
		SetVerbose(true)
	}
}

// SetVerbose toggles debug-level logging at runtime, the functional
// equivalent of gorisk's interproc.SetVerbose.
func SetVerbose(enabled bool) {
	if enabled {
		base = base.Level(zerolog.DebugLevel)
	} else {
		base = base.Level(zerolog.WarnLevel)
	}
}

// SetOutput redirects the logger's destination, used by tests the way
// gorisk's interproc.SetOutput redirects its *log.Logger.
func SetOutput(w io.Writer) {
	base = base.Output(w)
}

// For returns a child logger tagged with a component name, e.g.
// logging.For("pipeline").Info().Str("source", name).Msg("detected").
func For(component string) zerolog.Logger {
	return base.With().Str("component", component).Logger()
}
