package engine

import (
	"os"

	"github.com/rs/zerolog"
)

// newLogger returns a component-tagged logger writing to stderr, so
// diagnostics never touch the render path.
func newLogger(component string) zerolog.Logger {
	return zerolog.New(os.Stderr).With().Timestamp().Str("component", component).Logger()
}

// SetVerbose switches the global log level between info and debug.
func SetVerbose(v bool) {
	if v {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}
