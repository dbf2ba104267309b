// Package logging builds the zerolog logger used by the command and the
// HTTP server.
package logging

import (
	"io"
	"time"

	"github.com/rs/zerolog"
)

// LevelFor maps a verbosity to a log level: 0 warn, 1 info, 2 or more debug.
func LevelFor(verbosity int) zerolog.Level {
	switch {
	case verbosity <= 0:
		return zerolog.WarnLevel
	case verbosity == 1:
		return zerolog.InfoLevel
	default:
		return zerolog.DebugLevel
	}
}

// New returns a logger writing to w. format is "json" or "console".
func New(w io.Writer, verbosity int, format string) zerolog.Logger {
	if format != "json" {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.TimeOnly, NoColor: true}
	}
	return zerolog.New(w).Level(LevelFor(verbosity)).With().Timestamp().Logger()
}
