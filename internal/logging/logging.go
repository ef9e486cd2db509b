// Package logging builds the zerolog logger shared by the transports.
package logging

import (
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// ParseLevel maps a configured level name to a zerolog level.
// Unknown names fall back to info.
func ParseLevel(name string) zerolog.Level {
	if level, ok := LookupLevel(name); ok {
		return level
	}
	return zerolog.InfoLevel
}

// LookupLevel maps a level name to a zerolog level, ignoring case and
// surrounding space. ok is false for names it does not know.
func LookupLevel(name string) (level zerolog.Level, ok bool) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "TRACE":
		return zerolog.TraceLevel, true
	case "DEBUG":
		return zerolog.DebugLevel, true
	case "INFO":
		return zerolog.InfoLevel, true
	case "WARN", "WARNING":
		return zerolog.WarnLevel, true
	case "ERROR":
		return zerolog.ErrorLevel, true
	case "DISABLED", "OFF":
		return zerolog.Disabled, true
	default:
		return zerolog.InfoLevel, false
	}
}

// New returns a timestamped logger writing to w at the named level.
// With console set, lines are human-readable instead of JSON.
//
// w must never be the MCP protocol stream.
func New(level string, w io.Writer, console bool) zerolog.Logger {
	if console {
		w = zerolog.ConsoleWriter{
			Out:        w,
			TimeFormat: time.RFC3339,
			NoColor:    true,
		}
	}
	return zerolog.New(w).Level(ParseLevel(level)).With().Timestamp().Logger()
}
