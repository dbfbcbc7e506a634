package logger

import "github.com/logone-dev/logone/core"

// Level is re-exported so callers configuring a logger do not need a
// second import.
type Level = core.Level

// Severity levels, lowest to highest.
const (
	DebugLevel    = core.DebugLevel
	InfoLevel     = core.InfoLevel
	WarningLevel  = core.WarningLevel
	ErrorLevel    = core.ErrorLevel
	CriticalLevel = core.CriticalLevel
)

// ParseLevel converts a level name into a Level.
func ParseLevel(s string) Level {
	return core.ParseLevel(s)
}
