package logger

import (
	"context"
	"log/slog"
	"runtime"
	"strings"

	"github.com/logone-dev/logone/core"
)

// SlogHandler is an adapter that implements slog.Handler on top of a
// Logger, so the facade can serve as a drop-in backend for log/slog.
// Attributes have no structured representation downstream and are
// folded into the message as key=value pairs.
type SlogHandler struct {
	logger *Logger
	// prefix holds attrs bound via WithAttrs, already rendered with the
	// group that was active when they were bound.
	prefix string
	group  string
}

// NewSlogHandler creates a slog.Handler backed by the given logger.
func NewSlogHandler(l *Logger) *SlogHandler {
	return &SlogHandler{logger: l}
}

// Enabled reports whether records at the given level pass the logger's
// threshold.
func (s *SlogHandler) Enabled(_ context.Context, level slog.Level) bool {
	return slogLevelToCore(level) >= s.logger.Level()
}

// Handle converts a slog.Record into a facade record and dispatches it.
func (s *SlogHandler) Handle(_ context.Context, record slog.Record) error {
	var b strings.Builder
	b.WriteString(record.Message)
	b.WriteString(s.prefix)

	record.Attrs(func(a slog.Attr) bool {
		appendAttr(&b, s.group, a)
		return true
	})

	s.logger.emitRecord(&core.Record{
		Time:    record.Time,
		Name:    s.logger.Name(),
		PID:     core.PID,
		Level:   slogLevelToCore(record.Level),
		Caller:  callerFromPC(record.PC),
		Message: b.String(),
	})
	return nil
}

// WithAttrs returns a handler that adds the given attributes to every
// record.
func (s *SlogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	var b strings.Builder
	b.WriteString(s.prefix)
	for _, a := range attrs {
		appendAttr(&b, s.group, a)
	}
	return &SlogHandler{
		logger: s.logger,
		prefix: b.String(),
		group:  s.group,
	}
}

// WithGroup returns a handler that prefixes subsequent attribute keys
// with the group name.
func (s *SlogHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return s
	}
	newGroup := name
	if s.group != "" {
		newGroup = s.group + "." + name
	}
	return &SlogHandler{
		logger: s.logger,
		prefix: s.prefix,
		group:  newGroup,
	}
}

// appendAttr renders one attribute as " key=value", flattening groups
// with a dotted prefix.
func appendAttr(b *strings.Builder, group string, a slog.Attr) {
	a.Value = a.Value.Resolve()

	key := a.Key
	if group != "" {
		key = group + "." + a.Key
	}

	if a.Value.Kind() == slog.KindGroup {
		for _, ga := range a.Value.Group() {
			appendAttr(b, key, ga)
		}
		return
	}
	if key == "" {
		return
	}
	b.WriteByte(' ')
	b.WriteString(key)
	b.WriteByte('=')
	b.WriteString(a.Value.String())
}

// callerFromPC resolves a slog program counter into call-site
// information.
func callerFromPC(pc uintptr) core.CallerInfo {
	if pc == 0 {
		return core.CallerInfo{}
	}
	frames := runtime.CallersFrames([]uintptr{pc})
	frame, _ := frames.Next()
	if frame.File == "" {
		return core.CallerInfo{}
	}
	return core.CallerInfo{
		File:     frame.File,
		Line:     frame.Line,
		Function: frame.Function,
		Defined:  true,
	}
}

// slogLevelToCore converts a slog.Level to a facade Level. Levels above
// slog's error band map to CRITICAL.
func slogLevelToCore(level slog.Level) core.Level {
	switch {
	case level >= slog.LevelError+4:
		return core.CriticalLevel
	case level >= slog.LevelError:
		return core.ErrorLevel
	case level >= slog.LevelWarn:
		return core.WarningLevel
	case level >= slog.LevelInfo:
		return core.InfoLevel
	default:
		return core.DebugLevel
	}
}
