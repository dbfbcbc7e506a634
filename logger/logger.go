package logger

import (
	"fmt"
	"runtime/debug"
	"sync"
	"time"

	"go.uber.org/multierr"

	"github.com/logone-dev/logone/core"
	"github.com/logone-dev/logone/sink"
	"github.com/logone-dev/logone/stream"
)

// Logger owns a name, a severity threshold and a set of attached sinks,
// and fans every record out to the sinks whose threshold it meets.
// A console sink is installed at construction; at most one file sink
// and one remote sink can be attached at a time. All methods are safe
// for concurrent use.
type Logger struct {
	name string

	mu       sync.RWMutex
	level    core.Level
	disabled bool

	console []*sink.Console
	file    *sink.File
	remote  *sink.Remote

	stdoutWriter *stream.LineWriter
	stderrWriter *stream.BufferedWriter
	stdoutOn     bool
	stderrOn     bool
}

func newLogger(name string, opts options) *Logger {
	l := &Logger{
		name:  name,
		level: opts.level,
	}

	console := sink.NewConsole(sink.ConsoleConfig{
		Writer:     opts.writer,
		Colors:     opts.colors,
		Template:   opts.template,
		TimeFormat: opts.timeFormat,
		Level:      opts.level,
	})
	l.console = append(l.console, console)
	return l
}

// Name returns the logger's registry name
func (l *Logger) Name() string {
	return l.name
}

// SetLevel updates the logger's threshold and the threshold of every
// installed console sink. File and remote sinks keep their own.
func (l *Logger) SetLevel(level core.Level) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.level = level
	for _, c := range l.console {
		c.SetLevel(level)
	}
}

// Level returns the logger's current threshold
func (l *Logger) Level() core.Level {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.level
}

// Disable suppresses all logging calls and forces the process streams
// back to their original targets. Re-enabling restores whichever
// redirection wrappers were previously configured.
func (l *Logger) Disable(disabled bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.disabled = disabled

	if disabled {
		stream.Restore()
		return
	}
	if l.stdoutOn {
		stream.SetStdout(l.stdoutWriter)
	}
	if l.stderrOn {
		stream.SetStderr(l.stderrWriter)
	}
}

// log builds a record and dispatches it. extraSkip accounts for
// additional frames between the user's call and this function.
func (l *Logger) log(level core.Level, msg string, extraSkip int) {
	l.logWith(level, msg, nil, nil, extraSkip+1)
}

// logWith is the full emit path, carrying optional error context.
// extraSkip is the number of stack frames between logWith and the
// user's call site.
func (l *Logger) logWith(level core.Level, msg string, err error, stack []byte, extraSkip int) {
	l.mu.RLock()
	if l.disabled || level < l.level {
		l.mu.RUnlock()
		return
	}
	sinks := l.snapshotSinks()
	l.mu.RUnlock()

	rec := &core.Record{
		Time:    time.Now(),
		Name:    l.name,
		PID:     core.PID,
		Level:   level,
		Caller:  core.GetCaller(2 + extraSkip),
		Message: msg,
		Err:     err,
		Stack:   stack,
	}
	l.dispatch(rec, sinks)
}

// snapshotSinks collects the attached sinks under the read lock so
// emission never races an attach or detach.
func (l *Logger) snapshotSinks() []sink.Sink {
	sinks := make([]sink.Sink, 0, len(l.console)+2)
	for _, c := range l.console {
		sinks = append(sinks, c)
	}
	if l.file != nil {
		sinks = append(sinks, l.file)
	}
	if l.remote != nil {
		sinks = append(sinks, l.remote)
	}
	return sinks
}

// dispatch delivers a record to every sink whose threshold it meets.
// Sink failures are routed to the local diagnostic path, never back to
// the emitting caller.
func (l *Logger) dispatch(rec *core.Record, sinks []sink.Sink) {
	for _, s := range sinks {
		if rec.Level < s.Level() {
			continue
		}
		if err := s.Emit(rec); err != nil {
			l.reportDelivery(err)
		}
	}
}

// emitRecord dispatches a caller-built record, applying the logger's
// disabled flag and threshold. Used by adapters that carry their own
// call-site information.
func (l *Logger) emitRecord(rec *core.Record) {
	l.mu.RLock()
	if l.disabled || rec.Level < l.level {
		l.mu.RUnlock()
		return
	}
	sinks := l.snapshotSinks()
	l.mu.RUnlock()

	l.dispatch(rec, sinks)
}

// reportDelivery prints a sink failure diagnostic to the original error
// stream. A logging failure must never crash or block application logic.
func (l *Logger) reportDelivery(err error) {
	fmt.Fprintf(stream.OriginalStderr(), "logone: %v\n", err)
}

// Log emits a message at an arbitrary level
func (l *Logger) Log(level core.Level, msg string) {
	l.log(level, msg, 1)
}

// Debug emits a debug message
func (l *Logger) Debug(msg string) {
	l.log(core.DebugLevel, msg, 1)
}

// Info emits an informational message
func (l *Logger) Info(msg string) {
	l.log(core.InfoLevel, msg, 1)
}

// Warning emits a warning message
func (l *Logger) Warning(msg string) {
	l.log(core.WarningLevel, msg, 1)
}

// Error emits an error message
func (l *Logger) Error(msg string) {
	l.log(core.ErrorLevel, msg, 1)
}

// Critical emits a critical message
func (l *Logger) Critical(msg string) {
	l.log(core.CriticalLevel, msg, 1)
}

// Debugf emits a formatted debug message
func (l *Logger) Debugf(format string, args ...interface{}) {
	l.log(core.DebugLevel, fmt.Sprintf(format, args...), 1)
}

// Infof emits a formatted informational message
func (l *Logger) Infof(format string, args ...interface{}) {
	l.log(core.InfoLevel, fmt.Sprintf(format, args...), 1)
}

// Warningf emits a formatted warning message
func (l *Logger) Warningf(format string, args ...interface{}) {
	l.log(core.WarningLevel, fmt.Sprintf(format, args...), 1)
}

// Errorf emits a formatted error message
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.log(core.ErrorLevel, fmt.Sprintf(format, args...), 1)
}

// Criticalf emits a formatted critical message
func (l *Logger) Criticalf(format string, args ...interface{}) {
	l.log(core.CriticalLevel, fmt.Sprintf(format, args...), 1)
}

// Exception emits an error message carrying err and the current stack
// trace. Structured sinks flatten both into the message text.
func (l *Logger) Exception(msg string, err error) {
	l.logWith(core.ErrorLevel, msg, err, debug.Stack(), 1)
}

// UseFile attaches a rotating file sink when enabled is true, or
// detaches and releases the current one when false. Attaching while a
// file sink is already attached is a no-op: the existing configuration
// is kept, detach and reattach to change it.
func (l *Logger) UseFile(enabled bool, cfg sink.FileConfig) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if enabled {
		if l.file != nil {
			return nil
		}
		f, err := sink.NewFile(cfg, l.reportDelivery)
		if err != nil {
			return err
		}
		l.file = f
		return nil
	}

	if l.file != nil {
		f := l.file
		l.file = nil
		return f.Close()
	}
	return nil
}

// UseLoggly attaches a remote HTTP sink when enabled is true, or
// detaches the current one when false. The tag defaults to the logger's
// name. Attach while attached is a no-op, like UseFile.
func (l *Logger) UseLoggly(enabled bool, cfg sink.RemoteConfig) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if enabled {
		if l.remote != nil {
			return nil
		}
		r, err := sink.NewRemote(cfg, l.name, l.reportDelivery)
		if err != nil {
			return err
		}
		l.remote = r
		return nil
	}

	if l.remote != nil {
		r := l.remote
		l.remote = nil
		return r.Close()
	}
	return nil
}

// Close flushes the error-stream wrapper and closes every attached
// sink. The logger stays registered and can be reconfigured afterwards.
func (l *Logger) Close() error {
	// Flush outside the lock: the wrapper's emit path re-enters the
	// logger to dispatch the buffered record.
	l.mu.RLock()
	w := l.stderrWriter
	l.mu.RUnlock()
	if w != nil {
		w.Flush()
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	var err error
	for _, c := range l.console {
		err = multierr.Append(err, c.Close())
	}
	if l.file != nil {
		err = multierr.Append(err, l.file.Close())
		l.file = nil
	}
	if l.remote != nil {
		err = multierr.Append(err, l.remote.Close())
		l.remote = nil
	}
	return err
}

// FileSink reports whether a file sink is currently attached.
func (l *Logger) FileSink() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.file != nil
}

// RemoteSink reports whether a remote sink is currently attached.
func (l *Logger) RemoteSink() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.remote != nil
}
