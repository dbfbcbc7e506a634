package logger

import (
	"log"
	"time"

	"github.com/logone-dev/logone/core"
	"github.com/logone-dev/logone/stream"
)

// emitStream is the delivery path for redirected stream text. The
// write happens deep inside fmt or the standard log package, so the
// record carries no call-site information.
func (l *Logger) emitStream(level core.Level, msg string) {
	l.emitRecord(&core.Record{
		Time:    time.Now(),
		Name:    l.name,
		PID:     core.PID,
		Level:   level,
		Message: msg,
	})
}

// RedirectStdout routes the process output handle through this logger
// when enabled is true: every write to stream.Stdout is trimmed and
// emitted as one record at the given level. Enabling while already
// redirected just updates the level. Disabling restores the original
// output stream but keeps the wrapper so Disable(false) can reinstall
// it.
func (l *Logger) RedirectStdout(enabled bool, level core.Level) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if enabled {
		if l.stdoutWriter == nil {
			l.stdoutWriter = stream.NewLineWriter(l.emitStream, level)
		} else {
			l.stdoutWriter.SetLevel(level)
		}
		l.stdoutOn = true
		if !l.disabled {
			stream.SetStdout(l.stdoutWriter)
		}
		return
	}

	l.stdoutOn = false
	stream.SetStdout(nil)
}

// RedirectStderr routes the process error handle through this logger
// when enabled is true. Unlike the output handle, writes accumulate
// and are emitted as one record on Flush, so multi-write sequences
// like stack traces stay intact. Semantics otherwise match
// RedirectStdout.
func (l *Logger) RedirectStderr(enabled bool, level core.Level) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if enabled {
		if l.stderrWriter == nil {
			l.stderrWriter = stream.NewBufferedWriter(l.emitStream, level)
		} else {
			l.stderrWriter.SetLevel(level)
		}
		l.stderrOn = true
		if !l.disabled {
			stream.SetStderr(l.stderrWriter)
		}
		return
	}

	l.stderrOn = false
	stream.SetStderr(nil)
}

// FlushStderr emits any text buffered by the error-stream wrapper as
// one record. A no-op when nothing is buffered or the stream is not
// redirected.
func (l *Logger) FlushStderr() {
	l.mu.RLock()
	w := l.stderrWriter
	l.mu.RUnlock()
	if w != nil {
		w.Flush()
	}
}

type writerFunc func(p []byte) (int, error)

func (f writerFunc) Write(p []byte) (int, error) { return f(p) }

// HookStandardLog points the standard library's log package at the
// redirectable output handle and strips its own prefixes, so code
// using plain log.Print follows whatever redirection is active. The
// handle is resolved on every write, not captured once.
func HookStandardLog() {
	log.SetFlags(0)
	log.SetOutput(writerFunc(func(p []byte) (int, error) {
		return stream.Stdout().Write(p)
	}))
}
