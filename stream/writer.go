package stream

import (
	"bytes"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/logone-dev/logone/core"
)

// EmitFunc receives redirected text on behalf of a logger.
type EmitFunc func(level core.Level, msg string)

// LineWriter is the output-stream adapter: each write is trimmed and,
// when anything remains, emitted immediately as one record. Flush is a
// no-op because every write is already terminal.
//
// The level is atomic so it can be changed while other goroutines are
// writing.
type LineWriter struct {
	level atomic.Int32
	emit  EmitFunc
}

// NewLineWriter creates a new output-stream adapter
func NewLineWriter(emit EmitFunc, level core.Level) *LineWriter {
	w := &LineWriter{emit: emit}
	w.level.Store(int32(level))
	return w
}

// Write emits the trimmed chunk at the configured level.
// Whitespace-only chunks are ignored.
func (w *LineWriter) Write(p []byte) (int, error) {
	msg := strings.TrimSpace(string(p))
	if len(msg) > 0 {
		w.emit(core.Level(w.level.Load()), msg)
	}
	return len(p), nil
}

// Flush is a no-op for the line writer
func (w *LineWriter) Flush() {}

// SetLevel updates the level used for subsequent writes
func (w *LineWriter) SetLevel(level core.Level) {
	w.level.Store(int32(level))
}

// BufferedWriter is the error-stream adapter: writes accumulate in an
// internal buffer and are emitted as one coherent record on Flush.
// Multi-write sequences such as stack traces therefore arrive at the
// sinks as a single record instead of one fragment per line.
type BufferedWriter struct {
	level atomic.Int32
	mu    sync.Mutex
	buf   bytes.Buffer
	emit  EmitFunc
}

// NewBufferedWriter creates a new error-stream adapter
func NewBufferedWriter(emit EmitFunc, level core.Level) *BufferedWriter {
	w := &BufferedWriter{emit: emit}
	w.level.Store(int32(level))
	return w
}

// Write appends the raw chunk to the buffer without emitting
func (w *BufferedWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.buf.Write(p)
}

// Flush emits the buffered content as one record and clears the buffer.
// An empty buffer flushes to nothing. The emit happens outside the
// buffer lock.
func (w *BufferedWriter) Flush() {
	w.mu.Lock()
	if w.buf.Len() == 0 {
		w.mu.Unlock()
		return
	}
	msg := w.buf.String()
	w.buf.Reset()
	w.mu.Unlock()

	w.emit(core.Level(w.level.Load()), msg)
}

// SetLevel updates the level used for subsequent flushes without
// touching any buffered-but-unflushed content
func (w *BufferedWriter) SetLevel(level core.Level) {
	w.level.Store(int32(level))
}
