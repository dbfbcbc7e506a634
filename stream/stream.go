package stream

import (
	"io"
	"os"
	"sync"
)

// The process's real output streams, captured once at startup so sinks
// and diagnostics can always reach them regardless of redirection.
var (
	originalStdout io.Writer = os.Stdout
	originalStderr io.Writer = os.Stderr
)

var (
	mu     sync.RWMutex
	stdout io.Writer = originalStdout
	stderr io.Writer = originalStderr
)

// Stdout returns the process-wide output handle. Program code that
// wants redirectable output writes here instead of os.Stdout.
func Stdout() io.Writer {
	mu.RLock()
	defer mu.RUnlock()
	return stdout
}

// Stderr returns the process-wide error handle.
func Stderr() io.Writer {
	mu.RLock()
	defer mu.RUnlock()
	return stderr
}

// SetStdout replaces the process-wide output handle.
func SetStdout(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	if w == nil {
		w = originalStdout
	}
	stdout = w
}

// SetStderr replaces the process-wide error handle.
func SetStderr(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	if w == nil {
		w = originalStderr
	}
	stderr = w
}

// OriginalStdout returns the output stream as it was at process start.
func OriginalStdout() io.Writer {
	return originalStdout
}

// OriginalStderr returns the error stream as it was at process start.
// The console sink renders here so log output survives redirection.
func OriginalStderr() io.Writer {
	return originalStderr
}

// Restore resets both handles to the original streams. Tests use it to
// reset process-wide state between cases.
func Restore() {
	mu.Lock()
	defer mu.Unlock()
	stdout = originalStdout
	stderr = originalStderr
}
