// Package sink provides the Sink interface and its built-in
// implementations for delivering formatted log records to concrete
// destinations.
//
// Built-in sinks:
//
//   - Console writes colorized text to a terminal (or plain text to any
//     io.Writer), synchronously.
//   - File appends to a log file with timed rotation (rotate every N
//     seconds/minutes/hours/days or at a fixed time of day, retaining a
//     bounded number of backups) or, alternatively, size-based rotation
//     backed by lumberjack.
//   - Remote ships each record as one HTTP POST to a Loggly-style
//     ingestion endpoint with a bounded timeout, treating anything but
//     HTTP 200 with the exact success body as a delivery failure.
//
// Each sink carries its own severity threshold; the logger delivers a
// record to a sink exactly when the record's level meets it.
//
// File and Remote support optional asynchronous emission: records are
// sent to a bounded channel consumed by one goroutine, preserving
// per-sink ordering. When the queue is full, a per-level OverflowPolicy
// decides between DropNewest (default for DEBUG through WARNING),
// DropOldest, and Block with a timeout (default for ERROR and
// CRITICAL), so low-priority records never stall the application while
// severe ones are never silently dropped. Dropped, blocked and
// processed counts are tracked in Stats and can be queried at runtime.
//
// Error taxonomy: ConfigError and DirectoryError are returned
// synchronously from constructors; DeliveryError values surface from
// Emit and are meant for the logger's local diagnostic path, never for
// the emitting caller.
package sink
