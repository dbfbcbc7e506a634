// Package formatter defines how log records are serialized into bytes.
//
// It exposes two interfaces: Formatter, which returns a []byte, and
// WriterFormatter, which writes directly to an io.Writer. Sinks check
// for WriterFormatter at construction time and prefer it when available,
// eliminating the intermediate byte slice allocation on the write path.
//
// The TemplateFormatter renders records according to a placeholder
// template compiled once at construction. Recognized placeholders are
// {time}, {name}, {pid}, {program}, {module}, {function}, {line},
// {level} and {message}; anything else, including bare braces, passes
// through literally, so JSON-shaped templates work without escaping.
// With EscapeJSON set, every substituted text value is JSON
// string-escaped for safe embedding in a structured template.
//
// The ColorFormatter wraps a TemplateFormatter and colors each line by
// level with ANSI escape sequences, leaving INFO lines uncolored.
//
// Both formatters use a pooled bytes.Buffer internally and rely on Go's
// Append-style functions (time.AppendFormat, strconv.AppendInt) to
// avoid per-call allocations. Buffers larger than 64 KiB are not
// returned to the pool to prevent a single large log line from
// permanently inflating memory usage.
package formatter
