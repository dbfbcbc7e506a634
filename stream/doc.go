// Package stream owns the process-wide redirectable output and error
// handles and the adapters that funnel them into a logger.
//
// Stdout and Stderr are explicit, injectable handles: program code that
// wants its output to follow logger redirection writes to
// stream.Stdout() / stream.Stderr() instead of the os package. The
// originals are captured once at init and always reachable through
// OriginalStdout / OriginalStderr, which is where console sinks and
// delivery diagnostics render. Restore resets both handles for tests.
//
// Two adapters implement the redirection:
//
//   - LineWriter (output): every write is trimmed and emitted
//     immediately; flush is a no-op.
//   - BufferedWriter (error): writes accumulate and are emitted as one
//     record on Flush, so multi-write sequences like stack traces stay
//     one coherent record.
//
// Redirection affects reporting, not fault recovery: a failure whose
// text is routed through these adapters still terminates whatever it
// would normally terminate.
package stream
