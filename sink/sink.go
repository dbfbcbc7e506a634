package sink

import (
	"sync/atomic"

	"github.com/logone-dev/logone/core"
)

// Sink is a consumer of log records bound to one concrete destination.
type Sink interface {
	// Emit delivers a record to the sink's destination
	Emit(rec *core.Record) error

	// Level returns the sink's minimum severity threshold
	Level() core.Level

	// SetLevel updates the sink's minimum severity threshold
	SetLevel(level core.Level)

	// Close flushes and releases the sink's resources
	Close() error
}

// threshold holds a sink's minimum level. Reads happen on every emit
// while writes are rare, so it is a plain atomic rather than a mutex.
type threshold struct {
	level atomic.Int32
}

func (t *threshold) Level() core.Level {
	return core.Level(t.level.Load())
}

func (t *threshold) SetLevel(level core.Level) {
	t.level.Store(int32(level))
}
