package sink

import (
	"sync/atomic"

	"github.com/logone-dev/logone/core"
)

// OverflowPolicy defines how a full async queue treats new records
type OverflowPolicy int

const (
	// DropNewest drops the incoming record when the queue is full
	DropNewest OverflowPolicy = iota
	// DropOldest drops the oldest queued record when the queue is full
	DropOldest
	// Block blocks the caller until space is available (with timeout)
	Block
)

// String returns the string representation of the policy
func (p OverflowPolicy) String() string {
	switch p {
	case DropNewest:
		return "DropNewest"
	case DropOldest:
		return "DropOldest"
	case Block:
		return "Block"
	default:
		return "Unknown"
	}
}

// DefaultLevelPolicy returns the default level-based overflow policies.
// Low-severity records are dropped when the queue is full; errors and
// criticals block briefly so they are not silently lost.
func DefaultLevelPolicy() map[core.Level]OverflowPolicy {
	return map[core.Level]OverflowPolicy{
		core.DebugLevel:    DropNewest,
		core.InfoLevel:     DropNewest,
		core.WarningLevel:  DropNewest,
		core.ErrorLevel:    Block,
		core.CriticalLevel: Block,
	}
}

// Stats tracks sink queue statistics
type Stats struct {
	dropped   [core.CriticalLevel + 1]atomic.Uint64
	blocked   atomic.Uint64
	processed atomic.Uint64
}

// NewStats creates a new Stats instance
func NewStats() *Stats {
	return &Stats{}
}

// IncrementDropped atomically increments the dropped counter for a level
func (s *Stats) IncrementDropped(level core.Level) {
	if level >= 0 && int(level) < len(s.dropped) {
		s.dropped[level].Add(1)
	}
}

// IncrementBlocked atomically increments the blocked counter
func (s *Stats) IncrementBlocked() {
	s.blocked.Add(1)
}

// IncrementProcessed atomically increments the processed counter
func (s *Stats) IncrementProcessed() {
	s.processed.Add(1)
}

// Dropped returns the dropped count for a level
func (s *Stats) Dropped(level core.Level) uint64 {
	if level < 0 || int(level) >= len(s.dropped) {
		return 0
	}
	return s.dropped[level].Load()
}

// Snapshot is a point-in-time copy of queue statistics
type Snapshot struct {
	Dropped   map[core.Level]uint64
	Blocked   uint64
	Processed uint64
}

// GetSnapshot returns a snapshot of current statistics
func (s *Stats) GetSnapshot() Snapshot {
	dropped := make(map[core.Level]uint64, len(s.dropped))
	for level := range s.dropped {
		dropped[core.Level(level)] = s.dropped[level].Load()
	}
	return Snapshot{
		Dropped:   dropped,
		Blocked:   s.blocked.Load(),
		Processed: s.processed.Load(),
	}
}
