package sink

import (
	"sync"
	"testing"
	"time"

	"github.com/logone-dev/logone/core"
)

func queueRecord(level core.Level, msg string) *core.Record {
	return &core.Record{Time: time.Now(), Level: level, Message: msg}
}

func TestQueue_PreservesOrder(t *testing.T) {
	var mu sync.Mutex
	var got []string

	q := newQueue(QueueConfig{Async: true, BufferSize: 64}, NewStats(), func(rec *core.Record) error {
		mu.Lock()
		got = append(got, rec.Message)
		mu.Unlock()
		return nil
	}, nil)

	want := []string{"a", "b", "c", "d", "e"}
	for _, msg := range want {
		if err := q.enqueue(queueRecord(core.InfoLevel, msg)); err != nil {
			t.Fatalf("enqueue failed: %v", err)
		}
	}
	q.close()

	mu.Lock()
	defer mu.Unlock()
	if len(got) != len(want) {
		t.Fatalf("Expected %d records, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Expected %q at position %d, got %q", want[i], i, got[i])
		}
	}
}

func TestQueue_DropNewestWhenFull(t *testing.T) {
	stats := NewStats()
	release := make(chan struct{})

	q := newQueue(QueueConfig{
		Async:      true,
		BufferSize: 1,
		OverflowPolicy: map[core.Level]OverflowPolicy{
			core.InfoLevel: DropNewest,
		},
	}, stats, func(rec *core.Record) error {
		<-release
		return nil
	}, nil)
	defer func() {
		close(release)
		q.close()
	}()

	// First record occupies the consumer, second fills the buffer.
	_ = q.enqueue(queueRecord(core.InfoLevel, "consumed"))
	for i := 0; i < 50; i++ {
		_ = q.enqueue(queueRecord(core.InfoLevel, "filler"))
	}

	if stats.Dropped(core.InfoLevel) == 0 {
		t.Error("Expected dropped records once the queue was full")
	}
}

func TestQueue_BlockFallsBackToSyncWrite(t *testing.T) {
	stats := NewStats()
	var mu sync.Mutex
	written := 0
	release := make(chan struct{})
	first := true

	q := newQueue(QueueConfig{
		Async:        true,
		BufferSize:   1,
		BlockTimeout: 10 * time.Millisecond,
		OverflowPolicy: map[core.Level]OverflowPolicy{
			core.ErrorLevel: Block,
		},
	}, stats, func(rec *core.Record) error {
		mu.Lock()
		written++
		blockConsumer := first
		first = false
		mu.Unlock()
		if blockConsumer {
			<-release
		}
		return nil
	}, nil)
	defer func() { q.close() }()

	_ = q.enqueue(queueRecord(core.ErrorLevel, "consumed"))
	_ = q.enqueue(queueRecord(core.ErrorLevel, "queued"))
	// Queue full, consumer blocked: Block policy times out and writes
	// synchronously from the caller.
	_ = q.enqueue(queueRecord(core.ErrorLevel, "overflow"))

	if stats.blocked.Load() == 0 {
		t.Error("Expected a blocked record after timeout")
	}
	mu.Lock()
	if written < 2 {
		t.Errorf("Expected the overflow record to be written synchronously, writes=%d", written)
	}
	mu.Unlock()
	close(release)
}

func TestOverflowPolicy_String(t *testing.T) {
	cases := map[OverflowPolicy]string{
		DropNewest:         "DropNewest",
		DropOldest:         "DropOldest",
		Block:              "Block",
		OverflowPolicy(99): "Unknown",
	}
	for p, want := range cases {
		if p.String() != want {
			t.Errorf("Expected %q, got %q", want, p.String())
		}
	}
}

func TestStats_Snapshot(t *testing.T) {
	s := NewStats()
	s.IncrementDropped(core.DebugLevel)
	s.IncrementDropped(core.DebugLevel)
	s.IncrementBlocked()
	s.IncrementProcessed()

	snap := s.GetSnapshot()
	if snap.Dropped[core.DebugLevel] != 2 {
		t.Errorf("Expected 2 dropped debug records, got %d", snap.Dropped[core.DebugLevel])
	}
	if snap.Blocked != 1 {
		t.Errorf("Expected 1 blocked record, got %d", snap.Blocked)
	}
	if snap.Processed != 1 {
		t.Errorf("Expected 1 processed record, got %d", snap.Processed)
	}
}
