package sink

import (
	"sync"
	"time"

	"github.com/logone-dev/logone/core"
)

// QueueConfig controls optional asynchronous emission for a sink.
// When Async is set, records are handed to a bounded channel consumed
// by a single goroutine, which preserves per-sink ordering while
// keeping slow I/O off the caller's path.
type QueueConfig struct {
	// Async enables the queue (default: synchronous emission)
	Async bool
	// BufferSize is the size of the queue (default: 1000)
	BufferSize int
	// OverflowPolicy defines per-level overflow behavior (default: DefaultLevelPolicy)
	OverflowPolicy map[core.Level]OverflowPolicy
	// BlockTimeout is the timeout for the Block overflow policy (default: 100ms)
	BlockTimeout time.Duration
	// DrainTimeout is the timeout for draining the queue on Close (default: 5s)
	DrainTimeout time.Duration
}

func (c *QueueConfig) applyDefaults() {
	if c.BufferSize <= 0 {
		c.BufferSize = 1000
	}
	if c.OverflowPolicy == nil {
		c.OverflowPolicy = DefaultLevelPolicy()
	}
	if c.BlockTimeout == 0 {
		c.BlockTimeout = 100 * time.Millisecond
	}
	if c.DrainTimeout == 0 {
		c.DrainTimeout = 5 * time.Second
	}
}

// queue is the single-consumer async pipeline shared by sinks.
type queue struct {
	ch           chan *core.Record
	policy       map[core.Level]OverflowPolicy
	blockTimeout time.Duration
	drainTimeout time.Duration
	stats        *Stats
	closed       chan struct{}
	wg           sync.WaitGroup
	write        func(*core.Record) error
	onError      func(error)
}

// newQueue creates a queue and starts its consumer goroutine.
// Write failures on the consumer side are routed through onError, since
// there is no caller left to return them to.
func newQueue(cfg QueueConfig, stats *Stats, write func(*core.Record) error, onError func(error)) *queue {
	cfg.applyDefaults()
	q := &queue{
		ch:           make(chan *core.Record, cfg.BufferSize),
		policy:       cfg.OverflowPolicy,
		blockTimeout: cfg.BlockTimeout,
		drainTimeout: cfg.DrainTimeout,
		stats:        stats,
		closed:       make(chan struct{}),
		write:        write,
		onError:      onError,
	}
	q.wg.Add(1)
	go q.process()
	return q
}

// enqueue hands a record to the consumer, applying the overflow policy
// for the record's level when the queue is full.
func (q *queue) enqueue(rec *core.Record) error {
	policy, ok := q.policy[rec.Level]
	if !ok {
		policy = DropNewest
	}

	switch policy {
	case Block:
		select {
		case q.ch <- rec:
			return nil
		case <-time.After(q.blockTimeout):
			// Timeout - fall back to synchronous write
			q.stats.IncrementBlocked()
			return q.write(rec)
		case <-q.closed:
			// Queue is closing, write synchronously
			return q.write(rec)
		}

	case DropOldest:
		select {
		case q.ch <- rec:
			return nil
		default:
			// Queue full - remove oldest, then retry once
			select {
			case old := <-q.ch:
				q.stats.IncrementDropped(old.Level)
			default:
			}
			select {
			case q.ch <- rec:
				return nil
			default:
				q.stats.IncrementDropped(rec.Level)
				return nil
			}
		}

	case DropNewest:
		fallthrough
	default:
		select {
		case q.ch <- rec:
			return nil
		default:
			q.stats.IncrementDropped(rec.Level)
			return nil
		}
	}
}

func (q *queue) process() {
	defer q.wg.Done()

	for {
		select {
		case rec := <-q.ch:
			if err := q.write(rec); err != nil && q.onError != nil {
				q.onError(err)
			}
		case <-q.closed:
			// Drain remaining records with timeout
			deadline := time.After(q.drainTimeout)
		drainLoop:
			for {
				select {
				case rec := <-q.ch:
					if err := q.write(rec); err != nil && q.onError != nil {
						q.onError(err)
					}
				case <-deadline:
					break drainLoop
				default:
					// Queue empty
					break drainLoop
				}
			}
			return
		}
	}
}

// close stops the consumer after a best-effort drain. Safe to call once.
func (q *queue) close() {
	select {
	case <-q.closed:
		return
	default:
	}
	close(q.closed)
	q.wg.Wait()
}
