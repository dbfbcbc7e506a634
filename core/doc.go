// Package core defines the shared types used across the logone facade.
//
// It provides the Level type for severity filtering and the Record type
// that represents a single log event. Levels form a total order
// (DEBUG < INFO < WARNING < ERROR < CRITICAL); a record is delivered to
// a sink exactly when its level is at or above the sink's threshold.
//
// Records are plain values constructed per emit call. They may be held
// by asynchronous sink queues after the emitting call returns, so they
// are never pooled or mutated once dispatched.
package core
