package logger

import (
	"sort"
	"sync"

	"go.uber.org/multierr"

	"github.com/logone-dev/logone/stream"
)

var (
	registryMu sync.Mutex
	registry   = make(map[string]*Logger)
)

// GetLogger returns the process-wide logger with the given name,
// creating it on first use. Two calls with the same name return the
// same *Logger; options are applied only when the logger is created.
func GetLogger(name string, opts ...Option) *Logger {
	registryMu.Lock()
	defer registryMu.Unlock()

	if l, ok := registry[name]; ok {
		return l
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	l := newLogger(name, o)
	registry[name] = l
	return l
}

// Names returns the names of all registered loggers in sorted order.
func Names() []string {
	registryMu.Lock()
	defer registryMu.Unlock()

	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Shutdown closes every registered logger, draining any queued
// records, and reports the aggregate of the close errors. The loggers
// stay registered.
func Shutdown() error {
	registryMu.Lock()
	loggers := make([]*Logger, 0, len(registry))
	for _, l := range registry {
		loggers = append(loggers, l)
	}
	registryMu.Unlock()

	var err error
	for _, l := range loggers {
		err = multierr.Append(err, l.Close())
	}
	return err
}

// Reset closes and forgets every registered logger and restores the
// process streams. Intended for tests.
func Reset() {
	registryMu.Lock()
	loggers := make([]*Logger, 0, len(registry))
	for _, l := range registry {
		loggers = append(loggers, l)
	}
	registry = make(map[string]*Logger)
	registryMu.Unlock()

	for _, l := range loggers {
		_ = l.Close()
	}
	stream.Restore()
}
