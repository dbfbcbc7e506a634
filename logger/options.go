package logger

import (
	"io"

	"github.com/logone-dev/logone/core"
)

// options collects the construction-time settings of a logger. They
// only apply the first time a name is looked up; later lookups return
// the existing logger unchanged.
type options struct {
	level      core.Level
	writer     io.Writer
	colors     *bool
	template   string
	timeFormat string
}

func defaultOptions() options {
	return options{level: core.WarningLevel}
}

// Option configures a logger at construction time.
type Option func(*options)

// WithLevel sets the initial threshold of the logger and its console
// sink. The default is WARNING.
func WithLevel(level core.Level) Option {
	return func(o *options) { o.level = level }
}

// WithColors forces colored console output on or off instead of
// detecting a terminal.
func WithColors(enabled bool) Option {
	return func(o *options) { o.colors = &enabled }
}

// WithTemplate overrides the console sink's line template.
func WithTemplate(template string) Option {
	return func(o *options) { o.template = template }
}

// WithTimeFormat overrides the console sink's timestamp layout.
func WithTimeFormat(layout string) Option {
	return func(o *options) { o.timeFormat = layout }
}

// WithWriter sends console output to w instead of the process error
// stream. Intended for tests.
func WithWriter(w io.Writer) Option {
	return func(o *options) { o.writer = w }
}
