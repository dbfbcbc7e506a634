package sink

import (
	"io"
	"os"
	"sync"

	"golang.org/x/term"

	"github.com/logone-dev/logone/core"
	"github.com/logone-dev/logone/formatter"
)

// ConsoleConfig holds configuration for the console sink
type ConsoleConfig struct {
	// Writer to write to (default: os.Stderr)
	Writer io.Writer
	// Formatter to use. When nil, a ColorFormatter is chosen if the
	// writer is a terminal and Colors is not false, otherwise a plain
	// TemplateFormatter.
	Formatter formatter.Formatter
	// Colors forces coloring on or off; nil means auto-detect
	Colors *bool
	// Template overrides the default text template
	Template string
	// TimeFormat overrides the default time layout
	TimeFormat string
	// Level is the sink's minimum severity threshold
	Level core.Level
}

// Console writes formatted records to a terminal or any io.Writer.
// Writes are serialized by a mutex; emission is always synchronous so
// console output interleaves correctly with redirected streams.
type Console struct {
	threshold
	mu              sync.Mutex
	writer          io.Writer
	formatter       formatter.Formatter
	writerFormatter formatter.WriterFormatter
}

// NewConsole creates a new console sink
func NewConsole(cfg ConsoleConfig) *Console {
	if cfg.Writer == nil {
		cfg.Writer = os.Stderr
	}
	if cfg.Formatter == nil {
		fcfg := formatter.Config{Template: cfg.Template, TimeFormat: cfg.TimeFormat}
		colors := IsTerminal(cfg.Writer)
		if cfg.Colors != nil {
			colors = *cfg.Colors
		}
		if colors {
			cfg.Formatter = formatter.NewColorFormatter(fcfg)
		} else {
			cfg.Formatter = formatter.NewTemplateFormatter(fcfg)
		}
	}

	c := &Console{
		writer:    cfg.Writer,
		formatter: cfg.Formatter,
	}
	c.SetLevel(cfg.Level)

	// Cache WriterFormatter to skip the intermediate byte slice
	c.writerFormatter, _ = cfg.Formatter.(formatter.WriterFormatter)
	return c
}

// Emit formats a record and writes it to the console writer
func (c *Console) Emit(rec *core.Record) error {
	if c.writerFormatter != nil {
		c.mu.Lock()
		err := c.writerFormatter.FormatTo(rec, c.writer)
		c.mu.Unlock()
		return err
	}

	data, err := c.formatter.Format(rec)
	if err != nil {
		return err
	}

	c.mu.Lock()
	_, writeErr := c.writer.Write(data)
	c.mu.Unlock()
	return writeErr
}

// Close is a no-op; the console sink does not own its writer
func (c *Console) Close() error {
	return nil
}

// IsTerminal reports whether w is backed by an interactive terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}
