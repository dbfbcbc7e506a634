package sink

import (
	"io"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/logone-dev/logone/core"
	"github.com/logone-dev/logone/formatter"
)

// FileConfig holds configuration for the rotating file sink
type FileConfig struct {
	// Path is the log file location. Required.
	Path string
	// Level is the sink's minimum severity threshold
	Level core.Level
	// Formatter to use (default: TemplateFormatter with the text template)
	Formatter formatter.Formatter
	// Template overrides the default text template
	Template string
	// TimeFormat overrides the default time layout
	TimeFormat string

	// Timed rotation settings (the default mode).
	// When is the rotation unit (default: RotateDaily)
	When When
	// Interval is the number of units between rotations (default: 1)
	Interval int
	// BackupCount is the number of rotated files to retain, oldest
	// deleted first (default: 30; 0 keeps all)
	BackupCount int
	// UTC stamps rotated files in UTC instead of local time
	UTC bool
	// AtTime fixes the time of day for RotateMidnight rotation
	AtTime *ClockTime
	// Delay postpones file creation until the first write
	Delay bool

	// MaxSizeMB switches the sink to size-based rotation backed by
	// lumberjack. Timed rotation settings are ignored in this mode.
	MaxSizeMB int
	// MaxAgeDays is the age limit for size-mode backups (lumberjack)
	MaxAgeDays int
	// Compress gzips size-mode backups (lumberjack)
	Compress bool

	// Queue controls optional asynchronous emission
	Queue QueueConfig
}

// File appends formatted records to a rotating log file.
type File struct {
	threshold
	mu              sync.Mutex
	out             io.WriteCloser
	formatter       formatter.Formatter
	writerFormatter formatter.WriterFormatter
	q               *queue
	stats           *Stats
}

// NewFile creates a new rotating file sink. The parent directory is
// created if missing; failure to do so is fatal since the sink cannot
// function at all. onError receives delivery failures from the async
// path and may be nil.
func NewFile(cfg FileConfig, onError func(error)) (*File, error) {
	if cfg.Path == "" {
		return nil, &ConfigError{Param: "Path", Reason: "is missing"}
	}
	if cfg.Formatter == nil {
		cfg.Formatter = formatter.NewTemplateFormatter(formatter.Config{
			Template:   cfg.Template,
			TimeFormat: cfg.TimeFormat,
		})
	}
	if cfg.When == "" {
		cfg.When = RotateDaily
	}
	if cfg.Interval <= 0 {
		cfg.Interval = 1
	}
	if cfg.BackupCount == 0 {
		cfg.BackupCount = 30
	}

	if dir := filepath.Dir(cfg.Path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, &DirectoryError{Path: dir, Err: err}
		}
	}

	var out io.WriteCloser
	if cfg.MaxSizeMB > 0 {
		out = &lumberjack.Logger{
			Filename:   cfg.Path,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.BackupCount,
			MaxAge:     cfg.MaxAgeDays,
			Compress:   cfg.Compress,
		}
	} else {
		w, err := newTimedRotateWriter(cfg.Path, cfg.When, cfg.Interval, cfg.BackupCount, cfg.UTC, cfg.AtTime, cfg.Delay)
		if err != nil {
			return nil, err
		}
		out = w
	}

	f := &File{
		out:       out,
		formatter: cfg.Formatter,
		stats:     NewStats(),
	}
	f.SetLevel(cfg.Level)
	f.writerFormatter, _ = cfg.Formatter.(formatter.WriterFormatter)

	if cfg.Queue.Async {
		f.q = newQueue(cfg.Queue, f.stats, f.write, onError)
	}
	return f, nil
}

// Emit delivers a record to the file, or to the async queue when enabled
func (f *File) Emit(rec *core.Record) error {
	if f.q != nil {
		return f.q.enqueue(rec)
	}
	return f.write(rec)
}

func (f *File) write(rec *core.Record) error {
	if f.writerFormatter != nil {
		f.mu.Lock()
		err := f.writerFormatter.FormatTo(rec, f.out)
		f.mu.Unlock()
		if err == nil {
			f.stats.IncrementProcessed()
		}
		return err
	}

	data, err := f.formatter.Format(rec)
	if err != nil {
		return err
	}

	f.mu.Lock()
	_, writeErr := f.out.Write(data)
	f.mu.Unlock()

	if writeErr == nil {
		f.stats.IncrementProcessed()
	}
	return writeErr
}

// Stats returns a snapshot of the sink's queue statistics
func (f *File) Stats() Snapshot {
	return f.stats.GetSnapshot()
}

// Close drains the async queue, then closes the underlying file
func (f *File) Close() error {
	if f.q != nil {
		f.q.close()
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	return f.out.Close()
}
