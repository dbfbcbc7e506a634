package sink

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// When selects the unit for timed rotation.
type When string

const (
	// RotateSecondly rotates every Interval seconds
	RotateSecondly When = "s"
	// RotateMinutely rotates every Interval minutes
	RotateMinutely When = "m"
	// RotateHourly rotates every Interval hours
	RotateHourly When = "h"
	// RotateDaily rotates every Interval days, counted from first open
	RotateDaily When = "d"
	// RotateMidnight rotates at a fixed time of day (AtTime, default 00:00)
	RotateMidnight When = "midnight"
)

// ClockTime is a time of day for RotateMidnight rotation.
type ClockTime struct {
	Hour   int
	Minute int
	Second int
}

// backup filename suffix layouts per rotation unit
var whenSuffix = map[When]string{
	RotateSecondly: "2006-01-02_15-04-05",
	RotateMinutely: "2006-01-02_15-04",
	RotateHourly:   "2006-01-02_15",
	RotateDaily:    "2006-01-02",
	RotateMidnight: "2006-01-02",
}

var whenUnit = map[When]time.Duration{
	RotateSecondly: time.Second,
	RotateMinutely: time.Minute,
	RotateHourly:   time.Hour,
	RotateDaily:    24 * time.Hour,
}

// timedRotateWriter appends to a log file and rotates it when a time
// boundary is crossed, independent of write volume. Rotated files keep
// the base name plus a timestamp suffix; at most backupCount historical
// files are retained, oldest deleted first.
//
// The writer is not safe for concurrent use; the owning File sink
// serializes access.
type timedRotateWriter struct {
	path        string
	when        When
	interval    int
	backupCount int
	utc         bool
	atTime      *ClockTime
	suffix      string

	file       *os.File
	openedAt   time.Time
	rolloverAt time.Time
}

func newTimedRotateWriter(path string, when When, interval, backupCount int, utc bool, atTime *ClockTime, delay bool) (*timedRotateWriter, error) {
	suffix, ok := whenSuffix[when]
	if !ok {
		return nil, &ConfigError{Param: "When", Reason: fmt.Sprintf("has unknown rotation unit %q", when)}
	}
	if interval <= 0 {
		interval = 1
	}

	w := &timedRotateWriter{
		path:        path,
		when:        when,
		interval:    interval,
		backupCount: backupCount,
		utc:         utc,
		atTime:      atTime,
		suffix:      suffix,
	}

	// Delayed creation postpones the open until the first write.
	if !delay {
		if err := w.open(); err != nil {
			return nil, err
		}
	}
	return w, nil
}

func (w *timedRotateWriter) open() error {
	file, err := os.OpenFile(w.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return err
	}
	now := time.Now()
	w.file = file
	w.openedAt = now
	w.rolloverAt = w.computeRollover(now)
	return nil
}

func (w *timedRotateWriter) Write(p []byte) (int, error) {
	if w.file == nil {
		if err := w.open(); err != nil {
			return 0, err
		}
	}
	if !time.Now().Before(w.rolloverAt) {
		if err := w.rotate(); err != nil {
			return 0, err
		}
	}
	return w.file.Write(p)
}

// rotate closes the current file, renames it with the timestamp of the
// interval it covers, trims old backups and reopens a fresh file.
func (w *timedRotateWriter) rotate() error {
	if err := w.file.Close(); err != nil {
		return err
	}

	stamp := w.openedAt
	if w.utc {
		stamp = stamp.UTC()
	}
	rotatedName := w.path + "." + stamp.Format(w.suffix)

	if err := os.Rename(w.path, rotatedName); err != nil {
		// Reopen the original so logging can continue
		if openErr := w.open(); openErr != nil {
			return fmt.Errorf("rotation failed: %v, reopen failed: %v", err, openErr)
		}
		return err
	}

	if w.backupCount > 0 {
		w.cleanupOldBackups()
	}

	return w.open()
}

// cleanupOldBackups removes the oldest backup files beyond backupCount
func (w *timedRotateWriter) cleanupOldBackups() {
	dir := filepath.Dir(w.path)
	base := filepath.Base(w.path)

	matches, err := filepath.Glob(filepath.Join(dir, base+".*"))
	if err != nil {
		return
	}

	var backups []string
	for _, match := range matches {
		if strings.HasPrefix(filepath.Base(match), base+".") {
			backups = append(backups, match)
		}
	}

	// Sort by modification time (oldest first)
	sort.Slice(backups, func(i, j int) bool {
		infoI, errI := os.Stat(backups[i])
		infoJ, errJ := os.Stat(backups[j])
		if errI != nil || errJ != nil {
			return false
		}
		return infoI.ModTime().Before(infoJ.ModTime())
	})

	if len(backups) > w.backupCount {
		for _, file := range backups[:len(backups)-w.backupCount] {
			if err := os.Remove(file); err != nil {
				return
			}
		}
	}
}

// computeRollover returns the next rotation boundary after now.
// Interval units count from the current time; RotateMidnight aligns to
// the configured time of day instead.
func (w *timedRotateWriter) computeRollover(now time.Time) time.Time {
	if w.when != RotateMidnight {
		return now.Add(time.Duration(w.interval) * whenUnit[w.when])
	}

	t := now
	if w.utc {
		t = now.UTC()
	}
	at := w.atTime
	if at == nil {
		at = &ClockTime{}
	}
	next := time.Date(t.Year(), t.Month(), t.Day(), at.Hour, at.Minute, at.Second, 0, t.Location())
	if !next.After(t) {
		next = next.AddDate(0, 0, 1)
	}
	if w.interval > 1 {
		next = next.AddDate(0, 0, w.interval-1)
	}
	return next
}

func (w *timedRotateWriter) Close() error {
	if w.file == nil {
		return nil
	}
	err := w.file.Close()
	w.file = nil
	return err
}

// forceRolloverAt is a test hook that moves the next rotation boundary.
func (w *timedRotateWriter) forceRolloverAt(t time.Time) {
	w.rolloverAt = t
}
