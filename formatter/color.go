package formatter

import (
	"bytes"
	"io"

	"github.com/logone-dev/logone/core"
)

// ANSI escape sequences used for level coloring
const (
	ansiReset   = "\033[0m"
	ansiBold    = "\033[1m"
	ansiGreen   = "\033[32m"
	ansiYellow  = "\033[33m"
	ansiRed     = "\033[31m"
	ansiBoldRed = ansiBold + ansiRed
)

// levelColors maps each level to its line color. Info stays uncolored.
var levelColors = [...]string{
	core.DebugLevel:    ansiGreen,
	core.InfoLevel:     "",
	core.WarningLevel:  ansiYellow,
	core.ErrorLevel:    ansiRed,
	core.CriticalLevel: ansiBoldRed,
}

// ColorFormatter wraps a TemplateFormatter and colors each rendered line
// according to its level. The escape sequences surround the line body so
// the trailing newline is never colored.
type ColorFormatter struct {
	inner *TemplateFormatter
}

// NewColorFormatter creates a new coloring formatter
func NewColorFormatter(cfg Config) *ColorFormatter {
	return &ColorFormatter{inner: NewTemplateFormatter(cfg)}
}

// Format formats a record with ANSI coloring
func (f *ColorFormatter) Format(rec *core.Record) ([]byte, error) {
	buf := getBuffer()
	defer putBuffer(buf)

	f.formatToBuffer(rec, buf)

	result := make([]byte, buf.Len())
	copy(result, buf.Bytes())
	return result, nil
}

// FormatTo formats a record with ANSI coloring and writes it to the writer
func (f *ColorFormatter) FormatTo(rec *core.Record, w io.Writer) error {
	buf := getBuffer()

	f.formatToBuffer(rec, buf)

	_, err := w.Write(buf.Bytes())
	putBuffer(buf)
	return err
}

func (f *ColorFormatter) formatToBuffer(rec *core.Record, buf *bytes.Buffer) {
	var color string
	if int(rec.Level) < len(levelColors) && rec.Level >= 0 {
		color = levelColors[rec.Level]
	}
	if color == "" {
		f.inner.formatToBuffer(rec, buf)
		return
	}

	buf.WriteString(color)
	f.inner.renderBody(rec, buf)
	f.inner.renderTail(rec, buf)
	buf.WriteString(ansiReset)
	if !f.inner.OmitNewline {
		buf.WriteByte('\n')
	}
}
