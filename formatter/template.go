package formatter

import (
	"bytes"
	"io"
	"strconv"
	"strings"

	"github.com/logone-dev/logone/core"
)

// Built-in templates. DefaultTextTemplate is used by the console and file
// sinks, DefaultJSONTemplate by the remote sink.
const (
	DefaultTextTemplate = "{time} {name}[{pid}] {program}/{module}/{function}[{line}] {level} {message}"

	DefaultJSONTemplate = `{"name":"{name}","process":"{pid}","levelname":"{level}",` +
		`"time":"{time}","program":"{program}","module":"{module}",` +
		`"funcName":"{function}","lineno":"{line}","message":"{message}"}`

	// DefaultTimeFormat renders timestamps with millisecond precision.
	DefaultTimeFormat = "2006-01-02 15:04:05.000"
)

// Config holds template formatter configuration
type Config struct {
	// Template is the placeholder template (empty for DefaultTextTemplate)
	Template string
	// TimeFormat specifies the time layout (empty for DefaultTimeFormat)
	TimeFormat string
	// EscapeJSON applies JSON string escaping to every substituted text
	// value, for templates that embed values inside a JSON shape
	EscapeJSON bool
	// OmitNewline suppresses the trailing newline (used for HTTP bodies)
	OmitNewline bool
}

type token uint8

const (
	tokLiteral token = iota
	tokTime
	tokName
	tokPID
	tokProgram
	tokModule
	tokFunction
	tokLine
	tokLevel
	tokMessage
)

var tokenNames = map[string]token{
	"time":     tokTime,
	"name":     tokName,
	"pid":      tokPID,
	"program":  tokProgram,
	"module":   tokModule,
	"function": tokFunction,
	"line":     tokLine,
	"level":    tokLevel,
	"message":  tokMessage,
}

// segment is one compiled piece of a template: either a literal run of
// text or a single placeholder token.
type segment struct {
	tok     token
	literal string
}

// TemplateFormatter renders records according to a placeholder template.
// The template is compiled once at construction; formatting walks the
// segment list without re-parsing.
type TemplateFormatter struct {
	Config
	segments []segment
}

// NewTemplateFormatter creates a new template formatter
func NewTemplateFormatter(cfg Config) *TemplateFormatter {
	if cfg.Template == "" {
		cfg.Template = DefaultTextTemplate
	}
	if cfg.TimeFormat == "" {
		cfg.TimeFormat = DefaultTimeFormat
	}
	return &TemplateFormatter{
		Config:   cfg,
		segments: compile(cfg.Template),
	}
}

// compile splits a template into literal and placeholder segments.
// A brace sequence that is not a recognized placeholder stays literal,
// which lets JSON-shaped templates carry their own braces.
func compile(tmpl string) []segment {
	var segs []segment
	var lit strings.Builder

	for i := 0; i < len(tmpl); {
		open := strings.IndexByte(tmpl[i:], '{')
		if open < 0 {
			lit.WriteString(tmpl[i:])
			break
		}
		open += i
		close := strings.IndexByte(tmpl[open:], '}')
		if close < 0 {
			lit.WriteString(tmpl[i:])
			break
		}
		close += open

		tok, ok := tokenNames[tmpl[open+1:close]]
		if !ok {
			// Unknown placeholder: keep the opening brace literal and
			// continue scanning right after it.
			lit.WriteString(tmpl[i : open+1])
			i = open + 1
			continue
		}

		lit.WriteString(tmpl[i:open])
		if lit.Len() > 0 {
			segs = append(segs, segment{tok: tokLiteral, literal: lit.String()})
			lit.Reset()
		}
		segs = append(segs, segment{tok: tok})
		i = close + 1
	}

	if lit.Len() > 0 {
		segs = append(segs, segment{tok: tokLiteral, literal: lit.String()})
	}
	return segs
}

// Format formats a record according to the template
func (f *TemplateFormatter) Format(rec *core.Record) ([]byte, error) {
	buf := getBuffer()
	defer putBuffer(buf)

	f.formatToBuffer(rec, buf)

	result := make([]byte, buf.Len())
	copy(result, buf.Bytes())
	return result, nil
}

// FormatTo formats a record and writes it directly to the writer
func (f *TemplateFormatter) FormatTo(rec *core.Record, w io.Writer) error {
	buf := getBuffer()

	f.formatToBuffer(rec, buf)

	_, err := w.Write(buf.Bytes())
	putBuffer(buf)
	return err
}

// formatToBuffer walks the compiled segments and appends the rendered
// record, including the terminator, to buf.
func (f *TemplateFormatter) formatToBuffer(rec *core.Record, buf *bytes.Buffer) {
	f.renderBody(rec, buf)
	f.renderTail(rec, buf)
	if !f.OmitNewline {
		buf.WriteByte('\n')
	}
}

// renderTail appends a captured error and stack trace on their own
// lines after the templated body.
func (f *TemplateFormatter) renderTail(rec *core.Record, buf *bytes.Buffer) {
	if rec.Err != nil {
		buf.WriteByte('\n')
		f.writeString(buf, rec.Err.Error())
	}
	if len(rec.Stack) > 0 {
		buf.WriteByte('\n')
		buf.Write(bytes.TrimRight(rec.Stack, "\n"))
	}
}

// renderBody appends the rendered record without a terminator.
func (f *TemplateFormatter) renderBody(rec *core.Record, buf *bytes.Buffer) {
	for _, seg := range f.segments {
		switch seg.tok {
		case tokLiteral:
			buf.WriteString(seg.literal)
		case tokTime:
			// AppendFormat avoids the intermediate string allocation
			buf.Write(rec.Time.AppendFormat(buf.AvailableBuffer(), f.TimeFormat))
		case tokName:
			f.writeString(buf, rec.Name)
		case tokPID:
			buf.Write(strconv.AppendInt(buf.AvailableBuffer(), int64(rec.PID), 10))
		case tokProgram:
			f.writeString(buf, core.Program)
		case tokModule:
			f.writeString(buf, rec.Caller.Module())
		case tokFunction:
			f.writeString(buf, rec.Caller.ShortFunction())
		case tokLine:
			buf.Write(strconv.AppendInt(buf.AvailableBuffer(), int64(rec.Caller.Line), 10))
		case tokLevel:
			buf.WriteString(rec.Level.String())
		case tokMessage:
			f.writeString(buf, rec.Message)
		}
	}
}

func (f *TemplateFormatter) writeString(buf *bytes.Buffer, s string) {
	if f.EscapeJSON {
		appendJSONString(buf, s)
		return
	}
	buf.WriteString(s)
}

// appendJSONString writes a JSON-escaped string (without surrounding quotes) to the buffer
func appendJSONString(buf *bytes.Buffer, s string) {
	start := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= 0x20 && c != '"' && c != '\\' {
			continue
		}
		// Flush unescaped prefix
		if start < i {
			buf.WriteString(s[start:i])
		}
		switch c {
		case '"':
			buf.WriteString(`\"`)
		case '\\':
			buf.WriteString(`\\`)
		case '\n':
			buf.WriteString(`\n`)
		case '\r':
			buf.WriteString(`\r`)
		case '\t':
			buf.WriteString(`\t`)
		default:
			buf.WriteString(`\u00`)
			buf.WriteByte(hexChars[c>>4])
			buf.WriteByte(hexChars[c&0x0f])
		}
		start = i + 1
	}
	// Flush remaining
	if start < len(s) {
		buf.WriteString(s[start:])
	}
}

var hexChars = [16]byte{'0', '1', '2', '3', '4', '5', '6', '7', '8', '9', 'a', 'b', 'c', 'd', 'e', 'f'}
