package sink

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/logone-dev/logone/core"
)

func consoleRecord(level core.Level, msg string) *core.Record {
	return &core.Record{
		Time:    time.Now(),
		Name:    "test",
		PID:     core.PID,
		Level:   level,
		Message: msg,
	}
}

func TestConsole_Emit(t *testing.T) {
	var buf bytes.Buffer
	c := NewConsole(ConsoleConfig{Writer: &buf})

	if err := c.Emit(consoleRecord(core.InfoLevel, "console message")); err != nil {
		t.Fatalf("Emit failed: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "console message") {
		t.Errorf("Expected message in output, got: %s", out)
	}
	if !strings.Contains(out, "INFO") {
		t.Errorf("Expected level name in output, got: %s", out)
	}
	if strings.Contains(out, "\033[") {
		t.Errorf("Expected no color codes for non-terminal writer, got: %q", out)
	}
}

func TestConsole_ForcedColors(t *testing.T) {
	var buf bytes.Buffer
	colors := true
	c := NewConsole(ConsoleConfig{Writer: &buf, Colors: &colors})

	if err := c.Emit(consoleRecord(core.ErrorLevel, "red message")); err != nil {
		t.Fatalf("Emit failed: %v", err)
	}
	if !strings.Contains(buf.String(), "\033[31m") {
		t.Errorf("Expected red escape sequence, got: %q", buf.String())
	}
}

func TestConsole_SetLevel(t *testing.T) {
	c := NewConsole(ConsoleConfig{Writer: &bytes.Buffer{}, Level: core.WarningLevel})
	if c.Level() != core.WarningLevel {
		t.Errorf("Expected WARNING threshold, got %s", c.Level())
	}

	c.SetLevel(core.DebugLevel)
	if c.Level() != core.DebugLevel {
		t.Errorf("Expected DEBUG threshold after SetLevel, got %s", c.Level())
	}
}

func TestIsTerminal_NonFile(t *testing.T) {
	if IsTerminal(&bytes.Buffer{}) {
		t.Error("Expected bytes.Buffer not to be a terminal")
	}
}

func TestConsole_CloseIsNoop(t *testing.T) {
	c := NewConsole(ConsoleConfig{Writer: &bytes.Buffer{}})
	if err := c.Close(); err != nil {
		t.Errorf("Expected nil from Close, got %v", err)
	}
}
