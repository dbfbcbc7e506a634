package core

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"
)

// Process-wide constants captured once at startup. Every record carries
// them so formatters never touch the os package on the hot path.
var (
	// PID is the id of the current process.
	PID = os.Getpid()
	// Program is the base name of the running executable.
	Program = filepath.Base(os.Args[0])
)

// Record represents a single log event with all its metadata.
// A Record is immutable once it has been handed to the sinks.
type Record struct {
	Time    time.Time
	Name    string
	PID     int
	Level   Level
	Caller  CallerInfo
	Message string

	// Err and Stack carry a captured error and its stack trace.
	// Sinks with a structured format flatten them into Message
	// before rendering.
	Err   error
	Stack []byte
}

// CallerInfo contains information about the call site of a log call
type CallerInfo struct {
	File     string
	Line     int
	Function string
	Defined  bool
}

// Module returns the source file name without directory and extension,
// the closest Go analog to a module name.
func (c CallerInfo) Module() string {
	if !c.Defined {
		return ""
	}
	base := filepath.Base(c.File)
	return strings.TrimSuffix(base, ".go")
}

// ShortFile returns the base name of the caller's source file.
func (c CallerInfo) ShortFile() string {
	return filepath.Base(c.File)
}

// ShortFunction returns the function name without its package path.
func (c CallerInfo) ShortFunction() string {
	if i := strings.LastIndexByte(c.Function, '.'); i >= 0 {
		return c.Function[i+1:]
	}
	return c.Function
}

// GetCaller retrieves caller information
func GetCaller(skip int) CallerInfo {
	pc, file, line, ok := runtime.Caller(skip)
	if !ok {
		return CallerInfo{}
	}

	fn := runtime.FuncForPC(pc)
	var funcName string
	if fn != nil {
		funcName = fn.Name()
	}

	return CallerInfo{
		File:     file,
		Line:     line,
		Function: funcName,
		Defined:  true,
	}
}
