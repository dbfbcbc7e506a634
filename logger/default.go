package logger

import (
	"fmt"
	"runtime/debug"

	"github.com/logone-dev/logone/core"
	"github.com/logone-dev/logone/sink"
)

const defaultName = "root"

// Default returns the process-wide root logger.
func Default() *Logger {
	return GetLogger(defaultName)
}

// SetLevel adjusts the root logger's threshold.
func SetLevel(level core.Level) {
	Default().SetLevel(level)
}

// Disable suppresses or re-enables the root logger.
func Disable(disabled bool) {
	Default().Disable(disabled)
}

// UseFile attaches or detaches a rotating file sink on the root logger.
func UseFile(enabled bool, cfg sink.FileConfig) error {
	return Default().UseFile(enabled, cfg)
}

// UseLoggly attaches or detaches a remote sink on the root logger.
func UseLoggly(enabled bool, cfg sink.RemoteConfig) error {
	return Default().UseLoggly(enabled, cfg)
}

// RedirectStdout routes the process output handle through the root
// logger.
func RedirectStdout(enabled bool, level core.Level) {
	Default().RedirectStdout(enabled, level)
}

// RedirectStderr routes the process error handle through the root
// logger.
func RedirectStderr(enabled bool, level core.Level) {
	Default().RedirectStderr(enabled, level)
}

// Log emits a message at an arbitrary level through the root logger.
func Log(level core.Level, msg string) {
	Default().log(level, msg, 1)
}

// Debug emits a debug message through the root logger.
func Debug(msg string) {
	Default().log(core.DebugLevel, msg, 1)
}

// Info emits an informational message through the root logger.
func Info(msg string) {
	Default().log(core.InfoLevel, msg, 1)
}

// Warning emits a warning message through the root logger.
func Warning(msg string) {
	Default().log(core.WarningLevel, msg, 1)
}

// Error emits an error message through the root logger.
func Error(msg string) {
	Default().log(core.ErrorLevel, msg, 1)
}

// Critical emits a critical message through the root logger.
func Critical(msg string) {
	Default().log(core.CriticalLevel, msg, 1)
}

// Debugf emits a formatted debug message through the root logger.
func Debugf(format string, args ...interface{}) {
	Default().log(core.DebugLevel, fmt.Sprintf(format, args...), 1)
}

// Infof emits a formatted informational message through the root logger.
func Infof(format string, args ...interface{}) {
	Default().log(core.InfoLevel, fmt.Sprintf(format, args...), 1)
}

// Warningf emits a formatted warning message through the root logger.
func Warningf(format string, args ...interface{}) {
	Default().log(core.WarningLevel, fmt.Sprintf(format, args...), 1)
}

// Errorf emits a formatted error message through the root logger.
func Errorf(format string, args ...interface{}) {
	Default().log(core.ErrorLevel, fmt.Sprintf(format, args...), 1)
}

// Criticalf emits a formatted critical message through the root logger.
func Criticalf(format string, args ...interface{}) {
	Default().log(core.CriticalLevel, fmt.Sprintf(format, args...), 1)
}

// Exception emits an error message with err and the current stack trace
// through the root logger.
func Exception(msg string, err error) {
	Default().logWith(core.ErrorLevel, msg, err, debug.Stack(), 1)
}
