// Package logger is the public API of logone. Most users only need to
// import this package.
//
// Loggers live in a process-wide registry keyed by name: GetLogger
// returns the same *Logger for the same name every time, so any part
// of a program can reach a shared logger without passing it around.
// Construction options apply only on the first lookup of a name.
//
//	log := logger.GetLogger("billing", logger.WithLevel(logger.DebugLevel))
//	log.Info("ready")
//
// Every logger starts with a console sink on the process error stream
// (colored when that stream is a terminal). A rotating file sink and a
// remote HTTP sink can be attached and detached at runtime:
//
//	log.UseFile(true, sink.FileConfig{Path: "logs/app.log"})
//	log.UseLoggly(true, sink.RemoteConfig{Token: token})
//
// The package-level functions Info, Errorf, Exception, etc. delegate
// to the root logger, so simple programs can log without any setup.
//
// RedirectStdout and RedirectStderr route the redirectable stream
// handles in the stream package through a logger, and HookStandardLog
// points the standard library's log package at the same handles.
// NewSlogHandler adapts a Logger into a slog.Handler for code written
// against log/slog.
package logger
