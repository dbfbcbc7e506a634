package sink

import "fmt"

// ConfigError reports a missing or invalid sink parameter. It is
// returned synchronously from sink constructors, before any sink state
// is installed.
type ConfigError struct {
	Param  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("logone: invalid sink configuration: %s %s", e.Param, e.Reason)
}

// DirectoryError reports a failure to create the parent directory of a
// log file. The file sink cannot function without it, so attachment
// fails outright.
type DirectoryError struct {
	Path string
	Err  error
}

func (e *DirectoryError) Error() string {
	return fmt.Sprintf("logone: create log directory %s: %v", e.Path, e.Err)
}

func (e *DirectoryError) Unwrap() error { return e.Err }

// DeliveryError reports a sink's failure to hand off a record to its
// destination. Delivery errors never propagate to the emitting caller;
// the logger routes them to its local diagnostic path.
type DeliveryError struct {
	Sink string
	Err  error
}

func (e *DeliveryError) Error() string {
	return fmt.Sprintf("logone: %s sink delivery failed: %v", e.Sink, e.Err)
}

func (e *DeliveryError) Unwrap() error { return e.Err }
