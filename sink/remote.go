package sink

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/logone-dev/logone/core"
	"github.com/logone-dev/logone/formatter"
)

// DefaultHost is the Loggly log-ingestion endpoint.
const DefaultHost = "https://logs-01.loggly.com"

// successBody is the exact response body Loggly returns on success.
const successBody = `{"response" : "ok"}`

const defaultRemoteTimeout = 30 * time.Second

// RemoteConfig holds configuration for the remote HTTP sink
type RemoteConfig struct {
	// Token is the customer token of the ingestion account. Required.
	Token string
	// Tag identifies the source; defaults to the logger's name
	Tag string
	// Host overrides the ingestion host (used by tests and self-hosted
	// collectors)
	Host string
	// Level is the sink's minimum severity threshold
	Level core.Level
	// Formatter to use (default: JSON template with escaping)
	Formatter formatter.Formatter
	// Template overrides the default JSON template
	Template string
	// TimeFormat overrides the default time layout
	TimeFormat string
	// Timeout bounds each POST (default: 30s)
	Timeout time.Duration
	// HTTPClient overrides the default client (used by tests)
	HTTPClient *http.Client

	// Queue controls optional asynchronous emission
	Queue QueueConfig
}

// Remote ships each record as one synchronous HTTP POST to a
// log-ingestion endpoint. Delivery is best-effort: failures are
// reported, never retried.
type Remote struct {
	threshold
	url       string
	client    *http.Client
	formatter formatter.Formatter
	q         *queue
	stats     *Stats
}

// NewRemote creates a new remote HTTP sink. defaultTag is used when the
// config carries no tag. onError receives delivery failures from the
// async path and may be nil.
func NewRemote(cfg RemoteConfig, defaultTag string, onError func(error)) (*Remote, error) {
	if cfg.Token == "" {
		return nil, &ConfigError{Param: "Token", Reason: "is missing"}
	}
	if cfg.Tag == "" {
		cfg.Tag = defaultTag
	}
	if cfg.Host == "" {
		cfg.Host = DefaultHost
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = defaultRemoteTimeout
	}
	if cfg.Formatter == nil {
		tmpl := cfg.Template
		if tmpl == "" {
			tmpl = formatter.DefaultJSONTemplate
		}
		cfg.Formatter = formatter.NewTemplateFormatter(formatter.Config{
			Template:    tmpl,
			TimeFormat:  cfg.TimeFormat,
			EscapeJSON:  true,
			OmitNewline: true,
		})
	}
	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout}
	}

	r := &Remote{
		url:       fmt.Sprintf("%s/inputs/%s/tag/%s", strings.TrimSuffix(cfg.Host, "/"), cfg.Token, cfg.Tag),
		client:    client,
		formatter: cfg.Formatter,
		stats:     NewStats(),
	}
	r.SetLevel(cfg.Level)

	if cfg.Queue.Async {
		r.q = newQueue(cfg.Queue, r.stats, r.post, onError)
	}
	return r, nil
}

// Emit delivers a record to the endpoint, or to the async queue when enabled
func (r *Remote) Emit(rec *core.Record) error {
	if r.q != nil {
		return r.q.enqueue(rec)
	}
	return r.post(rec)
}

// post renders and ships one record. Any transport failure, timeout,
// non-200 status or unexpected body is a delivery failure.
func (r *Remote) post(rec *core.Record) error {
	rec = flatten(rec)

	body, err := r.formatter.Format(rec)
	if err != nil {
		return &DeliveryError{Sink: "remote", Err: err}
	}

	resp, err := r.client.Post(r.url, "text/plain", bytes.NewReader(body))
	if err != nil {
		return &DeliveryError{Sink: "remote", Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 1024))
	if err != nil {
		return &DeliveryError{Sink: "remote", Err: err}
	}
	if resp.StatusCode != http.StatusOK {
		return &DeliveryError{Sink: "remote", Err: fmt.Errorf("unexpected status %s", resp.Status)}
	}
	if string(respBody) != successBody {
		return &DeliveryError{Sink: "remote", Err: errors.New("unexpected response body")}
	}

	r.stats.IncrementProcessed()
	return nil
}

// flatten folds a captured error and stack trace into the message text
// and clears the structured fields, so the formatter renders them
// exactly once. Records without error info pass through untouched.
func flatten(rec *core.Record) *core.Record {
	if rec.Err == nil && len(rec.Stack) == 0 {
		return rec
	}

	var b strings.Builder
	b.WriteString(rec.Message)
	if rec.Err != nil {
		b.WriteByte('\n')
		b.WriteString(rec.Err.Error())
	}
	if len(rec.Stack) > 0 {
		b.WriteByte('\n')
		b.Write(rec.Stack)
	}

	flat := *rec
	flat.Message = b.String()
	flat.Err = nil
	flat.Stack = nil
	return &flat
}

// Stats returns a snapshot of the sink's queue statistics
func (r *Remote) Stats() Snapshot {
	return r.stats.GetSnapshot()
}

// Close drains the async queue
func (r *Remote) Close() error {
	if r.q != nil {
		r.q.close()
	}
	return nil
}
