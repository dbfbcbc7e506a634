package sink

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/logone-dev/logone/core"
)

func remoteRecord(level core.Level, msg string) *core.Record {
	return &core.Record{
		Time:    time.Now(),
		Name:    "remote-test",
		PID:     core.PID,
		Level:   level,
		Message: msg,
	}
}

// newLogglyServer returns a test server mimicking the ingestion endpoint
// and a pointer to the last received body.
func newLogglyServer(t *testing.T, status int, respBody string) (*httptest.Server, *string) {
	t.Helper()
	var lastBody string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, _ := io.ReadAll(r.Body)
		lastBody = string(data)
		w.WriteHeader(status)
		_, _ = io.WriteString(w, respBody)
	}))
	t.Cleanup(srv.Close)
	return srv, &lastBody
}

func TestNewRemote_MissingToken(t *testing.T) {
	_, err := NewRemote(RemoteConfig{}, "fallback", nil)
	if err == nil {
		t.Fatal("Expected error for missing token")
	}
	var cfgErr *ConfigError
	if !errors.As(err, &cfgErr) {
		t.Errorf("Expected ConfigError, got %T: %v", err, err)
	}
}

func TestNewRemote_DefaultTag(t *testing.T) {
	r, err := NewRemote(RemoteConfig{Token: "tok"}, "mylogger", nil)
	if err != nil {
		t.Fatalf("NewRemote failed: %v", err)
	}
	if !strings.HasSuffix(r.url, "/inputs/tok/tag/mylogger") {
		t.Errorf("Expected default tag in URL, got: %s", r.url)
	}
}

func TestRemote_Success(t *testing.T) {
	srv, body := newLogglyServer(t, http.StatusOK, successBody)

	r, err := NewRemote(RemoteConfig{Token: "tok", Tag: "tag", Host: srv.URL}, "", nil)
	if err != nil {
		t.Fatalf("NewRemote failed: %v", err)
	}

	if err := r.Emit(remoteRecord(core.ErrorLevel, "shipped")); err != nil {
		t.Fatalf("Emit failed: %v", err)
	}

	var decoded map[string]string
	if err := json.Unmarshal([]byte(*body), &decoded); err != nil {
		t.Fatalf("Body is not valid JSON: %v\n%s", err, *body)
	}
	if decoded["message"] != "shipped" {
		t.Errorf("Expected message 'shipped', got %q", decoded["message"])
	}
	if decoded["levelname"] != "ERROR" {
		t.Errorf("Expected levelname ERROR, got %q", decoded["levelname"])
	}
	if r.Stats().Processed != 1 {
		t.Errorf("Expected 1 processed record, got %d", r.Stats().Processed)
	}
}

func TestRemote_UnexpectedStatus(t *testing.T) {
	srv, _ := newLogglyServer(t, http.StatusInternalServerError, successBody)

	r, _ := NewRemote(RemoteConfig{Token: "tok", Host: srv.URL}, "t", nil)
	err := r.Emit(remoteRecord(core.ErrorLevel, "x"))
	if err == nil {
		t.Fatal("Expected delivery error for HTTP 500")
	}
	var dErr *DeliveryError
	if !errors.As(err, &dErr) {
		t.Errorf("Expected DeliveryError, got %T: %v", err, err)
	}
}

func TestRemote_UnexpectedBody(t *testing.T) {
	srv, _ := newLogglyServer(t, http.StatusOK, `{"response" : "nope"}`)

	r, _ := NewRemote(RemoteConfig{Token: "tok", Host: srv.URL}, "t", nil)
	err := r.Emit(remoteRecord(core.ErrorLevel, "x"))
	var dErr *DeliveryError
	if !errors.As(err, &dErr) {
		t.Errorf("Expected DeliveryError for unexpected body, got %T: %v", err, err)
	}
}

func TestRemote_TransportFailure(t *testing.T) {
	srv, _ := newLogglyServer(t, http.StatusOK, successBody)
	srv.Close()

	r, _ := NewRemote(RemoteConfig{Token: "tok", Host: srv.URL}, "t", nil)
	err := r.Emit(remoteRecord(core.ErrorLevel, "x"))
	var dErr *DeliveryError
	if !errors.As(err, &dErr) {
		t.Errorf("Expected DeliveryError for refused connection, got %T: %v", err, err)
	}
}

func TestRemote_FlattensErrorAndStack(t *testing.T) {
	srv, body := newLogglyServer(t, http.StatusOK, successBody)

	r, _ := NewRemote(RemoteConfig{Token: "tok", Host: srv.URL}, "t", nil)

	rec := remoteRecord(core.ErrorLevel, "operation failed")
	rec.Err = errors.New("boom")
	rec.Stack = []byte("goroutine 1 [running]:\nmain.main()")

	if err := r.Emit(rec); err != nil {
		t.Fatalf("Emit failed: %v", err)
	}

	var decoded map[string]string
	if err := json.Unmarshal([]byte(*body), &decoded); err != nil {
		t.Fatalf("Body is not valid JSON: %v\n%s", err, *body)
	}
	msg := decoded["message"]
	if !strings.Contains(msg, "operation failed") {
		t.Errorf("Expected original message in flattened text, got: %q", msg)
	}
	if !strings.Contains(msg, "boom") {
		t.Errorf("Expected error text in flattened message, got: %q", msg)
	}
	if !strings.Contains(msg, "goroutine 1 [running]") {
		t.Errorf("Expected stack trace in flattened message, got: %q", msg)
	}
	if _, ok := decoded["error"]; ok {
		t.Error("Expected no structured error field in rendered body")
	}

	// The original record must not be mutated
	if rec.Err == nil || rec.Stack == nil {
		t.Error("Expected flatten to copy, not mutate, the record")
	}
}

func TestFlatten_NoErrorPassesThrough(t *testing.T) {
	rec := remoteRecord(core.InfoLevel, "plain")
	if flatten(rec) != rec {
		t.Error("Expected records without error info to pass through unchanged")
	}
}

func TestRemote_AsyncDelivery(t *testing.T) {
	srv, _ := newLogglyServer(t, http.StatusOK, successBody)

	r, err := NewRemote(RemoteConfig{
		Token: "tok",
		Host:  srv.URL,
		Queue: QueueConfig{Async: true},
	}, "t", nil)
	if err != nil {
		t.Fatalf("NewRemote failed: %v", err)
	}

	for i := 0; i < 5; i++ {
		if err := r.Emit(remoteRecord(core.InfoLevel, "async")); err != nil {
			t.Fatalf("Emit failed: %v", err)
		}
	}
	if err := r.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	if got := r.Stats().Processed; got != 5 {
		t.Errorf("Expected 5 processed records after drain, got %d", got)
	}
}
