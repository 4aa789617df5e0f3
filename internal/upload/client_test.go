package upload

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/claude/liftcalc/internal/ingest"
)

func newTestClient(url string) *Client {
	c := NewClient(url, "secret")
	c.backoff = func(int) time.Duration { return time.Millisecond }
	return c
}

// TestSendAlphaCSV verifies the request shape and the decoded result.
func TestSendAlphaCSV(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/v1/import/alpha" {
			t.Errorf("request = %s %s", r.Method, r.URL.Path)
		}
		if got := r.URL.Query().Get("equipment"); got != "Barbell" {
			t.Errorf("equipment = %q, want Barbell", got)
		}
		if got := r.Header.Get("X-API-Key"); got != "secret" {
			t.Errorf("X-API-Key = %q, want secret", got)
		}
		body, _ := io.ReadAll(r.Body)
		if string(body) != "csv data" {
			t.Errorf("body = %q", body)
		}
		json.NewEncoder(w).Encode(ingest.Result{Sessions: 1, SetsReceived: 3, SetsInserted: 3})
	}))
	defer ts.Close()

	res, err := newTestClient(ts.URL).SendAlphaCSV(context.Background(), []byte("csv data"), "Barbell")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.SetsInserted != 3 {
		t.Errorf("SetsInserted = %d, want 3", res.SetsInserted)
	}
}

// TestSendAlphaCSVRetries verifies server errors are retried.
func TestSendAlphaCSVRetries(t *testing.T) {
	var calls atomic.Int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			http.Error(w, "busy", http.StatusServiceUnavailable)
			return
		}
		json.NewEncoder(w).Encode(ingest.Result{SetsInserted: 1})
	}))
	defer ts.Close()

	res, err := newTestClient(ts.URL).SendAlphaCSV(context.Background(), []byte("x"), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.SetsInserted != 1 || calls.Load() != 3 {
		t.Errorf("inserted = %d, calls = %d, want 1, 3", res.SetsInserted, calls.Load())
	}
}

// TestSendAlphaCSVClientError verifies 4xx responses are not retried.
func TestSendAlphaCSVClientError(t *testing.T) {
	var calls atomic.Int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, `{"error":"malformed export"}`, http.StatusBadRequest)
	}))
	defer ts.Close()

	_, err := newTestClient(ts.URL).SendAlphaCSV(context.Background(), []byte("x"), "")
	if err == nil || !strings.Contains(err.Error(), "status 400") {
		t.Errorf("err = %v, want status 400", err)
	}
	if calls.Load() != 1 {
		t.Errorf("calls = %d, want 1", calls.Load())
	}
}

// TestSendAlphaCSVGivesUp verifies the attempt limit.
func TestSendAlphaCSVGivesUp(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusInternalServerError)
	}))
	defer ts.Close()

	_, err := newTestClient(ts.URL).SendAlphaCSV(context.Background(), []byte("x"), "")
	if err == nil || !strings.Contains(err.Error(), "after 3 attempts") {
		t.Errorf("err = %v, want after 3 attempts", err)
	}
}
