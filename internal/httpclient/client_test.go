package httpclient

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestNextRequestIDIsUUIDv4(t *testing.T) {
	id := nextRequestID()

	parsed, err := uuid.Parse(id)
	if err != nil {
		t.Fatalf("request_id must be a valid UUID, got %q: %v", id, err)
	}
	if parsed.Version() != 4 {
		t.Fatalf("request_id must be UUID v4, got version %d (%q)", parsed.Version(), id)
	}
	if parsed.Variant() != uuid.RFC4122 {
		t.Fatalf("request_id must use RFC4122 variant, got %v (%q)", parsed.Variant(), id)
	}
}

func TestIsRetryable(t *testing.T) {
	if isRetryable(nil, nil) {
		t.Fatalf("nil error must not be retryable")
	}
	if isRetryable(errors.New("boom"), nil) {
		t.Fatalf("plain non-network error must not be retryable")
	}
	if !isRetryable(&HTTPStatusError{StatusCode: http.StatusInternalServerError}, nil) {
		t.Fatalf("500 should be retryable")
	}
	if !isRetryable(&HTTPStatusError{StatusCode: http.StatusTooManyRequests}, nil) {
		t.Fatalf("429 should be retryable")
	}
	if isRetryable(&HTTPStatusError{StatusCode: http.StatusBadRequest}, nil) {
		t.Fatalf("400 must not be retryable")
	}
}

func TestDoJSONSendsDefaultHeaders(t *testing.T) {
	var hits int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		if got := r.Header.Get("Nonce"); got != "nonce-1" {
			t.Errorf("expected Nonce header nonce-1, got %q", got)
		}
		if got := r.Header.Get("Cart-Token"); got != "token-1" {
			t.Errorf("expected Cart-Token header token-1, got %q", got)
		}
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer ts.Close()

	c := New(nil, nil, 1, time.Millisecond, map[string]string{
		"Nonce":      "nonce-1",
		"Cart-Token": "token-1",
	}, nil, false)

	var out map[string]any
	_, _, err := c.DoJSON(context.Background(), http.MethodPost, ts.URL, map[string]any{"ok": true}, &out)
	if err != nil {
		t.Fatalf("do json: %v", err)
	}
	if atomic.LoadInt32(&hits) != 1 {
		t.Fatalf("expected exactly one request, got %d", hits)
	}
}

func TestDoJSONDoesNotRetryClientErrors(t *testing.T) {
	var hits int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		http.Error(w, `{"message":"bad"}`, http.StatusBadRequest)
	}))
	defer ts.Close()

	c := New(nil, nil, 3, time.Millisecond, nil, nil, false)

	_, _, err := c.DoJSON(context.Background(), http.MethodPost, ts.URL, map[string]any{"ok": true}, nil)
	var hs *HTTPStatusError
	if !errors.As(err, &hs) || hs.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 HTTPStatusError, got %v", err)
	}
	if atomic.LoadInt32(&hits) != 1 {
		t.Fatalf("400 must not be retried, got %d attempts", hits)
	}
}
