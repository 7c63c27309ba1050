package httpclient

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/inkforge/novelkit/errors"
	"github.com/inkforge/novelkit/resilience"
)

func newTestClient(t *testing.T, baseURL string, mutate func(*Config)) *Client {
	t.Helper()
	cfg := Config{BaseURL: baseURL, Timeout: 5 * time.Second}
	if mutate != nil {
		mutate(&cfg)
	}
	c, err := New(cfg)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	return c
}

func TestDo_JSONRoundTrip(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/polish" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("content-type = %q", ct)
		}
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body["original_text"] != "hello" {
			t.Errorf("body = %v", body)
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"polished_text": "hi"})
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, nil)
	resp, err := c.Do(context.Background(), Request{
		Method: http.MethodPost,
		Path:   "/api/polish",
		Body:   map[string]string{"original_text": "hello"},
	})
	if err != nil {
		t.Fatalf("do: %v", err)
	}

	var out map[string]string
	if err := resp.DecodeJSON(&out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out["polished_text"] != "hi" {
		t.Errorf("polished_text = %q", out["polished_text"])
	}
}

func TestDo_AuthAndDefaultHeaders(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer tok" {
			t.Errorf("authorization = %q", got)
		}
		if got := r.Header.Get("X-Client"); got != "novelkit" {
			t.Errorf("x-client = %q", got)
		}
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, func(cfg *Config) {
		cfg.Auth = BearerAuth("tok")
		cfg.Headers = map[string]string{"X-Client": "novelkit"}
	})
	if _, err := c.Do(context.Background(), Request{Method: http.MethodGet, Path: "/"}); err != nil {
		t.Fatalf("do: %v", err)
	}
}

func TestDo_ErrorStatusClassified(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"detail": "章节不存在"}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, nil)
	resp, err := c.Do(context.Background(), Request{Method: http.MethodGet, Path: "/api/chapters/9"})
	if err == nil {
		t.Fatal("expected error for 404")
	}
	appErr, ok := errors.AsAppError(err)
	if !ok {
		t.Fatalf("err %v is not an AppError", err)
	}
	if appErr.Code != errors.ErrCodeNotFound {
		t.Errorf("code = %s", appErr.Code)
	}
	if appErr.Message != "章节不存在" {
		t.Errorf("message = %q, want server detail verbatim", appErr.Message)
	}
	if resp == nil || resp.StatusCode != http.StatusNotFound {
		t.Errorf("response should still carry the status, got %v", resp)
	}
}

func TestDo_RetriesRetryableStatus(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, func(cfg *Config) {
		rc := resilience.DefaultRetryConfig()
		rc.InitialBackoff = time.Millisecond
		rc.RetryIf = errors.IsRetryable
		cfg.Retry = &rc
	})
	resp, err := c.Do(context.Background(), Request{Method: http.MethodGet, Path: "/"})
	if err != nil {
		t.Fatalf("do: %v", err)
	}
	if resp.StatusCode != http.StatusOK || calls != 3 {
		t.Errorf("status %d after %d calls", resp.StatusCode, calls)
	}
}

func TestDoStream_NonOKIsFatal(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"detail": "missing text"}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, nil)
	_, err := c.DoStream(context.Background(), Request{Method: http.MethodPost, Path: "/api/stream"})
	if err == nil {
		t.Fatal("expected error for 400")
	}
	appErr, ok := errors.AsAppError(err)
	if !ok || appErr.Code != errors.ErrCodeInvalidInput {
		t.Errorf("err = %v, want INVALID_INPUT", err)
	}
}

func TestDoStream_DeliveredIncrementally(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f := w.(http.Flusher)
		_, _ = io.WriteString(w, "part1")
		f.Flush()
		_, _ = io.WriteString(w, "part2")
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, nil)
	stream, err := c.DoStream(context.Background(), Request{Method: http.MethodGet, Path: "/"})
	if err != nil {
		t.Fatalf("stream: %v", err)
	}
	defer stream.Close()

	data, err := io.ReadAll(stream.Body)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(data) != "part1part2" {
		t.Errorf("body = %q", data)
	}
}

func TestDoStream_ContextCancellationPreserved(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer srv.Close()
	defer close(release)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	c := newTestClient(t, srv.URL, nil)
	_, err := c.DoStream(ctx, Request{Method: http.MethodGet, Path: "/"})
	if err != context.Canceled {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func TestStreamResponse_CloseIdempotent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "x")
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, nil)
	stream, err := c.DoStream(context.Background(), Request{Method: http.MethodGet, Path: "/"})
	if err != nil {
		t.Fatalf("stream: %v", err)
	}
	if err := stream.Close(); err != nil {
		t.Fatalf("first close: %v", err)
	}
	if err := stream.Close(); err != nil {
		t.Fatalf("second close: %v", err)
	}
}

func TestBuildRequest_PathJoining(t *testing.T) {
	c := newTestClient(t, "http://api.local/", nil)
	req, err := c.buildRequest(context.Background(), Request{Method: http.MethodGet, Path: "/api/x"})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if got := req.URL.String(); got != "http://api.local/api/x" {
		t.Errorf("url = %q", got)
	}

	// Absolute paths bypass the base URL.
	req, err = c.buildRequest(context.Background(), Request{Method: http.MethodGet, Path: "http://other.local/y"})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if got := req.URL.String(); got != "http://other.local/y" {
		t.Errorf("url = %q", got)
	}
}
