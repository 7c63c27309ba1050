package stream

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/inkforge/novelkit/httpclient"
	"github.com/inkforge/novelkit/logger"
	"github.com/inkforge/novelkit/sse"
)

// newStreamServer serves one scripted event stream per request.
func newStreamServer(t *testing.T, script func(w *sse.Writer)) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sse.PrepareHeaders(w)
		script(sse.NewWriter(w))
	}))
}

func newClient(t *testing.T, baseURL string) *httpclient.Client {
	t.Helper()
	c, err := httpclient.New(httpclient.Config{BaseURL: baseURL, Timeout: 5 * time.Second})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	return c
}

// recorder collects callback invocations for assertions.
type recorder struct {
	progress     []string
	chunks       []string
	results      []string
	errs         []string
	completes    int
	connectErrs  int
	lastErrCode  int
	lastProgress int
}

func (rec *recorder) callbacks() Callbacks {
	return Callbacks{
		OnProgress: func(message string, progress int, status ProgressStatus) {
			rec.progress = append(rec.progress, message)
			rec.lastProgress = progress
		},
		OnChunk: func(content string) {
			rec.chunks = append(rec.chunks, content)
		},
		OnResult: func(data json.RawMessage) {
			rec.results = append(rec.results, string(data))
		},
		OnError: func(message string, code int) {
			rec.errs = append(rec.errs, message)
			rec.lastErrCode = code
		},
		OnComplete: func() {
			rec.completes++
		},
		OnConnectionError: func(err error) {
			rec.connectErrs++
		},
	}
}

func quiet() *logger.Logger { return logger.Nop() }
