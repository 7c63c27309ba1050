package novel

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/inkforge/novelkit/errors"
	"github.com/inkforge/novelkit/jobs"
	"github.com/inkforge/novelkit/sse"
	"github.com/inkforge/novelkit/stream"
)

func newPlatform(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := New(Config{
		BaseURL: srv.URL,
		APIKey:  "test-token",
		Polling: PollingConfig{Interval: time.Millisecond, MaxPolls: 50, Timeout: 5 * time.Second},
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return client
}

func TestNew_InvalidConfig(t *testing.T) {
	if _, err := New(Config{}); err == nil {
		t.Error("New() accepted an empty base URL")
	}
	if _, err := New(Config{BaseURL: "not a url"}); err == nil {
		t.Error("New() accepted a malformed base URL")
	}
}

func TestPolishStream(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/polish/stream", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-token" {
			t.Errorf("Authorization = %q", got)
		}
		if r.Header.Get("X-Request-ID") == "" {
			t.Error("X-Request-ID not set")
		}
		var req PolishRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.OriginalText == "" {
			t.Errorf("request body = %+v (err %v)", req, err)
		}

		sse.PrepareHeaders(w)
		sw := sse.NewWriter(w)
		sw.WriteEvent("message", map[string]any{
			"type": "progress", "message": "正在去味", "progress": 10, "status": "processing",
		})
		sw.WriteEvent("message", map[string]any{"type": "chunk", "content": "夜色"})
		sw.WriteEvent("message", map[string]any{"type": "chunk", "content": "渐深"})
		sw.WriteEvent("message", map[string]any{"type": "done"})
	})

	client := newPlatform(t, mux)

	var chunks []string
	completed := false
	out, err := client.PolishStream(context.Background(),
		PolishRequest{OriginalText: "深邃的夜幕降临了"},
		stream.Callbacks{
			OnChunk:    func(content string) { chunks = append(chunks, content) },
			OnComplete: func() { completed = true },
		})
	if err != nil {
		t.Fatalf("PolishStream() error = %v", err)
	}
	if out.Kind != stream.OutcomeContent || out.Content != "夜色渐深" {
		t.Errorf("outcome = %+v, want accumulated content", out)
	}
	if strings.Join(chunks, "|") != "夜色|渐深" {
		t.Errorf("chunks = %v", chunks)
	}
	if !completed {
		t.Error("OnComplete not fired")
	}
}

func TestPolishStream_ValidatesRequest(t *testing.T) {
	client := newPlatform(t, http.NewServeMux())

	_, err := client.PolishStream(context.Background(), PolishRequest{}, stream.Callbacks{})
	var appErr *errors.AppError
	if !stderrors.As(err, &appErr) || appErr.Code != errors.ErrCodeInvalidInput {
		t.Errorf("error = %v, want invalid-input AppError", err)
	}
}

func TestGenerateStream_Result(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/generate/stream", func(w http.ResponseWriter, r *http.Request) {
		sse.PrepareHeaders(w)
		sw := sse.NewWriter(w)
		sw.WriteEvent("message", map[string]any{"type": "chunk", "content": "草稿"})
		sw.WriteEvent("message", map[string]any{
			"type": "result",
			"data": map[string]any{"name": "林惊羽", "role": "protagonist"},
		})
		sw.WriteEvent("message", map[string]any{"type": "done"})
	})

	client := newPlatform(t, mux)
	out, err := client.GenerateStream(context.Background(),
		GenerateRequest{ProjectID: 7, Prompt: "生成一位少年剑客"},
		stream.Callbacks{})
	if err != nil {
		t.Fatalf("GenerateStream() error = %v", err)
	}
	if out.Kind != stream.OutcomeResult {
		t.Fatalf("outcome kind = %v, want result payload to win", out.Kind)
	}
	var character struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(out.Result, &character); err != nil || character.Name != "林惊羽" {
		t.Errorf("result payload = %s (err %v)", out.Result, err)
	}
}

func TestWatchTask(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/tasks/t-42/stream", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("method = %s, want GET", r.Method)
		}
		sse.PrepareHeaders(w)
		sw := sse.NewWriter(w)
		sw.WriteComment("heartbeat")
		sw.WriteEvent("message", map[string]any{
			"type": "progress", "message": "analyzing", "progress": 80, "status": "processing",
		})
		sw.WriteEvent("message", map[string]any{"type": "done"})
	})

	client := newPlatform(t, mux)
	var progress []int
	out, err := client.WatchTask(context.Background(), "t-42", stream.Callbacks{
		OnProgress: func(message string, pct int, status stream.ProgressStatus) {
			progress = append(progress, pct)
		},
	})
	if err != nil {
		t.Fatalf("WatchTask() error = %v", err)
	}
	if out.Kind != stream.OutcomeEmpty {
		t.Errorf("outcome kind = %v, want empty success", out.Kind)
	}
	if len(progress) != 1 || progress[0] != 80 {
		t.Errorf("progress = %v", progress)
	}

	if _, err := client.WatchTask(context.Background(), "", stream.Callbacks{}); err == nil {
		t.Error("WatchTask() accepted an empty task id")
	}
}

func TestAnalyzeChapter(t *testing.T) {
	polls := 0
	mux := http.NewServeMux()
	mux.HandleFunc("/api/chapters/12/analyze", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"job_id":"an-1"}`)
	})
	mux.HandleFunc("/api/chapters/12/analyze/status/an-1", func(w http.ResponseWriter, r *http.Request) {
		polls++
		w.Header().Set("Content-Type", "application/json")
		if polls < 3 {
			fmt.Fprintf(w, `{"status":"running","progress":%g}`, float64(polls)/3)
		} else {
			fmt.Fprint(w, `{"status":"completed","progress":1.0}`)
		}
	})
	mux.HandleFunc("/api/chapters/12/analysis", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"chapter_id":12,"summary":"主角夜探藏书阁","themes":["成长"],"word_count":3200}`)
	})

	client := newPlatform(t, mux)
	res, err := client.AnalyzeChapter(context.Background(), 12, nil)
	if err != nil {
		t.Fatalf("AnalyzeChapter() error = %v", err)
	}
	if res.Outcome != jobs.OutcomeCompleted || res.Polls != 3 {
		t.Errorf("result = %+v, want completed in 3 polls", res)
	}

	report, err := DecodeAnalysis(res)
	if err != nil {
		t.Fatalf("DecodeAnalysis() error = %v", err)
	}
	if report.Summary != "主角夜探藏书阁" || report.WordCount != 3200 {
		t.Errorf("report = %+v", report)
	}
}

func TestAnalyzeChapter_JobFails(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/chapters/3/analyze", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"job_id":"an-2"}`)
	})
	mux.HandleFunc("/api/chapters/3/analyze/status/an-2", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"status":"failed","error_message":"章节内容为空"}`)
	})

	client := newPlatform(t, mux)
	res, err := client.AnalyzeChapter(context.Background(), 3, nil)
	if err != nil {
		t.Fatalf("AnalyzeChapter() error = %v", err)
	}
	if res.Outcome != jobs.OutcomeFailed || res.ErrorMessage != "章节内容为空" {
		t.Errorf("result = %+v, want failed with server message", res)
	}

	if _, err := client.AnalyzeChapter(context.Background(), 0, nil); err == nil {
		t.Error("AnalyzeChapter() accepted chapter id 0")
	}
}

func TestPolish_Sync(t *testing.T) {
	attempts := 0
	mux := http.NewServeMux()
	mux.HandleFunc("/api/polish", func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts == 1 {
			http.Error(w, `{"detail":"busy"}`, http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(PolishResponse{
			OriginalText:    "深邃的夜幕降临了",
			PolishedText:    "夜深了",
			WordCountBefore: 8,
			WordCountAfter:  3,
		})
	})

	client := newPlatform(t, mux)
	out, err := client.Polish(context.Background(), PolishRequest{OriginalText: "深邃的夜幕降临了"})
	if err != nil {
		t.Fatalf("Polish() error = %v", err)
	}
	if out.PolishedText != "夜深了" || out.WordCountAfter != 3 {
		t.Errorf("response = %+v", out)
	}
	if attempts != 2 {
		t.Errorf("attempts = %d, want retry after 503", attempts)
	}
}

func TestConfig_Defaults(t *testing.T) {
	cfg := Config{BaseURL: "https://writer.example.com"}
	cfg.ApplyDefaults()
	if cfg.Timeout != 30*time.Second {
		t.Errorf("timeout default = %v", cfg.Timeout)
	}
	opts := cfg.jobOptions()
	if opts.Interval != jobs.DefaultInterval || opts.MaxPolls != jobs.DefaultMaxPolls || opts.Timeout != jobs.DefaultTimeout {
		t.Errorf("poll options = %+v, want package defaults", opts)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}
