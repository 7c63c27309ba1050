package novel

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"github.com/inkforge/novelkit/httpclient"
	"github.com/inkforge/novelkit/jobs"
	"github.com/inkforge/novelkit/logger"
	"github.com/inkforge/novelkit/stream"
	"github.com/inkforge/novelkit/validation"
)

const headerRequestID = "X-Request-ID"

// Client talks to the platform's AI task endpoints.
type Client struct {
	cfg  Config
	http *httpclient.Client
	jobs *jobs.Client
	log  *logger.Logger
}

// New creates a platform client. Non-streaming requests retry on
// retryable failures; streams and polls never do.
func New(cfg Config) (*Client, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	hcfg := httpclient.Config{
		BaseURL: cfg.BaseURL,
		Timeout: cfg.Timeout,
		Retry:   httpclient.DefaultRetryConfig(),
	}
	if cfg.APIKey != "" {
		hcfg.Auth = httpclient.BearerAuth(cfg.APIKey)
	}
	hc, err := httpclient.New(hcfg)
	if err != nil {
		return nil, err
	}

	return &Client{
		cfg:  cfg,
		http: hc,
		jobs: jobs.NewClient(hc),
		log:  logger.WithComponent("novel"),
	}, nil
}

// requestHeaders returns per-call headers with a fresh request id.
func (c *Client) requestHeaders() map[string]string {
	return map[string]string{headerRequestID: uuid.NewString()}
}

// PolishStream streams a polish run, delivering text through
// cb.OnChunk as the model produces it. It blocks until the stream
// terminates and returns the settled outcome; for polish the outcome
// content is the full polished text.
func (c *Client) PolishStream(ctx context.Context, req PolishRequest, cb stream.Callbacks) (*stream.Outcome, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	p := stream.NewPoster(c.http, "/api/polish/stream", req, cb,
		stream.WithPosterHeaders(c.requestHeaders()))
	return p.Connect(ctx)
}

// GenerateStream streams a generation run for a project.
func (c *Client) GenerateStream(ctx context.Context, req GenerateRequest, cb stream.Callbacks) (*stream.Outcome, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	p := stream.NewPoster(c.http, "/api/generate/stream", req, cb,
		stream.WithPosterHeaders(c.requestHeaders()))
	return p.Connect(ctx)
}

// NewTaskWatcher returns a reader attached to a running task's event
// stream. The caller drives it with Connect and may tear it down early
// with Close.
func (c *Client) NewTaskWatcher(taskID string, cb stream.Callbacks) (*stream.Reader, error) {
	if err := validation.New().Required("task_id", taskID).Err(); err != nil {
		return nil, err
	}
	return stream.NewReader(c.http, "/api/tasks/"+taskID+"/stream", cb,
		stream.WithReaderHeaders(c.requestHeaders())), nil
}

// WatchTask attaches to a running task's event stream and blocks until
// the task terminates.
func (c *Client) WatchTask(ctx context.Context, taskID string, cb stream.Callbacks) (*stream.Outcome, error) {
	r, err := c.NewTaskWatcher(taskID, cb)
	if err != nil {
		return nil, err
	}
	return r.Connect(ctx)
}

// AnalyzeChapter triggers a chapter analysis job and polls it to a
// terminal state. On completion the derived analysis is refetched
// best-effort into Result.Final; a refetch failure leaves the job
// completed and is recorded on the result.
func (c *Client) AnalyzeChapter(ctx context.Context, chapterID int, opts *jobs.Options) (*jobs.Result, error) {
	if err := validation.New().Positive("chapter_id", chapterID).Err(); err != nil {
		return nil, err
	}

	base := fmt.Sprintf("/api/chapters/%d", chapterID)
	jobID, err := c.jobs.Trigger(ctx, base+"/analyze", nil)
	if err != nil {
		return nil, err
	}
	c.log.Info("analysis job started", logger.Fields(
		logger.FieldJobID, jobID, "chapter_id", chapterID))

	poller := jobs.NewPoller(
		c.jobs.StatusFunc(func(jobID string) string {
			return base + "/analyze/status/" + jobID
		}),
		jobs.WithRefetch(c.jobs.RefetchFunc(func(string) string {
			return base + "/analysis"
		})),
	)

	pollOpts := c.cfg.jobOptions()
	if opts != nil {
		pollOpts = *opts
	}
	return poller.Poll(ctx, jobID, pollOpts)
}

// DecodeAnalysis unpacks a completed analysis result's refetched
// payload.
func DecodeAnalysis(res *jobs.Result) (*AnalysisReport, error) {
	if len(res.Final) == 0 {
		return nil, fmt.Errorf("novel: result has no analysis payload")
	}
	var report AnalysisReport
	if err := json.Unmarshal(res.Final, &report); err != nil {
		return nil, fmt.Errorf("novel: decode analysis: %w", err)
	}
	return &report, nil
}

// Polish runs a synchronous polish request. Unlike PolishStream it
// waits for the whole rewrite and reports word counts.
func (c *Client) Polish(ctx context.Context, req PolishRequest) (*PolishResponse, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	resp, err := c.http.Do(ctx, httpclient.Request{
		Method:  http.MethodPost,
		Path:    "/api/polish",
		Body:    req,
		Headers: c.requestHeaders(),
	})
	if err != nil {
		return nil, err
	}
	var out PolishResponse
	if err := resp.DecodeJSON(&out); err != nil {
		return nil, fmt.Errorf("novel: decode polish response: %w", err)
	}
	return &out, nil
}
