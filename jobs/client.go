package jobs

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/inkforge/novelkit/errors"
	"github.com/inkforge/novelkit/httpclient"
)

// Client binds the poll loop to HTTP trigger and status endpoints.
type Client struct {
	http *httpclient.Client
}

// NewClient wraps an HTTP client for job endpoints.
func NewClient(hc *httpclient.Client) *Client {
	return &Client{http: hc}
}

// Trigger starts a job by POSTing body to path and returns the job id
// from the response. The id is read from job_id, task_id or id,
// whichever the server provides first.
func (c *Client) Trigger(ctx context.Context, path string, body any) (string, error) {
	resp, err := c.http.Do(ctx, httpclient.Request{
		Method: http.MethodPost,
		Path:   path,
		Body:   body,
	})
	if err != nil {
		return "", err
	}

	var payload struct {
		JobID  any `json:"job_id"`
		TaskID any `json:"task_id"`
		ID     any `json:"id"`
	}
	if err := resp.DecodeJSON(&payload); err != nil {
		return "", errors.Internal(fmt.Errorf("trigger response was not valid JSON: %w", err))
	}
	for _, candidate := range []any{payload.JobID, payload.TaskID, payload.ID} {
		if id := stringifyID(candidate); id != "" {
			return id, nil
		}
	}
	return "", errors.Internal(fmt.Errorf("trigger response carried no job id"))
}

// Status fetches the job state from path.
func (c *Client) Status(ctx context.Context, path string) (*JobState, error) {
	resp, err := c.http.Do(ctx, httpclient.Request{
		Method: http.MethodGet,
		Path:   path,
	})
	if err != nil {
		return nil, err
	}
	var state JobState
	if err := resp.DecodeJSON(&state); err != nil {
		return nil, fmt.Errorf("decode job state: %w", err)
	}
	return &state, nil
}

// StatusFunc adapts a path builder into the status function a Poller
// consumes.
func (c *Client) StatusFunc(pathFor func(jobID string) string) StatusFunc {
	return func(ctx context.Context, jobID string) (*JobState, error) {
		return c.Status(ctx, pathFor(jobID))
	}
}

// RefetchFunc adapts a path builder into a refetch function returning
// the raw job payload.
func (c *Client) RefetchFunc(pathFor func(jobID string) string) RefetchFunc {
	return func(ctx context.Context, jobID string) (json.RawMessage, error) {
		resp, err := c.http.Do(ctx, httpclient.Request{
			Method: http.MethodGet,
			Path:   pathFor(jobID),
		})
		if err != nil {
			return nil, err
		}
		return json.RawMessage(resp.Body), nil
	}
}

// stringifyID normalizes a job id that servers may send as a string or
// a number.
func stringifyID(v any) string {
	switch id := v.(type) {
	case string:
		return id
	case float64:
		return strconv.FormatFloat(id, 'f', -1, 64)
	case json.Number:
		return id.String()
	default:
		return ""
	}
}
