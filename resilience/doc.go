// Package resilience provides retry with exponential backoff for
// non-streaming requests.
//
// Retry is deliberately not applied to streams or to the job poll loop:
// a stream settles exactly once, and the poller's schedule already
// absorbs transient failures on its own interval.
//
//	cfg := resilience.DefaultRetryConfig()
//	resp, err := resilience.Retry(ctx, cfg, func() (*Response, error) {
//	    return client.Do(ctx, req)
//	})
package resilience
