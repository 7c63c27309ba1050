// Package httpclient provides the HTTP plumbing shared by the novelkit
// SDK: base URL resolution, authentication headers, timeouts, retry for
// non-streaming requests, and streaming responses for the event protocol.
//
// # Basic Usage
//
//	client, err := httpclient.New(httpclient.Config{
//	    BaseURL: "https://api.example.com",
//	    Timeout: 30 * time.Second,
//	    Auth:    httpclient.BearerAuth("my-token"),
//	})
//
//	resp, err := client.Do(ctx, httpclient.Request{
//	    Method: http.MethodGet,
//	    Path:   "/api/projects/42",
//	})
//
// # Streaming
//
// DoStream returns the raw response body without applying the client
// timeout; cancellation is driven by the request context. Retry never
// applies to streams.
package httpclient
