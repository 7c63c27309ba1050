// Package stream implements the client side of the task-progress
// streaming protocol: a GET-based event-stream reader and a POST-based
// streaming reader, both decoding typed messages and settling a single
// completion outcome.
//
// A stream carries progress updates, incremental text chunks, at most one
// structured result, and exactly one terminal message (done or error).
// Both readers expose the same contract:
//
//   - Connect blocks until the stream terminates and settles exactly once.
//   - Optional callbacks observe messages as they arrive.
//   - Close (Reader) and Abort (Poster) tear the connection down from
//     outside; both are idempotent and safe after natural completion.
//
// The settled outcome follows the protocol's precedence: a result message
// wins, otherwise the accumulated chunk text, otherwise a bare success.
//
//	p := stream.NewPoster(client, "/api/polish/stream", body, stream.Callbacks{
//	    OnChunk: func(s string) { fmt.Print(s) },
//	})
//	outcome, err := p.Connect(ctx)
package stream
