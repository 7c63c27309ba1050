// Package sse implements the Server-Sent Events wire format used by the
// streaming task-progress protocol.
//
// Frames are UTF-8 text terminated by a blank line. Within a frame,
// "data:" lines carry the payload, ":"-prefixed lines are comments, and
// "event:"/"id:" lines carry optional metadata.
//
// The package offers three views of the format:
//
//   - Decoder: push-style incremental decoder. Feed it raw byte chunks as
//     they arrive off the network; it buffers partial frames (and partial
//     multi-byte characters) across calls and emits only complete events.
//   - Reader: pull-style reader over an io.ReadCloser, built on Decoder.
//   - Writer: the emitting half, for backends and test servers.
//
// # Incremental decoding
//
//	dec := sse.NewDecoder()
//	for {
//	    n, err := body.Read(buf)
//	    for _, ev := range dec.Feed(buf[:n]) {
//	        handle(ev)
//	    }
//	    if err != nil {
//	        break
//	    }
//	}
package sse
