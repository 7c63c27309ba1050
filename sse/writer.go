package sse

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// Writer is the emitting half of the wire format. It formats events onto an
// underlying writer and flushes after each one when the writer supports it,
// so frames reach the client as soon as they are produced.
type Writer struct {
	w io.Writer
	f http.Flusher
}

// NewWriter creates a Writer. If w implements http.Flusher (as
// http.ResponseWriter does), every frame is flushed on write.
func NewWriter(w io.Writer) *Writer {
	sw := &Writer{w: w}
	if f, ok := w.(http.Flusher); ok {
		sw.f = f
	}
	return sw
}

// PrepareHeaders sets the response headers an event stream requires.
// Call it before the first write.
func PrepareHeaders(w http.ResponseWriter) {
	h := w.Header()
	h.Set("Content-Type", "text/event-stream")
	h.Set("Cache-Control", "no-cache")
	h.Set("Connection", "keep-alive")
	// Disable nginx buffering
	h.Set("X-Accel-Buffering", "no")
}

// WriteEvent writes one frame. data is JSON-encoded unless it is already a
// []byte or string, which are written as-is. name is optional.
func (sw *Writer) WriteEvent(name string, data any) error {
	payload, err := encodeData(data)
	if err != nil {
		return fmt.Errorf("sse: encode event data: %w", err)
	}
	if name != "" {
		if _, err := fmt.Fprintf(sw.w, "event: %s\n", name); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(sw.w, "data: %s\n\n", payload); err != nil {
		return err
	}
	sw.flush()
	return nil
}

// WriteComment writes a comment frame. Comments are ignored by decoders
// and serve as keep-alive heartbeats on long-lived connections.
func (sw *Writer) WriteComment(comment string) error {
	if _, err := fmt.Fprintf(sw.w, ": %s\n\n", comment); err != nil {
		return err
	}
	sw.flush()
	return nil
}

func (sw *Writer) flush() {
	if sw.f != nil {
		sw.f.Flush()
	}
}

func encodeData(data any) ([]byte, error) {
	switch v := data.(type) {
	case []byte:
		return v, nil
	case json.RawMessage:
		return v, nil
	case string:
		return []byte(v), nil
	default:
		return json.Marshal(v)
	}
}
