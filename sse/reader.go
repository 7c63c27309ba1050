package sse

import "io"

// Reader reads server-sent events from a stream.
type Reader interface {
	// Next returns the next event. Returns io.EOF when the stream ends.
	Next() (*Event, error)
	// Close releases the underlying resources.
	Close() error
}

type reader struct {
	body    io.ReadCloser
	dec     *Decoder
	queue   []Event
	readBuf []byte
	eof     bool
}

// NewReader creates a pull-style SSE reader over a response body.
func NewReader(body io.ReadCloser) Reader {
	return &reader{
		body:    body,
		dec:     NewDecoder(),
		readBuf: make([]byte, 4096),
	}
}

// Next returns the next event, reading more of the body as needed.
func (r *reader) Next() (*Event, error) {
	for {
		if len(r.queue) > 0 {
			ev := r.queue[0]
			r.queue = r.queue[1:]
			return &ev, nil
		}
		if r.eof {
			return nil, io.EOF
		}

		n, err := r.body.Read(r.readBuf)
		if n > 0 {
			r.queue = r.dec.Feed(r.readBuf[:n])
		}
		if err != nil {
			if err != io.EOF {
				return nil, err
			}
			r.eof = true
			// Servers may omit the final blank line.
			if ev, ok := r.dec.Flush(); ok {
				r.queue = append(r.queue, ev)
			}
		}
	}
}

// Close releases the underlying stream.
func (r *reader) Close() error {
	return r.body.Close()
}
