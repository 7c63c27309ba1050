package sse

// Decoder is a push-style incremental SSE frame decoder.
//
// Feed it raw byte chunks in network-arrival order; it maintains a single
// growing buffer, splits out every complete frame, and retains the trailing
// incomplete segment for the next call. The delimiter search is
// byte-oriented and '\n' never occurs inside a multi-byte UTF-8 sequence,
// so a character split across two Feed calls stays buffered intact until
// its remaining bytes arrive — it is never dropped or mis-decoded.
//
// A Decoder is not safe for concurrent use; each stream owns its own.
type Decoder struct {
	buf []byte
}

// NewDecoder creates an empty Decoder.
func NewDecoder() *Decoder {
	return &Decoder{}
}

// Feed appends p to the internal buffer and returns every complete event
// delimited so far, in order. Comment-only frames are dropped.
func (d *Decoder) Feed(p []byte) []Event {
	d.buf = append(d.buf, p...)

	var events []Event
	for {
		idx, end := findFrameEnd(d.buf)
		if idx < 0 {
			break
		}
		frame := string(d.buf[:idx])
		rest := d.buf[end:]
		d.buf = d.buf[:copy(d.buf, rest)]

		if ev, ok := parseFrame(frame); ok {
			events = append(events, ev)
		}
	}
	return events
}

// Flush decodes whatever remains in the buffer as a final frame. Use it at
// end of stream for servers that omit the trailing blank line.
func (d *Decoder) Flush() (Event, bool) {
	if len(d.buf) == 0 {
		return Event{}, false
	}
	frame := string(d.buf)
	d.buf = d.buf[:0]
	return parseFrame(frame)
}

// Buffered reports how many bytes of an incomplete frame are held.
func (d *Decoder) Buffered() int {
	return len(d.buf)
}

// findFrameEnd locates the first blank-line delimiter (two consecutive
// line breaks, tolerating \r\n) in b. It returns the index where the frame
// content ends and the index just past the delimiter, or (-1, 0) if no
// complete frame is buffered yet.
func findFrameEnd(b []byte) (idx, end int) {
	for i := 0; i < len(b); i++ {
		if b[i] != '\n' {
			continue
		}
		j := i + 1
		if j < len(b) && b[j] == '\r' {
			j++
		}
		if j < len(b) && b[j] == '\n' {
			return i, j + 1
		}
	}
	return -1, 0
}
