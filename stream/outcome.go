package stream

import "encoding/json"

// OutcomeKind says which form the settled value took.
type OutcomeKind int

const (
	// OutcomeEmpty means the stream completed with neither a result nor
	// any text chunks: a bare success.
	OutcomeEmpty OutcomeKind = iota
	// OutcomeResult means a structured result message was received; it
	// takes precedence over accumulated text.
	OutcomeResult
	// OutcomeContent means no structured result arrived but text chunks
	// did; the outcome wraps their ordered concatenation.
	OutcomeContent
)

// String returns the outcome kind name.
func (k OutcomeKind) String() string {
	switch k {
	case OutcomeResult:
		return "result"
	case OutcomeContent:
		return "content"
	default:
		return "empty"
	}
}

// Outcome is the single settled value of a successfully terminated stream.
type Outcome struct {
	// Kind says which of the fields below is meaningful.
	Kind OutcomeKind
	// Result is the structured result payload (OutcomeResult).
	Result json.RawMessage
	// Content is the accumulated generated text (OutcomeContent). It is
	// also populated alongside a result when both were received.
	Content string
}
