package stream

import (
	"strings"

	"github.com/inkforge/novelkit/errors"
	"github.com/inkforge/novelkit/logger"
)

// dispatcher is the per-stream state machine shared by Reader and Poster.
// It consumes frame payloads strictly in arrival order, fans them out to
// the callbacks, accumulates chunk text, caches the result payload, and
// tracks the terminal state. Not safe for concurrent use; each stream
// instance owns exactly one.
type dispatcher struct {
	cb  Callbacks
	log *logger.Logger

	content    strings.Builder
	result     []byte
	haveResult bool

	terminated bool
	termErr    error
}

func newDispatcher(cb Callbacks, log *logger.Logger) *dispatcher {
	return &dispatcher{cb: cb, log: log}
}

// dispatch handles one frame payload and reports whether the stream has
// reached a terminal message. Malformed payloads are logged and skipped.
func (d *dispatcher) dispatch(payload string) bool {
	if d.terminated {
		return true
	}

	msg, err := ParseMessage([]byte(payload))
	if err != nil {
		d.log.Warn("skipping malformed frame", logger.Fields(
			logger.FieldError, err.Error(),
			logger.FieldFrame, truncateFrame(payload),
		))
		return false
	}

	switch msg.Type {
	case TypeProgress:
		d.cb.emitProgress(msg.Message, msg.Progress, msg.Status)
	case TypeChunk:
		d.content.WriteString(msg.Content)
		d.cb.emitChunk(msg.Content)
	case TypeResult:
		// Cached so the terminal done message settles with it.
		d.result = msg.Data
		d.haveResult = true
		d.cb.emitResult(msg.Data)
	case TypeError:
		d.terminated = true
		d.termErr = errors.StreamError(msg.Error, msg.Code)
		d.cb.emitError(msg.Error, msg.Code)
	case TypeDone:
		d.terminated = true
		d.cb.emitComplete()
	}
	return d.terminated
}

// settle produces the single completion value once reading has stopped.
// A stream that ended without a terminal message is reported as truncated.
func (d *dispatcher) settle() (*Outcome, error) {
	if d.termErr != nil {
		return nil, d.termErr
	}
	if !d.terminated {
		return nil, errors.StreamTruncated()
	}

	out := &Outcome{Content: d.content.String()}
	switch {
	case d.haveResult:
		out.Kind = OutcomeResult
		out.Result = d.result
	case d.content.Len() > 0:
		out.Kind = OutcomeContent
	default:
		out.Kind = OutcomeEmpty
	}
	return out, nil
}

// truncateFrame keeps log lines bounded when a malformed frame is large.
func truncateFrame(s string) string {
	const max = 200
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
