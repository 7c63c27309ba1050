package stream

import "encoding/json"

// Callbacks observe a stream as it progresses. All fields are optional;
// a nil callback simply skips that notification without affecting
// dispatch or the settled outcome.
type Callbacks struct {
	// OnProgress receives progress updates.
	OnProgress func(message string, progress int, status ProgressStatus)
	// OnChunk receives each text fragment in arrival order.
	OnChunk func(content string)
	// OnResult receives the structured result payload, if any.
	OnResult func(data json.RawMessage)
	// OnError receives the server-supplied error message and code when the
	// stream terminates with an error message.
	OnError func(message string, code int)
	// OnComplete fires when the stream terminates successfully.
	OnComplete func()
	// OnConnectionError fires on a network-level failure, before the
	// operation settles with an error. Deliberate Close/Abort never
	// triggers it.
	OnConnectionError func(err error)
}

func (c Callbacks) emitProgress(message string, progress int, status ProgressStatus) {
	if c.OnProgress != nil {
		c.OnProgress(message, progress, status)
	}
}

func (c Callbacks) emitChunk(content string) {
	if c.OnChunk != nil {
		c.OnChunk(content)
	}
}

func (c Callbacks) emitResult(data json.RawMessage) {
	if c.OnResult != nil {
		c.OnResult(data)
	}
}

func (c Callbacks) emitError(message string, code int) {
	if c.OnError != nil {
		c.OnError(message, code)
	}
}

func (c Callbacks) emitComplete() {
	if c.OnComplete != nil {
		c.OnComplete()
	}
}

func (c Callbacks) emitConnectionError(err error) {
	if c.OnConnectionError != nil {
		c.OnConnectionError(err)
	}
}
