package stream

import (
	"encoding/json"
	"fmt"
)

// MessageType discriminates the payloads carried by a stream.
type MessageType string

const (
	// TypeProgress is a human-readable progress update.
	TypeProgress MessageType = "progress"
	// TypeChunk is an incremental fragment of generated text.
	TypeChunk MessageType = "chunk"
	// TypeResult is the single structured result of the operation.
	TypeResult MessageType = "result"
	// TypeError is a terminal server-side failure.
	TypeError MessageType = "error"
	// TypeDone is the terminal success marker.
	TypeDone MessageType = "done"
)

// ProgressStatus tags a progress update.
type ProgressStatus string

const (
	StatusProcessing ProgressStatus = "processing"
	StatusSuccess    ProgressStatus = "success"
	StatusError      ProgressStatus = "error"
	StatusWarning    ProgressStatus = "warning"
)

// Message is one decoded protocol message. Which fields are meaningful
// depends on Type.
type Message struct {
	Type MessageType `json:"type"`

	// progress
	Message  string         `json:"message,omitempty"`
	Progress int            `json:"progress,omitempty"`
	Status   ProgressStatus `json:"status,omitempty"`

	// chunk
	Content string `json:"content,omitempty"`

	// result
	Data json.RawMessage `json:"data,omitempty"`

	// error
	Error string `json:"error,omitempty"`
	Code  int    `json:"code,omitempty"`
}

// Terminal reports whether no further messages follow this one.
func (m *Message) Terminal() bool {
	return m.Type == TypeDone || m.Type == TypeError
}

// ParseMessage decodes a frame payload into a Message. An unknown or
// missing type discriminator is a parse error; callers treat parse errors
// as malformed frames (logged and skipped, never fatal).
func ParseMessage(data []byte) (*Message, error) {
	var m Message
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("stream: decode message: %w", err)
	}
	switch m.Type {
	case TypeProgress, TypeChunk, TypeResult, TypeError, TypeDone:
		return &m, nil
	default:
		return nil, fmt.Errorf("stream: unknown message type %q", m.Type)
	}
}
