package stream

import (
	"testing"
)

func TestParseMessage_AllTypes(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		check   func(t *testing.T, m *Message)
	}{
		{
			name:    "progress",
			payload: `{"type":"progress","message":"开始生成...","progress":0,"status":"processing"}`,
			check: func(t *testing.T, m *Message) {
				if m.Type != TypeProgress || m.Message != "开始生成..." || m.Progress != 0 || m.Status != StatusProcessing {
					t.Errorf("parsed = %+v", m)
				}
			},
		},
		{
			name:    "chunk",
			payload: `{"type":"chunk","content":"once upon"}`,
			check: func(t *testing.T, m *Message) {
				if m.Type != TypeChunk || m.Content != "once upon" {
					t.Errorf("parsed = %+v", m)
				}
			},
		},
		{
			name:    "result",
			payload: `{"type":"result","data":{"chapter_id":7}}`,
			check: func(t *testing.T, m *Message) {
				if m.Type != TypeResult || string(m.Data) != `{"chapter_id":7}` {
					t.Errorf("parsed = %+v", m)
				}
			},
		},
		{
			name:    "error",
			payload: `{"type":"error","error":"model overloaded","code":503}`,
			check: func(t *testing.T, m *Message) {
				if m.Type != TypeError || m.Error != "model overloaded" || m.Code != 503 {
					t.Errorf("parsed = %+v", m)
				}
				if !m.Terminal() {
					t.Error("error message must be terminal")
				}
			},
		},
		{
			name:    "done",
			payload: `{"type":"done"}`,
			check: func(t *testing.T, m *Message) {
				if m.Type != TypeDone {
					t.Errorf("parsed = %+v", m)
				}
				if !m.Terminal() {
					t.Error("done message must be terminal")
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := ParseMessage([]byte(tt.payload))
			if err != nil {
				t.Fatalf("parse: %v", err)
			}
			tt.check(t, m)
		})
	}
}

func TestParseMessage_Malformed(t *testing.T) {
	cases := []string{
		`not json`,
		`{"type":"telemetry"}`,
		`{"content":"missing type"}`,
		`{}`,
	}
	for _, payload := range cases {
		if _, err := ParseMessage([]byte(payload)); err == nil {
			t.Errorf("ParseMessage(%q) should fail", payload)
		}
	}
}

func TestMessage_NonTerminalKinds(t *testing.T) {
	for _, typ := range []MessageType{TypeProgress, TypeChunk, TypeResult} {
		m := &Message{Type: typ}
		if m.Terminal() {
			t.Errorf("%s should not be terminal", typ)
		}
	}
}
