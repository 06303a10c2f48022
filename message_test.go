package pollws

import (
	"bytes"
	"testing"
)

func TestTextConstructor(t *testing.T) {
	m := Text("ping")
	if m.Type != MessageText {
		t.Errorf("Text().Type = %v, want MessageText", m.Type)
	}
	if m.String() != "ping" {
		t.Errorf("Text().String() = %q, want %q", m.String(), "ping")
	}
}

func TestBinaryConstructor(t *testing.T) {
	data := []byte{0x00, 0x01, 0xff}
	m := Binary(data)
	if m.Type != MessageBinary {
		t.Errorf("Binary().Type = %v, want MessageBinary", m.Type)
	}
	if !bytes.Equal(m.Data, data) {
		t.Errorf("Binary().Data = %v, want %v", m.Data, data)
	}
}

func TestMessageTypeString(t *testing.T) {
	tests := []struct {
		mt   MessageType
		want string
	}{
		{MessageText, "Text"},
		{MessageBinary, "Binary"},
		{MessageType(9), "MessageType(9)"},
	}

	for _, tc := range tests {
		if got := tc.mt.String(); got != tc.want {
			t.Errorf("MessageType(%d).String() = %q, want %q", int(tc.mt), got, tc.want)
		}
	}
}
