package pollws

import (
	"errors"
	"strings"
	"testing"
)

func TestEventTerminal(t *testing.T) {
	tests := []struct {
		name string
		ev   Event
		want bool
	}{
		{"connected", Event{Type: EventConnected}, false},
		{"received", Event{Type: EventReceived, Message: Text("x")}, false},
		{"closed", Event{Type: EventClosed, Code: 1000, Clean: true}, true},
		{"failed", Event{Type: EventFailed, Err: errors.New("boom")}, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.ev.Terminal(); got != tc.want {
				t.Errorf("Terminal() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestEventTypeString(t *testing.T) {
	tests := []struct {
		et   EventType
		want string
	}{
		{EventConnected, "Connected"},
		{EventReceived, "Received"},
		{EventClosed, "Closed"},
		{EventFailed, "Failed"},
		{EventType(0), "EventType(0)"},
	}

	for _, tc := range tests {
		if got := tc.et.String(); got != tc.want {
			t.Errorf("EventType(%d).String() = %q, want %q", int(tc.et), got, tc.want)
		}
	}
}

func TestEventString(t *testing.T) {
	closed := Event{Type: EventClosed, Code: 1001, Reason: "going away", Clean: true}
	if got := closed.String(); !strings.Contains(got, "1001") || !strings.Contains(got, "going away") {
		t.Errorf("Closed event String() = %q, want code and reason included", got)
	}

	failed := Event{Type: EventFailed, Err: errors.New("dial refused")}
	if got := failed.String(); !strings.Contains(got, "dial refused") {
		t.Errorf("Failed event String() = %q, want cause included", got)
	}

	recv := Event{Type: EventReceived, Message: Binary([]byte{1, 2, 3})}
	if got := recv.String(); !strings.Contains(got, "3 bytes") {
		t.Errorf("Received event String() = %q, want payload size included", got)
	}
}
