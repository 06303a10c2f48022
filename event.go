package pollws

import "fmt"

// EventType identifies the kind of connection event.
type EventType int

const (
	// EventConnected signals that the opening handshake completed and the
	// connection is usable. Exactly one Connected event precedes any
	// Received event.
	EventConnected EventType = iota + 1

	// EventReceived carries a data message from the peer.
	EventReceived

	// EventClosed signals that the connection closed. Clean reports whether
	// the close was negotiated via the close handshake.
	EventClosed

	// EventFailed signals that the connection failed: handshake error,
	// read/write error, or protocol violation.
	EventFailed
)

// String returns the string representation of the event type.
func (t EventType) String() string {
	switch t {
	case EventConnected:
		return "Connected"
	case EventReceived:
		return "Received"
	case EventClosed:
		return "Closed"
	case EventFailed:
		return "Failed"
	default:
		return fmt.Sprintf("EventType(%d)", int(t))
	}
}

// Event is a discrete, immutable notification produced by a backend and
// observed by the caller through Poll.
//
// Which fields are meaningful depends on Type:
//
//   - EventConnected: no fields
//   - EventReceived: Message
//   - EventClosed: Code, Reason, Clean
//   - EventFailed: Err
//
// At most one terminal event (Closed or Failed) is ever produced per
// connection; after it, no further events appear.
type Event struct {
	Type EventType

	// Message is the received payload (EventReceived).
	Message Message

	// Code is the close status code (EventClosed), e.g. 1000 for a normal
	// closure or 1006 for an abnormal one.
	Code int

	// Reason is the close reason reported by the peer (EventClosed).
	Reason string

	// Clean reports whether the close completed via the close handshake
	// (EventClosed).
	Clean bool

	// Err is the failure cause (EventFailed).
	Err error
}

// Terminal reports whether the event is a terminal event (Closed or Failed).
// After a terminal event has been observed, the connection produces nothing
// further.
func (e Event) Terminal() bool {
	return e.Type == EventClosed || e.Type == EventFailed
}

// String returns a short, human-readable description of the event.
func (e Event) String() string {
	switch e.Type {
	case EventReceived:
		return fmt.Sprintf("Received(%s, %d bytes)", e.Message.Type, len(e.Message.Data))
	case EventClosed:
		return fmt.Sprintf("Closed(code=%d, reason=%q, clean=%v)", e.Code, e.Reason, e.Clean)
	case EventFailed:
		return fmt.Sprintf("Failed(%v)", e.Err)
	default:
		return e.Type.String()
	}
}
