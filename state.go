package pollws

import "fmt"

// State is the lifecycle state of a connection.
//
// The progression is monotonic: Connecting → Open → Closing → Closed, except
// that Closing may be skipped on abrupt failure (Connecting or Open directly
// to Closed).
type State int

const (
	// StateConnecting means the opening handshake has not yet been observed.
	StateConnecting State = iota + 1

	// StateOpen means the handshake completed and Send is allowed.
	StateOpen

	// StateClosing means Close has been requested and a terminal event is
	// pending.
	StateClosing

	// StateClosed means a terminal event has been observed (or Dial failed
	// before a backend started). The connection is finished.
	StateClosed
)

// String returns the string representation of the state.
func (s State) String() string {
	switch s {
	case StateConnecting:
		return "Connecting"
	case StateOpen:
		return "Open"
	case StateClosing:
		return "Closing"
	case StateClosed:
		return "Closed"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}
