package pollws

// backend is the platform driver behind a Conn. Exactly one implementation
// is selected at Dial time and never swapped: the native backend drives a
// real socket from dedicated goroutines, the browser backend drives the
// host's WebSocket object from its cooperative callbacks. Both produce
// events into the Conn's queue through Conn.deliver, which enforces the
// at-most-one-terminal-event guarantee for them.
type backend interface {
	// start begins connecting. It never blocks; the handshake outcome
	// arrives later as a Connected or Failed event.
	start()

	// send hands a message to the outgoing path. It returns ErrNotOpen when
	// the backend has already begun shutting down.
	send(Message) error

	// requestClose asks for an orderly shutdown. It is idempotent, returns
	// immediately, and the terminal event arrives later via Poll.
	requestClose()
}
