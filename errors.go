package pollws

import "errors"

// Sentinel errors for local contract violations. Network and protocol
// failures are never returned from API calls; they surface as a Failed or
// Closed event through Poll.
var (
	// ErrInvalidURL is returned by Dial when the URL is unparsable or its
	// scheme is not ws or wss.
	ErrInvalidURL = errors.New("pollws: invalid websocket URL")

	// ErrNotOpen is returned by Send when the connection is not in the Open
	// state.
	ErrNotOpen = errors.New("pollws: connection not open")
)
