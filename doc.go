// Package pollws is a cross-platform WebSocket client with a polling API.
//
// The same code drives a real socket on native builds (via gorilla/websocket
// and background goroutines) and the host browser's WebSocket object on
// js/wasm builds (via syscall/js callbacks). Both backends feed one event
// queue, so the caller-facing contract is identical: construct a connection
// with Dial, then drain events with Poll once per frame.
//
// Polling trades a little latency for trivial integration with frame-based
// callers such as game loops; this library is not aimed at workloads that
// must react to messages within milliseconds of arrival.
//
// # Usage
//
//	conn, err := pollws.Dial("wss://example.com/socket")
//	if err != nil {
//	    // Invalid URL; network failures arrive as events instead.
//	}
//
//	// Once per frame:
//	for _, ev := range conn.Poll() {
//	    switch ev.Type {
//	    case pollws.EventConnected:
//	        conn.Send(pollws.Text("hello"))
//	    case pollws.EventReceived:
//	        handle(ev.Message)
//	    case pollws.EventClosed, pollws.EventFailed:
//	        // Terminal: no further events will ever arrive.
//	    }
//	}
//
// # Contract
//
//   - Poll never blocks and returns all events buffered since the last call,
//     in production order.
//   - Exactly one Connected event precedes any Received event.
//   - At most one terminal event (Closed or Failed) is ever produced; after
//     it Poll returns nil forever and Send fails with ErrNotOpen.
//   - Close is idempotent and only requests shutdown; keep polling until the
//     terminal event appears.
//   - Send preserves order on the wire and fails synchronously with
//     ErrNotOpen outside the Open state. Local contract violations are
//     synchronous errors; network conditions are only ever events.
//
// Reconnection, retry policy, and server-side sockets are out of scope: a
// caller observing the terminal event simply calls Dial again if it wants a
// new connection.
package pollws
