package pollws

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"sync"
	"sync/atomic"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/pollws/pollws/internal/eventq"
)

// tracerName identifies this library to the tracer provider.
const tracerName = "github.com/pollws/pollws"

// Conn is a WebSocket client connection with a polling API.
//
// A Conn is created with Dial and driven by periodically calling Poll, which
// never blocks and returns all events buffered since the previous call. Poll
// is the only synchronization point: State reflects the last transition
// observed through it and may go briefly stale between polls.
//
// Dial, Send, Poll, Close and State are safe for concurrent use, but the
// intended shape is a single caller polling once per frame.
type Conn struct {
	url    string
	opts   options
	logger *slog.Logger

	queue   *eventq.Queue[Event]
	backend backend
	span    trace.Span

	// terminated flips when the backend produces its terminal event;
	// anything delivered afterwards is dropped.
	terminated atomic.Bool
	connected  atomic.Bool

	mu    sync.Mutex
	state State
	done  bool // terminal event observed through Poll
}

// Dial opens a WebSocket connection to the given ws:// or wss:// URL and
// returns immediately; the handshake completes in the background and its
// outcome arrives as a Connected or Failed event through Poll.
//
// Dial returns ErrInvalidURL if the URL is unparsable, has no host, or uses
// a scheme other than ws or wss. It performs no network I/O of its own.
func Dial(rawURL string, opts ...Option) (*Conn, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}
	if u.Scheme != "ws" && u.Scheme != "wss" {
		return nil, fmt.Errorf("%w: scheme %q", ErrInvalidURL, u.Scheme)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("%w: missing host", ErrInvalidURL)
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	c := &Conn{
		url:    u.String(),
		opts:   o,
		logger: o.logger.With("component", "pollws", "url", u.String()),
		queue:  eventq.New[Event](),
		state:  StateConnecting,
	}

	o.metrics.dialStarted()

	_, c.span = o.tracer.Tracer(tracerName).Start(context.Background(),
		"pollws.connection",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("url", c.url),
			attribute.String("scheme", u.Scheme),
		))

	c.backend = newPlatformBackend(c)
	c.backend.start()
	return c, nil
}

// Send hands a message to the backend's send path. It returns ErrNotOpen
// unless the connection state is Open, and does not guarantee delivery —
// only that the message was accepted into the outgoing path while the
// connection was still believed open. Messages sent while Open are written
// to the wire in the order Send was called.
func (c *Conn) Send(msg Message) error {
	c.mu.Lock()
	if c.state != StateOpen {
		c.mu.Unlock()
		return ErrNotOpen
	}
	c.mu.Unlock()

	if err := c.backend.send(msg); err != nil {
		return err
	}
	c.opts.metrics.messageSent(len(msg.Data))
	return nil
}

// Poll drains and returns all events buffered since the previous call, in
// the order they were produced. It never blocks and returns nil when
// nothing happened. Poll applies any drained state transition before
// returning, so State reflects the latest drained event immediately
// afterwards. Once a terminal event has been returned, Poll returns nil
// forever.
func (c *Conn) Poll() []Event {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.done {
		return nil
	}

	events := c.queue.Drain()
	c.opts.metrics.eventsDrained(len(events))

	for _, ev := range events {
		switch ev.Type {
		case EventConnected:
			// Close may already have been requested while connecting; the
			// Closing state then wins over Open.
			if c.state == StateConnecting {
				c.state = StateOpen
			}
		case EventClosed, EventFailed:
			c.state = StateClosed
			c.done = true
			c.endSpan(ev)
		}
	}
	return events
}

// Close requests an orderly shutdown and returns immediately. It is
// idempotent: closing an already closing or closed connection is a no-op.
// The terminal event is not guaranteed to be available when Close returns;
// the caller keeps polling until it appears.
func (c *Conn) Close() {
	c.mu.Lock()
	if c.state == StateClosing || c.state == StateClosed {
		c.mu.Unlock()
		return
	}
	c.state = StateClosing
	c.mu.Unlock()

	c.logger.Debug("close requested")
	c.backend.requestClose()
}

// State returns the connection state as of the last Poll (or Close). It
// does not drain the queue, so it can lag actual network activity until the
// next Poll.
func (c *Conn) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// URL returns the URL the connection was dialed with.
func (c *Conn) URL() string {
	return c.url
}

// deliver is the single entry point for backend-produced events. It
// enforces the terminal contract: at most one terminal event is ever
// queued, and nothing produced after it is.
func (c *Conn) deliver(ev Event) {
	if ev.Terminal() {
		if c.terminated.Swap(true) {
			return
		}
		c.opts.metrics.connTerminated(ev.Type == EventFailed, c.connected.Load())
	} else {
		if c.terminated.Load() {
			return
		}
		switch ev.Type {
		case EventConnected:
			c.connected.Store(true)
			c.opts.metrics.connOpened()
		case EventReceived:
			c.opts.metrics.messageReceived(len(ev.Message.Data))
		}
	}

	c.queue.Push(ev)
	c.opts.metrics.eventQueued()
}

// endSpan finishes the connection span when the terminal event is drained.
// Callers hold c.mu.
func (c *Conn) endSpan(ev Event) {
	if ev.Type == EventFailed {
		if ev.Err != nil {
			c.span.RecordError(ev.Err)
		}
		c.span.SetStatus(codes.Error, "connection failed")
	} else {
		c.span.SetAttributes(
			attribute.Int("close_code", ev.Code),
			attribute.Bool("clean_close", ev.Clean),
		)
		c.span.SetStatus(codes.Ok, "")
	}
	c.span.End()
}
