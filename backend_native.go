//go:build !js

package pollws

import (
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// newPlatformBackend selects the native socket driver on non-browser builds.
func newPlatformBackend(c *Conn) backend {
	return newNativeBackend(c)
}

// nativeBackend drives a real socket through gorilla/websocket. One
// goroutine performs the blocking dial and then the blocking read loop; a
// second goroutine drains the outgoing channel so writes preserve the
// caller's send order without ever blocking the caller on socket I/O.
type nativeBackend struct {
	c *Conn

	out        chan Message
	closeReq   chan struct{}
	readerDone chan struct{}
	closeOnce  sync.Once
}

func newNativeBackend(c *Conn) *nativeBackend {
	return &nativeBackend{
		c:          c,
		out:        make(chan Message, c.opts.sendBuffer),
		closeReq:   make(chan struct{}),
		readerDone: make(chan struct{}),
	}
}

func (b *nativeBackend) start() {
	go b.run()
}

func (b *nativeBackend) run() {
	o := b.c.opts
	dialer := &websocket.Dialer{
		Proxy:            http.ProxyFromEnvironment,
		HandshakeTimeout: o.handshakeTimeout,
		TLSClientConfig:  o.tlsConfig,
		Subprotocols:     o.subprotocols,
	}

	ws, resp, err := dialer.Dial(b.c.url, o.header)
	if err != nil {
		if resp != nil {
			resp.Body.Close()
		}
		b.c.logger.Debug("dial failed", "error", err)
		close(b.readerDone)
		b.c.deliver(Event{Type: EventFailed, Err: err})
		return
	}

	b.c.logger.Debug("handshake complete", "subprotocol", ws.Subprotocol())
	b.c.deliver(Event{Type: EventConnected})

	go b.writeLoop(ws)
	b.readLoop(ws)
}

// readLoop blocks on the socket until it yields a terminal condition. Each
// data frame becomes a Received event; gorilla's default control handlers
// answer pings transparently.
func (b *nativeBackend) readLoop(ws *websocket.Conn) {
	defer close(b.readerDone)
	defer ws.Close()

	for {
		mt, data, err := ws.ReadMessage()
		if err != nil {
			b.c.deliver(b.terminalFor(err))
			return
		}
		switch mt {
		case websocket.TextMessage:
			b.c.deliver(Event{Type: EventReceived, Message: Message{Type: MessageText, Data: data}})
		case websocket.BinaryMessage:
			b.c.deliver(Event{Type: EventReceived, Message: Message{Type: MessageBinary, Data: data}})
		}
	}
}

// terminalFor maps a read error to the connection's single terminal event.
// A close frame from the peer is a clean close; anything else after a close
// request is an unclean close (the peer never finished the handshake);
// everything else is a failure.
func (b *nativeBackend) terminalFor(err error) Event {
	var ce *websocket.CloseError
	if errors.As(err, &ce) {
		return Event{Type: EventClosed, Code: ce.Code, Reason: ce.Text, Clean: true}
	}
	if b.closeRequested() {
		return Event{Type: EventClosed, Code: websocket.CloseAbnormalClosure, Clean: false}
	}
	return Event{Type: EventFailed, Err: err}
}

// writeLoop drains the outgoing channel onto the wire. On a close request
// it sends the close frame, bounds the wait for the peer's reply, and stops
// writing; the read loop observes the handshake outcome and produces the
// terminal event.
func (b *nativeBackend) writeLoop(ws *websocket.Conn) {
	o := b.c.opts

	for {
		select {
		case msg := <-b.out:
			ws.SetWriteDeadline(time.Now().Add(o.writeTimeout))
			if err := ws.WriteMessage(int(msg.Type), msg.Data); err != nil {
				b.c.logger.Debug("write failed", "error", err)
				ws.Close() // wakes the reader, which reports the terminal event
				return
			}

		case <-b.closeReq:
			deadline := time.Now().Add(o.writeTimeout)
			frame := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
			if err := ws.WriteControl(websocket.CloseMessage, frame, deadline); err != nil {
				b.c.logger.Debug("close frame failed", "error", err)
				ws.Close()
				return
			}
			// Best-effort handshake: if the peer never replies, tear the
			// socket down once the close timeout elapses.
			timer := time.AfterFunc(o.closeTimeout, func() { ws.Close() })
			go func() {
				<-b.readerDone
				timer.Stop()
			}()
			return

		case <-b.readerDone:
			return
		}
	}
}

func (b *nativeBackend) send(msg Message) error {
	// Shutdown wins over a ready buffer slot.
	select {
	case <-b.closeReq:
		return ErrNotOpen
	case <-b.readerDone:
		return ErrNotOpen
	default:
	}

	select {
	case b.out <- msg:
		return nil
	case <-b.closeReq:
		return ErrNotOpen
	case <-b.readerDone:
		return ErrNotOpen
	}
}

func (b *nativeBackend) requestClose() {
	b.closeOnce.Do(func() {
		close(b.closeReq)
	})
}

func (b *nativeBackend) closeRequested() bool {
	select {
	case <-b.closeReq:
		return true
	default:
		return false
	}
}
