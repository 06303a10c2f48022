//go:build js && wasm

package pollws

import (
	"errors"
	"fmt"
	"sync"
	"syscall/js"
)

// newPlatformBackend selects the host WebSocket binding on browser builds.
func newPlatformBackend(c *Conn) backend {
	return newBrowserBackend(c)
}

// closeNormalClosure is the RFC 6455 status code for a normal closure.
const closeNormalClosure = 1000

// browserBackend drives a host-provided WebSocket object through its four
// callbacks. There is no dedicated goroutine: the host's cooperative event
// loop invokes the callbacks, which push events into the same queue the
// native backend uses, so the Poll contract is identical on both platforms.
type browserBackend struct {
	c *Conn

	ws    js.Value
	funcs []js.Func

	closeOnce sync.Once

	mu       sync.Mutex
	released bool
}

func newBrowserBackend(c *Conn) *browserBackend {
	return &browserBackend{c: c}
}

// start constructs the host WebSocket object and registers the callbacks.
// The constructor returns immediately; the handshake outcome arrives through
// the open or error callback.
func (b *browserBackend) start() {
	ctor := js.Global().Get("WebSocket")
	if ctor.IsUndefined() {
		b.c.deliver(Event{Type: EventFailed, Err: errors.New("pollws: host provides no WebSocket object")})
		return
	}

	ws, err := b.construct(ctor)
	if err != nil {
		b.c.deliver(Event{Type: EventFailed, Err: err})
		return
	}
	b.ws = ws
	b.ws.Set("binaryType", "arraybuffer")
	b.register()
}

// construct invokes the WebSocket constructor, converting the exception it
// throws on malformed URLs or blocked ports into an error.
func (b *browserBackend) construct(ctor js.Value) (ws js.Value, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("pollws: new WebSocket: %v", r)
		}
	}()

	if protocols := b.c.opts.subprotocols; len(protocols) > 0 {
		arg := make([]any, len(protocols))
		for i, p := range protocols {
			arg[i] = p
		}
		return ctor.New(b.c.url, arg), nil
	}
	return ctor.New(b.c.url), nil
}

func (b *browserBackend) register() {
	onOpen := js.FuncOf(func(this js.Value, args []js.Value) any {
		b.c.deliver(Event{Type: EventConnected})
		return nil
	})

	onMessage := js.FuncOf(func(this js.Value, args []js.Value) any {
		if len(args) == 0 {
			return nil
		}
		b.c.deliver(Event{
			Type:    EventReceived,
			Message: decodeHostMessage(args[0].Get("data")),
		})
		return nil
	})

	onError := js.FuncOf(func(this js.Value, args []js.Value) any {
		// Browsers attach no diagnostic detail to the error event. The
		// close event that follows it is suppressed by the terminal guard.
		b.c.deliver(Event{Type: EventFailed, Err: errors.New("pollws: websocket error")})
		b.teardown()
		return nil
	})

	onClose := js.FuncOf(func(this js.Value, args []js.Value) any {
		ev := Event{Type: EventClosed, Code: closeNormalClosure}
		if len(args) > 0 {
			e := args[0]
			ev.Code = e.Get("code").Int()
			ev.Reason = e.Get("reason").String()
			ev.Clean = e.Get("wasClean").Bool()
		}
		b.c.deliver(ev)
		b.teardown()
		return nil
	})

	b.funcs = []js.Func{onOpen, onMessage, onError, onClose}
	b.ws.Set("onopen", onOpen)
	b.ws.Set("onmessage", onMessage)
	b.ws.Set("onerror", onError)
	b.ws.Set("onclose", onClose)
}

// decodeHostMessage converts the host's message payload. With binaryType set
// to "arraybuffer", the data is either a string or an ArrayBuffer.
func decodeHostMessage(data js.Value) Message {
	if data.Type() == js.TypeString {
		return Text(data.String())
	}
	view := js.Global().Get("Uint8Array").New(data)
	buf := make([]byte, view.Length())
	js.CopyBytesToGo(buf, view)
	return Binary(buf)
}

// send writes directly and synchronously through the host object; there is
// no blocking concern in the cooperative model, so no writer goroutine
// exists on this backend.
func (b *browserBackend) send(msg Message) (err error) {
	defer func() {
		// The host throws InvalidStateError when the socket left the OPEN
		// state between the caller's Send check and this call.
		if r := recover(); r != nil {
			err = ErrNotOpen
		}
	}()

	switch msg.Type {
	case MessageBinary:
		arr := js.Global().Get("Uint8Array").New(len(msg.Data))
		js.CopyBytesToJS(arr, msg.Data)
		b.ws.Call("send", arr)
	default:
		b.ws.Call("send", string(msg.Data))
	}
	return nil
}

// requestClose starts the host's close handshake. The close callback still
// fires asynchronously afterwards and produces the terminal event, matching
// native semantics.
func (b *browserBackend) requestClose() {
	b.closeOnce.Do(func() {
		if b.ws.IsUndefined() {
			return
		}
		defer func() { recover() }()
		b.ws.Call("close", closeNormalClosure)
	})
}

// teardown deregisters the callbacks and releases their js.Func wrappers so
// no host reference to the connection outlives the terminal event. Release
// happens off the invoking callback's stack.
func (b *browserBackend) teardown() {
	b.mu.Lock()
	if b.released {
		b.mu.Unlock()
		return
	}
	b.released = true
	funcs := b.funcs
	b.funcs = nil
	b.mu.Unlock()

	for _, slot := range []string{"onopen", "onmessage", "onerror", "onclose"} {
		b.ws.Set(slot, js.Null())
	}
	go func() {
		for _, f := range funcs {
			f.Release()
		}
	}()
}
