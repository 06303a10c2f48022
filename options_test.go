package pollws

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

func TestDefaultOptions(t *testing.T) {
	o := defaultOptions()

	if o.handshakeTimeout != DefaultHandshakeTimeout {
		t.Errorf("handshakeTimeout = %v, want %v", o.handshakeTimeout, DefaultHandshakeTimeout)
	}
	if o.closeTimeout != DefaultCloseTimeout {
		t.Errorf("closeTimeout = %v, want %v", o.closeTimeout, DefaultCloseTimeout)
	}
	if o.sendBuffer != DefaultSendBuffer {
		t.Errorf("sendBuffer = %d, want %d", o.sendBuffer, DefaultSendBuffer)
	}
	if o.logger == nil {
		t.Error("default logger is nil")
	}
	if o.tracer == nil {
		t.Error("default tracer provider is nil")
	}
	if o.metrics != nil {
		t.Error("metrics configured by default")
	}
}

func TestOptionsRejectInvalid(t *testing.T) {
	o := defaultOptions()

	WithLogger(nil)(&o)
	WithTracerProvider(nil)(&o)
	WithSendBuffer(0)(&o)
	WithSendBuffer(-3)(&o)

	if o.logger == nil || o.tracer == nil {
		t.Error("nil logger or tracer provider overwrote the default")
	}
	if o.sendBuffer != DefaultSendBuffer {
		t.Errorf("sendBuffer = %d, want default %d", o.sendBuffer, DefaultSendBuffer)
	}
}

func TestSubprotocolAndHeaderReachHandshake(t *testing.T) {
	var gotProtocol, gotAuth string
	handled := make(chan struct{})

	upgrader := websocket.Upgrader{Subprotocols: []string{"chat"}}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotProtocol = r.Header.Get("Sec-WebSocket-Protocol")
		gotAuth = r.Header.Get("Authorization")
		close(handled)
		ws, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer ws.Close()
		// Keep the socket up so the client sees a normal session.
		ws.ReadMessage()
	}))
	t.Cleanup(srv.Close)

	header := http.Header{}
	header.Set("Authorization", "Bearer token-123")

	c, err := Dial("ws"+strings.TrimPrefix(srv.URL, "http"),
		WithSubprotocols("chat", "superchat"),
		WithHeader(header))
	if err != nil {
		t.Fatalf("Dial() = %v", err)
	}
	defer c.Close()
	pollUntil(t, c, 5*time.Second, isConnected)
	<-handled

	if !strings.Contains(gotProtocol, "chat") {
		t.Errorf("Sec-WebSocket-Protocol = %q, want chat advertised", gotProtocol)
	}
	if gotAuth != "Bearer token-123" {
		t.Errorf("Authorization = %q, want the configured header", gotAuth)
	}
}
