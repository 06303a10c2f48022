package pollws

import (
	"crypto/tls"
	"io"
	"log/slog"
	"net/http"
	"time"

	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// Default timeouts and buffer sizes.
const (
	// DefaultHandshakeTimeout bounds the opening handshake on the native
	// backend.
	DefaultHandshakeTimeout = 20 * time.Second

	// DefaultWriteTimeout bounds a single frame write on the native backend.
	DefaultWriteTimeout = 10 * time.Second

	// DefaultCloseTimeout bounds how long the native backend waits for the
	// peer's close frame after an orderly close request. It bounds backend
	// teardown only, never a caller-visible API call.
	DefaultCloseTimeout = 5 * time.Second

	// DefaultSendBuffer is the capacity of the outgoing message channel on
	// the native backend.
	DefaultSendBuffer = 64
)

// options holds the resolved dial configuration.
type options struct {
	handshakeTimeout time.Duration
	writeTimeout     time.Duration
	closeTimeout     time.Duration
	sendBuffer       int

	header       http.Header
	subprotocols []string
	tlsConfig    *tls.Config

	logger  *slog.Logger
	metrics *Metrics
	tracer  trace.TracerProvider
}

// Option configures a Dial call.
type Option func(*options)

// defaultOptions returns the default dial configuration. The default logger
// discards everything; the default tracer provider is a no-op.
func defaultOptions() options {
	return options{
		handshakeTimeout: DefaultHandshakeTimeout,
		writeTimeout:     DefaultWriteTimeout,
		closeTimeout:     DefaultCloseTimeout,
		sendBuffer:       DefaultSendBuffer,
		logger:           slog.New(slog.NewTextHandler(io.Discard, nil)),
		tracer:           noop.NewTracerProvider(),
	}
}

// WithHandshakeTimeout sets the opening handshake timeout (native backend
// only; the browser's host object applies its own connect policy).
func WithHandshakeTimeout(d time.Duration) Option {
	return func(o *options) {
		o.handshakeTimeout = d
	}
}

// WithWriteTimeout sets the per-write deadline on the native backend.
func WithWriteTimeout(d time.Duration) Option {
	return func(o *options) {
		o.writeTimeout = d
	}
}

// WithCloseTimeout sets how long the native backend waits for the peer's
// close frame before tearing the socket down anyway.
func WithCloseTimeout(d time.Duration) Option {
	return func(o *options) {
		o.closeTimeout = d
	}
}

// WithSendBuffer sets the outgoing channel capacity on the native backend.
func WithSendBuffer(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.sendBuffer = n
		}
	}
}

// WithHeader sets additional HTTP headers for the opening handshake request.
// Native backend only; browsers do not allow custom handshake headers.
func WithHeader(h http.Header) Option {
	return func(o *options) {
		o.header = h
	}
}

// WithSubprotocols advertises the given subprotocols during the handshake.
func WithSubprotocols(protocols ...string) Option {
	return func(o *options) {
		o.subprotocols = protocols
	}
}

// WithTLSConfig sets the TLS configuration for wss URLs. Native backend
// only; the browser owns TLS for its host WebSocket object.
func WithTLSConfig(cfg *tls.Config) Option {
	return func(o *options) {
		o.tlsConfig = cfg
	}
}

// WithLogger sets the structured logger. By default all logging is
// discarded; the connection never requires a logger to function.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithMetrics attaches a Metrics instance to the connection. A single
// Metrics may be shared across any number of connections.
func WithMetrics(m *Metrics) Option {
	return func(o *options) {
		o.metrics = m
	}
}

// WithTracerProvider sets the OpenTelemetry tracer provider used to record
// a span covering the connection's lifetime. Defaults to a no-op provider.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(o *options) {
		if tp != nil {
			o.tracer = tp
		}
	}
}
