package pollws

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsConfig configures a Metrics instance.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "pollws").
	Namespace string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Registry is the Prometheus registry to register with.
	// Default: prometheus.DefaultRegisterer.
	Registry prometheus.Registerer
}

// MetricsOption configures NewMetrics.
type MetricsOption func(*MetricsConfig)

// WithMetricsNamespace sets the metrics namespace.
func WithMetricsNamespace(namespace string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Namespace = namespace
	}
}

// WithMetricsConstLabels sets constant labels for all metrics.
func WithMetricsConstLabels(labels prometheus.Labels) MetricsOption {
	return func(c *MetricsConfig) {
		c.ConstLabels = labels
	}
}

// WithMetricsRegistry sets the Prometheus registry.
func WithMetricsRegistry(registry prometheus.Registerer) MetricsOption {
	return func(c *MetricsConfig) {
		c.Registry = registry
	}
}

// Metrics holds Prometheus instrumentation for connections. One instance may
// be shared across connections; attach it with WithMetrics. All methods are
// nil-safe so call sites never branch on whether metrics are configured.
type Metrics struct {
	dials           prometheus.Counter
	connects        prometheus.Counter
	failures        prometheus.Counter
	closes          prometheus.Counter
	openConnections prometheus.Gauge
	messagesSent    prometheus.Counter
	messagesRecv    prometheus.Counter
	bytesSent       prometheus.Counter
	bytesRecv       prometheus.Counter
	queuedEvents    prometheus.Gauge
}

// NewMetrics creates and registers a Metrics instance.
func NewMetrics(opts ...MetricsOption) *Metrics {
	config := MetricsConfig{
		Namespace: "pollws",
		Registry:  prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(&config)
	}

	factory := promauto.With(config.Registry)

	return &Metrics{
		dials: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Name:        "dials_total",
			Help:        "Total number of connection attempts",
			ConstLabels: config.ConstLabels,
		}),

		connects: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Name:        "connects_total",
			Help:        "Total number of completed opening handshakes",
			ConstLabels: config.ConstLabels,
		}),

		failures: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Name:        "failures_total",
			Help:        "Total number of connections terminated by a failure",
			ConstLabels: config.ConstLabels,
		}),

		closes: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Name:        "closes_total",
			Help:        "Total number of connections terminated by a close",
			ConstLabels: config.ConstLabels,
		}),

		openConnections: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Name:        "open_connections",
			Help:        "Number of connections currently open",
			ConstLabels: config.ConstLabels,
		}),

		messagesSent: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Name:        "messages_sent_total",
			Help:        "Total number of messages accepted into the send path",
			ConstLabels: config.ConstLabels,
		}),

		messagesRecv: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Name:        "messages_received_total",
			Help:        "Total number of messages received",
			ConstLabels: config.ConstLabels,
		}),

		bytesSent: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Name:        "sent_bytes_total",
			Help:        "Total payload bytes accepted into the send path",
			ConstLabels: config.ConstLabels,
		}),

		bytesRecv: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Name:        "received_bytes_total",
			Help:        "Total payload bytes received",
			ConstLabels: config.ConstLabels,
		}),

		queuedEvents: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Name:        "queued_events",
			Help:        "Events buffered and not yet drained by Poll; grows when a caller stops polling",
			ConstLabels: config.ConstLabels,
		}),
	}
}

func (m *Metrics) dialStarted() {
	if m == nil {
		return
	}
	m.dials.Inc()
}

func (m *Metrics) connOpened() {
	if m == nil {
		return
	}
	m.connects.Inc()
	m.openConnections.Inc()
}

// connTerminated records the terminal event for a connection. wasOpen
// reports whether the handshake had completed, so the open gauge only moves
// for connections that were counted open.
func (m *Metrics) connTerminated(failed, wasOpen bool) {
	if m == nil {
		return
	}
	if failed {
		m.failures.Inc()
	} else {
		m.closes.Inc()
	}
	if wasOpen {
		m.openConnections.Dec()
	}
}

func (m *Metrics) messageSent(bytes int) {
	if m == nil {
		return
	}
	m.messagesSent.Inc()
	m.bytesSent.Add(float64(bytes))
}

func (m *Metrics) messageReceived(bytes int) {
	if m == nil {
		return
	}
	m.messagesRecv.Inc()
	m.bytesRecv.Add(float64(bytes))
}

func (m *Metrics) eventQueued() {
	if m == nil {
		return
	}
	m.queuedEvents.Inc()
}

func (m *Metrics) eventsDrained(n int) {
	if m == nil || n == 0 {
		return
	}
	m.queuedEvents.Sub(float64(n))
}
