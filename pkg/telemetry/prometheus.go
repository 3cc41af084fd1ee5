package telemetry

import (
	"errors"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/vango-dev/navkit/pkg/router"
)

// MetricsConfig configures the Prometheus observer.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "navkit").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for pass duration.
	// Default: prometheus.DefBuckets
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// MetricsOption configures the Prometheus observer.
type MetricsOption func(*MetricsConfig)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Namespace = namespace
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Subsystem = subsystem
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) MetricsOption {
	return func(c *MetricsConfig) {
		c.ConstLabels = labels
	}
}

// WithBuckets sets the histogram buckets.
func WithBuckets(buckets []float64) MetricsOption {
	return func(c *MetricsConfig) {
		c.Buckets = buckets
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) MetricsOption {
	return func(c *MetricsConfig) {
		c.Registry = registry
	}
}

func defaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Namespace: "navkit",
		Buckets:   prometheus.DefBuckets,
		Registry:  prometheus.DefaultRegisterer,
	}
}

// Metrics is a router.Observer that records resolution passes, plus the
// session counters reported by pkg/remote.
type Metrics struct {
	passesTotal    *prometheus.CounterVec
	passDuration   *prometheus.HistogramVec
	redirectsTotal prometheus.Counter
	errorsTotal    *prometheus.CounterVec
	activeSessions prometheus.Gauge
	wsErrors       *prometheus.CounterVec
}

var _ router.Observer = (*Metrics)(nil)

// Prometheus creates an observer that collects Prometheus metrics. The
// metrics are registered with the configured registry, so create one
// Metrics per registry.
//
// Metrics collected:
//   - navkit_passes_total: Counter of resolution passes by outcome
//   - navkit_pass_duration_seconds: Histogram of pass duration by outcome
//   - navkit_redirects_total: Counter of redirects followed
//   - navkit_errors_total: Counter of aborted passes by error kind
//   - navkit_active_sessions: Gauge of connected remote sessions
//   - navkit_websocket_errors_total: Counter of remote WebSocket errors
func Prometheus(opts ...MetricsOption) *Metrics {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}
	factory := promauto.With(config.Registry)

	return &Metrics{
		passesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "passes_total",
			Help:        "Total number of route resolution passes",
			ConstLabels: config.ConstLabels,
		}, []string{"outcome"}),

		passDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "pass_duration_seconds",
			Help:        "Route resolution pass duration in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}, []string{"outcome"}),

		redirectsTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "redirects_total",
			Help:        "Total number of redirects followed",
			ConstLabels: config.ConstLabels,
		}),

		errorsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "errors_total",
			Help:        "Total number of aborted resolution passes",
			ConstLabels: config.ConstLabels,
		}, []string{"kind"}),

		activeSessions: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "active_sessions",
			Help:        "Number of connected remote sessions",
			ConstLabels: config.ConstLabels,
		}),

		wsErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "websocket_errors_total",
			Help:        "Total WebSocket errors by type",
			ConstLabels: config.ConstLabels,
		}, []string{"type"}),
	}
}

// ObservePass implements router.Observer.
func (m *Metrics) ObservePass(p router.Pass) {
	outcome := string(p.Outcome)
	m.passesTotal.WithLabelValues(outcome).Inc()
	m.passDuration.WithLabelValues(outcome).Observe(p.Duration.Seconds())

	switch p.Outcome {
	case router.OutcomeRedirect:
		m.redirectsTotal.Inc()
	case router.OutcomeError:
		m.errorsTotal.WithLabelValues(ErrorKind(p.Err)).Inc()
	}
}

// SessionOpened records a new remote session.
func (m *Metrics) SessionOpened() {
	m.activeSessions.Inc()
}

// SessionClosed records a remote session ending.
func (m *Metrics) SessionClosed() {
	m.activeSessions.Dec()
}

// WebSocketError records a WebSocket error of the given type.
func (m *Metrics) WebSocketError(kind string) {
	m.wsErrors.WithLabelValues(kind).Inc()
}

// ErrorKind returns a low-cardinality label for err.
func ErrorKind(err error) string {
	switch {
	case err == nil:
		return "none"
	case errors.Is(err, router.ErrRedirectLoop):
		return "redirect_loop"
	case errors.Is(err, router.ErrUnknownRoute):
		return "unknown_route"
	case errors.Is(err, router.ErrMissingParam):
		return "missing_param"
	case errors.Is(err, router.ErrInvalidRef):
		return "invalid_ref"
	case strings.Contains(err.Error(), "websocket"):
		return "websocket"
	default:
		return "internal"
	}
}
