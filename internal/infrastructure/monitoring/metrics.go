package monitoring

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	registry *prometheus.Registry

	// Resolver metrics
	Resolutions  *prometheus.CounterVec
	DecodeErrors prometheus.Counter

	// Selector metrics
	Sessions      *prometheus.CounterVec
	Repairs       prometheus.Counter
	CommitErrors  prometheus.Counter
	ActiveViews   prometheus.Gauge
	ConfigReadErr *prometheus.CounterVec

	// Companion notifications
	Notifications *prometheus.CounterVec
}

// NewMetrics creates a metrics collector on its own registry
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,

		Resolutions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "home_background_resolutions_total",
				Help: "Background resolutions by the source that produced the thumbnail",
			},
			[]string{"source"},
		),
		DecodeErrors: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "home_background_decode_errors_total",
				Help: "Background images that failed to decode",
			},
		),

		Sessions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "home_views_sessions_total",
				Help: "Picker sessions by outcome",
			},
			[]string{"outcome"},
		),
		Repairs: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "home_views_repairs_total",
				Help: "Sessions that found no active view and fell back to the first",
			},
		),
		CommitErrors: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "home_views_commit_errors_total",
				Help: "Active view writes that failed",
			},
		),
		ActiveViews: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "home_views_active",
				Help: "Number of views active after the last commit",
			},
		),
		ConfigReadErr: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "home_config_read_errors_total",
				Help: "Configuration reads that failed",
			},
			[]string{"key_kind"},
		),

		Notifications: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "home_notifications_total",
				Help: "Outbound calls to the desktop process",
			},
			[]string{"method", "status"},
		),
	}
}

// Registry exposes the underlying registry for gathering
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler returns the exposition handler for /metrics
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveResolution records the source a background came from
func (m *Metrics) ObserveResolution(source string) {
	if m == nil {
		return
	}
	m.Resolutions.WithLabelValues(source).Inc()
}

// IncDecodeErrors counts one failed decode
func (m *Metrics) IncDecodeErrors() {
	if m == nil {
		return
	}
	m.DecodeErrors.Inc()
}

// IncConfigReadErrors counts one failed read for a kind of key ("active", "background")
func (m *Metrics) IncConfigReadErrors(kind string) {
	if m == nil {
		return
	}
	m.ConfigReadErr.WithLabelValues(kind).Inc()
}

// IncRepairs counts one in-memory repair of an empty active set
func (m *Metrics) IncRepairs() {
	if m == nil {
		return
	}
	m.Repairs.Inc()
}

// ObserveSession records how a picker session ended
func (m *Metrics) ObserveSession(outcome string) {
	if m == nil {
		return
	}
	m.Sessions.WithLabelValues(outcome).Inc()
}

// ObserveCommit records a commit write and the size of the written set
func (m *Metrics) ObserveCommit(active int, err error) {
	if m == nil {
		return
	}
	if err != nil {
		m.CommitErrors.Inc()
		return
	}
	m.ActiveViews.Set(float64(active))
}

// ObserveNotification records an outbound desktop call
func (m *Metrics) ObserveNotification(method string, err error) {
	if m == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.Notifications.WithLabelValues(method, status).Inc()
}
