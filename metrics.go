package active

import "github.com/prometheus/client_golang/prometheus"

// Metrics holds the registry's instrumentation. All methods are nil-safe so
// an uninstrumented registry pays nothing.
type Metrics struct {
	routed  *prometheus.CounterVec
	active  prometheus.Gauge
	expired prometheus.Counter
}

// Event kinds and outcomes used as label values.
const (
	kindComponent = "component"
	kindModal     = "modal"

	outcomeHandled = "handled"
	outcomeIgnored = "ignored"
	outcomeDropped = "dropped"
	outcomeError   = "error"
)

// NewMetrics creates and registers the engine collectors.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		routed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "active",
			Name:      "events_routed_total",
			Help:      "Callback events routed by the registry.",
		}, []string{"kind", "outcome"}),
		active: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "active",
			Name:      "messages",
			Help:      "Currently registered active messages.",
		}),
		expired: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "active",
			Name:      "messages_expired_total",
			Help:      "Active messages torn down by the idle timeout.",
		}),
	}

	reg.MustRegister(m.routed, m.active, m.expired)

	return m
}

func (m *Metrics) observeRouted(kind, outcome string) {
	if m == nil {
		return
	}

	m.routed.WithLabelValues(kind, outcome).Inc()
}

func (m *Metrics) observeActive(delta float64) {
	if m == nil {
		return
	}

	m.active.Add(delta)
}

func (m *Metrics) observeExpired() {
	if m == nil {
		return
	}

	m.expired.Inc()
}
