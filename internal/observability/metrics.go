package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the feed service.
type Metrics struct {
	// Feed fetch metrics.
	FetchRequests *prometheus.CounterVec // labels: outcome={success,error,stale}
	FetchDuration prometheus.Histogram
	FetchInFlight prometheus.Gauge
	Earthquakes   prometheus.Gauge
	Filtered      prometheus.Gauge

	// Preference persistence metrics.
	PreferenceOps *prometheus.CounterVec // labels: op={load,save}, outcome={success,error,empty}

	// Publisher metrics.
	MessagesPublished prometheus.Counter
	PublishErrors     prometheus.Counter
}

// NewMetrics creates and registers all service metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.FetchRequests,
		m.FetchDuration,
		m.FetchInFlight,
		m.Earthquakes,
		m.Filtered,
		m.PreferenceOps,
		m.MessagesPublished,
		m.PublishErrors,
	)
	return m
}

// NewUnregisteredMetrics creates Metrics that are not registered anywhere.
// One-shot commands use it since they never serve /metrics.
func NewUnregisteredMetrics() *Metrics {
	return newMetrics()
}

// NewMetricsForTesting creates Metrics that are not registered anywhere, to
// avoid "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		FetchRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "quake_feed",
			Name:      "fetch_requests_total",
			Help:      "Feed fetches by outcome.",
		}, []string{"outcome"}),
		FetchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "quake_feed",
			Name:      "fetch_duration_seconds",
			Help:      "Duration of a complete feed fetch including decoding.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
		FetchInFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "quake_feed",
			Name:      "fetch_in_flight",
			Help:      "Number of feed fetches currently running.",
		}),
		Earthquakes: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "quake_feed",
			Name:      "earthquakes",
			Help:      "Records held from the last successful fetch.",
		}),
		Filtered: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "quake_feed",
			Name:      "earthquakes_filtered",
			Help:      "Records in the filtered view at its last computation.",
		}),
		PreferenceOps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "quake_feed",
			Name:      "preference_operations_total",
			Help:      "Preference slot reads and writes by outcome.",
		}, []string{"op", "outcome"}),
		MessagesPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "quake_feed",
			Name:      "messages_published_total",
			Help:      "Earthquake records written to the Kafka topic.",
		}),
		PublishErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "quake_feed",
			Name:      "publish_errors_total",
			Help:      "Failed attempts to publish a fetched collection.",
		}),
	}
}
