package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// report loader.
type Metrics struct {
	Polls             *prometheus.CounterVec // labels: outcome={success,fetch_error}
	ReportsTracked    prometheus.Gauge
	ReportsNew        prometheus.Counter
	ParseErrors       prometheus.Counter
	ReportsSuppressed prometheus.Counter
	EventsStored      prometheus.Counter
	StoreErrors       prometheus.Counter
	PollDuration      prometheus.Histogram
	PollerRunning     prometheus.Gauge
}

// NewMetrics creates and registers all loader metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		Polls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "sn_loader",
			Name:      "polls_total",
			Help:      "Poll cycles by outcome.",
		}, []string{"outcome"}),
		ReportsTracked: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "sn_loader",
			Name:      "reports_tracked",
			Help:      "Distinct normalized reports in the latest feed body.",
		}),
		ReportsNew: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "sn_loader",
			Name:      "reports_new_total",
			Help:      "Total reports not seen on the previous poll.",
		}),
		ParseErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "sn_loader",
			Name:      "parse_errors_total",
			Help:      "Total report lines that failed to parse.",
		}),
		ReportsSuppressed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "sn_loader",
			Name:      "reports_suppressed_total",
			Help:      "Total low-value Other/None reports deliberately dropped.",
		}),
		EventsStored: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "sn_loader",
			Name:      "events_stored_total",
			Help:      "Total events handed to the downstream store.",
		}),
		StoreErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "sn_loader",
			Name:      "store_errors_total",
			Help:      "Total failed store puts.",
		}),
		PollDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "sn_loader",
			Name:      "poll_duration_seconds",
			Help:      "Duration of a complete fetch-filter-parse-store cycle.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10},
		}),
		PollerRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "sn_loader",
			Name:      "poller_running",
			Help:      "1 when the poll loop is active, 0 when shut down.",
		}),
	}

	prometheus.MustRegister(
		m.Polls,
		m.ReportsTracked,
		m.ReportsNew,
		m.ParseErrors,
		m.ReportsSuppressed,
		m.EventsStored,
		m.StoreErrors,
		m.PollDuration,
		m.PollerRunning,
	)

	return m
}

// NewMetricsForTesting creates Metrics without registering them, avoiding
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		Polls:             prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "sn_loader", Name: "polls_total"}, []string{"outcome"}),
		ReportsTracked:    prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "sn_loader", Name: "reports_tracked"}),
		ReportsNew:        prometheus.NewCounter(prometheus.CounterOpts{Namespace: "sn_loader", Name: "reports_new_total"}),
		ParseErrors:       prometheus.NewCounter(prometheus.CounterOpts{Namespace: "sn_loader", Name: "parse_errors_total"}),
		ReportsSuppressed: prometheus.NewCounter(prometheus.CounterOpts{Namespace: "sn_loader", Name: "reports_suppressed_total"}),
		EventsStored:      prometheus.NewCounter(prometheus.CounterOpts{Namespace: "sn_loader", Name: "events_stored_total"}),
		StoreErrors:       prometheus.NewCounter(prometheus.CounterOpts{Namespace: "sn_loader", Name: "store_errors_total"}),
		PollDuration:      prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "sn_loader", Name: "poll_duration_seconds"}),
		PollerRunning:     prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "sn_loader", Name: "poller_running"}),
	}
}
