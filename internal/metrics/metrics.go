// Package metrics exposes Prometheus counters for the signal engine.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Evaluation results used as the "result" label.
const (
	ResultAlert      = "alert"
	ResultNoChange   = "no_change"
	ResultFetchError = "fetch_error"
	ResultNoCandles  = "no_candles"
)

// Metrics holds all collectors on a private registry so several engines
// (tests) can coexist in one process.
type Metrics struct {
	Registry *prometheus.Registry

	Ticks             prometheus.Counter
	TickDuration      prometheus.Histogram
	Evaluations       *prometheus.CounterVec // labels: result
	FetchErrors       *prometheus.CounterVec // labels: source
	DegenerateSamples prometheus.Counter
	Alerts            *prometheus.CounterVec // labels: direction
	NotifyErrors      prometheus.Counter
	JournalErrors     prometheus.Counter
}

// NewMetrics registers and returns all metrics.
func NewMetrics() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		Ticks: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "signalbot_ticks_total",
			Help: "Completed polling ticks",
		}),
		TickDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "signalbot_tick_duration_seconds",
			Help:    "Wall time of one tick over all symbols",
			Buckets: prometheus.ExponentialBuckets(0.05, 2, 10),
		}),
		Evaluations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "signalbot_evaluations_total",
			Help: "Per-symbol evaluations by outcome",
		}, []string{"result"}),
		FetchErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "signalbot_fetch_errors_total",
			Help: "Upstream fetch failures by source",
		}, []string{"source"}),
		DegenerateSamples: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "signalbot_degenerate_samples_total",
			Help: "Last-bar oscillator samples with a zero denominator",
		}),
		Alerts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "signalbot_alerts_total",
			Help: "Emitted transitions by direction",
		}, []string{"direction"}),
		NotifyErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "signalbot_notify_errors_total",
			Help: "Failed alert deliveries",
		}),
		JournalErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "signalbot_journal_errors_total",
			Help: "Failed alert journal writes",
		}),
	}

	m.Registry.MustRegister(
		m.Ticks,
		m.TickDuration,
		m.Evaluations,
		m.FetchErrors,
		m.DegenerateSamples,
		m.Alerts,
		m.NotifyErrors,
		m.JournalErrors,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})
}
