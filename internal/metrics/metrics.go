package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the service collectors on a private registry so several
// instances can coexist in tests.
type Metrics struct {
	reg *prometheus.Registry

	requests        *prometheus.CounterVec
	synthesis       *prometheus.HistogramVec
	fallbacks       *prometheus.CounterVec
	cleanupFailures prometheus.Counter
}

func New() *Metrics {
	m := &Metrics{
		reg: prometheus.NewRegistry(),

		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tts_requests_total",
				Help: "TTS requests by response status.",
			},
			[]string{"status"}, // ok, invalid, failed
		),

		synthesis: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "tts_synthesis_seconds",
				Help:    "Duration of single synthesis attempts.",
				Buckets: []float64{.1, .25, .5, 1, 2, 5, 10, 30},
			},
			[]string{"lang", "result"},
		),

		fallbacks: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tts_fallbacks_total",
				Help: "Retries in the default language, by the language that failed.",
			},
			[]string{"from"},
		),

		cleanupFailures: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "tts_cleanup_failures_total",
				Help: "Temporary audio files that could not be removed.",
			},
		),
	}

	m.reg.MustRegister(
		m.requests,
		m.synthesis,
		m.fallbacks,
		m.cleanupFailures,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

func (m *Metrics) ObserveSynthesis(lang string, ok bool, d time.Duration) {
	result := "success"
	if !ok {
		result = "failed"
	}
	m.synthesis.WithLabelValues(lang, result).Observe(d.Seconds())
}

func (m *Metrics) Fallback(from string) {
	m.fallbacks.WithLabelValues(from).Inc()
}

func (m *Metrics) CleanupFailed() {
	m.cleanupFailures.Inc()
}

// RecordRequest counts a finished /api/tts call.
func (m *Metrics) RecordRequest(status string) {
	m.requests.WithLabelValues(status).Inc()
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{Registry: m.reg})
}
