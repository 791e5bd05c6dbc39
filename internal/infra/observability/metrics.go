package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	dto "github.com/prometheus/client_model/go"
)

// Metrics holds all Prometheus metrics for the back office.
type Metrics struct {
	// Registry is the Prometheus registry that owns these metrics.
	// Exposed so the /metrics endpoint can use it.
	Registry *prometheus.Registry

	requestDuration   *prometheus.HistogramVec
	externalErrors    *prometheus.CounterVec
	cacheHits         *prometheus.CounterVec
	cacheMisses       *prometheus.CounterVec
	invoicesGenerated *prometheus.CounterVec
}

// NewMetrics creates a dedicated Prometheus registry and registers all
// application metrics in it. Using a private registry avoids "duplicate
// collector" panics when NewMetrics is called more than once (e.g. in tests).
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		Registry: reg,

		requestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "radio_request_duration_seconds",
				Help:    "Duration of requests by operation.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		externalErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "radio_external_errors_total",
				Help: "Total errors from the data service by entity.",
			},
			[]string{"entity"},
		),
		cacheHits: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "radio_cache_hits_total",
				Help: "Total cache hits.",
			},
			[]string{"cache"},
		),
		cacheMisses: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "radio_cache_misses_total",
				Help: "Total cache misses.",
			},
			[]string{"cache"},
		),
		invoicesGenerated: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "radio_invoices_generated_total",
				Help: "Invoices written during contract invoice runs.",
			},
			[]string{"result"},
		),
	}
}

// RecordRequestDuration records the duration of an operation.
func (m *Metrics) RecordRequestDuration(operation string, d time.Duration) {
	m.requestDuration.WithLabelValues(operation).Observe(d.Seconds())
}

// IncrExternalError increments the external error counter.
func (m *Metrics) IncrExternalError(entity string) {
	m.externalErrors.WithLabelValues(entity).Inc()
}

// IncrCacheHit increments the cache hit counter.
func (m *Metrics) IncrCacheHit(cache string) {
	m.cacheHits.WithLabelValues(cache).Inc()
}

// IncrCacheMiss increments the cache miss counter.
func (m *Metrics) IncrCacheMiss(cache string) {
	m.cacheMisses.WithLabelValues(cache).Inc()
}

// RecordInvoiceRun records the outcome counts of a contract invoice run.
func (m *Metrics) RecordInvoiceRun(succeeded, failed int) {
	m.invoicesGenerated.WithLabelValues("ok").Add(float64(succeeded))
	m.invoicesGenerated.WithLabelValues("error").Add(float64(failed))
}

// InvoiceRunTotals returns the cumulative ok/error invoice-run counters
// reported by the readiness payload.
func (m *Metrics) InvoiceRunTotals() (ok, failed float64) {
	return getCounterValue(m.invoicesGenerated, "ok"),
		getCounterValue(m.invoicesGenerated, "error")
}

// getCounterValue extracts the current float64 value from a CounterVec for a given label.
func getCounterValue(cv *prometheus.CounterVec, label string) float64 {
	counter := cv.WithLabelValues(label)
	m := &dto.Metric{}
	if err := counter.(prometheus.Metric).Write(m); err != nil {
		return 0
	}
	if m.Counter != nil && m.Counter.Value != nil {
		return *m.Counter.Value
	}
	return 0
}
