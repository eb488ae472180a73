package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the server.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	FetchAttempts *prometheus.CounterVec
	Fallbacks     prometheus.Counter
	QueryDuration *prometheus.HistogramVec
	MatchedItems  *prometheus.CounterVec
	ProbeRows     *prometheus.GaugeVec
}

// New creates the metrics and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		FetchAttempts: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "job_guardian_fetch_attempts_total",
			Help: "Dataset fetch attempts by transport and outcome",
		}, []string{"transport", "outcome"}),
		Fallbacks: factory.NewCounter(prometheus.CounterOpts{
			Name: "job_guardian_fetch_fallbacks_total",
			Help: "Fetches that had to retry on the fallback transport",
		}),
		QueryDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "job_guardian_query_duration_seconds",
			Help:    "End-to-end dataset query latency, fetch included",
			Buckets: []float64{0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		}, []string{"tool", "status"}),
		MatchedItems: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "job_guardian_matched_items_total",
			Help: "Result items returned by dataset queries",
		}, []string{"tool"}),
		ProbeRows: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "job_guardian_probe_rows",
			Help: "Rows seen by the last source probe, -1 on failure",
		}, []string{"source"}),
	}
}

// ObserveFetch records one transport attempt.
func (m *Metrics) ObserveFetch(transport string, err error) {
	if m == nil {
		return
	}
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	m.FetchAttempts.WithLabelValues(transport, outcome).Inc()
}

// IncrementFallbacks counts a switch to the fallback transport.
func (m *Metrics) IncrementFallbacks() {
	if m == nil {
		return
	}
	m.Fallbacks.Inc()
}

// ObserveQuery records a finished dataset query.
func (m *Metrics) ObserveQuery(tool string, started time.Time, items int, err error) {
	if m == nil {
		return
	}
	status := "success"
	if err != nil {
		status = "error"
	}
	m.QueryDuration.WithLabelValues(tool, status).Observe(time.Since(started).Seconds())
	m.MatchedItems.WithLabelValues(tool).Add(float64(items))
}

// SetProbeRows records the row count of a probed source.
func (m *Metrics) SetProbeRows(source string, rows int) {
	if m == nil {
		return
	}
	m.ProbeRows.WithLabelValues(source).Set(float64(rows))
}
