package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveFetch("primary", nil)
		m.IncrementFallbacks()
		m.ObserveQuery("esg_hr", time.Now(), 3, nil)
		m.SetProbeRows("esg_hr", 10)
	})
}

func TestMetrics_Record(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.ObserveFetch("primary", errors.New("reset"))
	m.ObserveFetch("fallback", nil)
	m.IncrementFallbacks()
	m.ObserveQuery("labor_violations", time.Now(), 4, nil)
	m.ObserveQuery("labor_violations", time.Now(), 0, errors.New("fetch"))
	m.SetProbeRows("labor_violations", 1234)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.FetchAttempts.WithLabelValues("primary", "error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.FetchAttempts.WithLabelValues("fallback", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Fallbacks))
	assert.Equal(t, 4.0, testutil.ToFloat64(m.MatchedItems.WithLabelValues("labor_violations")))
	assert.Equal(t, 2, testutil.CollectAndCount(m.QueryDuration))
	assert.Equal(t, 1234.0, testutil.ToFloat64(m.ProbeRows.WithLabelValues("labor_violations")))
}

func TestNew_SeparateRegistries(t *testing.T) {
	assert.NotPanics(t, func() {
		New(prometheus.NewRegistry())
		New(prometheus.NewRegistry())
	})
}
