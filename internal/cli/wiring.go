package cli

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"jobguardian/internal/config"
	"jobguardian/internal/dataset"
	"jobguardian/internal/etl"
	"jobguardian/internal/etl/sources"
	"jobguardian/internal/metrics"
	"jobguardian/internal/probe"
)

// components is everything built from one Config.
type components struct {
	registry *etl.Registry
	datasets *dataset.Service
	prober   *probe.Prober
	metrics  *metrics.Metrics
	gatherer prometheus.Gatherer
}

func build(c *config.Config) *components {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(reg)

	registry := etl.NewRegistry(
		sources.NewHTTPSource(sources.HTTPOptions{
			Timeout:   c.HTTP.Timeout(),
			UserAgent: c.HTTP.UserAgent,
			Metrics:   m,
		}),
		sources.NewCSVFileSource(),
	)

	ds := c.Sources.Datasets()
	svc := dataset.New(registry, ds, c.Match.Policy(), dataset.WithMetrics(m))

	prober := probe.New(registry, []probe.Target{
		{Name: dataset.ToolESGHR, Location: ds.ESG},
		{Name: dataset.ToolLabor, Location: ds.Labor},
		{Name: dataset.ToolGenderEquality, Location: ds.GenderEquality},
	}, m)

	return &components{
		registry: registry,
		datasets: svc,
		prober:   prober,
		metrics:  m,
		gatherer: reg,
	}
}
