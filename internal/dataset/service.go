// Package dataset implements the company lookups over the published HR and
// violation datasets: fetch the whole export, keep the rows naming the
// requested company, project them onto a stable set of fields.
package dataset

import (
	"context"
	"time"

	"github.com/google/uuid"

	"jobguardian/internal/etl"
	"jobguardian/internal/logging"
	"jobguardian/internal/match"
	"jobguardian/internal/metrics"
)

// Tool names, shared with the MCP layer and the metrics labels.
const (
	ToolESGHR          = "esg_hr"
	ToolLabor          = "labor_violations"
	ToolGenderEquality = "ge_work_equality_violations"
)

// DefaultLimit applies when a query does not ask for a positive limit.
const DefaultLimit = 50

// Sources holds the dataset URLs. Any location the fetcher understands works.
type Sources struct {
	ESG            string
	Labor          string
	GenderEquality string
}

// Service runs the three dataset queries. It holds no mutable state and is
// safe for concurrent use; every call re-fetches its dataset.
type Service struct {
	fetcher etl.Fetcher
	sources Sources
	policy  match.Policy
	metrics *metrics.Metrics
	now     func() time.Time
}

// Option customizes a Service.
type Option func(*Service)

// WithMetrics records query latency and result sizes.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// WithClock overrides the fetched_at clock.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// New creates a Service. policy is fixed for the lifetime of the Service.
func New(fetcher etl.Fetcher, sources Sources, policy match.Policy, opts ...Option) *Service {
	s := &Service{
		fetcher: fetcher,
		sources: sources,
		policy:  policy,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Sources returns the configured dataset locations.
func (s *Service) Sources() Sources { return s.sources }

// Policy returns the match policy every query uses.
func (s *Service) Policy() match.Policy { return s.policy }

// run fetches location and returns at most limit records that pass ts.
func (s *Service) run(ctx context.Context, tool, location string, ts []etl.Transformer, limit int) ([]etl.Record, error) {
	started := time.Now()
	log := logging.WithFields(ctx, "tool", tool, "query_id", uuid.NewString())

	p := &etl.Pipeline{Fetcher: s.fetcher, Transformers: ts, Limit: limit}
	res, err := p.Run(ctx, location)
	if err != nil {
		s.metrics.ObserveQuery(tool, started, 0, err)
		log.Error("dataset query failed", "url", location, "error", err)
		return nil, err
	}

	s.metrics.ObserveQuery(tool, started, len(res.Records), nil)
	log.Info("dataset query finished",
		"rows_read", res.RowsRead,
		"matched", len(res.Records),
		"duration", res.Duration,
	)
	return res.Records, nil
}

// nameFilter drops rows with no resolvable name or a name that does not
// identify company under the service policy.
func (s *Service) nameFilter(aliases []string, company string) etl.Transformer {
	return etl.TransformerFunc(func(r etl.Record) (etl.Record, bool) {
		name, ok := r.Pick(aliases...)
		if !ok {
			return r, false
		}
		return r, match.Matches(name, company, s.policy)
	})
}

func effectiveLimit(limit int) int {
	if limit <= 0 {
		return DefaultLimit
	}
	return limit
}
