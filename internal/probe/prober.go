// Package probe periodically checks that every configured dataset can still
// be fetched and parsed. Results are reported, never served as query data.
package probe

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"golang.org/x/sync/errgroup"

	"jobguardian/internal/etl"
	"jobguardian/internal/metrics"
)

// Target is one dataset to probe.
type Target struct {
	Name     string `json:"name"`
	Location string `json:"url"`
}

// SourceStatus is the outcome for one target.
type SourceStatus struct {
	Name      string        `json:"name"`
	URL       string        `json:"url"`
	OK        bool          `json:"ok"`
	Rows      int           `json:"rows"`
	Columns   int           `json:"columns"`
	Duration  time.Duration `json:"duration_ns"`
	Error     string        `json:"error,omitempty"`
	CheckedAt time.Time     `json:"checked_at"`
}

// Report is one probe run across all targets.
type Report struct {
	RunID      string         `json:"run_id"`
	StartedAt  time.Time      `json:"started_at"`
	FinishedAt time.Time      `json:"finished_at"`
	Sources    []SourceStatus `json:"sources"`
}

// ErrAlreadyRunning is returned by Run while a previous run is in flight.
var ErrAlreadyRunning = errors.New("probe already running")

const runKey = "probe"

// Prober fetches every target through the same Fetcher the queries use.
type Prober struct {
	fetcher etl.Fetcher
	targets []Target
	metrics *metrics.Metrics
	log     *slog.Logger

	guard runGuard
	sched *cron.Cron

	mu   sync.RWMutex
	last *Report
}

// New creates a Prober. m may be nil.
func New(fetcher etl.Fetcher, targets []Target, m *metrics.Metrics) *Prober {
	return &Prober{
		fetcher: fetcher,
		targets: targets,
		metrics: m,
		log:     slog.Default().With("component", "probe"),
	}
}

// Run probes all targets concurrently and stores the report. A target that
// fails does not stop the others; the returned error is only about the run
// itself.
func (p *Prober) Run(ctx context.Context) (*Report, error) {
	if !p.guard.TryLock(runKey) {
		return nil, ErrAlreadyRunning
	}
	defer p.guard.Unlock(runKey)

	report := &Report{RunID: uuid.NewString(), StartedAt: time.Now().UTC()}
	statuses := make([]SourceStatus, len(p.targets))

	g, gctx := errgroup.WithContext(ctx)
	for i, t := range p.targets {
		g.Go(func() error {
			statuses[i] = p.check(gctx, t)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("probe run: %w", err)
	}

	report.Sources = statuses
	report.FinishedAt = time.Now().UTC()

	p.mu.Lock()
	p.last = report
	p.mu.Unlock()
	return report, nil
}

func (p *Prober) check(ctx context.Context, t Target) SourceStatus {
	start := time.Now()
	st := SourceStatus{Name: t.Name, URL: t.Location, CheckedAt: start.UTC()}

	records, err := p.fetcher.Fetch(ctx, t.Location)
	st.Duration = time.Since(start)
	if err != nil {
		st.Error = err.Error()
		st.Rows = -1
		p.metrics.SetProbeRows(t.Name, -1)
		p.log.Warn("source probe failed", "source", t.Name, "url", t.Location, "error", err)
		return st
	}

	st.OK = true
	st.Rows = len(records)
	if len(records) > 0 {
		st.Columns = len(records[0])
	}
	p.metrics.SetProbeRows(t.Name, st.Rows)
	p.log.Info("source probe ok", "source", t.Name, "rows", st.Rows, "duration", st.Duration)
	return st
}

// Last returns the most recent report, or nil before the first run.
func (p *Prober) Last() *Report {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.last
}

// Start schedules Run on a standard cron expression. Overlapping ticks are
// skipped.
func (p *Prober) Start(ctx context.Context, schedule string) error {
	c := cron.New()
	_, err := c.AddFunc(schedule, func() {
		if _, err := p.Run(ctx); err != nil {
			p.log.Warn("scheduled probe skipped", "error", err)
		}
	})
	if err != nil {
		return fmt.Errorf("invalid probe schedule %q: %w", schedule, err)
	}
	c.Start()
	p.sched = c
	p.log.Info("source probe scheduled", "schedule", schedule, "targets", len(p.targets))
	return nil
}

// Stop halts the schedule and waits for an in-flight run or ctx. Jobs cron
// has already dispatched are waited for even before they reach the guard.
func (p *Prober) Stop(ctx context.Context) {
	if p.sched != nil {
		select {
		case <-p.sched.Stop().Done():
		case <-ctx.Done():
		}
		p.sched = nil
	}
	p.guard.WaitAll(ctx)
}
