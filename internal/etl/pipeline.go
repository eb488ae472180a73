package etl

import (
	"context"
	"time"
)

// ── Pipeline ───────────────────────────────────────────────
// Orchestrates: fetch → transform chain → collect, stopping at Limit.

// Pipeline reads one location and keeps at most Limit transformed records.
type Pipeline struct {
	Fetcher      Fetcher
	Transformers []Transformer
	Limit        int // <= 0 means unlimited
}

// PipelineResult is the outcome of one pipeline run.
type PipelineResult struct {
	Records  []Record
	RowsRead int
	Duration time.Duration
}

// Run fetches location and applies the chain. Fetch errors are returned
// unmodified.
func (p *Pipeline) Run(ctx context.Context, location string) (*PipelineResult, error) {
	start := time.Now()
	rows, err := p.Fetcher.Fetch(ctx, location)
	if err != nil {
		return nil, err
	}

	result := &PipelineResult{}
	for _, rec := range rows {
		result.RowsRead++
		out, keep := ApplyTransformers(rec, p.Transformers)
		if !keep {
			continue
		}
		result.Records = append(result.Records, out)
		if p.Limit > 0 && len(result.Records) >= p.Limit {
			break
		}
	}
	result.Duration = time.Since(start)
	return result, nil
}
