package dataset

import (
	"context"
	"strconv"

	"jobguardian/internal/etl"
)

// ESGQuery selects rows of the ESG human-development dataset.
type ESGQuery struct {
	Company string
	Year    *int // exact match on the report year when set
	Limit   int
}

// ESGHR looks up salary and female-manager figures for a company.
func (s *Service) ESGHR(ctx context.Context, q ESGQuery) (*QueryResult, error) {
	ts := []etl.Transformer{s.nameFilter(esgCompanyName, q.Company)}
	if q.Year != nil {
		ts = append(ts, &etl.FieldEqualsTransform{Aliases: esgYear, Value: strconv.Itoa(*q.Year)})
	}

	records, err := s.run(ctx, ToolESGHR, s.sources.ESG, ts, effectiveLimit(q.Limit))
	if err != nil {
		return nil, err
	}

	items := make([]ResultItem, 0, len(records))
	for _, rec := range records {
		items = append(items, project(rec, esgFields))
	}

	return newResult(items, s.sources.ESG, s.now(), map[string]any{
		"query":         q.Company,
		"year":          q.Year,
		"partial_match": s.policy.PartialMatch,
	}), nil
}
