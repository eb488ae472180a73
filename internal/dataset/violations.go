package dataset

import (
	"context"

	"jobguardian/internal/etl"
)

// ViolationQuery selects rows of a published violation list.
type ViolationQuery struct {
	Company   string
	SinceYear *int // keep announcements dated in or after this year
	Limit     int
}

// LaborViolations searches the Labor Standards Act violation list.
func (s *Service) LaborViolations(ctx context.Context, q ViolationQuery) (*QueryResult, error) {
	return s.violations(ctx, ToolLabor, s.sources.Labor, q)
}

// GenderEqualityViolations searches the Gender Equality in Employment Act
// violation list.
func (s *Service) GenderEqualityViolations(ctx context.Context, q ViolationQuery) (*QueryResult, error) {
	return s.violations(ctx, ToolGenderEquality, s.sources.GenderEquality, q)
}

// Both lists share one filter: the leading four-digit year of the
// announcement date compared numerically against SinceYear.
func (s *Service) violations(ctx context.Context, tool, location string, q ViolationQuery) (*QueryResult, error) {
	ts := []etl.Transformer{s.nameFilter(violationCompanyName, q.Company)}
	if q.SinceYear != nil {
		ts = append(ts, &etl.YearAtLeastTransform{Aliases: violationDate, Since: *q.SinceYear})
	}

	records, err := s.run(ctx, tool, location, ts, effectiveLimit(q.Limit))
	if err != nil {
		return nil, err
	}

	items := make([]ResultItem, 0, len(records))
	byYear := map[string]int{}
	for _, rec := range records {
		items = append(items, project(rec, violationFields))
		date, _ := rec.Pick(violationDate...)
		if y := yearPrefix(date); y != "" {
			byYear[y]++
		}
	}

	res := newResult(items, location, s.now(), map[string]any{
		"query":         q.Company,
		"since_year":    q.SinceYear,
		"partial_match": s.policy.PartialMatch,
	})
	res.Stats = &Stats{CountByYear: byYear}
	return res, nil
}

// yearPrefix is the first four characters of a date, whatever they are.
func yearPrefix(date string) string {
	r := []rune(date)
	if len(r) > 4 {
		r = r[:4]
	}
	return string(r)
}
