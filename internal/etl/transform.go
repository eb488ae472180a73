package etl

import "strconv"

// ── Transformer ────────────────────────────────────────────
// Transformers decide, record by record, what flows from a fetched dataset
// into a result. They are composable: each takes a record, returns a
// (possibly modified) record and whether to keep it.

// Transformer processes a single record.
// Returns (transformed record, keep). If keep is false, the record is dropped.
type Transformer interface {
	Transform(Record) (Record, bool)
}

// TransformerFunc adapts a plain function to the Transformer interface.
type TransformerFunc func(Record) (Record, bool)

func (f TransformerFunc) Transform(r Record) (Record, bool) { return f(r) }

// ── Built-in Transforms ────────────────────────────────────

// FieldEqualsTransform keeps records whose first resolvable alias equals Value.
type FieldEqualsTransform struct {
	Aliases []string
	Value   string
}

func (t *FieldEqualsTransform) Transform(r Record) (Record, bool) {
	v, _ := r.Pick(t.Aliases...)
	return r, v == t.Value
}

// YearAtLeastTransform keeps records whose resolved date starts with a
// four-digit year at or after Since.
type YearAtLeastTransform struct {
	Aliases []string
	Since   int
}

func (t *YearAtLeastTransform) Transform(r Record) (Record, bool) {
	v, _ := r.Pick(t.Aliases...)
	year, ok := LeadingYear(v)
	return r, ok && year >= t.Since
}

// LeadingYear parses the first four characters of s as a year.
func LeadingYear(s string) (int, bool) {
	if len(s) < 4 {
		return 0, false
	}
	prefix := s[:4]
	for i := 0; i < len(prefix); i++ {
		if prefix[i] < '0' || prefix[i] > '9' {
			return 0, false
		}
	}
	y, err := strconv.Atoi(prefix)
	return y, err == nil
}

// ── Helpers ────────────────────────────────────────────────

// ApplyTransformers runs a chain of transformers on a record.
func ApplyTransformers(r Record, ts []Transformer) (Record, bool) {
	for _, t := range ts {
		var keep bool
		r, keep = t.Transform(r)
		if !keep {
			return r, false
		}
	}
	return r, true
}
