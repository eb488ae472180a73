package etl

// ── Record ─────────────────────────────────────────────────
// Common intermediate data format.
// Every source emits Records; the dataset layer filters and projects them.

// Record is a single parsed row: column name → trimmed cell value.
// Cells that were absent in the source row are present with an empty value.
type Record map[string]string

// Pick returns the value of the first alias present in the record with a
// non-empty value. Alias order encodes preference.
func (r Record) Pick(aliases ...string) (string, bool) {
	for _, k := range aliases {
		if v, ok := r[k]; ok && v != "" {
			return v, true
		}
	}
	return "", false
}

// PickPtr is Pick returning nil when nothing resolves, for nullable output fields.
func (r Record) PickPtr(aliases ...string) *string {
	v, ok := r.Pick(aliases...)
	if !ok {
		return nil
	}
	return &v
}

// Columns returns the record's column names in no particular order.
func (r Record) Columns() []string {
	names := make([]string, 0, len(r))
	for k := range r {
		names = append(names, k)
	}
	return names
}
