package dataset

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"jobguardian/internal/etl"
)

// FetchedAtLayout is UTC, second precision.
const FetchedAtLayout = "2006-01-02T15:04:05Z"

// QueryResult is the wire contract returned to the tool layer.
// Count always equals len(Items).
type QueryResult struct {
	Items     []ResultItem   `json:"items"`
	Count     int            `json:"count"`
	Stats     *Stats         `json:"stats,omitempty"`
	SourceURL string         `json:"source_url"`
	FetchedAt string         `json:"fetched_at"`
	Meta      map[string]any `json:"meta"`
}

// Stats is only set for the violation datasets.
type Stats struct {
	CountByYear map[string]int `json:"count_by_year"`
}

// FieldValue is one resolved output column; Value is nil when no alias resolved.
type FieldValue struct {
	Name  string
	Value *string
}

// ResultItem carries the resolved fields in display order plus the source row.
type ResultItem struct {
	Fields []FieldValue
	Raw    etl.Record
}

// Get returns a resolved field by logical name.
func (it ResultItem) Get(name string) (string, bool) {
	for _, f := range it.Fields {
		if f.Name == name {
			if f.Value == nil {
				return "", false
			}
			return *f.Value, true
		}
	}
	return "", false
}

// MarshalJSON writes the fields in display order followed by the raw row.
func (it ResultItem) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for _, f := range it.Fields {
		if err := writeMember(&buf, f.Name, f.Value); err != nil {
			return nil, err
		}
		buf.WriteByte(',')
	}
	raw := it.Raw
	if raw == nil {
		raw = etl.Record{}
	}
	if err := writeMember(&buf, RawRowKey, raw); err != nil {
		return nil, err
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func writeMember(buf *bytes.Buffer, key string, v any) error {
	k, err := json.Marshal(key)
	if err != nil {
		return err
	}
	val, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}
	buf.Write(k)
	buf.WriteByte(':')
	buf.Write(val)
	return nil
}

func newResult(items []ResultItem, sourceURL string, now time.Time, meta map[string]any) *QueryResult {
	if items == nil {
		items = []ResultItem{}
	}
	return &QueryResult{
		Items:     items,
		Count:     len(items),
		SourceURL: sourceURL,
		FetchedAt: now.UTC().Format(FetchedAtLayout),
		Meta:      meta,
	}
}

func project(rec etl.Record, fields []Field) ResultItem {
	item := ResultItem{Fields: make([]FieldValue, len(fields)), Raw: rec}
	for i, f := range fields {
		item.Fields[i] = FieldValue{Name: f.Name, Value: rec.PickPtr(f.Aliases...)}
	}
	return item
}
