package etl

import (
	"context"
	"errors"
	"strings"
	"testing"
)

// ─────────────────────────────────────────────────────────────
// Registry, transforms, pipeline
// ─────────────────────────────────────────────────────────────

type stubSource struct {
	spec    SourceSpec
	records []Record
	err     error
	calls   int
}

func (s *stubSource) Spec() SourceSpec { return s.spec }

func (s *stubSource) Read(ctx context.Context, location string) ([]Record, error) {
	s.calls++
	return s.records, s.err
}

func TestSchemeOf(t *testing.T) {
	cases := map[string]string{
		"https://example.com/a.csv": "https",
		"HTTP://example.com":        "http",
		"file:///tmp/a.csv":         "file",
		"/tmp/a.csv":                "file",
		"data/a.csv":                "file",
		`C:\data\a.csv`:             "file",
		"ftp://example.com/a.csv":   "ftp",
	}
	for in, want := range cases {
		if got := SchemeOf(in); got != want {
			t.Errorf("SchemeOf(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestRegistry_DispatchByScheme(t *testing.T) {
	web := &stubSource{spec: SourceSpec{Type: "web", Schemes: []string{"http", "https"}}, records: []Record{{"a": "1"}}}
	file := &stubSource{spec: SourceSpec{Type: "file", Schemes: []string{"file"}}}
	r := NewRegistry(web, file)

	recs, err := r.Fetch(context.Background(), "https://example.com/x.csv")
	if err != nil || len(recs) != 1 {
		t.Fatalf("unexpected result %v, %v", recs, err)
	}
	if _, err := r.Fetch(context.Background(), "/tmp/x.csv"); err != nil {
		t.Fatal(err)
	}
	if web.calls != 1 || file.calls != 1 {
		t.Fatalf("calls web=%d file=%d", web.calls, file.calls)
	}

	specs := r.ListSources()
	if len(specs) != 2 || specs[0].Type != "file" || specs[1].Type != "web" {
		t.Fatalf("ListSources not sorted: %v", specs)
	}
	if _, err := r.GetSource("nope"); err == nil {
		t.Fatal("expected unknown type error")
	}
}

func TestRegistry_UnknownSchemeIsFetchError(t *testing.T) {
	r := NewRegistry()
	_, err := r.Fetch(context.Background(), "ftp://example.com/x.csv")
	if !errors.Is(err, ErrFetch) {
		t.Fatalf("expected ErrFetch, got %v", err)
	}
	var fe *FetchError
	if !errors.As(err, &fe) || fe.URL != "ftp://example.com/x.csv" {
		t.Fatalf("expected FetchError with URL, got %#v", err)
	}
}

func TestFetchError_Message(t *testing.T) {
	primary := errors.New("h2 reset")
	fallback := errors.New("dial tcp4: refused")
	err := &FetchError{URL: "https://x", Primary: primary, Fallback: fallback}

	if !errors.Is(err, primary) || !errors.Is(err, fallback) {
		t.Fatal("both causes should unwrap")
	}
	msg := err.Error()
	if !strings.Contains(msg, "h2 reset") || !strings.Contains(msg, "refused") {
		t.Fatalf("message should name both causes: %s", msg)
	}

	single := &FetchError{URL: "x", Primary: primary}
	if strings.Contains(single.Error(), "fallback") {
		t.Fatalf("single-attempt error mentions fallback: %s", single.Error())
	}
}

func TestLeadingYear(t *testing.T) {
	cases := []struct {
		in   string
		year int
		ok   bool
	}{
		{"2024-01-05", 2024, true},
		{"2023/12/31", 2023, true},
		{"2022", 2022, true},
		{"113-01-05", 0, false},
		{"", 0, false},
		{"20a4", 0, false},
	}
	for _, c := range cases {
		y, ok := LeadingYear(c.in)
		if y != c.year || ok != c.ok {
			t.Errorf("LeadingYear(%q) = %d,%v want %d,%v", c.in, y, ok, c.year, c.ok)
		}
	}
}

func TestPipeline_TransformsAndLimit(t *testing.T) {
	src := &stubSource{
		spec: SourceSpec{Type: "stub", Schemes: []string{"file"}},
		records: []Record{
			{"name": "a", "date": "2021-01-01"},
			{"name": "b", "date": "2023-01-01"},
			{"name": "c", "date": "2024-01-01"},
			{"name": "d", "date": "2025-01-01"},
		},
	}
	p := &Pipeline{
		Fetcher:      NewRegistry(src),
		Transformers: []Transformer{&YearAtLeastTransform{Aliases: []string{"date"}, Since: 2023}},
		Limit:        2,
	}

	res, err := p.Run(context.Background(), "x.csv")
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Records) != 2 || res.Records[0]["name"] != "b" || res.Records[1]["name"] != "c" {
		t.Fatalf("unexpected records %v", res.Records)
	}
	if res.RowsRead != 3 {
		t.Fatalf("pipeline should stop at the limit, read %d rows", res.RowsRead)
	}
}

func TestPipeline_FieldEquals(t *testing.T) {
	src := &stubSource{
		spec:    SourceSpec{Type: "stub", Schemes: []string{"file"}},
		records: []Record{{"year": "2022"}, {"year": "2023"}, {"年度": "2023"}},
	}
	p := &Pipeline{
		Fetcher:      NewRegistry(src),
		Transformers: []Transformer{&FieldEqualsTransform{Aliases: []string{"年度", "year"}, Value: "2023"}},
	}
	res, err := p.Run(context.Background(), "x.csv")
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Records) != 2 {
		t.Fatalf("expected 2, got %v", res.Records)
	}
}

func TestPipeline_FetchErrorPassesThrough(t *testing.T) {
	want := &FetchError{URL: "x", Primary: errors.New("boom")}
	src := &stubSource{spec: SourceSpec{Type: "stub", Schemes: []string{"file"}}, err: want}
	p := &Pipeline{Fetcher: NewRegistry(src)}

	_, err := p.Run(context.Background(), "x.csv")
	if err != want {
		t.Fatalf("expected the source error unchanged, got %v", err)
	}
}
