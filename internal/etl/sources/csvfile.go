package sources

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"strings"

	"jobguardian/internal/etl"
)

// ── CSV File Source ─────────────────────────────────────────
// Reads a dataset from a local CSV file, for mirrored or archived exports.
// Accepts file:// URLs and bare paths. There is no transport to fall back to,
// so a failure is a FetchError with only a primary cause.

type CSVFileSource struct{}

func NewCSVFileSource() *CSVFileSource { return &CSVFileSource{} }

func (s *CSVFileSource) Spec() etl.SourceSpec {
	return etl.SourceSpec{
		Type:    "csv_file",
		Label:   "CSV File",
		Schemes: []string{"file"},
	}
}

func (s *CSVFileSource) Read(ctx context.Context, location string) ([]etl.Record, error) {
	records, err := readCSVFile(ctx, location)
	if err != nil {
		return nil, &etl.FetchError{URL: location, Primary: err}
	}
	return records, nil
}

func readCSVFile(ctx context.Context, location string) ([]etl.Record, error) {
	path, err := filePath(location)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	return decodeAndParse(ctx, data)
}

// filePath turns file:///abs/path or a plain path into a filesystem path.
func filePath(location string) (string, error) {
	if !strings.HasPrefix(strings.ToLower(location), "file:") {
		return location, nil
	}
	u, err := url.Parse(location)
	if err != nil {
		return "", fmt.Errorf("parse file url: %w", err)
	}
	if u.Path == "" {
		return "", fmt.Errorf("file url %q has no path", location)
	}
	return u.Path, nil
}
