package sources

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/traditionalchinese"

	"jobguardian/internal/etl"
)

func TestCSVFileSource_ReadsPathAndFileURL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "labor.csv")
	require.NoError(t, os.WriteFile(path, []byte(laborCSV), 0o644))

	src := NewCSVFileSource()
	for _, loc := range []string{path, "file://" + path} {
		recs, err := src.Read(context.Background(), loc)
		require.NoError(t, err, loc)
		require.Len(t, recs, 1, loc)
		assert.Equal(t, "2024-01-05", recs[0]["公告日期"])
	}
}

func TestCSVFileSource_DecodesBig5(t *testing.T) {
	raw, err := traditionalchinese.Big5.NewEncoder().String(laborCSV)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "labor-big5.csv")
	require.NoError(t, os.WriteFile(path, []byte(raw), 0o644))

	recs, err := NewCSVFileSource().Read(context.Background(), path)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "台灣積體電路製造股份有限公司", recs[0]["事業單位名稱"])
}

func TestCSVFileSource_MissingFile(t *testing.T) {
	loc := filepath.Join(t.TempDir(), "nope.csv")
	_, err := NewCSVFileSource().Read(context.Background(), loc)

	require.Error(t, err)
	assert.True(t, errors.Is(err, etl.ErrFetch))
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestCSVFileSource_ThroughRegistry(t *testing.T) {
	path := filepath.Join(t.TempDir(), "labor.csv")
	require.NoError(t, os.WriteFile(path, []byte(laborCSV), 0o644))

	reg := etl.NewRegistry(NewHTTPSource(HTTPOptions{}), NewCSVFileSource())
	recs, err := reg.Fetch(context.Background(), "file://"+path)
	require.NoError(t, err)
	assert.Len(t, recs, 1)
}
