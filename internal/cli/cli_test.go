package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	defer rootCmd.SetArgs(nil)
	err := rootCmd.Execute()
	return buf.String(), err
}

func writeCSV(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestVersionCmd_Executes(t *testing.T) {
	originalVersion := version
	version = "test-version-1.0.0"
	defer func() { version = originalVersion }()

	out, err := execute(t, "version")

	assert.NoError(t, err)
	assert.Contains(t, out, "job-guardian version test-version-1.0.0")
}

func TestRootCmd_HasSubcommands(t *testing.T) {
	names := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"serve", "query", "version"} {
		assert.True(t, names[want], want)
	}
}

func TestQueryESG_FromFile(t *testing.T) {
	path := writeCSV(t, "esg.csv",
		"公司代號,公司名稱,年度,員工薪資中位數\n"+
			"2330,台灣積體電路製造股份有限公司,2023,1200\n"+
			"2330,台灣積體電路製造股份有限公司,2022,1100\n")
	t.Setenv("ESG_URL", "file://"+path)
	t.Setenv("LOG_LEVEL", "error")

	out, err := execute(t, "query", "esg-hr", "台灣積體電路製造", "--year", "2023", "--env-file", filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	var res struct {
		Count int              `json:"count"`
		Items []map[string]any `json:"items"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	require.Equal(t, 1, res.Count)
	assert.Equal(t, "1200", res.Items[0]["員工薪資中位數"])
}

func TestQuery_InvalidConfigFails(t *testing.T) {
	t.Setenv("HTTP_TIMEOUT", "not-a-number")

	_, err := execute(t, "query", "labor", "x", "--env-file", filepath.Join(t.TempDir(), "missing.env"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP_TIMEOUT")
}

func TestServe_RejectsUnknownTransport(t *testing.T) {
	t.Setenv("LOG_LEVEL", "error")

	_, err := execute(t, "serve", "--transport", "carrier-pigeon", "--env-file", filepath.Join(t.TempDir(), "missing.env"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown transport")
}
