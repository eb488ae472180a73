package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobguardian/internal/match"
)

var allVars = []string{
	"ESG_URL", "LAB_VIO_URL", "GE_VIO_URL",
	"HTTP_TIMEOUT", "HTTP_USER_AGENT",
	"CASE_SENSITIVE", "PARTIAL_MATCH",
	"MCP_HTTP_ADDR", "MCP_PUBLIC_URL", "MCP_SHUTDOWN_TIMEOUT",
	"SOURCE_PROBE_SCHEDULE", "LOG_LEVEL", "LOG_FORMAT",
}

// clearEnv blanks every variable Load reads; empty counts as unset.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, v := range allVars {
		t.Setenv(v, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://mopsfin.twse.com.tw/opendata/t187ap46_O_5.csv", cfg.Sources.ESG)
	assert.Equal(t, "https://apiservice.mol.gov.tw/OdService/download/A17000000J-030225-svj", cfg.Sources.Labor)
	assert.Equal(t, "https://apiservice.mol.gov.tw/OdService/download/A17000000J-030226-sop", cfg.Sources.GenderEquality)
	assert.Equal(t, 30*time.Second, cfg.HTTP.Timeout())
	assert.Equal(t, "curl/8.5.0", cfg.HTTP.UserAgent)
	assert.Equal(t, match.Policy{}, cfg.Match.Policy())
	assert.Equal(t, "127.0.0.1:7332", cfg.Server.HTTPAddr)
	assert.Empty(t, cfg.Server.PublicURL)
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)
	assert.Empty(t, cfg.Probe.Schedule)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "text", cfg.Logging.Format)
}

func TestLoad_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("ESG_URL", "file:///data/esg.csv")
	t.Setenv("LAB_VIO_URL", "/data/labor.csv")
	t.Setenv("HTTP_TIMEOUT", "2.5")
	t.Setenv("CASE_SENSITIVE", "true")
	t.Setenv("PARTIAL_MATCH", "1")
	t.Setenv("SOURCE_PROBE_SCHEDULE", "@every 1h")
	t.Setenv("LOG_FORMAT", "JSON")
	t.Setenv("MCP_PUBLIC_URL", "https://mcp.example.com")

	cfg, err := Load()
	require.NoError(t, err)

	ds := cfg.Sources.Datasets()
	assert.Equal(t, "file:///data/esg.csv", ds.ESG)
	assert.Equal(t, "/data/labor.csv", ds.Labor)
	assert.Equal(t, 2500*time.Millisecond, cfg.HTTP.Timeout())
	assert.Equal(t, match.Policy{CaseSensitive: true, PartialMatch: true}, cfg.Match.Policy())
	assert.Equal(t, "@every 1h", cfg.Probe.Schedule)
	assert.Equal(t, "https://mcp.example.com", cfg.Server.PublicURL)
}

func TestLoad_InvalidValues(t *testing.T) {
	cases := map[string]struct {
		env, value, want string
	}{
		"bad bool":     {"PARTIAL_MATCH", "sometimes", "PARTIAL_MATCH"},
		"bad number":   {"HTTP_TIMEOUT", "fast", "HTTP_TIMEOUT"},
		"zero timeout": {"HTTP_TIMEOUT", "0", "HTTP_TIMEOUT must be positive"},
		"bad scheme":   {"GE_VIO_URL", "ftp://example.com/x.csv", "GE_VIO_URL"},
		"bad level":    {"LOG_LEVEL", "chatty", "LOG_LEVEL"},
		"bad format":   {"LOG_FORMAT", "xml", "LOG_FORMAT"},
		"bad schedule": {"SOURCE_PROBE_SCHEDULE", "every tuesday", "SOURCE_PROBE_SCHEDULE"},
		"bad duration": {"MCP_SHUTDOWN_TIMEOUT", "soon", "MCP_SHUTDOWN_TIMEOUT"},
		"public url":   {"MCP_PUBLIC_URL", "0.0.0.0:7332", "MCP_PUBLIC_URL"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tc.env, tc.value)

			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}

func TestLoadDotEnv(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("PARTIAL_MATCH=true\nLOG_LEVEL=debug\n"), 0o644))
	t.Setenv("LOG_LEVEL", "warn")
	// godotenv.Load only fills unset variables; t.Setenv("", ...) counts as set.
	require.NoError(t, os.Unsetenv("PARTIAL_MATCH"))

	require.NoError(t, LoadDotEnv(filepath.Join(dir, "missing.env"), path))

	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.Match.PartialMatch)
	assert.Equal(t, "warn", cfg.Logging.Level, "existing variables win over the file")
}
