// Package config loads the server configuration from environment variables
// (optionally seeded from a .env file) once at startup. The result is treated
// as immutable afterwards.
package config

import (
	"time"

	"jobguardian/internal/dataset"
	"jobguardian/internal/match"
)

// Config holds all server configuration.
type Config struct {
	Sources SourcesConfig
	HTTP    HTTPConfig
	Match   MatchConfig
	Server  ServerConfig
	Probe   ProbeConfig
	Logging LoggingConfig
}

// SourcesConfig holds the dataset locations. http(s), file:// and bare paths are accepted.
type SourcesConfig struct {
	// ESG is the TWSE ESG human-development export
	ESG string `env:"ESG_URL" default:"https://mopsfin.twse.com.tw/opendata/t187ap46_O_5.csv"`

	// Labor is the MOL Labor Standards Act violation list
	Labor string `env:"LAB_VIO_URL" default:"https://apiservice.mol.gov.tw/OdService/download/A17000000J-030225-svj"`

	// GenderEquality is the MOL Gender Equality in Employment Act violation list
	GenderEquality string `env:"GE_VIO_URL" default:"https://apiservice.mol.gov.tw/OdService/download/A17000000J-030226-sop"`
}

// HTTPConfig holds outbound fetch settings.
type HTTPConfig struct {
	// TimeoutSeconds bounds each transport attempt (default: 30)
	TimeoutSeconds float64 `env:"HTTP_TIMEOUT" default:"30"`

	// UserAgent is sent on both transports (default: curl/8.5.0)
	UserAgent string `env:"HTTP_USER_AGENT" default:"curl/8.5.0"`
}

// MatchConfig holds the company identity policy.
type MatchConfig struct {
	CaseSensitive bool `env:"CASE_SENSITIVE" default:"false"`

	// PartialMatch switches from exact to substring matching
	PartialMatch bool `env:"PARTIAL_MATCH" default:"false"`
}

// ServerConfig holds the MCP network listener settings.
type ServerConfig struct {
	// HTTPAddr is used by the http and sse transports (default: 127.0.0.1:7332)
	HTTPAddr string `env:"MCP_HTTP_ADDR" default:"127.0.0.1:7332"`

	// PublicURL is the externally reachable base URL advertised to SSE
	// clients; empty advertises a relative message endpoint
	PublicURL string `env:"MCP_PUBLIC_URL"`

	// ShutdownTimeout bounds graceful shutdown (default: 10s)
	ShutdownTimeout time.Duration `env:"MCP_SHUTDOWN_TIMEOUT" default:"10s"`
}

// ProbeConfig holds the optional source health probe.
type ProbeConfig struct {
	// Schedule is a cron expression; empty disables probing
	Schedule string `env:"SOURCE_PROBE_SCHEDULE"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error (default: info)
	Level string `env:"LOG_LEVEL" default:"info"`

	// Format is the log format: text or json (default: text)
	Format string `env:"LOG_FORMAT" default:"text"`
}

// Timeout returns the per-attempt timeout as a duration.
func (c HTTPConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds * float64(time.Second))
}

// Policy returns the immutable match policy.
func (c MatchConfig) Policy() match.Policy {
	return match.Policy{CaseSensitive: c.CaseSensitive, PartialMatch: c.PartialMatch}
}

// Datasets returns the dataset locations in the form the query service takes.
func (c SourcesConfig) Datasets() dataset.Sources {
	return dataset.Sources{ESG: c.ESG, Labor: c.Labor, GenderEquality: c.GenderEquality}
}
