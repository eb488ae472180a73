package sources

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"time"

	"golang.org/x/net/http2"

	"jobguardian/internal/etl"
	"jobguardian/internal/logging"
	"jobguardian/internal/metrics"
)

// ── HTTP Source ─────────────────────────────────────────────
// Downloads a CSV export over HTTP(S). Some government endpoints reject or
// mishandle the default negotiation (HTTP/2 over IPv6 in particular), so a
// failed attempt is retried once on a plain HTTP/1.1, IPv4-only client.

const (
	DefaultUserAgent = "curl/8.5.0"
	acceptCSV        = "text/csv,*/*;q=0.8"

	// maxBodyBytes caps a single download; the largest MOL exports are a few MB.
	maxBodyBytes = 256 << 20
)

// HTTPOptions configures both transports.
type HTTPOptions struct {
	Timeout   time.Duration
	UserAgent string
	Metrics   *metrics.Metrics
}

// ErrBodyTooLarge rejects a download that would have to be truncated.
var ErrBodyTooLarge = errors.New("response body too large")

// HTTPSource fetches with Primary and, on any failure, once more with Fallback.
type HTTPSource struct {
	Primary   *http.Client
	Fallback  *http.Client
	UserAgent string

	// MaxBodyBytes caps one response; zero means 256 MiB.
	MaxBodyBytes int64

	metrics *metrics.Metrics
}

// NewHTTPSource builds the source with the default primary and fallback clients.
func NewHTTPSource(opts HTTPOptions) *HTTPSource {
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}
	if opts.UserAgent == "" {
		opts.UserAgent = DefaultUserAgent
	}
	return &HTTPSource{
		Primary:   NewPrimaryClient(opts.Timeout),
		Fallback:  NewFallbackClient(opts.Timeout),
		UserAgent: opts.UserAgent,
		metrics:   opts.Metrics,
	}
}

// NewPrimaryClient returns a dual-stack client that negotiates HTTP/2 via ALPN.
func NewPrimaryClient(timeout time.Duration) *http.Client {
	dialer := &net.Dialer{Timeout: timeout, KeepAlive: 30 * time.Second}
	t := &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		DialContext:         dialer.DialContext,
		TLSHandshakeTimeout: 10 * time.Second,
		IdleConnTimeout:     90 * time.Second,
		MaxIdleConns:        10,
	}
	if _, err := http2.ConfigureTransports(t); err != nil {
		// Only fails when t was already configured for h2.
		slog.Warn("http2 configure failed, primary stays on HTTP/1.1", "error", err)
	}
	return &http.Client{Timeout: timeout, Transport: t}
}

// NewFallbackClient returns an IPv4-only HTTP/1.1 client without connection reuse.
func NewFallbackClient(timeout time.Duration) *http.Client {
	dialer := &net.Dialer{Timeout: timeout}
	t := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: func(ctx context.Context, _, addr string) (net.Conn, error) {
			return dialer.DialContext(ctx, "tcp4", addr)
		},
		ForceAttemptHTTP2:   false,
		TLSNextProto:        map[string]func(string, *tls.Conn) http.RoundTripper{},
		TLSHandshakeTimeout: 10 * time.Second,
		DisableKeepAlives:   true,
	}
	return &http.Client{Timeout: timeout, Transport: t}
}

func (s *HTTPSource) Spec() etl.SourceSpec {
	return etl.SourceSpec{
		Type:    "http_csv",
		Label:   "CSV over HTTP",
		Schemes: []string{"http", "https"},
	}
}

// Read makes at most two requests. Any error on the primary attempt,
// including a non-2xx status or an unparseable body, triggers the fallback.
func (s *HTTPSource) Read(ctx context.Context, location string) ([]etl.Record, error) {
	log := logging.FromContext(ctx).With("url", location)

	records, primaryErr := s.attempt(ctx, s.Primary, location)
	s.metrics.ObserveFetch("primary", primaryErr)
	if primaryErr == nil {
		return records, nil
	}
	if ctx.Err() != nil {
		return nil, &etl.FetchError{URL: location, Primary: primaryErr, Fallback: ctx.Err()}
	}

	log.Warn("primary fetch failed, retrying on fallback transport", "error", primaryErr)
	s.metrics.IncrementFallbacks()

	records, fallbackErr := s.attempt(ctx, s.Fallback, location)
	s.metrics.ObserveFetch("fallback", fallbackErr)
	if fallbackErr == nil {
		return records, nil
	}

	log.Error("fetch failed on both transports", "primary_error", primaryErr, "fallback_error", fallbackErr)
	return nil, &etl.FetchError{URL: location, Primary: primaryErr, Fallback: fallbackErr}
}

func (s *HTTPSource) bodyLimit() int64 {
	if s.MaxBodyBytes > 0 {
		return s.MaxBodyBytes
	}
	return maxBodyBytes
}

func (s *HTTPSource) attempt(ctx context.Context, client *http.Client, location string) ([]etl.Record, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, location, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", s.UserAgent)
	req.Header.Set("Accept", acceptCSV)

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("http %d: %s", resp.StatusCode, string(body))
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, s.bodyLimit()+1))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if int64(len(data)) > s.bodyLimit() {
		return nil, fmt.Errorf("%w: over %d bytes", ErrBodyTooLarge, s.bodyLimit())
	}

	return decodeAndParse(ctx, data)
}

// decodeAndParse is shared by every tabular source.
func decodeAndParse(ctx context.Context, data []byte) ([]etl.Record, error) {
	text, enc := etl.DecodeContentNamed(data)
	logging.FromContext(ctx).Debug("decoded dataset", "encoding", enc, "bytes", len(data))

	records, err := etl.ParseCSV(text)
	if err != nil {
		return nil, err
	}
	return records, nil
}
