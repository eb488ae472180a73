// Package httpserver hosts the network MCP transports next to the
// operational endpoints.
package httpserver

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"jobguardian/internal/logging"
)

// New builds an HTTP server with sane defaults for this project.
// WriteTimeout stays unset: SSE and streamable sessions are long-lived.
func New(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
}

// Routes are the handlers mounted by NewRouter. Nil handlers are skipped.
type Routes struct {
	// MCP serves the streamable HTTP transport at /mcp
	MCP http.Handler

	// SSE serves /sse and /message
	SSE http.Handler

	// Gatherer backs /metrics
	Gatherer prometheus.Gatherer

	Version string
}

// NewRouter wires the middleware stack and endpoints.
func NewRouter(rt Routes) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{
			"status":  "ok",
			"version": rt.Version,
		})
	})

	if rt.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(rt.Gatherer, promhttp.HandlerOpts{}))
	}
	if rt.MCP != nil {
		r.Handle("/mcp", rt.MCP)
	}
	if rt.SSE != nil {
		r.Handle("/sse", rt.SSE)
		r.Handle("/message", rt.SSE)
	}
	return r
}

// requestLogger logs one line per request through the request-scoped logger.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		logging.FromContext(r.Context()).Debug("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
		)
	})
}
