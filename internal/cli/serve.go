package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"jobguardian/internal/httpserver"
	mcpserver "jobguardian/internal/mcp"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol server exposing the esg_hr,
labor_violations and ge_work_equality_violations tools.

By default the server speaks JSON-RPC over stdio. Use --transport http for
the streamable HTTP transport at /mcp, or --transport sse for the legacy
SSE transport at /sse. Network transports also serve /healthz and /metrics.

Examples:
  # Stdio mode (default, for desktop assistants)
  job-guardian serve

  # Streamable HTTP on a custom address
  job-guardian serve --transport http --http 0.0.0.0:7332

MCP client configuration:
  {
    "mcpServers": {
      "job-guardian": {
        "command": "/path/to/job-guardian",
        "args": ["serve"]
      }
    }
  }`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().String("transport", "stdio", "transport: stdio, http or sse")
	serveCmd.Flags().String("http", "", "listen address for http/sse (default from MCP_HTTP_ADDR)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	transport, err := cmd.Flags().GetString("transport")
	if err != nil {
		return fmt.Errorf("getting transport flag: %w", err)
	}
	addr, err := cmd.Flags().GetString("http")
	if err != nil {
		return fmt.Errorf("getting http flag: %w", err)
	}
	// --http alone selects the streamable HTTP transport.
	if cmd.Flags().Changed("http") && !cmd.Flags().Changed("transport") {
		transport = "http"
	}
	if addr == "" {
		addr = cfg.Server.HTTPAddr
	}
	transport = strings.ToLower(transport)
	switch transport {
	case "stdio", "http", "sse":
	default:
		return fmt.Errorf("unknown transport %q (want stdio, http or sse)", transport)
	}

	ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	c := build(cfg)
	if cfg.Probe.Schedule != "" {
		if err := c.prober.Start(ctx, cfg.Probe.Schedule); err != nil {
			return err
		}
		defer func() {
			stopCtx, stop := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
			defer stop()
			c.prober.Stop(stopCtx)
		}()
	}

	srv := mcpserver.New(mcpserver.Deps{
		Datasets: c.datasets,
		Registry: c.registry,
		Prober:   c.prober,
		Version:  version,
	})

	slog.Info("job-guardian starting",
		"version", version,
		"transport", transport,
		"case_sensitive", cfg.Match.CaseSensitive,
		"partial_match", cfg.Match.PartialMatch,
	)

	if transport == "stdio" {
		return srv.ServeStdio(ctx)
	}

	routes := httpserver.Routes{Gatherer: c.gatherer, Version: version}
	if transport == "http" {
		routes.MCP = srv.StreamableHTTPHandler()
	} else {
		routes.SSE = srv.SSEHandler(cfg.Server.PublicURL)
	}
	return listen(ctx, httpserver.New(addr, httpserver.NewRouter(routes)))
}

// listen serves until ctx is done, then shuts down gracefully.
func listen(ctx context.Context, hs *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		slog.Info("http listener started", "addr", hs.Addr)
		errCh <- hs.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	slog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := hs.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	return nil
}
