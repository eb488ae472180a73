package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"

	"jobguardian/internal/dataset"
	"jobguardian/internal/etl"
	"jobguardian/internal/probe"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// ServerName is announced to MCP clients.
const ServerName = "job-guardian"

// Server is the MCP server exposing the dataset lookups as tools.
type Server struct {
	mcp *server.MCPServer

	// Services (injected from main)
	datasets *dataset.Service
	registry *etl.Registry
	prober   *probe.Prober
}

// Deps holds everything the MCP layer needs. Prober may be nil.
type Deps struct {
	Datasets *dataset.Service
	Registry *etl.Registry
	Prober   *probe.Prober
	Version  string
}

// New creates and configures the MCP server with all tools, resources and prompts.
func New(deps Deps) *Server {
	s := &Server{
		datasets: deps.Datasets,
		registry: deps.Registry,
		prober:   deps.Prober,
	}

	version := deps.Version
	if version == "" {
		version = "dev"
	}

	s.mcp = server.NewMCPServer(
		ServerName,
		version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
		server.WithPromptCapabilities(false),
		server.WithRecovery(),
	)

	s.registerDatasetTools()
	s.registerResources()
	s.registerPrompts()

	return s
}

// MCP exposes the underlying server, mainly for in-process clients in tests.
func (s *Server) MCP() *server.MCPServer { return s.mcp }

// ServeStdio serves on stdin/stdout until ctx is cancelled or stdin closes.
func (s *Server) ServeStdio(ctx context.Context) error {
	slog.Info("starting MCP stdio server")
	return server.NewStdioServer(s.mcp).Listen(ctx, os.Stdin, os.Stdout)
}

// StreamableHTTPHandler serves the streamable HTTP transport.
func (s *Server) StreamableHTTPHandler() http.Handler {
	return server.NewStreamableHTTPServer(s.mcp)
}

// SSEHandler serves the legacy SSE transport (/sse + /message). An empty
// publicURL advertises a relative message endpoint, which clients resolve
// against the host they connected to.
func (s *Server) SSEHandler(publicURL string) http.Handler {
	if publicURL == "" {
		return server.NewSSEServer(s.mcp, server.WithUseFullURLForMessageEndpoint(false))
	}
	return server.NewSSEServer(s.mcp, server.WithBaseURL(strings.TrimRight(publicURL, "/")))
}

// ── Helpers ────────────────────────────────────────────────

// textResult creates a simple text tool result.
func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.TextContent{Type: "text", Text: text},
		},
	}
}

// jsonResult serializes v to JSON and wraps it in a text tool result.
func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal result: %w", err)
	}
	return textResult(string(data)), nil
}

func boolPtr(v bool) *bool { return &v }
