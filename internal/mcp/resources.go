package mcpserver

import (
	"context"
	"encoding/json"

	"jobguardian/internal/dataset"
	"jobguardian/internal/etl"
	"jobguardian/internal/probe"

	"github.com/mark3labs/mcp-go/mcp"
)

// SourcesURI lists the datasets behind the tools.
const SourcesURI = "job-guardian://sources"

func (s *Server) registerResources() {
	s.mcp.AddResource(mcp.NewResource(
		SourcesURI,
		"Dataset Sources",
		mcp.WithResourceDescription("Datasets queried by each tool, registered source kinds, and the latest source probe report"),
		mcp.WithMIMEType("application/json"),
	), s.handleSourcesResource)
}

type datasetSummary struct {
	Tool  string `json:"tool"`
	Label string `json:"label"`
	URL   string `json:"url"`
}

type sourcesDocument struct {
	Datasets    []datasetSummary `json:"datasets"`
	SourceKinds []etl.SourceSpec `json:"source_kinds"`
	LastProbe   *probe.Report    `json:"last_probe,omitempty"`
}

func (s *Server) sourcesDocument() sourcesDocument {
	src := s.datasets.Sources()
	doc := sourcesDocument{
		Datasets: []datasetSummary{
			{Tool: dataset.ToolESGHR, Label: "ESG human development (TWSE)", URL: src.ESG},
			{Tool: dataset.ToolLabor, Label: "Labor Standards Act violations (MOL)", URL: src.Labor},
			{Tool: dataset.ToolGenderEquality, Label: "Gender Equality in Employment Act violations (MOL)", URL: src.GenderEquality},
		},
	}
	if s.registry != nil {
		doc.SourceKinds = s.registry.ListSources()
	}
	if s.prober != nil {
		doc.LastProbe = s.prober.Last()
	}
	return doc
}

func (s *Server) handleSourcesResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	data, err := json.MarshalIndent(s.sourcesDocument(), "", "  ")
	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      SourcesURI,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
