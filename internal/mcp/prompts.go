package mcpserver

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

func (s *Server) registerPrompts() {
	s.mcp.AddPrompt(mcp.NewPrompt("company_labor_report",
		mcp.WithPromptDescription("Check a company against the ESG HR disclosures and both labor violation lists, then summarize"),
		mcp.WithArgument("company",
			mcp.ArgumentDescription("Company name to check"),
			mcp.RequiredArgument(),
		),
	), s.handleCompanyReportPrompt)
}

func (s *Server) handleCompanyReportPrompt(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	company := req.Params.Arguments["company"]
	if company == "" {
		return nil, fmt.Errorf("company is required")
	}
	return &mcp.GetPromptResult{
		Description: fmt.Sprintf("Labor conditions report for %s", company),
		Messages: []mcp.PromptMessage{
			{
				Role: mcp.RoleUser,
				Content: mcp.TextContent{
					Type: "text",
					Text: fmt.Sprintf(`Prepare a short labor-conditions report on "%s". Follow these steps:

1. Call esg_hr with company="%s" to get salary and female manager figures. If nothing matches, retry with the name minus any corporate suffix.
2. Call labor_violations with company="%s" and since_year set to five years ago.
3. Call ge_work_equality_violations with the same arguments.
4. Summarize: salary figures with their year, the number of violations per year from stats.count_by_year, and the most recent violation with its article and fine.

Quote numbers exactly as returned. Say plainly when a dataset has no matching records, and cite each tool's source_url and fetched_at.`, company, company, company),
				},
			},
		},
	}, nil
}
