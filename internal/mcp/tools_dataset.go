package mcpserver

import (
	"context"
	"strings"

	"jobguardian/internal/dataset"

	"github.com/mark3labs/mcp-go/mcp"
)

func (s *Server) registerDatasetTools() {
	readOnly := mcp.WithToolAnnotation(mcp.ToolAnnotation{
		ReadOnlyHint:   boolPtr(true),
		OpenWorldHint:  boolPtr(true),
		IdempotentHint: boolPtr(true),
	})
	limit := mcp.WithNumber("limit",
		mcp.Description("Maximum number of items to return"),
		mcp.DefaultNumber(dataset.DefaultLimit),
		mcp.Min(1),
	)

	s.mcp.AddTool(mcp.NewTool(dataset.ToolESGHR,
		mcp.WithDescription("Look up a listed company's ESG human-development disclosures (median and average employee salary, female manager ratio). Downloads the latest TWSE export on every call."),
		mcp.WithString("company", mcp.Description("Company name; corporate suffixes such as 股份有限公司 are optional"), mcp.Required()),
		mcp.WithNumber("year", mcp.Description("Report year to match exactly (optional)")),
		limit,
		readOnly,
	), s.handleESGHR)

	s.mcp.AddTool(mcp.NewTool(dataset.ToolLabor,
		mcp.WithDescription("Search the Ministry of Labor list of employers penalized under the Labor Standards Act. Returns matching records and counts by announcement year."),
		mcp.WithString("company", mcp.Description("Employer name or part of it"), mcp.Required()),
		mcp.WithNumber("since_year", mcp.Description("Only announcements dated in or after this year (optional)")),
		limit,
		readOnly,
	), s.handleLaborViolations)

	s.mcp.AddTool(mcp.NewTool(dataset.ToolGenderEquality,
		mcp.WithDescription("Search the Ministry of Labor list of employers penalized under the Gender Equality in Employment Act. Returns matching records and counts by announcement year."),
		mcp.WithString("company", mcp.Description("Employer name or part of it"), mcp.Required()),
		mcp.WithNumber("since_year", mcp.Description("Only announcements dated in or after this year (optional)")),
		limit,
		readOnly,
	), s.handleGenderEqualityViolations)
}

func (s *Server) handleESGHR(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	company := strings.TrimSpace(req.GetString("company", ""))
	if company == "" {
		return mcp.NewToolResultError("company is required"), nil
	}
	year, err := optionalInt(req.GetArguments(), "year")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	res, err := s.datasets.ESGHR(ctx, dataset.ESGQuery{
		Company: company,
		Year:    year,
		Limit:   req.GetInt("limit", dataset.DefaultLimit),
	})
	if err != nil {
		return mcp.NewToolResultErrorFromErr("esg_hr lookup failed", err), nil
	}
	return jsonResult(res)
}

func (s *Server) handleLaborViolations(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.handleViolations(ctx, req, s.datasets.LaborViolations)
}

func (s *Server) handleGenderEqualityViolations(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.handleViolations(ctx, req, s.datasets.GenderEqualityViolations)
}

type violationLookup func(context.Context, dataset.ViolationQuery) (*dataset.QueryResult, error)

func (s *Server) handleViolations(ctx context.Context, req mcp.CallToolRequest, lookup violationLookup) (*mcp.CallToolResult, error) {
	company := strings.TrimSpace(req.GetString("company", ""))
	if company == "" {
		return mcp.NewToolResultError("company is required"), nil
	}
	since, err := optionalInt(req.GetArguments(), "since_year")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	res, err := lookup(ctx, dataset.ViolationQuery{
		Company:   company,
		SinceYear: since,
		Limit:     req.GetInt("limit", dataset.DefaultLimit),
	})
	if err != nil {
		return mcp.NewToolResultErrorFromErr(req.Params.Name+" lookup failed", err), nil
	}
	return jsonResult(res)
}
