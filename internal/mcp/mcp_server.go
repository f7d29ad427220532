// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/quantgeo/scoresmith/internal/contract"
)

// NewMCPServer initializes and configures the Scoresmith MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config) *server.MCPServer {
	s := server.NewMCPServer(
		"Scoresmith Formula Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
	}

	// --- 1. Tool: extract_feature_importance ---
	s.AddTool(mcp.NewTool("extract_feature_importance",
		mcp.WithDescription("Extract statistical feature importance from a records snapshot against a target field."),
		mcp.WithString("records_path", mcp.Description("Path to the JSON records file."), mcp.Required()),
		mcp.WithString("target", mcp.Description("Target field to correlate against. Defaults to 'thematic_value'.")),
		mcp.WithNumber("limit", mcp.Description("Limit the number of features returned.")),
	), h.handleExtractFeatureImportance)

	// --- 2. Tool: rank_features ---
	s.AddTool(mcp.NewTool("rank_features",
		mcp.WithDescription("Rank candidate fields for one analysis type by blended importance and business relevance."),
		mcp.WithString("records_path", mcp.Description("Path to the JSON records file."), mcp.Required()),
		mcp.WithString("analysis_type", mcp.Description("Analysis type to score for (e.g. competitive_analysis)."), mcp.Required()),
		mcp.WithString("target", mcp.Description("Target field to correlate against.")),
		mcp.WithNumber("limit", mcp.Description("Limit the number of candidates returned.")),
	), h.handleRankFeatures)

	// --- 3. Tool: synthesize_formula ---
	s.AddTool(mcp.NewTool("synthesize_formula",
		mcp.WithDescription("Synthesize a weighted composite score formula for one analysis type."),
		mcp.WithString("records_path", mcp.Description("Path to the JSON records file."), mcp.Required()),
		mcp.WithString("analysis_type", mcp.Description("Analysis type to synthesize for."), mcp.Required()),
		mcp.WithString("target", mcp.Description("Target field to correlate against.")),
		mcp.WithNumber("limit", mcp.Description("Limit the candidate pool before synthesis.")),
	), h.handleSynthesizeFormula)

	// --- 4. Tool: validate_algorithms ---
	s.AddTool(mcp.NewTool("validate_algorithms",
		mcp.WithDescription("Generate and validate composite score formulas for the selected analysis types."),
		mcp.WithString("records_path", mcp.Description("Path to the JSON records file."), mcp.Required()),
		mcp.WithString("analysis", mcp.Description("Comma-separated analysis types, or 'all'.")),
		mcp.WithString("target", mcp.Description("Target field to correlate against.")),
	), h.handleValidateAlgorithms)

	return s
}

// StartMCPServer starts the Scoresmith MCP server over stdio.
func StartMCPServer(_ context.Context, baseCfg *contract.Config) error {
	s := NewMCPServer(baseCfg)
	return server.ServeStdio(s)
}
