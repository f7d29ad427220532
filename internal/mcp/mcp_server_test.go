package mcp_test

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/quantgeo/scoresmith/internal/contract"
	mcp_internal "github.com/quantgeo/scoresmith/internal/mcp"
	"github.com/quantgeo/scoresmith/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func baseConfig() *contract.Config {
	return &contract.Config{
		TargetField:    contract.DefaultTargetField,
		AnalysisTypes:  []schema.AnalysisType{schema.CompetitiveAnalysis},
		CandidateLimit: contract.DefaultCandidateLimit,
		Precision:      contract.DefaultPrecision,
		Output:         schema.JSONOut,
		ExcludeFields:  contract.DefaultExcludeFields,
		Profiles:       schema.DefaultProfiles(),
	}
}

func recordsFixture(t *testing.T) string {
	t.Helper()
	recs := make([]schema.Record, 0, 20)
	for i := 1; i <= 20; i++ {
		recs = append(recs, schema.Record{
			"thematic_value": float64(i * 5),
			"MP10020A_B_P":   float64(i)*2.5 + float64(i%3),
			"MP10110A_B_P":   float64(i)*1.8 + float64(i%4),
			"MP30034A_B_P":   float64(i)*3.1 + float64(i%2),
			"MEDDI_CY":       30000 + float64(i)*700 + float64(i%4)*500,
			"TOTPOP_CY":      12000 + float64(i)*450 + float64(i%5)*200,
		})
	}
	payload, err := json.Marshal(map[string]any{"results": recs})
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "records.json")
	require.NoError(t, os.WriteFile(path, payload, 0o644))
	return path
}

func callTool(t *testing.T, s *server.MCPServer, name string, args map[string]any) *mcp.CallToolResult {
	t.Helper()
	tool := s.GetTool(name)
	require.NotNil(t, tool, "Tool %s should exist", name)

	req := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      name,
			Arguments: args,
		},
	}
	res, err := tool.Handler(context.Background(), req)
	require.NoError(t, err, "The MCP handler should not return a raw error for tool logic failures")
	return res
}

func textContent(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, res.Content)
	text, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok)
	return text.Text
}

func TestMCPServerHandlers_ValidationErrors(t *testing.T) {
	s := mcp_internal.NewMCPServer(baseConfig())

	t.Run("extract_feature_importance missing records_path", func(t *testing.T) {
		res := callTool(t, s, "extract_feature_importance", map[string]any{})
		assert.True(t, res.IsError, "The response should indicate an error state")
		assert.Contains(t, textContent(t, res), "records_path is required")
	})

	t.Run("rank_features missing analysis_type", func(t *testing.T) {
		res := callTool(t, s, "rank_features", map[string]any{
			"records_path": recordsFixture(t),
		})
		assert.True(t, res.IsError)
		assert.Contains(t, textContent(t, res), "analysis_type is required")
	})

	t.Run("synthesize_formula nonexistent file", func(t *testing.T) {
		res := callTool(t, s, "synthesize_formula", map[string]any{
			"records_path":  filepath.Join(t.TempDir(), "missing.json"),
			"analysis_type": "competitive_analysis",
		})
		assert.True(t, res.IsError)
		assert.Contains(t, textContent(t, res), "ranking failed")
	})
}

func TestMCPServerHandlers_HappyPath(t *testing.T) {
	s := mcp_internal.NewMCPServer(baseConfig())
	recordsPath := recordsFixture(t)

	t.Run("extract_feature_importance", func(t *testing.T) {
		res := callTool(t, s, "extract_feature_importance", map[string]any{
			"records_path": recordsPath,
			"limit":        5.0,
		})
		assert.False(t, res.IsError)

		var report schema.ImportanceReport
		require.NoError(t, json.Unmarshal([]byte(textContent(t, res)), &report))
		assert.Equal(t, "thematic_value", report.TargetField)
		assert.NotEmpty(t, report.TopFeatures)
		assert.LessOrEqual(t, len(report.TopFeatures), 5)
	})

	t.Run("synthesize_formula", func(t *testing.T) {
		res := callTool(t, s, "synthesize_formula", map[string]any{
			"records_path":  recordsPath,
			"analysis_type": "competitive_analysis",
		})
		assert.False(t, res.IsError)

		var formula schema.CompositeScoreFormula
		require.NoError(t, json.Unmarshal([]byte(textContent(t, res)), &formula))
		assert.Equal(t, schema.CompetitiveAnalysis, formula.AnalysisType)
		assert.InDelta(t, 1.0, formula.WeightSum(), 0.001)
	})

	t.Run("validate_algorithms", func(t *testing.T) {
		res := callTool(t, s, "validate_algorithms", map[string]any{
			"records_path": recordsPath,
			"analysis":     fmt.Sprintf("%s,%s", schema.CompetitiveAnalysis, schema.GeneralAnalysis),
		})
		assert.False(t, res.IsError)

		var report schema.ValidationReport
		require.NoError(t, json.Unmarshal([]byte(textContent(t, res)), &report))
		assert.Equal(t, 2, report.TotalAlgorithms)
	})
}
