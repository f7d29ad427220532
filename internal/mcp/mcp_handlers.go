package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/quantgeo/scoresmith/core"
	"github.com/quantgeo/scoresmith/internal/contract"
	"github.com/quantgeo/scoresmith/schema"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
}

// requestConfig clones the base config and applies the shared request
// parameters (records_path, target, limit).
func (h *toolHandler) requestConfig(request mcp.CallToolRequest) (*contract.Config, error) {
	cfg := h.baseCfg.Clone()
	if p := request.GetString("records_path", ""); p != "" {
		cfg.RecordsPath = p
	}
	if cfg.RecordsPath == "" {
		return nil, fmt.Errorf("records_path is required")
	}
	if tf := request.GetString("target", ""); tf != "" {
		cfg.TargetField = tf
	}
	if l := request.GetInt("limit", 0); l > 0 {
		if l > contract.MaxCandidateLimit {
			return nil, fmt.Errorf("limit cannot exceed %d candidate features", contract.MaxCandidateLimit)
		}
		cfg.CandidateLimit = l
	}
	return cfg, nil
}

func (h *toolHandler) handleExtractFeatureImportance(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := h.requestConfig(request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	report, _, err := core.GetImportanceResults(core.WithSuppressHeader(ctx), cfg)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("extraction failed: %v", err)), nil
	}
	report.TopFeatures = core.RankFeatures(report.TopFeatures, cfg.CandidateLimit)

	jsonData, _ := json.MarshalIndent(report, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleRankFeatures(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := h.requestConfig(request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	analysisType := schema.AnalysisType(request.GetString("analysis_type", ""))
	if analysisType == "" {
		return mcp.NewToolResultError("analysis_type is required"), nil
	}

	scored, _, err := core.GetScoredResults(core.WithSuppressHeader(ctx), cfg, analysisType)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("ranking failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(map[string]any{
		"analysis_type": analysisType,
		"features":      scored,
	}, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleSynthesizeFormula(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := h.requestConfig(request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	analysisType := schema.AnalysisType(request.GetString("analysis_type", ""))
	if analysisType == "" {
		return mcp.NewToolResultError("analysis_type is required"), nil
	}

	scored, _, err := core.GetScoredResults(core.WithSuppressHeader(ctx), cfg, analysisType)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("ranking failed: %v", err)), nil
	}
	formula, err := core.NewSynthesizer(cfg.Profiles).Synthesize(scored, analysisType)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("synthesis failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(formula, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleValidateAlgorithms(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := h.requestConfig(request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if selector := request.GetString("analysis", ""); selector != "" && selector != "all" {
		var types []schema.AnalysisType
		for _, part := range strings.Split(selector, ",") {
			part = strings.TrimSpace(part)
			if part != "" {
				types = append(types, schema.AnalysisType(part))
			}
		}
		if len(types) == 0 {
			return mcp.NewToolResultError(fmt.Sprintf("no analysis types selected from %q", selector)), nil
		}
		cfg.AnalysisTypes = types
	}
	if len(cfg.AnalysisTypes) == 0 {
		cfg.AnalysisTypes = schema.AllAnalysisTypes
	}

	_, report, err := core.GetValidationResults(core.WithSuppressHeader(ctx), cfg)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("validation failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(report, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}
