package core

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/quantgeo/scoresmith/internal/contract"
	"github.com/quantgeo/scoresmith/internal/runstore"
)

// Pipeline artifact file names, written under --out-dir.
const (
	ImportanceArtifact = "feature_importance.json"
	ScoredArtifact     = "scored_features.json"
	FormulasArtifact   = "formulas.json"
	ValidationArtifact = "validation_report.json"
)

// ExecutePipeline runs the full generation pass and writes all four stage
// artifacts as JSON files under cfg.OutDir. It serves as the main entry point
// for the 'pipeline' command.
func ExecutePipeline(ctx context.Context, cfg *contract.Config) error {
	start := time.Now()
	if cfg.OutDir == "" {
		return errors.New("an output directory is required, use --out-dir")
	}

	output, report, err := GetValidationResults(ctx, cfg)
	if err != nil {
		return err
	}
	recordRun(runstore.GetStore(), start, cfg, output, &report)

	if err := os.MkdirAll(cfg.OutDir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	artifacts := []struct {
		name string
		data any
	}{
		{ImportanceArtifact, output.Report},
		{ScoredArtifact, output.Scored},
		{FormulasArtifact, output.Formulas},
		{ValidationArtifact, report},
	}
	for _, artifact := range artifacts {
		path := filepath.Join(cfg.OutDir, artifact.name)
		if err := writeArtifact(path, artifact.data); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "💾 Wrote %s\n", path)
	}

	fmt.Printf("Pipeline complete: %d features, %d formulas, %d/%d valid in %v\n",
		output.Report.TotalFeatures, len(output.Formulas),
		report.ValidAlgorithms, report.TotalAlgorithms, time.Since(start))
	return nil
}

// writeArtifact serializes one pipeline artifact as indented JSON.
func writeArtifact(path string, data any) error {
	encoded, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", filepath.Base(path), err)
	}
	if err := os.WriteFile(path, append(encoded, '\n'), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	return nil
}
