//go:build basic

// Package integration contains integration tests for scoresmith.
// These tests are excluded from normal test runs due to build tags.
// To run these tests: go test -tags basic ./integration
// Or use: make test-integration
package integration

import (
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestPipelineEndToEnd runs the full pipeline against a generated snapshot
// and verifies the artifacts on disk are consistent with each other.
func TestPipelineEndToEnd(t *testing.T) {
	snapshot := writeSnapshot(t)
	outDir := filepath.Join(t.TempDir(), "artifacts")

	scoresmithPath := getScoresmithBinary()
	cmd := exec.Command(scoresmithPath, "pipeline", snapshot,
		"--out-dir", outDir,
		"--analysis", "competitive_analysis,analyze",
		"--store-backend", "none")
	cmd.Dir = ".."
	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "pipeline failed: %s", string(output))

	// Every artifact must exist and be non-empty.
	for _, name := range []string{
		"feature_importance.json",
		"scored_features.json",
		"formulas.json",
		"validation_report.json",
	} {
		info, err := os.Stat(filepath.Join(outDir, name))
		require.NoError(t, err, "artifact %s should exist", name)
		assert.Greater(t, info.Size(), int64(0))
	}

	// Formula weights must sum to 1 and reference fields from the snapshot.
	content, err := os.ReadFile(filepath.Join(outDir, "formulas.json"))
	require.NoError(t, err)

	var formulas []struct {
		AnalysisType string `json:"analysis_type"`
		Components   []struct {
			FieldName string  `json:"field_name"`
			Weight    float64 `json:"weight"`
		} `json:"components"`
	}
	require.NoError(t, json.Unmarshal(content, &formulas))
	require.Len(t, formulas, 2)

	for _, f := range formulas {
		var sum float64
		for _, c := range f.Components {
			assert.NotEmpty(t, c.FieldName)
			sum += c.Weight
		}
		assert.InDelta(t, 1.0, sum, 0.001, "weights for %s should sum to 1", f.AnalysisType)
	}

	// The validation report must cover both analysis types.
	content, err = os.ReadFile(filepath.Join(outDir, "validation_report.json"))
	require.NoError(t, err)

	var report struct {
		TotalAlgorithms int `json:"total_algorithms"`
	}
	require.NoError(t, json.Unmarshal(content, &report))
	assert.Equal(t, 2, report.TotalAlgorithms)
}

// TestExtractCSVOutput verifies the extract command writes parseable CSV.
func TestExtractCSVOutput(t *testing.T) {
	snapshot := writeSnapshot(t)
	csvPath := filepath.Join(t.TempDir(), "importance.csv")

	scoresmithPath := getScoresmithBinary()
	cmd := exec.Command(scoresmithPath, "extract", snapshot,
		"--output", "csv",
		"--output-file", csvPath,
		"--store-backend", "none")
	cmd.Dir = ".."
	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "extract failed: %s", string(output))

	content, err := os.ReadFile(csvPath)
	require.NoError(t, err)
	assert.Contains(t, string(content), "rank,field,importance")
	assert.Contains(t, string(content), "MP10020A_B_P")
}
