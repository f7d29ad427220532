//go:build basic || database

package integration

import (
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"testing"
)

var (
	// sharedScoresmithPath holds the path to a shared scoresmith binary built once for all tests.
	sharedScoresmithPath string

	// buildOnce ensures we only build the binary once.
	buildOnce sync.Once

	// buildMutex protects the shared binary path.
	buildMutex sync.Mutex

	// tempDir holds the temp directory for cleanup.
	tempDir string
)

// TestMain handles setup and cleanup for all integration tests.
func TestMain(m *testing.M) {
	// Run all tests
	code := m.Run()

	// Cleanup the shared binary after all tests
	if tempDir != "" {
		_ = os.RemoveAll(tempDir)
	}

	os.Exit(code)
}

// getScoresmithBinary returns the path to the scoresmith binary, building it once if needed.
func getScoresmithBinary() string {
	buildMutex.Lock()
	defer buildMutex.Unlock()

	buildOnce.Do(func() {
		// Create a temp directory for the binary
		var err error
		tempDir, err = os.MkdirTemp("", "scoresmith-integration-*")
		if err != nil {
			panic(fmt.Sprintf("failed to create temp dir: %v", err))
		}

		scoresmithPath := filepath.Join(tempDir, "scoresmith")
		buildCmd := exec.Command("go", "build", "-o", scoresmithPath, "./cmd/scoresmith")
		buildCmd.Dir = ".." // Build from parent directory (project root)
		err = buildCmd.Run()
		if err != nil {
			panic(fmt.Sprintf("failed to build scoresmith: %v", err))
		}

		sharedScoresmithPath = scoresmithPath
	})

	return sharedScoresmithPath
}

// writeSnapshot writes an enveloped records snapshot with enough correlated
// numeric fields to synthesize formulas end to end.
func writeSnapshot(t *testing.T) string {
	t.Helper()

	recs := make([]map[string]any, 0, 20)
	for i := 1; i <= 20; i++ {
		recs = append(recs, map[string]any{
			"OBJECTID":       i,
			"area_name":      fmt.Sprintf("ZIP %05d", 90000+i),
			"thematic_value": float64(i * 5),
			"MP10020A_B_P":   float64(i)*2.5 + float64(i%3),
			"MP10110A_B_P":   float64(i)*1.8 + float64(i%4),
			"MP30034A_B_P":   float64(i)*3.1 + float64(i%2),
			"MEDDI_CY":       30000 + float64(i)*700 + float64(i%4)*500,
			"TOTPOP_CY":      12000 + float64(i)*450 + float64(i%5)*200,
		})
	}

	payload, err := json.Marshal(map[string]any{"results": recs})
	if err != nil {
		t.Fatalf("failed to marshal snapshot: %v", err)
	}

	path := filepath.Join(t.TempDir(), "snapshot.json")
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		t.Fatalf("failed to write snapshot: %v", err)
	}
	return path
}

// runScoresmithCommand runs the shared scoresmith binary with the given args.
func runScoresmithCommand(t *testing.T, args ...string) error {
	t.Helper()

	scoresmithPath := getScoresmithBinary()
	cmd := exec.Command(scoresmithPath, args...)
	cmd.Dir = ".." // Run from project root
	output, err := cmd.CombinedOutput()
	if err != nil {
		t.Logf("Command failed: %s\nOutput: %s", cmd.String(), string(output))
		return err
	}
	return nil
}
