package outwriter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/quantgeo/scoresmith/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateFormatters(t *testing.T) {
	tests := []struct {
		name      string
		precision int
		value     float64
		expected  string
	}{
		{
			name:      "precision 2",
			precision: 2,
			value:     0.34159,
			expected:  "0.34",
		},
		{
			name:      "precision 0",
			precision: 0,
			value:     0.74159,
			expected:  "1",
		},
		{
			name:      "precision 4",
			precision: 4,
			value:     0.31459,
			expected:  "0.3146",
		},
		{
			name:      "negative value",
			precision: 2,
			value:     -0.567,
			expected:  "-0.57",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fmtFloat, intFmt := createFormatters(tt.precision)
			assert.Equal(t, tt.expected, fmtFloat(tt.value))
			assert.Equal(t, "%d", intFmt)
		})
	}
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	err := writeJSON(&buf, map[string]any{"name": "test", "value": 42})
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"name\": \"test\",\n  \"value\": 42\n}\n", buf.String())
}

func TestWriteJSONError(t *testing.T) {
	invalidData := make(chan int)
	var buf bytes.Buffer
	err := writeJSON(&buf, invalidData)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to encode JSON")
}

func TestWriteCSVWithHeader(t *testing.T) {
	var buf bytes.Buffer
	err := writeCSVWithHeader(&buf, []string{"field", "score"}, func(w *csv.Writer) error {
		return w.Write([]string{"MEDDI_CY", "0.42"})
	})
	require.NoError(t, err)
	assert.Equal(t, "field,score\nMEDDI_CY,0.42\n", buf.String())
}

func TestWriteCSVWithHeaderError(t *testing.T) {
	var buf bytes.Buffer
	err := writeCSVWithHeader(&buf, []string{"col"}, func(*csv.Writer) error {
		return assert.AnError
	})
	require.Error(t, err)
	assert.Equal(t, assert.AnError, err)
}

func TestWriteWithFileStdout(t *testing.T) {
	called := false
	err := writeWithFile("", func(w io.Writer) error {
		called = true
		_, err := w.Write([]byte("test"))
		return err
	}, "Test message")

	require.NoError(t, err)
	assert.True(t, called, "Writer function should have been called")
}

func TestWriteWithFileActualFile(t *testing.T) {
	tmpFile := filepath.Join(t.TempDir(), "test.txt")

	testContent := "test content"
	err := writeWithFile(tmpFile, func(w io.Writer) error {
		_, err := w.Write([]byte(testContent))
		return err
	}, "Test message")
	require.NoError(t, err)

	content, err := os.ReadFile(tmpFile)
	require.NoError(t, err)
	assert.Equal(t, testContent, string(content))
}

func TestWriteWithFileError(t *testing.T) {
	tmpFile := filepath.Join(t.TempDir(), "test.txt")

	err := writeWithFile(tmpFile, func(io.Writer) error {
		return assert.AnError
	}, "Test message")

	require.Error(t, err)
	assert.Equal(t, assert.AnError, err)
}

func TestWriteWithFileInvalidPath(t *testing.T) {
	err := writeWithFile("/nonexistent/path/file.txt", func(io.Writer) error {
		return nil
	}, "Test message")
	require.Error(t, err)
}

func TestWriteJSONIntegration(t *testing.T) {
	tmpFile := filepath.Join(t.TempDir(), "test.json")

	testData := map[string]any{
		"target_field": "thematic_value",
		"count":        123,
	}

	err := writeWithFile(tmpFile, func(w io.Writer) error {
		return writeJSON(w, testData)
	}, "Wrote JSON")
	require.NoError(t, err)

	content, err := os.ReadFile(tmpFile)
	require.NoError(t, err)

	var result map[string]any
	err = json.Unmarshal(content, &result)
	require.NoError(t, err)

	assert.Equal(t, "thematic_value", result["target_field"])
	assert.Equal(t, float64(123), result["count"]) // JSON numbers are float64
}

func TestFormatFormula(t *testing.T) {
	formula := &schema.CompositeScoreFormula{
		AnalysisType: schema.CompetitiveAnalysis,
		Components: []schema.FormulaComponent{
			{FieldName: "MP10020A_B_P", Weight: 0.45},
			{FieldName: "MEDDI_CY", Weight: 0.35},
			{FieldName: "TOTPOP_CY", Weight: 0.2},
		},
	}

	result := formatFormula(formula)
	assert.Equal(t, "0.45*MP10020A_B_P + 0.35*MEDDI_CY + 0.20*TOTPOP_CY", result)
}

func TestFormatFormulaSingleComponent(t *testing.T) {
	formula := &schema.CompositeScoreFormula{
		Components: []schema.FormulaComponent{
			{FieldName: "MP10020A_B_P", Weight: 1.0},
		},
	}
	assert.Equal(t, "1.00*MP10020A_B_P", formatFormula(formula))
}

func TestFormatFormulaEmpty(t *testing.T) {
	formula := &schema.CompositeScoreFormula{}
	assert.Empty(t, formatFormula(formula))
}

func TestSplitCSVLines(t *testing.T) {
	// Guard for the helper shared by the writer tests below.
	lines := splitCSVLines("a,b\nc,d\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "a,b", lines[0])
}

// splitCSVLines trims and splits buffered CSV output into lines.
func splitCSVLines(s string) []string {
	return strings.Split(strings.TrimSpace(s), "\n")
}
