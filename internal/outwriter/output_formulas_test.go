package outwriter

import (
	"bytes"
	"testing"
	"time"

	"github.com/quantgeo/scoresmith/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleFormulas() []schema.CompositeScoreFormula {
	return []schema.CompositeScoreFormula{
		{
			AnalysisType: schema.CompetitiveAnalysis,
			Components: []schema.FormulaComponent{
				{FieldName: "MP10020A_B_P", Weight: 0.45},
				{FieldName: "MP30034A_B_P", Weight: 0.35},
				{FieldName: "MEDDI_CY", Weight: 0.2},
			},
		},
		{
			AnalysisType: schema.DemographicInsights,
			Components: []schema.FormulaComponent{
				{FieldName: "TOTPOP_CY", Weight: 0.6},
				{FieldName: "MEDAGE_CY", Weight: 0.4},
			},
		},
	}
}

func TestWriteFormulasTable(t *testing.T) {
	var buf bytes.Buffer
	err := writeFormulasTable(&buf, sampleFormulas(), 200*time.Millisecond)
	require.NoError(t, err)

	output := buf.String()
	assert.Contains(t, output, "competitive_analysis")
	assert.Contains(t, output, "demographic_insights")
	assert.Contains(t, output, "0.45*MP10020A_B_P")
	assert.Contains(t, output, "Synthesized 2 formulas in 200ms")
}

func TestWriteFormulasCSV(t *testing.T) {
	fmtFloat, _ := createFormatters(2)

	var buf bytes.Buffer
	err := writeFormulasCSV(&buf, sampleFormulas(), fmtFloat)
	require.NoError(t, err)

	lines := splitCSVLines(buf.String())
	require.Len(t, lines, 6) // header + 3 + 2 component rows

	assert.Contains(t, lines[0], "component_rank")
	assert.Contains(t, lines[1], "competitive_analysis,1,MP10020A_B_P,0.45")
	assert.Contains(t, lines[4], "demographic_insights,1,TOTPOP_CY,0.60")
}

func TestWriteFormulasCSVEmpty(t *testing.T) {
	fmtFloat, _ := createFormatters(2)

	var buf bytes.Buffer
	err := writeFormulasCSV(&buf, nil, fmtFloat)
	require.NoError(t, err)

	lines := splitCSVLines(buf.String())
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], "analysis_type")
}
