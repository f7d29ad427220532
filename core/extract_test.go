package core

import (
	"testing"

	"github.com/quantgeo/scoresmith/internal/contract"
	"github.com/quantgeo/scoresmith/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sampleRecords builds 20 records with a strongly correlated percentage
// field, a correlated raw count shadowed by its percentage variant, a
// correlated economic field, a constant field, a deny-listed identifier, and
// a field too sparse to correlate.
func sampleRecords() []schema.Record {
	recs := make([]schema.Record, 0, 20)
	for i := 1; i <= 20; i++ {
		rec := schema.Record{
			"thematic_value": float64(i * 5),
			"MP10020A_B_P":   float64(i*5)/2 + float64(i%3),
			"MP10020A_B":     float64(i * 1000),
			"MEDDI_CY":       float64(30000 + i*700 + (i%4)*500),
			"CONSTANT":       7.0,
			"OBJECTID":       float64(i),
		}
		if i <= 5 {
			rec["SPARSE"] = float64(i)
		}
		recs = append(recs, rec)
	}
	return recs
}

func TestExtractRankedImportances(t *testing.T) {
	ex := NewExtractor(contract.DefaultExcludeFields)
	report, err := ex.Extract(sampleRecords(), "thematic_value")
	require.NoError(t, err)

	assert.Equal(t, "thematic_value", report.TargetField)
	assert.Equal(t, len(report.TopFeatures), report.TotalFeatures)

	fields := make(map[string]float64)
	for _, fi := range report.TopFeatures {
		fields[fi.FieldName] = fi.Importance
	}

	assert.Contains(t, fields, "MP10020A_B_P")
	assert.Contains(t, fields, "MEDDI_CY")
	assert.Greater(t, fields["MP10020A_B_P"], 0.95)

	// The raw count is shadowed by its percentage variant.
	assert.NotContains(t, fields, "MP10020A_B")
	// Constant columns have no variance and must not survive.
	assert.NotContains(t, fields, "CONSTANT")
	// Identifiers are deny-listed regardless of correlation.
	assert.NotContains(t, fields, "OBJECTID")
	// Fewer than MinValidPairs observations means no trusted signal.
	assert.NotContains(t, fields, "SPARSE")
	// The target never scores itself.
	assert.NotContains(t, fields, "thematic_value")
}

func TestExtractSortedDescending(t *testing.T) {
	ex := NewExtractor(contract.DefaultExcludeFields)
	report, err := ex.Extract(sampleRecords(), "thematic_value")
	require.NoError(t, err)
	require.NotEmpty(t, report.TopFeatures)

	for i := 1; i < len(report.TopFeatures); i++ {
		prev, cur := report.TopFeatures[i-1], report.TopFeatures[i]
		assert.GreaterOrEqual(t, prev.Importance, cur.Importance)
	}
}

func TestExtractDistributionStats(t *testing.T) {
	ex := NewExtractor(contract.DefaultExcludeFields)
	report, err := ex.Extract(sampleRecords(), "thematic_value")
	require.NoError(t, err)
	require.NotEmpty(t, report.TopFeatures)

	d := report.Distribution
	assert.GreaterOrEqual(t, d.Min, NoiseFloor)
	assert.LessOrEqual(t, d.Max, 1.0)
	assert.GreaterOrEqual(t, d.Mean, d.Min)
	assert.LessOrEqual(t, d.Mean, d.Max)
	assert.GreaterOrEqual(t, d.Q75, d.Q25)
	assert.GreaterOrEqual(t, d.Median, d.Q25)
	assert.LessOrEqual(t, d.Median, d.Q75)
}

func TestExtractDegenerateInputs(t *testing.T) {
	ex := NewExtractor(nil)

	report, err := ex.Extract(nil, "thematic_value")
	require.NoError(t, err)
	assert.Zero(t, report.TotalFeatures)
	assert.Empty(t, report.TopFeatures)

	// Target absent from every record: nothing can pair with it.
	report, err = ex.Extract([]schema.Record{
		{"a": 1.0}, {"a": 2.0},
	}, "thematic_value")
	require.NoError(t, err)
	assert.Empty(t, report.TopFeatures)
}

func TestExtractSkipsZeroAndNullValues(t *testing.T) {
	// 12 records where half of one field's values are suppression zeros:
	// only 6 valid pairs remain, below the MinValidPairs threshold.
	recs := make([]schema.Record, 0, 12)
	for i := 1; i <= 12; i++ {
		v := float64(i)
		if i%2 == 0 {
			v = 0
		}
		recs = append(recs, schema.Record{
			"thematic_value": float64(i),
			"HALF_ZERO":      v,
		})
	}

	ex := NewExtractor(nil)
	report, err := ex.Extract(recs, "thematic_value")
	require.NoError(t, err)
	assert.Empty(t, report.TopFeatures)
}

func TestExtractUnionSchemaScan(t *testing.T) {
	// A field absent from the first record must still be discovered.
	recs := make([]schema.Record, 0, 15)
	recs = append(recs, schema.Record{"thematic_value": 1.0})
	for i := 2; i <= 15; i++ {
		recs = append(recs, schema.Record{
			"thematic_value": float64(i),
			"LATE_FIELD":     float64(i * 2),
		})
	}

	ex := NewExtractor(nil)
	report, err := ex.Extract(recs, "thematic_value")
	require.NoError(t, err)
	require.Len(t, report.TopFeatures, 1)
	assert.Equal(t, "LATE_FIELD", report.TopFeatures[0].FieldName)
}

func TestExtractKeepsFieldWithSentinelValues(t *testing.T) {
	// One "N/A" sentinel among 19 strongly correlated numeric values must not
	// disqualify the field: classification needs one parseable value, and the
	// pair gathering skips the sentinel.
	recs := make([]schema.Record, 0, 20)
	for i := 1; i <= 20; i++ {
		rec := schema.Record{
			"thematic_value": float64(i * 5),
			"MIXED":          float64(i * 2),
		}
		if i == 1 {
			rec["MIXED"] = "N/A"
		}
		recs = append(recs, rec)
	}

	ex := NewExtractor(nil)
	report, err := ex.Extract(recs, "thematic_value")
	require.NoError(t, err)

	fields := make(map[string]float64)
	for _, fi := range report.TopFeatures {
		fields[fi.FieldName] = fi.Importance
	}
	require.Contains(t, fields, "MIXED")
	assert.Greater(t, fields["MIXED"], 0.95)
}

func TestExtractIgnoresTextFields(t *testing.T) {
	recs := make([]schema.Record, 0, 15)
	for i := 1; i <= 15; i++ {
		recs = append(recs, schema.Record{
			"thematic_value": float64(i),
			"CITY":           "Springfield",
			"NUMERIC_STRING": "42.5", // numeric strings still count
		})
	}

	ex := NewExtractor(nil)
	report, err := ex.Extract(recs, "thematic_value")
	require.NoError(t, err)

	for _, fi := range report.TopFeatures {
		assert.NotEqual(t, "CITY", fi.FieldName)
	}
}
