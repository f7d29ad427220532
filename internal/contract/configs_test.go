package contract

import (
	"testing"

	"github.com/quantgeo/scoresmith/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func baseRawInput() *ConfigRawInput {
	return &ConfigRawInput{
		RecordsPathStr: "records.json",
		Target:         "thematic_value",
		Analysis:       "all",
		Limit:          DefaultCandidateLimit,
		Precision:      DefaultPrecision,
		Output:         "text",
		StoreBackend:   "sqlite",
		Color:          "yes",
	}
}

// TestProcessAndValidateDefaults checks the happy path with default inputs.
func TestProcessAndValidateDefaults(t *testing.T) {
	cfg := &Config{}
	require.NoError(t, ProcessAndValidate(cfg, baseRawInput()))

	assert.Equal(t, "records.json", cfg.RecordsPath)
	assert.Equal(t, DefaultTargetField, cfg.TargetField)
	assert.Len(t, cfg.AnalysisTypes, len(schema.AllAnalysisTypes))
	assert.Len(t, cfg.Profiles, len(schema.AllAnalysisTypes))
	assert.Equal(t, schema.SQLiteBackend, cfg.StoreBackend)
	assert.True(t, cfg.UseColors)
	assert.Contains(t, cfg.ExcludeFields, "OBJECTID")
}

// TestProcessAndValidateRejectsBadInputs covers the scalar validation paths.
func TestProcessAndValidateRejectsBadInputs(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*ConfigRawInput)
	}{
		{"zero limit", func(in *ConfigRawInput) { in.Limit = 0 }},
		{"huge limit", func(in *ConfigRawInput) { in.Limit = MaxCandidateLimit + 1 }},
		{"negative precision", func(in *ConfigRawInput) { in.Precision = -1 }},
		{"excess precision", func(in *ConfigRawInput) { in.Precision = MaxPrecision + 1 }},
		{"bad output", func(in *ConfigRawInput) { in.Output = "xml" }},
		{"bad backend", func(in *ConfigRawInput) { in.StoreBackend = "oracle" }},
		{"bad color", func(in *ConfigRawInput) { in.Color = "maybe" }},
		{"mysql without conn", func(in *ConfigRawInput) { in.StoreBackend = "mysql" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := baseRawInput()
			tt.mutate(in)
			assert.Error(t, ProcessAndValidate(&Config{}, in))
		})
	}
}

// TestAnalysisTypeSelector covers explicit, comma-separated and unknown selectors.
func TestAnalysisTypeSelector(t *testing.T) {
	in := baseRawInput()
	in.Analysis = "competitive_analysis, demographic_insights"
	cfg := &Config{}
	require.NoError(t, ProcessAndValidate(cfg, in))
	assert.Equal(t, []schema.AnalysisType{
		schema.CompetitiveAnalysis,
		schema.DemographicInsights,
	}, cfg.AnalysisTypes)

	// Unknown types stay in the list; the scorer maps them to the fallback profile.
	in = baseRawInput()
	in.Analysis = "mystery_analysis"
	cfg = &Config{}
	require.NoError(t, ProcessAndValidate(cfg, in))
	assert.Equal(t, []schema.AnalysisType{"mystery_analysis"}, cfg.AnalysisTypes)
}

// TestProfileOverrides verifies config-file overrides land on the active table.
func TestProfileOverrides(t *testing.T) {
	minOverride := 4
	in := baseRawInput()
	in.Profiles = map[string]ProfileRawInput{
		"competitive_analysis": {
			Patterns:      []string{"MP10", "Share"},
			Bonuses:       map[string]float64{"MP10": 0.4},
			MinComponents: &minOverride,
		},
	}

	cfg := &Config{}
	require.NoError(t, ProcessAndValidate(cfg, in))

	p := cfg.Profiles[schema.CompetitiveAnalysis]
	assert.Equal(t, []string{"mp10", "share"}, p.KeywordPatterns)
	assert.Equal(t, 0.4, p.SpecificBonuses["mp10"])
	assert.Equal(t, 4, p.MinComponents)

	// Untouched profiles keep their defaults.
	assert.NotEmpty(t, cfg.Profiles[schema.DemographicInsights].KeywordPatterns)
}

// TestProfileOverrideValidation covers the override error paths.
func TestProfileOverrideValidation(t *testing.T) {
	badBonus := baseRawInput()
	badBonus.Profiles = map[string]ProfileRawInput{
		"competitive_analysis": {Bonuses: map[string]float64{"mp10": 1.5}},
	}
	assert.Error(t, ProcessAndValidate(&Config{}, badBonus))

	badBounds := baseRawInput()
	minC, maxC := 6, 2
	badBounds.Profiles = map[string]ProfileRawInput{
		"competitive_analysis": {MinComponents: &minC, MaxComponents: &maxC},
	}
	assert.Error(t, ProcessAndValidate(&Config{}, badBounds))

	badFieldType := baseRawInput()
	badFieldType.Profiles = map[string]ProfileRawInput{
		"competitive_analysis": {RequiredFieldTypes: []string{"astrology_data"}},
	}
	assert.Error(t, ProcessAndValidate(&Config{}, badFieldType))
}

// TestConfigClone ensures Clone produces an independent copy.
func TestConfigClone(t *testing.T) {
	cfg := &Config{}
	require.NoError(t, ProcessAndValidate(cfg, baseRawInput()))

	clone := cfg.Clone()
	clone.AnalysisTypes[0] = "mutated"
	clone.ExcludeFields[0] = "mutated"
	delete(clone.Profiles, schema.CompetitiveAnalysis)

	assert.NotEqual(t, cfg.AnalysisTypes[0], clone.AnalysisTypes[0])
	assert.NotEqual(t, cfg.ExcludeFields[0], clone.ExcludeFields[0])
	assert.Contains(t, cfg.Profiles, schema.CompetitiveAnalysis)
}

// TestTruncateField checks width handling including the degenerate small widths.
func TestTruncateField(t *testing.T) {
	assert.Equal(t, "MP10020A_B_P", TruncateField("MP10020A_B_P", 40))
	assert.Equal(t, "MP10020...", TruncateField("MP10020A_B_P", 10))
	assert.Equal(t, "MP10020A_B_P", TruncateField("MP10020A_B_P", 3))
}
