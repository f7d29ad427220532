package core

import (
	"testing"

	"github.com/quantgeo/scoresmith/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFieldRelevance(t *testing.T) {
	profiles := schema.DefaultProfiles()
	competitive := profiles[schema.CompetitiveAnalysis]

	tests := []struct {
		name  string
		field string
		want  float64
	}{
		// 1 of 4 patterns (mp10) plus the mp10 prefix bonus of 0.3.
		{"pattern plus bonus", "MP10020A_B_P", 0.25 + 0.3},
		// No pattern match: floor.
		{"unmatched field", "MEDDI_CY", RelevanceFloor},
		// Contains "share": 1 of 4 patterns, below floor, floored.
		{"single pattern below floor", "MARKET_SHARE_IDX", RelevanceFloor},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, fieldRelevance(tt.field, competitive), 1e-9)
		})
	}
}

func TestFieldRelevanceClampedToOne(t *testing.T) {
	competitive := schema.DefaultProfiles()[schema.CompetitiveAnalysis]
	// Matches all four patterns (1.0) plus the mp10 prefix bonus.
	rel := fieldRelevance("mp10_share_brand_penetration", competitive)
	assert.Equal(t, 1.0, rel)
}

func TestScoreForAnalysisWeightsAndOrder(t *testing.T) {
	scorer := NewScorer(schema.DefaultProfiles())
	ranked := []schema.FeatureImportance{
		{FieldName: "MEDDI_CY", Importance: 0.9},     // floor relevance 0.5 -> 0.45
		{FieldName: "MP10020A_B_P", Importance: 0.7}, // relevance 0.55 -> 0.385
		{FieldName: "BRAND_PREF", Importance: 0.6},   // 1/4 patterns, floored to 0.5 -> 0.3
	}

	scored := scorer.ScoreForAnalysis(ranked, schema.CompetitiveAnalysis, 10)
	require.Len(t, scored, 3)

	assert.Equal(t, "MEDDI_CY", scored[0].Field)
	assert.InDelta(t, 0.45, scored[0].WeightedScore, 1e-9)
	assert.Equal(t, "MP10020A_B_P", scored[1].Field)
	assert.InDelta(t, 0.7*0.55, scored[1].WeightedScore, 1e-9)

	for _, sf := range scored {
		assert.InDelta(t, sf.Importance*sf.Relevance, sf.WeightedScore, 1e-9)
		assert.Greater(t, sf.Relevance, RelevanceGate)
	}
}

func TestScoreForAnalysisLimit(t *testing.T) {
	scorer := NewScorer(schema.DefaultProfiles())
	ranked := make([]schema.FeatureImportance, 0, 10)
	for i := range 10 {
		ranked = append(ranked, schema.FeatureImportance{
			FieldName:  string(rune('A' + i)),
			Importance: 1.0 - float64(i)*0.05,
		})
	}

	scored := scorer.ScoreForAnalysis(ranked, schema.StrategicAnalysis, 4)
	assert.Len(t, scored, 4)
}

func TestScoreForAnalysisTieKeepsImportanceOrder(t *testing.T) {
	scorer := NewScorer(schema.DefaultProfiles())
	// Same importance, both at floor relevance: the earlier entry stays first.
	ranked := []schema.FeatureImportance{
		{FieldName: "FIRST_FIELD", Importance: 0.8},
		{FieldName: "SECOND_FIELD", Importance: 0.8},
	}

	scored := scorer.ScoreForAnalysis(ranked, schema.ConsensusAnalysis, 10)
	require.Len(t, scored, 2)
	assert.Equal(t, "FIRST_FIELD", scored[0].Field)
}

func TestScoreForAnalysisUnknownTypeFallsBack(t *testing.T) {
	scorer := NewScorer(schema.DefaultProfiles())
	ranked := []schema.FeatureImportance{
		{FieldName: "MP10020A_B_P", Importance: 0.9},
	}

	scored := scorer.ScoreForAnalysis(ranked, "mystery_analysis", 10)
	require.Len(t, scored, 1)
	// Fallback profile has no patterns or bonuses: everything sits at the floor.
	assert.Equal(t, RelevanceFloor, scored[0].Relevance)
}
