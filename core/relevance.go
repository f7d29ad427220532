package core

import (
	"fmt"
	"sort"
	"strings"

	"github.com/quantgeo/scoresmith/internal/contract"
	"github.com/quantgeo/scoresmith/schema"
)

// Relevance constants.
const (
	// RelevanceFloor is the minimum relevance any field receives. Every
	// numeric field carries at least weak business signal, so statistical
	// importance is never zeroed out entirely by a pattern miss.
	RelevanceFloor = 0.5

	// RelevanceGate is the minimum relevance a field must exceed to stay in
	// the candidate list. It only bites when a profile override lowers the
	// floor below it.
	RelevanceGate = 0.2
)

// Scorer blends statistical importance with per-analysis-type business
// relevance. Profiles are injected at construction so that config-file
// overrides and tests can swap the table without touching the scorer.
type Scorer struct {
	profiles map[schema.AnalysisType]schema.RelevanceProfile
}

// NewScorer returns a Scorer over the given profile table.
func NewScorer(profiles map[schema.AnalysisType]schema.RelevanceProfile) *Scorer {
	return &Scorer{profiles: profiles}
}

// ScoreForAnalysis scores each ranked feature for one analysis type and
// returns the top candidates by weighted score. Input order is preserved for
// equal weighted scores, so earlier (more important) features win ties.
func (s *Scorer) ScoreForAnalysis(ranked []schema.FeatureImportance, analysisType schema.AnalysisType, limit int) []schema.ScoredFeature {
	profile := profileFor(s.profiles, analysisType)

	scored := make([]schema.ScoredFeature, 0, len(ranked))
	for _, fi := range ranked {
		relevance := fieldRelevance(fi.FieldName, profile)
		if relevance <= RelevanceGate {
			continue
		}
		scored = append(scored, schema.ScoredFeature{
			Field:         fi.FieldName,
			Importance:    fi.Importance,
			Relevance:     relevance,
			WeightedScore: fi.Importance * relevance,
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].WeightedScore > scored[j].WeightedScore
	})
	if limit > 0 && len(scored) > limit {
		scored = scored[:limit]
	}
	return scored
}

// fieldRelevance computes how relevant a field name is to the profile:
// the fraction of keyword patterns matched as substrings, plus any prefix
// bonuses, floored and clamped to [RelevanceFloor, 1].
func fieldRelevance(field string, profile schema.RelevanceProfile) float64 {
	lower := strings.ToLower(field)

	var relevance float64
	if len(profile.KeywordPatterns) > 0 {
		matched := 0
		for _, pattern := range profile.KeywordPatterns {
			if strings.Contains(lower, pattern) {
				matched++
			}
		}
		relevance = float64(matched) / float64(len(profile.KeywordPatterns))
	}

	for prefix, bonus := range profile.SpecificBonuses {
		if strings.HasPrefix(lower, prefix) {
			relevance += bonus
		}
	}

	if relevance < RelevanceFloor {
		relevance = RelevanceFloor
	}
	return schema.Clamp(relevance, 0, 1)
}

// profileFor resolves the profile for an analysis type, falling back to the
// explicit low-confidence fallback profile for unrecognized types.
func profileFor(profiles map[schema.AnalysisType]schema.RelevanceProfile, at schema.AnalysisType) schema.RelevanceProfile {
	if profile, ok := profiles[at]; ok {
		return profile
	}
	contract.LogWarn(fmt.Sprintf("no relevance profile for analysis type %q, using fallback", at), nil)
	return schema.FallbackProfile(at)
}
