package core

import (
	"fmt"

	"github.com/quantgeo/scoresmith/schema"
)

// InsufficientSignalError reports that an analysis type did not have enough
// surviving candidate fields to synthesize a formula. Callers running a batch
// treat it as a per-type skip rather than a pipeline failure.
type InsufficientSignalError struct {
	AnalysisType schema.AnalysisType
	Required     int
	Available    int
}

func (e *InsufficientSignalError) Error() string {
	return fmt.Sprintf("analysis type %s: %d candidate fields available, %d required",
		e.AnalysisType, e.Available, e.Required)
}

// Synthesizer turns scored candidate fields into a composite score formula
// with weights normalized to sum to 1.
type Synthesizer struct {
	profiles map[schema.AnalysisType]schema.RelevanceProfile
}

// NewSynthesizer returns a Synthesizer over the given profile table.
func NewSynthesizer(profiles map[schema.AnalysisType]schema.RelevanceProfile) *Synthesizer {
	return &Synthesizer{profiles: profiles}
}

// Synthesize builds the formula for one analysis type from its scored
// candidates. The component count is the number of candidates clamped to the
// profile's [MinComponents, MaxComponents]; fewer candidates than the minimum
// is an *InsufficientSignalError. Weights are each candidate's weighted score
// divided by the retained total, so they sum to 1 within float tolerance.
func (s *Synthesizer) Synthesize(scored []schema.ScoredFeature, analysisType schema.AnalysisType) (*schema.CompositeScoreFormula, error) {
	profile := profileFor(s.profiles, analysisType)

	if len(scored) < profile.MinComponents {
		return nil, &InsufficientSignalError{
			AnalysisType: analysisType,
			Required:     profile.MinComponents,
			Available:    len(scored),
		}
	}

	n := len(scored)
	if n > profile.MaxComponents {
		n = profile.MaxComponents
	}
	retained := scored[:n]

	var total float64
	for _, sf := range retained {
		total += sf.WeightedScore
	}

	components := make([]schema.FormulaComponent, n)
	for i, sf := range retained {
		weight := 1.0 / float64(n) // all-zero signal degrades to equal weights
		if total > 0 {
			weight = sf.WeightedScore / total
		}
		components[i] = schema.FormulaComponent{
			FieldName: sf.Field,
			Weight:    weight,
		}
	}

	return &schema.CompositeScoreFormula{
		AnalysisType: analysisType,
		Components:   components,
	}, nil
}
