package core

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/quantgeo/scoresmith/schema"
)

// Weight distribution policy: formulas lean on a few strong signals, but a
// single dominant field or a lopsided spread is worth flagging.
const (
	maxSingleWeight    = 0.4
	maxWeightRange     = 0.3
	weightSumTolerance = 0.01
)

// Validator checks synthesized formulas for structural soundness, weight
// balance and business alignment before they are published. It never mutates
// the formulas it inspects.
type Validator struct {
	profiles map[schema.AnalysisType]schema.RelevanceProfile
}

// NewValidator returns a Validator over the given profile table.
func NewValidator(profiles map[schema.AnalysisType]schema.RelevanceProfile) *Validator {
	return &Validator{profiles: profiles}
}

// ValidateAlgorithm validates a single formula. ValidationScore is the mean
// of three sub-scores (structure, weight distribution, business alignment).
// Hard errors flip IsValid to false; everything else is advisory and only
// degrades the score. sourceFields may be nil when no source schema is
// available, which skips the schema membership check.
func (v *Validator) ValidateAlgorithm(formula *schema.CompositeScoreFormula, sourceFields []string) schema.ValidationResult {
	profile := profileFor(v.profiles, formula.AnalysisType)
	result := schema.ValidationResult{
		AnalysisType: formula.AnalysisType,
		Warnings:     []string{},
		Errors:       []string{},
	}

	structure := v.checkStructure(formula, profile, &result)
	weights := v.checkWeights(formula, &result)
	alignment := v.checkAlignment(formula, profile, &result)
	v.checkSourceSchema(formula, sourceFields, &result)
	v.checkEvaluationBounds(formula, &result)

	result.ValidationScore = (structure + weights + alignment) / 3
	result.IsValid = len(result.Errors) == 0
	return result
}

// checkStructure scores the component count against the profile bounds.
func (v *Validator) checkStructure(formula *schema.CompositeScoreFormula, profile schema.RelevanceProfile, result *schema.ValidationResult) float64 {
	n := len(formula.Components)
	switch {
	case n < profile.MinComponents:
		result.Errors = append(result.Errors,
			fmt.Sprintf("formula has %d components, minimum is %d", n, profile.MinComponents))
		return 0
	case n > profile.MaxComponents:
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("formula has %d components, above the recommended maximum of %d", n, profile.MaxComponents))
		return 0.7
	default:
		return 1.0
	}
}

// checkWeights scores the weight distribution: dominance of a single field,
// overall spread, and normalization drift.
func (v *Validator) checkWeights(formula *schema.CompositeScoreFormula, result *schema.ValidationResult) float64 {
	if len(formula.Components) == 0 {
		return 0
	}

	minW, maxW := formula.Components[0].Weight, formula.Components[0].Weight
	maxField := formula.Components[0].FieldName
	for _, c := range formula.Components[1:] {
		if c.Weight > maxW {
			maxW = c.Weight
			maxField = c.FieldName
		}
		if c.Weight < minW {
			minW = c.Weight
		}
	}

	score := 1.0
	if maxW > maxSingleWeight {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("field %s carries %.0f%% of the score, above the %.0f%% dominance threshold",
				maxField, maxW*100, maxSingleWeight*100))
		score -= 0.25
	}
	if maxW-minW > maxWeightRange {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("weight spread %.2f exceeds the balanced range of %.2f", maxW-minW, maxWeightRange))
		score -= 0.25
	}
	if sum := formula.WeightSum(); math.Abs(sum-1.0) > weightSumTolerance {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("weights sum to %.4f instead of 1.0", sum))
		score -= 0.5
	}
	if score < 0 {
		score = 0
	}
	return score
}

// checkAlignment scores how well the component fields match the profile's
// business vocabulary. Zero business-relevant fields is a hard error: a
// formula that cannot be explained in the analysis type's own terms is
// unpublishable regardless of its statistics.
func (v *Validator) checkAlignment(formula *schema.CompositeScoreFormula, profile schema.RelevanceProfile, result *schema.ValidationResult) float64 {
	n := len(formula.Components)
	if n == 0 {
		return 0
	}
	if len(profile.BusinessKeywords) == 0 {
		// Fallback profile: no vocabulary to check against.
		return 0.5
	}

	relevant := 0
	for _, c := range formula.Components {
		lower := strings.ToLower(c.FieldName)
		for _, kw := range profile.BusinessKeywords {
			if strings.Contains(lower, kw) {
				relevant++
				break
			}
		}
	}

	if relevant == 0 {
		result.Errors = append(result.Errors,
			fmt.Sprintf("no component field matches the %s business vocabulary", formula.AnalysisType))
		return 0
	}

	fraction := float64(relevant) / float64(n)
	if fraction < 0.5 {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("only %d of %d components are business-relevant for %s", relevant, n, formula.AnalysisType))
	}

	score := fraction
	for _, ft := range profile.RequiredFieldTypes {
		if !hasFieldOfType(formula, ft) {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("no component covers the required field category %q", ft))
			score -= 0.1
		}
	}
	return schema.Clamp(score, 0, 1)
}

// hasFieldOfType reports whether any component field matches the keyword set
// of the given field type category.
func hasFieldOfType(formula *schema.CompositeScoreFormula, fieldType string) bool {
	keywords := schema.FieldTypeKeywords[fieldType]
	for _, c := range formula.Components {
		lower := strings.ToLower(c.FieldName)
		for _, kw := range keywords {
			if strings.Contains(lower, kw) {
				return true
			}
		}
	}
	return false
}

// checkSourceSchema verifies every component field exists in the source
// schema. A formula referencing a nonexistent field would silently score 0
// for that component at runtime, so this is a hard error.
func (v *Validator) checkSourceSchema(formula *schema.CompositeScoreFormula, sourceFields []string, result *schema.ValidationResult) {
	if len(sourceFields) == 0 {
		return
	}
	known := make(map[string]struct{}, len(sourceFields))
	for _, f := range sourceFields {
		known[f] = struct{}{}
	}
	for _, c := range formula.Components {
		if _, ok := known[c.FieldName]; !ok {
			result.Errors = append(result.Errors,
				fmt.Sprintf("field %s is not present in the source schema", c.FieldName))
		}
	}
}

// checkEvaluationBounds probes the formula against synthetic extreme records
// and confirms the output honors the [0, 100] contract.
func (v *Validator) checkEvaluationBounds(formula *schema.CompositeScoreFormula, result *schema.ValidationResult) {
	zeroRec := make(schema.Record, len(formula.Components))
	maxRec := make(schema.Record, len(formula.Components))
	for _, c := range formula.Components {
		zeroRec[c.FieldName] = 0.0
		maxRec[c.FieldName] = 100.0
	}

	for _, probe := range []struct {
		name string
		rec  schema.Record
	}{
		{"all-zero", zeroRec},
		{"all-max", maxRec},
	} {
		score := formula.Evaluate(probe.rec, 2)
		if score < 0 || score > 100 {
			result.Errors = append(result.Errors,
				fmt.Sprintf("%s probe produced out-of-range score %.2f", probe.name, score))
		}
	}
}

// ValidateAll validates a batch of formulas and aggregates the outcomes into
// a single report with deterministic recommendations.
func (v *Validator) ValidateAll(formulas []schema.CompositeScoreFormula, sourceFields []string) schema.ValidationReport {
	report := schema.ValidationReport{
		TotalAlgorithms:        len(formulas),
		DetailedResults:        make(map[schema.AnalysisType]schema.ValidationResult, len(formulas)),
		OverallRecommendations: []string{},
	}

	var scoreSum float64
	for i := range formulas {
		result := v.ValidateAlgorithm(&formulas[i], sourceFields)
		report.DetailedResults[result.AnalysisType] = result
		scoreSum += result.ValidationScore
		if result.IsValid {
			report.ValidAlgorithms++
		} else {
			report.AlgorithmsWithErrors++
		}
		if len(result.Warnings) > 0 {
			report.AlgorithmsWithWarnings++
		}
	}
	if report.TotalAlgorithms > 0 {
		report.AverageValidationScore = scoreSum / float64(report.TotalAlgorithms)
	}

	report.OverallRecommendations = buildRecommendations(&report)
	return report
}

// buildRecommendations derives batch-level guidance from the aggregate
// counters. Output order is fixed so reports diff cleanly between runs.
func buildRecommendations(report *schema.ValidationReport) []string {
	var recs []string
	if report.AlgorithmsWithErrors > 0 {
		names := make([]string, 0, report.AlgorithmsWithErrors)
		for at, r := range report.DetailedResults {
			if !r.IsValid {
				names = append(names, string(at))
			}
		}
		sort.Strings(names)
		recs = append(recs, fmt.Sprintf("fix %d algorithms with hard errors before deployment: %s",
			report.AlgorithmsWithErrors, strings.Join(names, ", ")))
	}
	if report.AlgorithmsWithWarnings > 0 {
		recs = append(recs, fmt.Sprintf("review %d algorithms with warnings", report.AlgorithmsWithWarnings))
	}
	if report.TotalAlgorithms > 0 && report.AverageValidationScore < 0.7 {
		recs = append(recs, fmt.Sprintf("average validation score %.2f is below the 0.70 review bar",
			report.AverageValidationScore))
	}
	if len(recs) == 0 {
		recs = append(recs, "all algorithms pass validation")
	}
	return recs
}
