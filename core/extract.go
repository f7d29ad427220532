package core

import (
	"math"
	"sort"
	"strings"

	"github.com/quantgeo/scoresmith/schema"
	"gonum.org/v1/gonum/stat"
)

// Extraction constants.
const (
	// MinValidPairs is the minimum number of valid (present, non-null,
	// non-zero) value pairs required before a correlation is trusted.
	// Fields with fewer pairs get importance 0.
	MinValidPairs = 10

	// NoiseFloor is the importance threshold below which a field is treated
	// as statistical noise and dropped from the report.
	NoiseFloor = 0.1

	// classifySampleSize is how many records are inspected when deciding
	// whether a field is numeric.
	classifySampleSize = 20
)

// Extractor computes feature importance scores for every numeric field in a
// record collection, measured against a designated target field. Importance
// is the Pearson correlation magnitude, a cheap stand-in for SHAP-style
// model attribution that needs no trained model.
type Extractor struct {
	exclude map[string]struct{} // lowercase deny-list of non-scoring fields
}

// NewExtractor returns an Extractor with the given deny-list of field names.
// Matching against the deny-list is case-insensitive and exact.
func NewExtractor(excludeFields []string) *Extractor {
	exclude := make(map[string]struct{}, len(excludeFields))
	for _, f := range excludeFields {
		exclude[strings.ToLower(f)] = struct{}{}
	}
	return &Extractor{exclude: exclude}
}

// Extract scans the records, selects candidate numeric fields, and scores
// each one by its absolute Pearson correlation with targetField. Degenerate
// inputs (no records, absent target, nothing above the noise floor) yield an
// empty report rather than an error: an empty dataset is an answer, not a
// failure.
func (e *Extractor) Extract(records []schema.Record, targetField string) (*schema.ImportanceReport, error) {
	report := &schema.ImportanceReport{
		TargetField: targetField,
		TopFeatures: []schema.FeatureImportance{},
	}
	if len(records) == 0 {
		return report, nil
	}

	// Schema scan: the union of keys across ALL records. Records are sparse,
	// so inspecting only the first one would miss fields.
	fields := make(map[string]struct{})
	for _, rec := range records {
		for name := range rec {
			fields[name] = struct{}{}
		}
	}

	candidates := e.selectCandidates(fields, records, targetField)

	importances := make([]schema.FeatureImportance, 0, len(candidates))
	for _, field := range candidates {
		imp := e.correlate(records, targetField, field)
		if imp > NoiseFloor {
			importances = append(importances, schema.FeatureImportance{
				FieldName:  field,
				Importance: imp,
			})
		}
	}

	sort.Slice(importances, func(i, j int) bool {
		if importances[i].Importance != importances[j].Importance {
			return importances[i].Importance > importances[j].Importance
		}
		return importances[i].FieldName < importances[j].FieldName
	})

	report.TotalFeatures = len(importances)
	report.TopFeatures = importances
	report.Distribution = summarize(importances)
	return report, nil
}

// selectCandidates filters the field union down to scoreable fields: not the
// target, not deny-listed, numeric, and not shadowed by a percentage variant.
// The result is sorted for deterministic iteration.
func (e *Extractor) selectCandidates(fields map[string]struct{}, records []schema.Record, targetField string) []string {
	numeric := make(map[string]struct{}, len(fields))
	for field := range fields {
		if strings.EqualFold(field, targetField) {
			continue
		}
		if _, denied := e.exclude[strings.ToLower(field)]; denied {
			continue
		}
		if isNumericField(records, field) {
			numeric[field] = struct{}{}
		}
	}

	candidates := make([]string, 0, len(numeric))
	for field := range numeric {
		// Prefer normalized percentage variants over raw counts: when both
		// MP10020A_B and MP10020A_B_P are present, the raw count only
		// restates population size.
		if !schema.IsPercentageField(field) && schema.HasPercentageVariant(field, numeric) {
			continue
		}
		candidates = append(candidates, field)
	}
	sort.Strings(candidates)
	return candidates
}

// isNumericField reports whether any present value of the field, over a
// bounded sample of records, coerces to a number. Exports mix numeric values
// with sentinel strings like "N/A", so one parseable value qualifies the
// field; non-numeric values are skipped again when pairs are gathered.
func isNumericField(records []schema.Record, field string) bool {
	seen := 0
	for _, rec := range records {
		v, ok := rec[field]
		if !ok || v == nil {
			continue
		}
		if _, numeric := schema.ToNumber(v); numeric {
			return true
		}
		seen++
		if seen >= classifySampleSize {
			break
		}
	}
	return false
}

// correlate returns the absolute Pearson correlation between the field and
// the target over records where both values are present, non-null and
// non-zero. Zeros are treated as missing data: upstream exports use 0 as a
// suppression placeholder, and letting it through inflates correlations.
func (e *Extractor) correlate(records []schema.Record, targetField, field string) float64 {
	var xs, ys []float64
	for _, rec := range records {
		fv, ok := schema.ToNumber(rec[field])
		if !ok || fv == 0 {
			continue
		}
		tv, ok := schema.ToNumber(rec[targetField])
		if !ok || tv == 0 {
			continue
		}
		xs = append(xs, fv)
		ys = append(ys, tv)
	}
	if len(xs) < MinValidPairs {
		return 0
	}

	r := stat.Correlation(xs, ys, nil)
	if math.IsNaN(r) {
		// Constant columns have zero variance; no signal either way.
		return 0
	}
	return math.Abs(r)
}

// summarize computes distribution statistics over the retained importance
// scores for diagnostic reporting.
func summarize(importances []schema.FeatureImportance) schema.FeatureDistribution {
	if len(importances) == 0 {
		return schema.FeatureDistribution{}
	}

	scores := make([]float64, len(importances))
	for i, imp := range importances {
		scores[i] = imp.Importance
	}
	sorted := make([]float64, len(scores))
	copy(sorted, scores)
	sort.Float64s(sorted)

	dist := schema.FeatureDistribution{
		Mean:   stat.Mean(scores, nil),
		Median: stat.Quantile(0.5, stat.LinInterp, sorted, nil),
		Min:    sorted[0],
		Max:    sorted[len(sorted)-1],
		Q25:    stat.Quantile(0.25, stat.LinInterp, sorted, nil),
		Q75:    stat.Quantile(0.75, stat.LinInterp, sorted, nil),
	}
	if len(scores) > 1 {
		dist.Std = stat.StdDev(scores, nil)
	}
	return dist
}
