package schema

import "math"

// FormulaComponent is a single weighted field inside a composite score formula.
type FormulaComponent struct {
	FieldName string  `json:"field_name"`
	Weight    float64 `json:"weight"`
}

// CompositeScoreFormula is a fixed set of (field, weight) pairs whose output,
// when applied to a record, yields a single score in [0, 100]. Weights are
// normalized at synthesis time so they sum to ~1.0.
type CompositeScoreFormula struct {
	AnalysisType AnalysisType       `json:"analysis_type"`
	Components   []FormulaComponent `json:"components"`
}

// WeightSum returns the total of all component weights.
func (f *CompositeScoreFormula) WeightSum() float64 {
	var sum float64
	for _, c := range f.Components {
		sum += c.Weight
	}
	return sum
}

// FieldNames returns the component field names in formula order.
func (f *CompositeScoreFormula) FieldNames() []string {
	names := make([]string, len(f.Components))
	for i, c := range f.Components {
		names[i] = c.FieldName
	}
	return names
}

// Evaluate applies the runtime scoring contract to a record: each field value
// is normalized to [0, 100], multiplied by its weight, summed, clamped to
// [0, 100] and rounded to the given decimal precision. Fields missing from
// the record or holding non-numeric values contribute zero.
func (f *CompositeScoreFormula) Evaluate(rec Record, precision int) float64 {
	var total float64
	for _, c := range f.Components {
		v, ok := ToNumber(rec[c.FieldName])
		if !ok || math.IsNaN(v) {
			continue
		}
		total += Clamp(v, 0, 100) * c.Weight
	}
	total = Clamp(total, 0, 100)

	pow := math.Pow(10, float64(precision))
	return math.Round(total*pow) / pow
}
