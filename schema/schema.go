// Package schema has configs, models and shared constants for all parts of scoresmith.
package schema

import "encoding/json"

// Record is a single flat labeled record: field name to scalar value.
// Values come straight out of a decoded JSON document, so numbers arrive
// as float64, strings as string, and missing measurements as nil.
type Record map[string]any

// FeatureImportance captures how statistically associated a field is with
// the designated target measure. Importance is the Pearson correlation
// magnitude in [0, 1]; degenerate correlations are coerced to 0 upstream.
type FeatureImportance struct {
	FieldName  string
	Importance float64
}

// MarshalJSON emits the compact [field_name, importance] pair shape that
// downstream endpoint generators consume.
func (f FeatureImportance) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{f.FieldName, f.Importance})
}

// UnmarshalJSON accepts the [field_name, importance] pair shape.
func (f *FeatureImportance) UnmarshalJSON(data []byte) error {
	var pair []json.RawMessage
	if err := json.Unmarshal(data, &pair); err != nil {
		return err
	}
	if len(pair) > 0 {
		if err := json.Unmarshal(pair[0], &f.FieldName); err != nil {
			return err
		}
	}
	if len(pair) > 1 {
		if err := json.Unmarshal(pair[1], &f.Importance); err != nil {
			return err
		}
	}
	return nil
}

// FeatureDistribution holds simple distributional statistics over the
// retained importance scores, for diagnostic reporting.
type FeatureDistribution struct {
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	Std    float64 `json:"std"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Q25    float64 `json:"q25"`
	Q75    float64 `json:"q75"`
}

// ImportanceReport is the output of a single feature importance extraction run.
type ImportanceReport struct {
	TargetField   string              `json:"target_field"`
	TotalFeatures int                 `json:"total_features"`
	TopFeatures   []FeatureImportance `json:"top_features"`
	Distribution  FeatureDistribution `json:"feature_distribution"`
}

// ScoredFeature pairs a feature's statistical importance with its relevance
// to a specific analysis type. WeightedScore is Importance * Relevance and
// drives both candidate ranking and formula weight normalization.
type ScoredFeature struct {
	Field         string  `json:"feature"`
	Importance    float64 `json:"importance"`
	Relevance     float64 `json:"relevance"`
	WeightedScore float64 `json:"weighted_score"`
}
