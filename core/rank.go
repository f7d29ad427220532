package core

import (
	"sort"

	"github.com/quantgeo/scoresmith/schema"
)

// RankFeatures sorts features by importance in descending order and returns
// the top 'limit' entries. If limit is zero, negative, or greater than the
// number of features, all features are returned in sorted order. Ties are
// broken by field name for deterministic output.
func RankFeatures(features []schema.FeatureImportance, limit int) []schema.FeatureImportance {
	sort.Slice(features, func(i, j int) bool {
		if features[i].Importance != features[j].Importance {
			return features[i].Importance > features[j].Importance
		}
		return features[i].FieldName < features[j].FieldName
	})
	if limit > 0 && len(features) > limit {
		return features[:limit]
	}
	return features
}
