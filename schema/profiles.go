package schema

// RelevanceProfile declares how a single analysis type maps the shared field
// pool onto its own business purpose. Profiles are plain data: the scorer,
// synthesizer and validator all receive them at construction time, and the
// config file may override individual entries.
//
// KeywordPatterns feed the scorer's relevance fraction (each matching
// substring contributes 1/len(KeywordPatterns)). SpecificBonuses add a fixed
// relevance bonus when a field name starts with the given prefix.
// BusinessKeywords are the validator's own table and are intentionally kept
// independent of KeywordPatterns.
type RelevanceProfile struct {
	AnalysisType       AnalysisType
	KeywordPatterns    []string
	SpecificBonuses    map[string]float64
	MinComponents      int
	MaxComponents      int
	RequiredFieldTypes []string
	BusinessKeywords   []string
	Purpose            string
}

// Field type categories used by the validator's required-type check.
const (
	FieldTypeMarketPenetration = "market_penetration"
	FieldTypeDemographicData   = "demographic_data"
	FieldTypeEconomicData      = "economic_data"
	FieldTypeGeographicData    = "geographic_data"
	FieldTypeConsumerBehavior  = "consumer_behavior"
	FieldTypeBrandData         = "brand_data"
	FieldTypeGrowthData        = "growth_data"
	FieldTypeRiskData          = "risk_data"
)

// FieldTypeKeywords maps a field type category to the lowercase substrings
// that identify member fields. Matching is shared with the scorer's
// substring convention.
var FieldTypeKeywords = map[string][]string{
	FieldTypeMarketPenetration: {"mp1", "share", "penetration"},
	FieldTypeDemographicData:   {"totpop", "pop_", "age", "hh", "famili", "divindx"},
	FieldTypeEconomicData:      {"income", "meddi", "wealth", "disposable", "budget"},
	FieldTypeGeographicData:    {"zip", "geo", "density", "urban", "rural"},
	FieldTypeConsumerBehavior:  {"spend", "purchas", "expend", "retail", "consum"},
	FieldTypeBrandData:         {"mp30", "brand", "athletic", "apparel"},
	FieldTypeGrowthData:        {"growth", "trend", "change", "proj"},
	FieldTypeRiskData:          {"vol", "risk", "vacan", "unemp"},
}

// Default component count bounds applied when a profile does not override them.
const (
	DefaultMinComponents = 3
	DefaultMaxComponents = 8
)

// DefaultProfiles returns the built-in relevance profile table covering every
// analysis type. Callers own the returned map and may mutate it (for example
// when applying config file overrides).
func DefaultProfiles() map[AnalysisType]RelevanceProfile {
	profiles := map[AnalysisType]RelevanceProfile{
		StrategicAnalysis: {
			KeywordPatterns:    []string{"mp1", "income", "pop", "growth", "spend"},
			SpecificBonuses:    map[string]float64{"mp10": 0.25, "meddi": 0.15},
			RequiredFieldTypes: []string{FieldTypeMarketPenetration, FieldTypeDemographicData},
			BusinessKeywords:   []string{"mp1", "income", "pop", "spend", "growth", "share"},
			Purpose:            "Rank geographies by overall strategic value combining market strength and demographic depth",
		},
		CompetitiveAnalysis: {
			KeywordPatterns:    []string{"mp10", "share", "brand", "penetration"},
			SpecificBonuses:    map[string]float64{"mp10": 0.3, "mp30": 0.2},
			RequiredFieldTypes: []string{FieldTypeMarketPenetration},
			BusinessKeywords:   []string{"mp1", "mp30", "share", "brand", "penetration"},
			Purpose:            "Expose competitive positioning through brand share and market penetration signals",
		},
		DemographicInsights: {
			KeywordPatterns:    []string{"pop", "age", "hh", "famili", "divindx", "income"},
			SpecificBonuses:    map[string]float64{"totpop": 0.2, "medage": 0.15},
			RequiredFieldTypes: []string{FieldTypeDemographicData},
			BusinessKeywords:   []string{"pop", "age", "hh", "income", "divindx"},
			Purpose:            "Profile population structure, household composition and diversity by geography",
		},
		ComparativeAnalysis: {
			KeywordPatterns: []string{"mp1", "pop", "income", "index"},
			SpecificBonuses: map[string]float64{"mp10": 0.15},
			BusinessKeywords: []string{
				"mp1", "pop", "income", "index", "share",
			},
			Purpose: "Compare performance of two measures across the same set of geographies",
		},
		CorrelationAnalysis: {
			KeywordPatterns:  []string{"mp1", "income", "pop", "spend", "index"},
			SpecificBonuses:  map[string]float64{},
			BusinessKeywords: []string{"mp1", "income", "pop", "spend", "index"},
			Purpose:          "Surface statistically related field pairs for exploratory correlation work",
		},
		TrendAnalysis: {
			KeywordPatterns:    []string{"growth", "trend", "change", "proj", "cy"},
			SpecificBonuses:    map[string]float64{"popgrw": 0.25},
			RequiredFieldTypes: []string{FieldTypeGrowthData},
			BusinessKeywords:   []string{"growth", "trend", "change", "proj"},
			Purpose:            "Track directional movement and projected change in market measures",
		},
		SpatialClusters: {
			KeywordPatterns:    []string{"density", "pop", "urban", "geo", "zip"},
			SpecificBonuses:    map[string]float64{"popdens": 0.25},
			RequiredFieldTypes: []string{FieldTypeGeographicData},
			BusinessKeywords:   []string{"density", "pop", "geo", "urban", "cluster"},
			Purpose:            "Group geographies into spatial clusters sharing density and settlement character",
		},
		AnomalyDetection: {
			KeywordPatterns:  []string{"mp1", "income", "pop", "vol"},
			SpecificBonuses:  map[string]float64{},
			BusinessKeywords: []string{"mp1", "income", "pop", "vol", "outlier"},
			Purpose:          "Flag geographies whose measure combinations deviate sharply from their peers",
		},
		PredictiveModeling: {
			KeywordPatterns:  []string{"mp1", "income", "pop", "spend", "growth"},
			SpecificBonuses:  map[string]float64{"mp10": 0.2},
			BusinessKeywords: []string{"mp1", "income", "pop", "spend", "growth"},
			Purpose:          "Assemble predictor fields with the strongest forward-looking signal for model training",
		},
		ScenarioAnalysis: {
			KeywordPatterns:  []string{"income", "spend", "growth", "mp1"},
			SpecificBonuses:  map[string]float64{},
			BusinessKeywords: []string{"income", "spend", "growth", "mp1", "scenario"},
			Purpose:          "Estimate how scores shift under alternative economic and demographic assumptions",
		},
		SegmentProfiling: {
			KeywordPatterns:    []string{"age", "income", "spend", "lifestyle", "psy"},
			SpecificBonuses:    map[string]float64{"tapestry": 0.25},
			RequiredFieldTypes: []string{FieldTypeDemographicData, FieldTypeConsumerBehavior},
			BusinessKeywords:   []string{"age", "income", "spend", "segment", "lifestyle"},
			Purpose:            "Characterize consumer segments by demographics and spending behavior",
		},
		SensitivityAnalysis: {
			KeywordPatterns:  []string{"mp1", "income", "spend", "index"},
			SpecificBonuses:  map[string]float64{},
			BusinessKeywords: []string{"mp1", "income", "spend", "weight", "sensitivity"},
			Purpose:          "Measure how strongly score outputs respond to perturbations of each input field",
		},
		FeatureInteractions: {
			KeywordPatterns:  []string{"mp1", "income", "pop", "spend"},
			SpecificBonuses:  map[string]float64{},
			BusinessKeywords: []string{"mp1", "income", "pop", "interaction"},
			Purpose:          "Identify field pairs whose combined effect exceeds their individual contributions",
		},
		FeatureImportanceRanking: {
			KeywordPatterns:  []string{"mp1", "income", "pop", "spend", "index"},
			SpecificBonuses:  map[string]float64{},
			BusinessKeywords: []string{"mp1", "income", "pop", "importance", "rank"},
			Purpose:          "Rank fields by their statistical contribution to the target measure",
		},
		ModelPerformance: {
			KeywordPatterns:  []string{"mp1", "income", "pop", "index"},
			SpecificBonuses:  map[string]float64{},
			MinComponents:    2,
			MaxComponents:    6,
			BusinessKeywords: []string{"mp1", "accuracy", "r2", "performance", "index"},
			Purpose:          "Summarize predictive model accuracy per geography for quality review",
		},
		OutlierDetection: {
			KeywordPatterns:  []string{"mp1", "income", "pop", "vol"},
			SpecificBonuses:  map[string]float64{},
			BusinessKeywords: []string{"mp1", "income", "pop", "outlier", "deviation"},
			Purpose:          "Isolate statistical outliers worth manual review before publication",
		},
		GeneralAnalysis: {
			KeywordPatterns:  []string{"mp1", "income", "pop", "spend", "age"},
			SpecificBonuses:  map[string]float64{"mp10": 0.15},
			BusinessKeywords: []string{"mp1", "income", "pop", "spend", "age"},
			Purpose:          "General purpose ranking blending market and demographic strength",
		},
		BrandDifference: {
			KeywordPatterns:    []string{"mp30", "brand", "share", "athletic"},
			SpecificBonuses:    map[string]float64{"mp30": 0.3},
			RequiredFieldTypes: []string{FieldTypeBrandData},
			BusinessKeywords:   []string{"mp30", "brand", "share", "athletic", "apparel"},
			Purpose:            "Quantify head-to-head brand preference gaps across geographies",
		},
		CustomerProfile: {
			KeywordPatterns:    []string{"age", "income", "hh", "spend", "lifestyle"},
			SpecificBonuses:    map[string]float64{"medage": 0.2, "meddi": 0.2},
			RequiredFieldTypes: []string{FieldTypeDemographicData},
			BusinessKeywords:   []string{"age", "income", "hh", "spend", "customer"},
			Purpose:            "Describe the ideal customer fit of each geography for targeting",
		},
		MarketSizing: {
			KeywordPatterns:    []string{"pop", "income", "spend", "market", "units"},
			SpecificBonuses:    map[string]float64{"totpop": 0.25},
			RequiredFieldTypes: []string{FieldTypeDemographicData, FieldTypeEconomicData},
			BusinessKeywords:   []string{"pop", "income", "spend", "market", "size"},
			Purpose:            "Estimate addressable market volume from population and purchasing power",
		},
		PenetrationOptimization: {
			KeywordPatterns:    []string{"mp1", "penetration", "share", "growth"},
			SpecificBonuses:    map[string]float64{"mp10": 0.3},
			RequiredFieldTypes: []string{FieldTypeMarketPenetration},
			BusinessKeywords:   []string{"mp1", "penetration", "share", "growth", "upside"},
			Purpose:            "Find under-penetrated geographies where share gains are cheapest",
		},
		RiskAssessment: {
			KeywordPatterns:    []string{"vol", "vacan", "unemp", "risk", "income"},
			SpecificBonuses:    map[string]float64{"unemprt": 0.25},
			RequiredFieldTypes: []string{FieldTypeRiskData},
			BusinessKeywords:   []string{"vol", "vacan", "unemp", "risk", "exposure"},
			Purpose:            "Grade downside exposure from economic volatility and vacancy signals",
		},
		ExpansionOpportunity: {
			KeywordPatterns:    []string{"growth", "income", "pop", "mp1", "density"},
			SpecificBonuses:    map[string]float64{"popgrw": 0.2, "mp10": 0.15},
			RequiredFieldTypes: []string{FieldTypeGrowthData},
			BusinessKeywords:   []string{"growth", "income", "pop", "expansion", "opportunity"},
			Purpose:            "Score greenfield expansion potential from growth and demand fundamentals",
		},
		RealEstateAnalysis: {
			KeywordPatterns:    []string{"density", "income", "vacan", "rent", "value"},
			SpecificBonuses:    map[string]float64{"medval": 0.25},
			RequiredFieldTypes: []string{FieldTypeEconomicData},
			BusinessKeywords:   []string{"density", "income", "vacan", "rent", "property"},
			Purpose:            "Assess site and property suitability from value, rent and vacancy measures",
		},
		ThresholdAnalysis: {
			KeywordPatterns:  []string{"mp1", "pop", "income", "index"},
			SpecificBonuses:  map[string]float64{},
			MinComponents:    2,
			MaxComponents:    5,
			BusinessKeywords: []string{"mp1", "pop", "income", "threshold", "cutoff"},
			Purpose:          "Locate inflection thresholds where measures flip between viable and non-viable",
		},
		ConsensusAnalysis: {
			KeywordPatterns:  []string{"mp1", "income", "pop", "spend", "index"},
			SpecificBonuses:  map[string]float64{},
			BusinessKeywords: []string{"mp1", "income", "pop", "consensus", "agreement"},
			Purpose:          "Blend multiple model opinions into a single agreement-weighted score",
		},
	}

	for at, p := range profiles {
		p.AnalysisType = at
		if p.MinComponents == 0 {
			p.MinComponents = DefaultMinComponents
		}
		if p.MaxComponents == 0 {
			p.MaxComponents = DefaultMaxComponents
		}
		profiles[at] = p
	}
	return profiles
}

// FallbackProfile returns the explicit profile used for unrecognized analysis
// types: no keyword patterns (every field receives only the floor relevance),
// no bonuses, default bounds. Keeping this as a deliberate variant means an
// unknown type produces a low-confidence result instead of an error.
func FallbackProfile(at AnalysisType) RelevanceProfile {
	return RelevanceProfile{
		AnalysisType:  at,
		MinComponents: DefaultMinComponents,
		MaxComponents: DefaultMaxComponents,
		Purpose:       "Unrecognized analysis type; floor relevance only",
	}
}
