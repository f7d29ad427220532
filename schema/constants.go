package schema

// Custom string types for type safety.
type (
	// AnalysisType identifies one of the fixed market/demographic analysis categories.
	AnalysisType string

	// OutputMode represents the format of the output.
	OutputMode string

	// DatabaseBackend represents the database backend for run tracking.
	DatabaseBackend string
)

// The closed set of analysis types. Each one has a matching RelevanceProfile
// in DefaultProfiles; unknown strings are handled through an explicit
// fallback profile rather than by accident.
const (
	StrategicAnalysis        AnalysisType = "strategic_analysis"
	CompetitiveAnalysis      AnalysisType = "competitive_analysis"
	DemographicInsights      AnalysisType = "demographic_insights"
	ComparativeAnalysis      AnalysisType = "comparative_analysis"
	CorrelationAnalysis      AnalysisType = "correlation_analysis"
	TrendAnalysis            AnalysisType = "trend_analysis"
	SpatialClusters          AnalysisType = "spatial_clusters"
	AnomalyDetection         AnalysisType = "anomaly_detection"
	PredictiveModeling       AnalysisType = "predictive_modeling"
	ScenarioAnalysis         AnalysisType = "scenario_analysis"
	SegmentProfiling         AnalysisType = "segment_profiling"
	SensitivityAnalysis      AnalysisType = "sensitivity_analysis"
	FeatureInteractions      AnalysisType = "feature_interactions"
	FeatureImportanceRanking AnalysisType = "feature_importance_ranking"
	ModelPerformance         AnalysisType = "model_performance"
	OutlierDetection         AnalysisType = "outlier_detection"
	GeneralAnalysis          AnalysisType = "analyze"
	BrandDifference          AnalysisType = "brand_difference"
	CustomerProfile          AnalysisType = "customer_profile"
	MarketSizing             AnalysisType = "market_sizing"
	PenetrationOptimization  AnalysisType = "penetration_optimization"
	RiskAssessment           AnalysisType = "risk_assessment"
	ExpansionOpportunity     AnalysisType = "expansion_opportunity"
	RealEstateAnalysis       AnalysisType = "real_estate_analysis"
	ThresholdAnalysis        AnalysisType = "threshold_analysis"
	ConsensusAnalysis        AnalysisType = "consensus_analysis"
)

// IsKnown reports whether the analysis type belongs to the closed set.
func (a AnalysisType) IsKnown() bool {
	_, ok := ValidAnalysisTypes[a]
	return ok
}

// All output modes supported.
const (
	TextOut    OutputMode = "text" // default
	CSVOut     OutputMode = "csv"
	JSONOut    OutputMode = "json"
	ParquetOut OutputMode = "parquet"
)

// All run-tracking backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none"
)

// AllAnalysisTypes lists every analysis type in deterministic order.
var AllAnalysisTypes = []AnalysisType{
	StrategicAnalysis,
	CompetitiveAnalysis,
	DemographicInsights,
	ComparativeAnalysis,
	CorrelationAnalysis,
	TrendAnalysis,
	SpatialClusters,
	AnomalyDetection,
	PredictiveModeling,
	ScenarioAnalysis,
	SegmentProfiling,
	SensitivityAnalysis,
	FeatureInteractions,
	FeatureImportanceRanking,
	ModelPerformance,
	OutlierDetection,
	GeneralAnalysis,
	BrandDifference,
	CustomerProfile,
	MarketSizing,
	PenetrationOptimization,
	RiskAssessment,
	ExpansionOpportunity,
	RealEstateAnalysis,
	ThresholdAnalysis,
	ConsensusAnalysis,
}

// ValidAnalysisTypes lists all valid analysis types for O(1) membership checks.
var ValidAnalysisTypes = func() map[AnalysisType]struct{} {
	m := make(map[AnalysisType]struct{}, len(AllAnalysisTypes))
	for _, at := range AllAnalysisTypes {
		m[at] = struct{}{}
	}
	return m
}()

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	TextOut:    {},
	CSVOut:     {},
	JSONOut:    {},
	ParquetOut: {},
}

// ValidDatabaseBackends lists all valid run-tracking backends.
var ValidDatabaseBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}
