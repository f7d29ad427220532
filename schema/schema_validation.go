package schema

// ValidationResult is the outcome of validating a single synthesized formula.
// IsValid flips to false only on hard errors; advisory findings land in
// Warnings and degrade ValidationScore without invalidating the formula.
// Results are never mutated after creation.
type ValidationResult struct {
	AnalysisType    AnalysisType `json:"analysis_type"`
	IsValid         bool         `json:"is_valid"`
	Warnings        []string     `json:"warnings"`
	Errors          []string     `json:"errors"`
	ValidationScore float64      `json:"validation_score"`
}

// ValidationReport aggregates validation outcomes across analysis types.
type ValidationReport struct {
	TotalAlgorithms        int                               `json:"total_algorithms"`
	ValidAlgorithms        int                               `json:"valid_algorithms"`
	AlgorithmsWithWarnings int                               `json:"algorithms_with_warnings"`
	AlgorithmsWithErrors   int                               `json:"algorithms_with_errors"`
	AverageValidationScore float64                           `json:"average_validation_score"`
	DetailedResults        map[AnalysisType]ValidationResult `json:"detailed_results"`
	OverallRecommendations []string                          `json:"overall_recommendations"`
}
