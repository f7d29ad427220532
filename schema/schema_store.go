package schema

import "time"

// GenerationRun records one full extract/synthesize/validate pass.
type GenerationRun struct {
	RunID         int64
	StartTime     time.Time
	EndTime       *time.Time
	TotalFeatures int
	ConfigParams  string // JSON-encoded run parameters
}

// FormulaRecord is a persisted formula plus its validation outcome.
type FormulaRecord struct {
	RunID           int64
	AnalysisType    AnalysisType
	Components      []FormulaComponent
	IsValid         bool
	ValidationScore float64
	WarningCount    int
	ErrorCount      int
	RecordedAt      time.Time
}

// StoreStatus holds status information about the run-tracking store.
type StoreStatus struct {
	Backend       DatabaseBackend
	Location      string
	TotalRuns     int
	TotalFormulas int
	LastRunTime   time.Time
}
