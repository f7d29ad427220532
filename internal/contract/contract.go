// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"time"

	"github.com/quantgeo/scoresmith/schema"
)

// RunStore defines the interface for tracking generation runs and storing
// synthesized formulas with their validation outcomes. This allows the store
// layer to be mocked for testing.
type RunStore interface {
	// BeginRun creates a new generation run and returns its unique ID
	BeginRun(startTime time.Time, configParams map[string]any) (int64, error)

	// EndRun updates the generation run with completion data
	EndRun(runID int64, endTime time.Time, totalFeatures int) error

	// RecordFormula stores a synthesized formula and its validation outcome
	RecordFormula(runID int64, formula schema.CompositeScoreFormula, result schema.ValidationResult) error

	// ListRuns returns the most recent generation runs, newest first
	ListRuns(limit int) ([]schema.GenerationRun, error)

	// ListFormulas returns all formulas recorded for a run
	ListFormulas(runID int64) ([]schema.FormulaRecord, error)

	// GetStatus returns status information about the run store
	GetStatus() (schema.StoreStatus, error)

	// Clear removes all recorded runs and formulas
	Clear() error

	// Close closes the underlying connection
	Close() error
}
