package runstore

import (
	"time"

	"github.com/quantgeo/scoresmith/internal/contract"
	"github.com/quantgeo/scoresmith/schema"
	"github.com/stretchr/testify/mock"
)

// MockRunStore is a mock implementation of RunStore for testing.
type MockRunStore struct {
	mock.Mock
}

var _ contract.RunStore = &MockRunStore{} // Compile-time check

// BeginRun implements the RunStore interface.
func (m *MockRunStore) BeginRun(startTime time.Time, configParams map[string]any) (int64, error) {
	args := m.Called(startTime, configParams)
	return args.Get(0).(int64), args.Error(1)
}

// EndRun implements the RunStore interface.
func (m *MockRunStore) EndRun(runID int64, endTime time.Time, totalFeatures int) error {
	args := m.Called(runID, endTime, totalFeatures)
	return args.Error(0)
}

// RecordFormula implements the RunStore interface.
func (m *MockRunStore) RecordFormula(runID int64, formula schema.CompositeScoreFormula, result schema.ValidationResult) error {
	args := m.Called(runID, formula, result)
	return args.Error(0)
}

// ListRuns implements the RunStore interface.
func (m *MockRunStore) ListRuns(limit int) ([]schema.GenerationRun, error) {
	args := m.Called(limit)
	runs, _ := args.Get(0).([]schema.GenerationRun)
	return runs, args.Error(1)
}

// ListFormulas implements the RunStore interface.
func (m *MockRunStore) ListFormulas(runID int64) ([]schema.FormulaRecord, error) {
	args := m.Called(runID)
	records, _ := args.Get(0).([]schema.FormulaRecord)
	return records, args.Error(1)
}

// GetStatus implements the RunStore interface.
func (m *MockRunStore) GetStatus() (schema.StoreStatus, error) {
	args := m.Called()
	return args.Get(0).(schema.StoreStatus), args.Error(1)
}

// Clear implements the RunStore interface.
func (m *MockRunStore) Clear() error {
	args := m.Called()
	return args.Error(0)
}

// Close implements the RunStore interface.
func (m *MockRunStore) Close() error {
	args := m.Called()
	return args.Error(0)
}
