// Package parquet provides data structures and functions for exporting
// scoresmith generation data to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/parquet-go/parquet-go"
	"github.com/quantgeo/scoresmith/schema"
)

// GenerationRun represents a single formula generation run with metadata.
// This struct maps to the scoresmith_generation_runs database table.
type GenerationRun struct {
	// RunID is the unique identifier for this generation run
	RunID int64 `parquet:"run_id,snappy"`

	// StartTime is when the run began
	StartTime time.Time `parquet:"start_time,snappy"`

	// EndTime is when the run completed (nullable)
	EndTime *time.Time `parquet:"end_time,optional,snappy"`

	// TotalFeatures is the number of features retained by the extractor
	TotalFeatures int32 `parquet:"total_features,snappy"`

	// ConfigParams contains the JSON-encoded run parameters (nullable)
	ConfigParams *string `parquet:"config_params,optional,snappy"`
}

// FeatureImportanceRow is one feature's importance against a target field.
type FeatureImportanceRow struct {
	TargetField string  `parquet:"target_field,snappy"`
	FieldName   string  `parquet:"field_name,snappy"`
	Importance  float64 `parquet:"importance,snappy"`
}

// ScoredFeatureRow is one feature's blended score for an analysis type.
type ScoredFeatureRow struct {
	AnalysisType  string  `parquet:"analysis_type,snappy"`
	FieldName     string  `parquet:"field_name,snappy"`
	Importance    float64 `parquet:"importance,snappy"`
	Relevance     float64 `parquet:"relevance,snappy"`
	WeightedScore float64 `parquet:"weighted_score,snappy"`
}

// FormulaComponentRow is one weighted component of a synthesized formula.
// ComponentRank preserves the component order within its formula.
type FormulaComponentRow struct {
	AnalysisType  string  `parquet:"analysis_type,snappy"`
	ComponentRank int32   `parquet:"component_rank,snappy"`
	FieldName     string  `parquet:"field_name,snappy"`
	Weight        float64 `parquet:"weight,snappy"`
}

// ValidationResultRow is the validation outcome for one formula.
type ValidationResultRow struct {
	AnalysisType    string  `parquet:"analysis_type,snappy"`
	IsValid         bool    `parquet:"is_valid,snappy"`
	ValidationScore float64 `parquet:"validation_score,snappy"`
	WarningCount    int32   `parquet:"warning_count,snappy"`
	ErrorCount      int32   `parquet:"error_count,snappy"`
}

// writeRows writes a slice of rows to a Parquet file. The schema is inferred
// from the row struct tags.
func writeRows[T any](rows []T, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	writer := parquet.NewGenericWriter[T](file)
	if _, err := writer.Write(rows); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to close parquet writer: %w", err)
	}
	return nil
}

// WriteGenerationRunsParquet writes generation run metadata to a Parquet file.
func WriteGenerationRunsParquet(runs []schema.GenerationRun, outputPath string) error {
	rows := make([]GenerationRun, len(runs))
	for i, r := range runs {
		row := GenerationRun{
			RunID:         r.RunID,
			StartTime:     r.StartTime,
			EndTime:       r.EndTime,
			TotalFeatures: int32(r.TotalFeatures),
		}
		if r.ConfigParams != "" {
			params := r.ConfigParams
			row.ConfigParams = &params
		}
		rows[i] = row
	}
	return writeRows(rows, outputPath)
}

// WriteFeatureImportanceParquet writes an importance report's features to a Parquet file.
func WriteFeatureImportanceParquet(report *schema.ImportanceReport, outputPath string) error {
	rows := make([]FeatureImportanceRow, len(report.TopFeatures))
	for i, fi := range report.TopFeatures {
		rows[i] = FeatureImportanceRow{
			TargetField: report.TargetField,
			FieldName:   fi.FieldName,
			Importance:  fi.Importance,
		}
	}
	return writeRows(rows, outputPath)
}

// WriteScoredFeaturesParquet writes scored features for one analysis type to a Parquet file.
func WriteScoredFeaturesParquet(analysisType schema.AnalysisType, scored []schema.ScoredFeature, outputPath string) error {
	rows := make([]ScoredFeatureRow, len(scored))
	for i, sf := range scored {
		rows[i] = ScoredFeatureRow{
			AnalysisType:  string(analysisType),
			FieldName:     sf.Field,
			Importance:    sf.Importance,
			Relevance:     sf.Relevance,
			WeightedScore: sf.WeightedScore,
		}
	}
	return writeRows(rows, outputPath)
}

// WriteFormulasParquet writes formula components, one row per component, to a Parquet file.
func WriteFormulasParquet(formulas []schema.CompositeScoreFormula, outputPath string) error {
	var rows []FormulaComponentRow
	for _, f := range formulas {
		for i, c := range f.Components {
			rows = append(rows, FormulaComponentRow{
				AnalysisType:  string(f.AnalysisType),
				ComponentRank: int32(i + 1),
				FieldName:     c.FieldName,
				Weight:        c.Weight,
			})
		}
	}
	return writeRows(rows, outputPath)
}

// WriteValidationReportParquet writes per-type validation outcomes to a Parquet file.
func WriteValidationReportParquet(report *schema.ValidationReport, outputPath string) error {
	rows := make([]ValidationResultRow, 0, len(report.DetailedResults))
	for at, result := range report.DetailedResults {
		rows = append(rows, ValidationResultRow{
			AnalysisType:    string(at),
			IsValid:         result.IsValid,
			ValidationScore: result.ValidationScore,
			WarningCount:    int32(len(result.Warnings)),
			ErrorCount:      int32(len(result.Errors)),
		})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].AnalysisType < rows[j].AnalysisType })
	return writeRows(rows, outputPath)
}
