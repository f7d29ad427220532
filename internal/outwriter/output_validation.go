package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/quantgeo/scoresmith/internal/contract"
	"github.com/quantgeo/scoresmith/internal/parquet"
	"github.com/quantgeo/scoresmith/schema"
)

// WriteValidationReport outputs a validation report, dispatching based on
// the output format configured.
func WriteValidationReport(report *schema.ValidationReport, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, _ := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, report)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeValidationCSV(w, report, fmtFloat)
		}, "Wrote CSV")
	case schema.ParquetOut:
		if cfg.OutputFile == "" {
			return fmt.Errorf("parquet output requires --output-file")
		}
		return parquet.WriteValidationReportParquet(report, cfg.OutputFile)
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeValidationTable(w, report, cfg, fmtFloat, duration)
		}, "Wrote table")
	}
}

// sortedResults returns the detailed results ordered by analysis type for
// stable rendering.
func sortedResults(report *schema.ValidationReport) []schema.ValidationResult {
	results := make([]schema.ValidationResult, 0, len(report.DetailedResults))
	for _, r := range report.DetailedResults {
		results = append(results, r)
	}
	sort.Slice(results, func(i, j int) bool {
		return results[i].AnalysisType < results[j].AnalysisType
	})
	return results
}

// writeValidationTable generates and writes the human-readable table.
func writeValidationTable(w io.Writer, report *schema.ValidationReport, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Analysis Type", "Valid", "Score", "Label", "Warnings", "Errors"})
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for _, r := range sortedResults(report) {
		valid := "yes"
		if !r.IsValid {
			valid = "NO"
		}
		data = append(data, []string{
			string(r.AnalysisType),
			valid,
			fmtFloat(r.ValidationScore),
			contract.GetColorLabel(r.ValidationScore, cfg.UseColors),
			strconv.Itoa(len(r.Warnings)),
			strconv.Itoa(len(r.Errors)),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(w, "%d/%d algorithms valid (average score: %s)\n",
		report.ValidAlgorithms, report.TotalAlgorithms, fmtFloat(report.AverageValidationScore)); err != nil {
		return err
	}
	for _, rec := range report.OverallRecommendations {
		if _, err := fmt.Fprintf(w, "- %s\n", rec); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(w, "Validation completed in %v\n", duration); err != nil {
		return err
	}
	return nil
}

// writeValidationCSV writes the validation report in CSV format.
func writeValidationCSV(w io.Writer, report *schema.ValidationReport, fmtFloat func(float64) string) error {
	header := []string{"analysis_type", "is_valid", "validation_score", "label", "warning_count", "error_count"}
	return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
		for _, r := range sortedResults(report) {
			rec := []string{
				string(r.AnalysisType),
				strconv.FormatBool(r.IsValid),
				fmtFloat(r.ValidationScore),
				contract.GetPlainLabel(r.ValidationScore),
				strconv.Itoa(len(r.Warnings)),
				strconv.Itoa(len(r.Errors)),
			}
			if err := csvWriter.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}
