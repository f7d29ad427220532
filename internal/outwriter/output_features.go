package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/quantgeo/scoresmith/internal/contract"
	"github.com/quantgeo/scoresmith/internal/parquet"
	"github.com/quantgeo/scoresmith/schema"
)

// WriteImportanceReport outputs a feature importance report, dispatching
// based on the output format configured.
func WriteImportanceReport(report *schema.ImportanceReport, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, _ := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, report)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeImportanceCSV(w, report, fmtFloat)
		}, "Wrote CSV")
	case schema.ParquetOut:
		if cfg.OutputFile == "" {
			return fmt.Errorf("parquet output requires --output-file")
		}
		return parquet.WriteFeatureImportanceParquet(report, cfg.OutputFile)
	default:
		// Default to human-readable table
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeImportanceTable(w, report, cfg, fmtFloat, duration)
		}, "Wrote table")
	}
}

// writeImportanceTable generates and writes the human-readable table.
func writeImportanceTable(w io.Writer, report *schema.ImportanceReport, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Rank", "Field", "Importance", "Label"})
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	maxWidth := getMaxTableFieldWidth(cfg)
	var data [][]string
	for i, fi := range report.TopFeatures {
		data = append(data, []string{
			strconv.Itoa(i + 1),
			contract.TruncateField(fi.FieldName, maxWidth),
			fmtFloat(fi.Importance),
			contract.GetColorLabel(fi.Importance, cfg.UseColors),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	d := report.Distribution
	if _, err := fmt.Fprintf(w, "Showing %d features for target %s (mean: %s, median: %s, std: %s)\n",
		report.TotalFeatures, report.TargetField, fmtFloat(d.Mean), fmtFloat(d.Median), fmtFloat(d.Std)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Extraction completed in %v\n", duration); err != nil {
		return err
	}
	return nil
}

// writeImportanceCSV writes the importance report in CSV format.
func writeImportanceCSV(w io.Writer, report *schema.ImportanceReport, fmtFloat func(float64) string) error {
	header := []string{"rank", "field", "importance", "label", "target"}
	return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
		for i, fi := range report.TopFeatures {
			rec := []string{
				strconv.Itoa(i + 1),
				fi.FieldName,
				fmtFloat(fi.Importance),
				contract.GetPlainLabel(fi.Importance),
				report.TargetField,
			}
			if err := csvWriter.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}
