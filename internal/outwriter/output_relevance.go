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

// WriteScoredFeatures outputs the relevance-weighted ranking for one analysis
// type, dispatching based on the output format configured.
func WriteScoredFeatures(analysisType schema.AnalysisType, scored []schema.ScoredFeature, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, _ := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, map[string]any{
				"analysis_type": analysisType,
				"features":      scored,
			})
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeScoredCSV(w, analysisType, scored, fmtFloat)
		}, "Wrote CSV")
	case schema.ParquetOut:
		if cfg.OutputFile == "" {
			return fmt.Errorf("parquet output requires --output-file")
		}
		return parquet.WriteScoredFeaturesParquet(analysisType, scored, cfg.OutputFile)
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeScoredTable(w, analysisType, scored, cfg, fmtFloat, duration)
		}, "Wrote table")
	}
}

// writeScoredTable generates and writes the human-readable table.
func writeScoredTable(w io.Writer, analysisType schema.AnalysisType, scored []schema.ScoredFeature, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Rank", "Field", "Importance", "Relevance", "Weighted"})
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	maxWidth := getMaxTableFieldWidth(cfg)
	var data [][]string
	for i, sf := range scored {
		data = append(data, []string{
			strconv.Itoa(i + 1),
			contract.TruncateField(sf.Field, maxWidth),
			fmtFloat(sf.Importance),
			fmtFloat(sf.Relevance),
			fmtFloat(sf.WeightedScore),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(w, "Showing top %d candidates for %s\n", len(scored), analysisType); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Ranking completed in %v\n", duration); err != nil {
		return err
	}
	return nil
}

// writeScoredCSV writes the scored features in CSV format.
func writeScoredCSV(w io.Writer, analysisType schema.AnalysisType, scored []schema.ScoredFeature, fmtFloat func(float64) string) error {
	header := []string{"rank", "field", "importance", "relevance", "weighted_score", "analysis_type"}
	return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
		for i, sf := range scored {
			rec := []string{
				strconv.Itoa(i + 1),
				sf.Field,
				fmtFloat(sf.Importance),
				fmtFloat(sf.Relevance),
				fmtFloat(sf.WeightedScore),
				string(analysisType),
			}
			if err := csvWriter.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}
