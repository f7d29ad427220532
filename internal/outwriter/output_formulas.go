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

// WriteFormulas outputs synthesized formulas, dispatching based on the
// output format configured.
func WriteFormulas(formulas []schema.CompositeScoreFormula, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, _ := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, formulas)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeFormulasCSV(w, formulas, fmtFloat)
		}, "Wrote CSV")
	case schema.ParquetOut:
		if cfg.OutputFile == "" {
			return fmt.Errorf("parquet output requires --output-file")
		}
		return parquet.WriteFormulasParquet(formulas, cfg.OutputFile)
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeFormulasTable(w, formulas, duration)
		}, "Wrote table")
	}
}

// writeFormulasTable generates and writes the human-readable table.
func writeFormulasTable(w io.Writer, formulas []schema.CompositeScoreFormula, duration time.Duration) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Analysis Type", "Components", "Formula"})
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignLeft
	})

	var data [][]string
	for i := range formulas {
		f := &formulas[i]
		data = append(data, []string{
			string(f.AnalysisType),
			strconv.Itoa(len(f.Components)),
			formatFormula(f),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(w, "Synthesized %d formulas in %v\n", len(formulas), duration); err != nil {
		return err
	}
	return nil
}

// writeFormulasCSV writes the formulas in CSV format, one row per component.
func writeFormulasCSV(w io.Writer, formulas []schema.CompositeScoreFormula, fmtFloat func(float64) string) error {
	header := []string{"analysis_type", "component_rank", "field", "weight"}
	return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
		for _, f := range formulas {
			for i, c := range f.Components {
				rec := []string{
					string(f.AnalysisType),
					strconv.Itoa(i + 1),
					c.FieldName,
					fmtFloat(c.Weight),
				}
				if err := csvWriter.Write(rec); err != nil {
					return err
				}
			}
		}
		return nil
	})
}
