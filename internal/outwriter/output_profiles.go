package outwriter

import (
	"encoding/csv"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/quantgeo/scoresmith/internal/contract"
	"github.com/quantgeo/scoresmith/schema"
)

// WriteProfiles outputs the active relevance profile table, dispatching based
// on the output format configured.
func WriteProfiles(profiles map[schema.AnalysisType]schema.RelevanceProfile, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, profilesInOrder(profiles))
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeProfilesCSV(w, profiles)
		}, "Wrote CSV")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeProfilesTable(w, profiles)
		}, "Wrote table")
	}
}

// profilesInOrder returns the profiles sorted by analysis type name.
func profilesInOrder(profiles map[schema.AnalysisType]schema.RelevanceProfile) []schema.RelevanceProfile {
	ordered := make([]schema.RelevanceProfile, 0, len(profiles))
	for _, p := range profiles {
		ordered = append(ordered, p)
	}
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].AnalysisType < ordered[j].AnalysisType
	})
	return ordered
}

// writeProfilesTable generates and writes the human-readable table.
func writeProfilesTable(w io.Writer, profiles map[schema.AnalysisType]schema.RelevanceProfile) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Analysis Type", "Patterns", "Min", "Max", "Purpose"})
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignLeft
	})

	var data [][]string
	for _, p := range profilesInOrder(profiles) {
		data = append(data, []string{
			string(p.AnalysisType),
			strings.Join(p.KeywordPatterns, ","),
			strconv.Itoa(p.MinComponents),
			strconv.Itoa(p.MaxComponents),
			p.Purpose,
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

// writeProfilesCSV writes the profiles in CSV format.
func writeProfilesCSV(w io.Writer, profiles map[schema.AnalysisType]schema.RelevanceProfile) error {
	header := []string{"analysis_type", "keyword_patterns", "min_components", "max_components", "required_field_types", "purpose"}
	return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
		for _, p := range profilesInOrder(profiles) {
			rec := []string{
				string(p.AnalysisType),
				strings.Join(p.KeywordPatterns, ";"),
				strconv.Itoa(p.MinComponents),
				strconv.Itoa(p.MaxComponents),
				strings.Join(p.RequiredFieldTypes, ";"),
				p.Purpose,
			}
			if err := csvWriter.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}
