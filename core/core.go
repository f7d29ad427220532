// Package core has core logic for extraction, relevance scoring, formula
// synthesis and validation.
package core

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/quantgeo/scoresmith/internal/contract"
	"github.com/quantgeo/scoresmith/internal/outwriter"
	"github.com/quantgeo/scoresmith/internal/records"
	"github.com/quantgeo/scoresmith/internal/runstore"
	"github.com/quantgeo/scoresmith/schema"
)

// ExecutorFunc defines the function signature for executing the different
// generation stages.
type ExecutorFunc func(ctx context.Context, cfg *contract.Config) error

type ctxKey int

const suppressHeaderKey ctxKey = iota

// WithSuppressHeader marks the context so the run header is not printed.
// Used by programmatic callers (MCP tools) that want pure data output.
func WithSuppressHeader(ctx context.Context) context.Context {
	return context.WithValue(ctx, suppressHeaderKey, true)
}

func headerSuppressed(ctx context.Context) bool {
	suppressed, _ := ctx.Value(suppressHeaderKey).(bool)
	return suppressed
}

// logRunHeader prints a one-line run banner to stderr so table output on
// stdout stays machine-consumable.
func logRunHeader(ctx context.Context, cfg *contract.Config) {
	if headerSuppressed(ctx) {
		return
	}
	fmt.Fprintf(os.Stderr, "🔎 scoresmith: %s (target: %s)\n", cfg.RecordsPath, cfg.TargetField)
}

// GenerationOutput carries the intermediate products of one generation pass
// so each stage can reuse upstream results instead of recomputing them.
type GenerationOutput struct {
	Records  []schema.Record
	Report   *schema.ImportanceReport
	Scored   map[schema.AnalysisType][]schema.ScoredFeature
	Formulas []schema.CompositeScoreFormula
}

// loadRecords reads the configured records file and verifies the target
// field is present.
func loadRecords(cfg *contract.Config) ([]schema.Record, error) {
	recs, err := records.Load(cfg.RecordsPath)
	if err != nil {
		return nil, err
	}
	if err := records.RequireTarget(recs, cfg.TargetField); err != nil {
		return nil, err
	}
	return recs, nil
}

// GetImportanceResults loads records and extracts feature importance against
// the configured target field.
func GetImportanceResults(ctx context.Context, cfg *contract.Config) (*schema.ImportanceReport, []schema.Record, error) {
	logRunHeader(ctx, cfg)
	recs, err := loadRecords(cfg)
	if err != nil {
		return nil, nil, err
	}
	report, err := NewExtractor(cfg.ExcludeFields).Extract(recs, cfg.TargetField)
	if err != nil {
		return nil, nil, err
	}
	return report, recs, nil
}

// GetScoredResults extracts feature importance and blends it with business
// relevance for a single analysis type.
func GetScoredResults(ctx context.Context, cfg *contract.Config, analysisType schema.AnalysisType) ([]schema.ScoredFeature, []schema.Record, error) {
	report, recs, err := GetImportanceResults(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	scored := NewScorer(cfg.Profiles).ScoreForAnalysis(report.TopFeatures, analysisType, cfg.CandidateLimit)
	return scored, recs, nil
}

// GetGenerationResults runs extraction, scoring and synthesis for every
// configured analysis type. Types without enough surviving signal are skipped
// with a warning rather than failing the batch.
func GetGenerationResults(ctx context.Context, cfg *contract.Config) (*GenerationOutput, error) {
	report, recs, err := GetImportanceResults(ctx, cfg)
	if err != nil {
		return nil, err
	}

	output := &GenerationOutput{
		Records: recs,
		Report:  report,
		Scored:  make(map[schema.AnalysisType][]schema.ScoredFeature, len(cfg.AnalysisTypes)),
	}

	scorer := NewScorer(cfg.Profiles)
	synth := NewSynthesizer(cfg.Profiles)
	for _, at := range cfg.AnalysisTypes {
		scored := scorer.ScoreForAnalysis(report.TopFeatures, at, cfg.CandidateLimit)
		output.Scored[at] = scored

		formula, err := synth.Synthesize(scored, at)
		if err != nil {
			var insufficient *InsufficientSignalError
			if errors.As(err, &insufficient) {
				contract.LogWarn("skipping analysis type", err)
				continue
			}
			return nil, err
		}
		output.Formulas = append(output.Formulas, *formula)
	}
	return output, nil
}

// GetValidationResults runs the full generation pass and validates every
// synthesized formula against the source schema.
func GetValidationResults(ctx context.Context, cfg *contract.Config) (*GenerationOutput, schema.ValidationReport, error) {
	output, err := GetGenerationResults(ctx, cfg)
	if err != nil {
		return nil, schema.ValidationReport{}, err
	}

	fieldSet := records.FieldSet(output.Records)
	sourceFields := make([]string, 0, len(fieldSet))
	for f := range fieldSet {
		sourceFields = append(sourceFields, f)
	}
	sort.Strings(sourceFields)

	report := NewValidator(cfg.Profiles).ValidateAll(output.Formulas, sourceFields)
	return output, report, nil
}

// ExecuteExtract runs feature importance extraction and prints the report.
// It serves as the main entry point for the 'extract' command.
func ExecuteExtract(ctx context.Context, cfg *contract.Config) error {
	start := time.Now()
	report, _, err := GetImportanceResults(ctx, cfg)
	if err != nil {
		return err
	}
	report.TopFeatures = RankFeatures(report.TopFeatures, cfg.CandidateLimit)
	return outwriter.WriteImportanceReport(report, cfg, time.Since(start))
}

// ExecuteRank scores features for the first configured analysis type and
// prints the relevance-weighted ranking. It serves as the main entry point
// for the 'rank' command.
func ExecuteRank(ctx context.Context, cfg *contract.Config) error {
	start := time.Now()
	if len(cfg.AnalysisTypes) == 0 {
		return errors.New("an analysis type is required, use --analysis")
	}
	analysisType := cfg.AnalysisTypes[0]
	scored, _, err := GetScoredResults(ctx, cfg, analysisType)
	if err != nil {
		return err
	}
	return outwriter.WriteScoredFeatures(analysisType, scored, cfg, time.Since(start))
}

// ExecuteSynthesize generates formulas for every configured analysis type,
// records the run, and prints the formulas. It serves as the main entry point
// for the 'synthesize' command.
func ExecuteSynthesize(ctx context.Context, cfg *contract.Config) error {
	start := time.Now()
	output, report, err := GetValidationResults(ctx, cfg)
	if err != nil {
		return err
	}
	recordRun(runstore.GetStore(), start, cfg, output, &report)
	return outwriter.WriteFormulas(output.Formulas, cfg, time.Since(start))
}

// ExecuteValidate generates and validates formulas for every configured
// analysis type, records the run, and prints the validation report. It serves
// as the main entry point for the 'validate' command.
func ExecuteValidate(ctx context.Context, cfg *contract.Config) error {
	start := time.Now()
	output, report, err := GetValidationResults(ctx, cfg)
	if err != nil {
		return err
	}
	recordRun(runstore.GetStore(), start, cfg, output, &report)
	return outwriter.WriteValidationReport(&report, cfg, time.Since(start))
}

// ExecuteProfiles displays the active relevance profile table. This is a
// static display that does not require loading records.
func ExecuteProfiles(_ context.Context, cfg *contract.Config) error {
	return outwriter.WriteProfiles(cfg.Profiles, cfg)
}

// recordRun persists the generation pass to the run store. Store failures are
// logged and swallowed: run tracking must never fail the generation itself.
func recordRun(store contract.RunStore, start time.Time, cfg *contract.Config, output *GenerationOutput, report *schema.ValidationReport) {
	if store == nil {
		return
	}

	params := map[string]any{
		"records_path":   cfg.RecordsPath,
		"target_field":   cfg.TargetField,
		"limit":          cfg.CandidateLimit,
		"analysis_types": len(cfg.AnalysisTypes),
	}
	runID, err := store.BeginRun(start, params)
	if err != nil {
		contract.LogWarn("failed to record generation run", err)
		return
	}

	for i := range output.Formulas {
		formula := output.Formulas[i]
		result := report.DetailedResults[formula.AnalysisType]
		if err := store.RecordFormula(runID, formula, result); err != nil {
			contract.LogWarn("failed to record formula", err)
		}
	}

	if err := store.EndRun(runID, time.Now(), output.Report.TotalFeatures); err != nil {
		contract.LogWarn("failed to finalize generation run", err)
	}
}
