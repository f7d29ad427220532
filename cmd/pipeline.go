package cmd

import (
	"github.com/quantgeo/scoresmith/core"
	"github.com/quantgeo/scoresmith/internal/contract"
	"github.com/spf13/cobra"
)

// pipelineCmd runs the full generation pipeline and writes all artifacts.
var pipelineCmd = &cobra.Command{
	Use:   "pipeline <records-file>",
	Short: "Run extraction, ranking, synthesis and validation in one pass.",
	Long: `Run every stage of formula generation and write all artifacts to a directory.

The pipeline produces four JSON artifacts in --out-dir:
- feature_importance.json - raw statistical signal per candidate field
- scored_features.json    - relevance-weighted candidates per analysis type
- formulas.json           - synthesized composite score formulas
- validation_report.json  - per-formula validation outcomes

This is the batch entry point for automation: one command, one snapshot,
a complete set of reviewable outputs. The pass is recorded in the run store
when tracking is enabled.

Examples:
  # Generate all artifacts for every analysis type
  scoresmith pipeline snapshot.json --out-dir ./artifacts

  # Restrict the pass to two analysis types
  scoresmith pipeline snapshot.json --out-dir ./artifacts --analysis competitive_analysis,market_sizing`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecutePipeline(rootCtx, cfg); err != nil {
			contract.LogFatal("Cannot run pipeline", err)
		}
	},
}
