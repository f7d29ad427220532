package cmd

import (
	"errors"

	"github.com/quantgeo/scoresmith/core"
	"github.com/quantgeo/scoresmith/internal/contract"
	"github.com/spf13/cobra"
)

// rankCmd blends statistical importance with business relevance.
var rankCmd = &cobra.Command{
	Use:   "rank <records-file>",
	Short: "Rank candidate fields for one analysis type.",
	Long: `Score candidate fields for a single analysis type by blending statistical
importance with business relevance.

Each field keeps its Pearson-based importance from extraction and gains a
relevance score from the analysis type's profile: keyword pattern matches,
specific field bonuses, and business keyword hits, with a floor of 0.5 for
fields that match nothing. The final ranking is sorted by the product of
importance and relevance.

Requires exactly one analysis type via --analysis.

Examples:
  # Rank fields for competitive analysis
  scoresmith rank snapshot.json --analysis competitive_analysis

  # Rank fields for demographic work against a custom target
  scoresmith rank snapshot.json --analysis demographic_analysis --target median_income

  # Export the top 30 candidates as JSON
  scoresmith rank snapshot.json --analysis market_sizing --limit 30 --output json`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if len(cfg.AnalysisTypes) != 1 {
			contract.LogFatal("Cannot run ranking",
				errors.New("rank requires exactly one analysis type, use --analysis"))
		}
		if err := core.ExecuteRank(rootCtx, cfg); err != nil {
			contract.LogFatal("Cannot run ranking", err)
		}
	},
}
