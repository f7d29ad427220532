package cmd

import (
	"github.com/quantgeo/scoresmith/core"
	"github.com/quantgeo/scoresmith/internal/contract"
	"github.com/spf13/cobra"
)

// synthesizeCmd generates weighted composite score formulas.
var synthesizeCmd = &cobra.Command{
	Use:   "synthesize <records-file>",
	Short: "Synthesize weighted composite score formulas.",
	Long: `Generate one weighted composite score formula per selected analysis type.

For each analysis type, the top candidates from ranking are clamped to the
profile's component range, and their weighted scores are normalized so the
formula weights always sum to 1.0. Analysis types without enough surviving
signal are skipped with a warning instead of failing the batch.

Every synthesis pass is recorded in the run store (when enabled), so formulas
can be compared across snapshots over time.

Examples:
  # Synthesize formulas for every known analysis type
  scoresmith synthesize snapshot.json

  # Synthesize for a specific subset
  scoresmith synthesize snapshot.json --analysis competitive_analysis,market_sizing

  # Export the formulas as JSON for downstream scoring
  scoresmith synthesize snapshot.json --output json --output-file formulas.json

  # Disable run tracking for a one-off experiment
  scoresmith synthesize snapshot.json --store-backend none`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteSynthesize(rootCtx, cfg); err != nil {
			contract.LogFatal("Cannot run synthesis", err)
		}
	},
}
