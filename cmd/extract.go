package cmd

import (
	"github.com/quantgeo/scoresmith/core"
	"github.com/quantgeo/scoresmith/internal/contract"
	"github.com/spf13/cobra"
)

// extractCmd performs feature importance extraction.
var extractCmd = &cobra.Command{
	Use:   "extract <records-file>",
	Short: "Extract statistical feature importance from a records snapshot.",
	Long: `Scan a records snapshot and rank every numeric field by how strongly it
correlates with the target field.

Each candidate field is scored with the absolute Pearson correlation against
the target, computed over the rows where both values are numeric. Fields are
dropped when they:
- Appear on the exclusion list (identifiers, audit metadata, geometry text)
- Have fewer than 10 valid numeric pairs with the target
- Score at or below the 0.1 noise floor
- Lose to a percentage variant of the same base field (FOO vs FOO_P)

The result is the raw statistical signal, before any business relevance
weighting is applied.

Examples:
  # Rank fields against the default target (thematic_value)
  scoresmith extract snapshot.json

  # Correlate against a custom target field
  scoresmith extract snapshot.json --target median_income

  # Keep more candidates and export them for inspection
  scoresmith extract snapshot.json --limit 50 --output csv --output-file importance.csv`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteExtract(rootCtx, cfg); err != nil {
			contract.LogFatal("Cannot run extraction", err)
		}
	},
}
