package cmd

import (
	"github.com/quantgeo/scoresmith/core"
	"github.com/quantgeo/scoresmith/internal/contract"
	"github.com/spf13/cobra"
)

// validateCmd generates and statistically validates formulas.
var validateCmd = &cobra.Command{
	Use:   "validate <records-file>",
	Short: "Generate and validate composite score formulas.",
	Long: `Run the full generation pass and validate every synthesized formula.

Each formula is checked on three axes, averaged into a single score:
- Structure: component count within the profile's range, no duplicate fields,
  every field present in the source schema
- Weights: weights sum to 1.0, each weight within sane bounds, no single
  component dominating the formula
- Alignment: components actually match the analysis type's keyword patterns
  and required field types

Hard errors (missing fields, broken weight sums) mark a formula invalid;
softer findings are reported as warnings. The pass is recorded in the run
store when tracking is enabled.

Examples:
  # Validate formulas for every known analysis type
  scoresmith validate snapshot.json

  # Validate a single analysis type with more candidates
  scoresmith validate snapshot.json --analysis risk_assessment --limit 30

  # Export the validation report for CI gating
  scoresmith validate snapshot.json --output json --output-file report.json`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteValidate(rootCtx, cfg); err != nil {
			contract.LogFatal("Cannot run validation", err)
		}
	},
}
