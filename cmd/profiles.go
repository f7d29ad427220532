package cmd

import (
	"github.com/quantgeo/scoresmith/core"
	"github.com/quantgeo/scoresmith/internal/contract"
	"github.com/spf13/cobra"
)

// profilesCmd displays the active relevance profile table.
var profilesCmd = &cobra.Command{
	Use:   "profiles",
	Short: "Show the active relevance profiles per analysis type.",
	Long: `Display the relevance profile table that drives ranking and synthesis.

For each analysis type this shows the keyword patterns, component range, and
required field types currently in effect, including any overrides from the
config file. Useful for checking what a custom profiles: section in
.scoresmith.yaml actually resolved to.

Examples:
  # Show all profiles as a table
  scoresmith profiles

  # Export the resolved profile table as JSON
  scoresmith profiles --output json --output-file profiles.json`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteProfiles(rootCtx, cfg); err != nil {
			contract.LogFatal("Cannot show profiles", err)
		}
	},
}
