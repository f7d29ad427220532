package cmd

import (
	"github.com/quantgeo/scoresmith/internal/mcp"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the Scoresmith MCP server",
	Long:  `Launch an MCP server that allows AI agents to extract, rank, synthesize and validate scoring formulas via standard tools.`,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		// Positional records path is optional for the MCP server; tools
		// supply records_path per request instead.
		return sharedSetup(rootCtx, cmd, args)
	},
	RunE: func(_ *cobra.Command, _ []string) error {
		return mcp.StartMCPServer(rootCtx, cfg)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
