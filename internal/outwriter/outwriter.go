// Package outwriter has output and writer logic.
package outwriter

import (
	"os"

	"github.com/quantgeo/scoresmith/internal/contract"
	"golang.org/x/term"
)

// getMaxTableFieldWidth calculates the maximum width for field names in table
// output based on terminal width and table configuration.
func getMaxTableFieldWidth(cfg *contract.Config) int {
	var termWidth int

	// Check for absolute width override from flag/env
	if cfg.Width > 0 {
		termWidth = cfg.Width
	}

	if termWidth == 0 { // Not set by override
		detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil || detectedWidth <= 0 {
			// Fallback to conservative default if terminal size can't be detected
			termWidth = 80 // Conservative default for narrow terminals and CI
		} else {
			termWidth = detectedWidth
		}
	}

	// Reserve space for the numeric columns (rank, scores, label) plus table
	// borders, separators, and padding.
	const baseWidth = 45

	available := termWidth - baseWidth
	if available < 12 {
		// Minimum reasonable field width
		return 12
	}
	if available > 40 {
		// ArcGIS field names rarely exceed this; keeps tables compact
		return 40
	}
	return available
}
