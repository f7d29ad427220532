package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
)

// Confidence label constants for validation and importance scores.
const (
	StrongValue   = "Strong"   // Strong value
	SolidValue    = "Solid"    // Solid value
	MarginalValue = "Marginal" // Marginal value
	WeakValue     = "Weak"     // Weak value
)

// Color variables for console output.
var (
	StrongColor   = color.New(color.FgGreen, color.Bold) // strongColor marks formulas safe to deploy.
	SolidColor    = color.New(color.FgCyan)              // solidColor marks acceptable formulas.
	MarginalColor = color.New(color.FgYellow)            // marginalColor marks formulas needing review.
	WeakColor     = color.New(color.FgRed, color.Bold)   // weakColor marks formulas that should not ship.
)

// GetPlainLabel returns a plain text confidence label for a [0, 1] score.
// This is the core logic used for CSV, JSON, and table printing.
func GetPlainLabel(score float64) string {
	switch {
	case score >= 0.9:
		return StrongValue
	case score >= 0.7:
		return SolidValue
	case score >= 0.5:
		return MarginalValue
	default:
		return WeakValue
	}
}

// GetColorLabel returns a colored confidence label for console table output.
// It uses GetPlainLabel to determine the string, and then applies the appropriate color.
func GetColorLabel(score float64, useColors bool) string {
	text := GetPlainLabel(score)
	if !useColors {
		return text
	}

	switch text {
	case StrongValue:
		return StrongColor.Sprint(text)
	case SolidValue:
		return SolidColor.Sprint(text)
	case MarginalValue:
		return MarginalColor.Sprint(text)
	default: // "Weak"
		return WeakColor.Sprint(text)
	}
}

// SelectOutputFile returns the appropriate file handle for output, based on
// the provided file path. It returns os.Stdout when no path is given.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Fatal %s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Warn %s: %v\n", msg, err)
		return
	}
	_, _ = fmt.Fprintf(os.Stderr, "Warn %s\n", msg)
}

// GetRunDBFilePath returns the path to the SQLite DB file for run tracking.
func GetRunDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".scoresmith_runs.db"
	}
	return filepath.Join(homeDir, ".scoresmith_runs.db")
}

// TruncateField truncates a field name to a maximum width with ellipsis suffix.
// Requires maxWidth > 3 so there is room for both the ellipsis and at least
// one character of content.
func TruncateField(field string, maxWidth int) string {
	runes := []rune(field)
	if len(runes) > maxWidth && maxWidth > 3 {
		return string(runes[:maxWidth-3]) + "..."
	}
	return field
}

// ParseBoolString parses a string value into a boolean.
// Accepts "yes", "no", "true", "false", "1", "0" (case-insensitive).
// Returns an error for invalid values.
func ParseBoolString(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "true", "1":
		return true, nil
	case "no", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean string: %s (expected yes/no/true/false/1/0)", s)
	}
}
