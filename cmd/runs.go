package cmd

import (
	"fmt"
	"strings"

	"github.com/quantgeo/scoresmith/internal/contract"
	"github.com/quantgeo/scoresmith/internal/parquet"
	"github.com/quantgeo/scoresmith/internal/runstore"
	"github.com/quantgeo/scoresmith/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// exportRunLimit bounds how many runs a single export will pull.
const exportRunLimit = 100000

// runsSetup loads minimal configuration needed for run store operations.
// This is used by commands that need store access without full shared setup.
func runsSetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	// Get store-related config values
	backendStr := viper.GetString("store-backend")
	connStr := viper.GetString("store-db-connect")

	// Handle empty backend as NoneBackend
	var backend schema.DatabaseBackend
	if backendStr == "" {
		backend = schema.NoneBackend
	} else {
		backend = schema.DatabaseBackend(strings.ToLower(backendStr))
	}

	// Basic validation for database backends
	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return err
	}

	// Initialize the run store with the loaded config
	if err := runstore.InitStore(backend, connStr); err != nil {
		return fmt.Errorf("failed to initialize run store: %w", err)
	}

	cfg.StoreBackend = backend
	cfg.StoreDBConnect = connStr
	cfg.OutputFile = viper.GetString("output-file")

	return nil
}

// runsSetupWrapper wraps runsSetup to provide PreRunE for runs commands.
func runsSetupWrapper(_ *cobra.Command, _ []string) error {
	return runsSetup()
}

// runsMigrateSetup loads minimal configuration needed for migrate operations.
// This is a specialized setup that does NOT initialize the store or create
// tables, allowing migrations to run on a fresh database.
func runsMigrateSetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	// Get store-related config values
	backendStr := viper.GetString("store-backend")
	connStr := viper.GetString("store-db-connect")

	// Handle empty backend as NoneBackend
	var backend schema.DatabaseBackend
	if backendStr == "" {
		backend = schema.NoneBackend
	} else {
		backend = schema.DatabaseBackend(strings.ToLower(backendStr))
	}

	// Basic validation for database backends
	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return err
	}

	// For SQLite backend with empty connection string, use default path
	if backend == schema.SQLiteBackend && connStr == "" {
		connStr = contract.GetRunDBFilePath()
	}

	cfg.StoreBackend = backend
	cfg.StoreDBConnect = connStr

	return nil
}

// runsMigrateSetupWrapper wraps runsMigrateSetup to provide PreRunE for the migrate command.
func runsMigrateSetupWrapper(_ *cobra.Command, _ []string) error {
	return runsMigrateSetup()
}

// runsCmd focused on run history data management.
//
// Note: Runs subcommands use minimal initialization (runsSetup) instead of the
// full sharedSetup used by generation commands. This avoids records file
// validation and profile processing for simple store operations.
var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Manage recorded generation runs and exports",
	Long: `Manage the historical record of formula generation runs.

When enabled, Scoresmith tracks every synthesis and validation pass, storing:
- Run metadata (timestamps, duration, configuration)
- Every synthesized formula with its components and weights
- Validation outcomes per formula

This enables comparing formulas across snapshots and exporting run history
for analytics.

Supported backends: SQLite (default), MySQL, PostgreSQL, or None (disabled)

Subcommands:
  status  - Show run tracking statistics
  list    - List recent generation runs
  export  - Export run history to Parquet for analytics
  clear   - Remove all recorded runs
  migrate - Run database schema migrations

Examples:
  # Check tracking status
  scoresmith runs status

  # Export for analysis in pandas/DuckDB
  scoresmith runs export --output-file runs.parquet`,
}

// runsStatusCmd shows run store status.
var runsStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display run tracking statistics and connection details",
	Long: `Show detailed information about generation run tracking.

Displays:
- Backend type and storage location
- Total number of recorded runs and formulas
- Timestamp of the most recent run

Use this to verify run tracking is enabled and working, and to monitor data
accumulation over time.

Examples:
  # Check run tracking status
  scoresmith runs status`,
	PreRunE: runsSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		status, err := runstore.GetStore().GetStatus()
		if err != nil {
			contract.LogFatal("Failed to get run store status", err)
		}
		runstore.PrintStoreStatus(status)
	},
}

// runsListCmd lists recent generation runs.
var runsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent generation runs, newest first",
	Long: `Show the most recent generation runs recorded in the store.

Each line includes the run ID, start and end timestamps, and how many
candidate features the pass extracted. Use --limit to control how many
runs are shown.

Examples:
  # Show the most recent runs
  scoresmith runs list

  # Show the last 50 runs
  scoresmith runs list --limit 50`,
	PreRunE: runsSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		runs, err := runstore.GetStore().ListRuns(viper.GetInt("limit"))
		if err != nil {
			contract.LogFatal("Failed to list generation runs", err)
		}
		runstore.PrintRuns(runs)
	},
}

// runsClearCmd clears the run history.
var runsClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all recorded generation runs and formulas",
	Long: `Delete all stored generation runs and their formulas.

WARNING: This action cannot be undone. Consider exporting data first.

Examples:
  # Export before clearing
  scoresmith runs export --output-file backup.parquet
  scoresmith runs clear

  # Clear and start fresh
  scoresmith runs clear`,
	PreRunE: runsSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := runstore.GetStore().Clear(); err != nil {
			contract.LogFatal("Failed to clear run history", err)
		}
		fmt.Println("Run history cleared successfully.")
	},
}

// runsExportCmd exports run history to a Parquet file.
var runsExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export run history to Parquet for BI tools and analytics",
	Long: `Export all recorded generation runs to Parquet format.

Parquet format enables:
- Fast querying with DuckDB, Apache Spark, pandas
- Efficient storage with columnar compression
- Direct import into BI tools (Tableau, Metabase, etc.)

Requires: --output-file parameter

Examples:
  # Export all run history
  scoresmith runs export --output-file runs.parquet

  # Use with DuckDB for analysis
  scoresmith runs export --output-file runs.parquet
  duckdb -c "SELECT * FROM read_parquet('runs.parquet') LIMIT 10"`,
	PreRunE: runsSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if cfg.OutputFile == "" {
			contract.LogFatal("Failed to export run history",
				fmt.Errorf("an output file is required, use --output-file"))
		}
		runs, err := runstore.GetStore().ListRuns(exportRunLimit)
		if err != nil {
			contract.LogFatal("Failed to list generation runs", err)
		}
		if err := parquet.WriteGenerationRunsParquet(runs, cfg.OutputFile); err != nil {
			contract.LogFatal("Failed to export run history", err)
		}
		fmt.Printf("Exported %d runs to %s\n", len(runs), cfg.OutputFile)
	},
}

// runsMigrateCmd runs database migrations for the run store.
var runsMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database schema migrations (upgrades/downgrades)",
	Long: `Manage database schema versions for the run tracking store.

Migrations allow:
- Upgrading to new schema versions when Scoresmith is updated
- Safely modifying database structure without data loss
- Rolling back schema changes if needed

By default, migrates to the latest version. Use --target-version for specific versions.

Examples:
  # Migrate to latest version (default)
  scoresmith runs migrate

  # Migrate to specific version
  scoresmith runs migrate --target-version 1

  # Rollback to initial state
  scoresmith runs migrate --target-version 0`,
	PreRunE: runsMigrateSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		targetVersion := viper.GetInt("target-version")
		if err := runstore.Migrate(cfg.StoreBackend, cfg.StoreDBConnect, targetVersion); err != nil {
			contract.LogFatal("Failed to run migrations", err)
		}
	},
}
