// Package runstore persists generation runs and synthesized formulas.
package runstore

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"regexp"
	"time"

	"github.com/quantgeo/scoresmith/internal/contract"
	"github.com/quantgeo/scoresmith/schema"

	_ "github.com/go-sql-driver/mysql" // MySQL driver
	_ "github.com/jackc/pgx/v5/stdlib" // PostgreSQL driver
	_ "modernc.org/sqlite"             // SQLite driver
)

// Table names for run tracking.
const (
	generationRunsTable = "scoresmith_generation_runs"
	formulasTable       = "scoresmith_formulas"
)

// StoreImpl implements the RunStore interface over SQLite, MySQL or
// PostgreSQL. The NoneBackend variant is a no-op store that satisfies the
// interface without touching a database.
type StoreImpl struct {
	db       *sql.DB
	backend  schema.DatabaseBackend
	location string
}

var _ contract.RunStore = &StoreImpl{} // Compile-time check

// NewStore creates a new RunStore for the specified backend.
func NewStore(backend schema.DatabaseBackend, connStr string) (contract.RunStore, error) {
	var db *sql.DB
	var err error
	location := connStr

	switch backend {
	case schema.SQLiteBackend:
		dbPath := connStr
		if dbPath == "" {
			dbPath = contract.GetRunDBFilePath()
		}
		location = dbPath
		db, err = sql.Open("sqlite", dbPath)
		if err != nil {
			return nil, fmt.Errorf("failed to open SQLite database at %q: %w. Check that the directory is writable", dbPath, err)
		}
		// Limit SQLite to a single open connection to avoid "database is locked" errors
		db.SetMaxOpenConns(1)

	case schema.MySQLBackend:
		db, err = sql.Open("mysql", connStr)
		if err != nil {
			return nil, fmt.Errorf("failed to open MySQL database: %w. Check connection string format: user:password@tcp(host:port)/dbname", err)
		}

	case schema.PostgreSQLBackend:
		db, err = sql.Open("pgx", connStr)
		if err != nil {
			return nil, fmt.Errorf("failed to open PostgreSQL database: %w. Check connection string format: host=... dbname=...", err)
		}

	case schema.NoneBackend:
		return &StoreImpl{db: nil, backend: backend}, nil

	default:
		return nil, fmt.Errorf("unsupported backend: %s", backend)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to %s database: %w. Verify the database server is running and accessible", backend, err)
	}

	if err := createRunTables(db, backend); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create run tables: %w", err)
	}

	return &StoreImpl{db: db, backend: backend, location: location}, nil
}

// createRunTables creates the run-tracking tables.
func createRunTables(db *sql.DB, backend schema.DatabaseBackend) error {
	tables := []struct {
		name  string
		query string
	}{
		{generationRunsTable, getCreateGenerationRunsQuery(backend)},
		{formulasTable, getCreateFormulasQuery(backend)},
	}

	for _, table := range tables {
		if _, err := db.Exec(table.query); err != nil {
			return fmt.Errorf("failed to create table %s: %w", table.name, err)
		}
	}
	return nil
}

// getCreateGenerationRunsQuery returns the CREATE TABLE query for scoresmith_generation_runs.
func getCreateGenerationRunsQuery(backend schema.DatabaseBackend) string {
	quotedTableName := quoteTableName(generationRunsTable, backend)

	switch backend {
	case schema.MySQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id BIGINT AUTO_INCREMENT PRIMARY KEY,
				start_time DATETIME(6) NOT NULL,
				end_time DATETIME(6),
				run_duration_ms INT,
				total_features INT,
				config_params TEXT
			);
		`, quotedTableName)

	case schema.PostgreSQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id BIGSERIAL PRIMARY KEY,
				start_time TIMESTAMPTZ NOT NULL,
				end_time TIMESTAMPTZ,
				run_duration_ms INT,
				total_features INT,
				config_params TEXT
			);
		`, quotedTableName)

	default: // SQLite
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id INTEGER PRIMARY KEY AUTOINCREMENT,
				start_time TEXT NOT NULL,
				end_time TEXT,
				run_duration_ms INTEGER,
				total_features INTEGER,
				config_params TEXT
			);
		`, quotedTableName)
	}
}

// getCreateFormulasQuery returns the CREATE TABLE query for scoresmith_formulas.
func getCreateFormulasQuery(backend schema.DatabaseBackend) string {
	quotedTableName := quoteTableName(formulasTable, backend)

	switch backend {
	case schema.MySQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id BIGINT NOT NULL,
				analysis_type VARCHAR(64) NOT NULL,
				components TEXT NOT NULL,
				is_valid TINYINT(1) NOT NULL,
				validation_score DOUBLE NOT NULL,
				warning_count INT NOT NULL,
				error_count INT NOT NULL,
				recorded_at DATETIME(6) NOT NULL,
				PRIMARY KEY (run_id, analysis_type)
			);
		`, quotedTableName)

	case schema.PostgreSQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id BIGINT NOT NULL,
				analysis_type TEXT NOT NULL,
				components TEXT NOT NULL,
				is_valid BOOLEAN NOT NULL,
				validation_score DOUBLE PRECISION NOT NULL,
				warning_count INT NOT NULL,
				error_count INT NOT NULL,
				recorded_at TIMESTAMPTZ NOT NULL,
				PRIMARY KEY (run_id, analysis_type)
			);
		`, quotedTableName)

	default: // SQLite
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id INTEGER NOT NULL,
				analysis_type TEXT NOT NULL,
				components TEXT NOT NULL,
				is_valid INTEGER NOT NULL,
				validation_score REAL NOT NULL,
				warning_count INTEGER NOT NULL,
				error_count INTEGER NOT NULL,
				recorded_at TEXT NOT NULL,
				PRIMARY KEY (run_id, analysis_type)
			);
		`, quotedTableName)
	}
}

// BeginRun creates a new generation run and returns its unique ID.
func (rs *StoreImpl) BeginRun(startTime time.Time, configParams map[string]any) (int64, error) {
	if rs.backend == schema.NoneBackend || rs.db == nil {
		return 0, nil
	}

	configJSON, err := json.Marshal(configParams)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal config params: %w", err)
	}

	quotedTableName := quoteTableName(generationRunsTable, rs.backend)

	var runID int64
	switch rs.backend {
	case schema.PostgreSQLBackend:
		query := fmt.Sprintf(`INSERT INTO %s (start_time, config_params) VALUES ($1, $2) RETURNING run_id`, quotedTableName)
		err = rs.db.QueryRow(query, startTime, string(configJSON)).Scan(&runID)
	default: // SQLite and MySQL
		query := fmt.Sprintf(`INSERT INTO %s (start_time, config_params) VALUES (?, ?)`, quotedTableName)
		var result sql.Result
		result, err = rs.db.Exec(query, formatTime(startTime, rs.backend), string(configJSON))
		if err != nil {
			return 0, err
		}
		runID, err = result.LastInsertId()
	}

	if err != nil {
		return 0, fmt.Errorf("failed to insert generation run: %w", err)
	}
	return runID, nil
}

// EndRun updates the generation run with completion data.
func (rs *StoreImpl) EndRun(runID int64, endTime time.Time, totalFeatures int) error {
	if rs.backend == schema.NoneBackend || rs.db == nil {
		return nil
	}

	quotedTableName := quoteTableName(generationRunsTable, rs.backend)

	var query string
	switch rs.backend {
	case schema.PostgreSQLBackend:
		query = fmt.Sprintf(`SELECT start_time FROM %s WHERE run_id = $1`, quotedTableName)
	default:
		query = fmt.Sprintf(`SELECT start_time FROM %s WHERE run_id = ?`, quotedTableName)
	}

	startTime, err := scanTime(rs.db.QueryRow(query, runID), rs.backend)
	if err != nil {
		return fmt.Errorf("failed to get start_time for run %d: %w", runID, err)
	}
	durationMs := endTime.Sub(startTime).Milliseconds()

	var updateQuery string
	var args []any
	switch rs.backend {
	case schema.PostgreSQLBackend:
		updateQuery = fmt.Sprintf(`UPDATE %s SET end_time = $1, run_duration_ms = $2, total_features = $3 WHERE run_id = $4`, quotedTableName)
		args = []any{endTime, durationMs, totalFeatures, runID}
	default:
		updateQuery = fmt.Sprintf(`UPDATE %s SET end_time = ?, run_duration_ms = ?, total_features = ? WHERE run_id = ?`, quotedTableName)
		args = []any{formatTime(endTime, rs.backend), durationMs, totalFeatures, runID}
	}

	if _, err := rs.db.Exec(updateQuery, args...); err != nil {
		return fmt.Errorf("failed to update generation run: %w", err)
	}
	return nil
}

// RecordFormula stores a synthesized formula and its validation outcome.
func (rs *StoreImpl) RecordFormula(runID int64, formula schema.CompositeScoreFormula, result schema.ValidationResult) error {
	if rs.backend == schema.NoneBackend || rs.db == nil {
		return nil
	}

	componentsJSON, err := json.Marshal(formula.Components)
	if err != nil {
		return fmt.Errorf("failed to marshal formula components: %w", err)
	}

	quotedTableName := quoteTableName(formulasTable, rs.backend)
	recordedAt := formatTime(time.Now().UTC(), rs.backend)

	var query string
	switch rs.backend {
	case schema.PostgreSQLBackend:
		query = fmt.Sprintf(`
			INSERT INTO %s (run_id, analysis_type, components, is_valid,
			                validation_score, warning_count, error_count, recorded_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		`, quotedTableName)
	default: // SQLite and MySQL
		query = fmt.Sprintf(`
			INSERT INTO %s (run_id, analysis_type, components, is_valid,
			                validation_score, warning_count, error_count, recorded_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		`, quotedTableName)
	}

	_, err = rs.db.Exec(query,
		runID, string(formula.AnalysisType), string(componentsJSON), result.IsValid,
		result.ValidationScore, len(result.Warnings), len(result.Errors), recordedAt)
	if err != nil {
		return fmt.Errorf("failed to insert formula record: %w", err)
	}
	return nil
}

// ListRuns returns the most recent generation runs, newest first.
func (rs *StoreImpl) ListRuns(limit int) ([]schema.GenerationRun, error) {
	if rs.backend == schema.NoneBackend || rs.db == nil {
		return nil, nil
	}
	if limit < 1 {
		limit = 1
	}

	quotedTableName := quoteTableName(generationRunsTable, rs.backend)
	var query string
	switch rs.backend {
	case schema.PostgreSQLBackend:
		query = fmt.Sprintf(`SELECT run_id, start_time, end_time, total_features, config_params FROM %s ORDER BY run_id DESC LIMIT $1`, quotedTableName)
	default:
		query = fmt.Sprintf(`SELECT run_id, start_time, end_time, total_features, config_params FROM %s ORDER BY run_id DESC LIMIT ?`, quotedTableName)
	}

	rows, err := rs.db.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query generation runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []schema.GenerationRun
	for rows.Next() {
		var run schema.GenerationRun
		var totalFeatures sql.NullInt64
		var configParams sql.NullString

		switch rs.backend {
		case schema.SQLiteBackend:
			var startTimeStr string
			var endTimeStr *string
			if err := rows.Scan(&run.RunID, &startTimeStr, &endTimeStr, &totalFeatures, &configParams); err != nil {
				return nil, fmt.Errorf("failed to scan generation run: %w", err)
			}
			startTime, err := time.Parse(time.RFC3339Nano, startTimeStr)
			if err != nil {
				return nil, fmt.Errorf("failed to parse start_time: %w", err)
			}
			run.StartTime = startTime
			if endTimeStr != nil {
				endTime, err := time.Parse(time.RFC3339Nano, *endTimeStr)
				if err != nil {
					return nil, fmt.Errorf("failed to parse end_time: %w", err)
				}
				run.EndTime = &endTime
			}
		default: // MySQL and PostgreSQL
			if err := rows.Scan(&run.RunID, &run.StartTime, &run.EndTime, &totalFeatures, &configParams); err != nil {
				return nil, fmt.Errorf("failed to scan generation run: %w", err)
			}
		}

		run.TotalFeatures = int(totalFeatures.Int64)
		run.ConfigParams = configParams.String
		results = append(results, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating generation runs: %w", err)
	}
	return results, nil
}

// ListFormulas returns all formulas recorded for a run.
func (rs *StoreImpl) ListFormulas(runID int64) ([]schema.FormulaRecord, error) {
	if rs.backend == schema.NoneBackend || rs.db == nil {
		return nil, nil
	}

	quotedTableName := quoteTableName(formulasTable, rs.backend)
	var query string
	switch rs.backend {
	case schema.PostgreSQLBackend:
		query = fmt.Sprintf(`SELECT run_id, analysis_type, components, is_valid, validation_score, warning_count, error_count, recorded_at FROM %s WHERE run_id = $1 ORDER BY analysis_type`, quotedTableName)
	default:
		query = fmt.Sprintf(`SELECT run_id, analysis_type, components, is_valid, validation_score, warning_count, error_count, recorded_at FROM %s WHERE run_id = ? ORDER BY analysis_type`, quotedTableName)
	}

	rows, err := rs.db.Query(query, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query formula records: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []schema.FormulaRecord
	for rows.Next() {
		var record schema.FormulaRecord
		var analysisType, componentsJSON string

		switch rs.backend {
		case schema.SQLiteBackend:
			var recordedAtStr string
			if err := rows.Scan(&record.RunID, &analysisType, &componentsJSON, &record.IsValid,
				&record.ValidationScore, &record.WarningCount, &record.ErrorCount, &recordedAtStr); err != nil {
				return nil, fmt.Errorf("failed to scan formula record: %w", err)
			}
			recordedAt, err := time.Parse(time.RFC3339Nano, recordedAtStr)
			if err != nil {
				return nil, fmt.Errorf("failed to parse recorded_at: %w", err)
			}
			record.RecordedAt = recordedAt
		default: // MySQL and PostgreSQL
			if err := rows.Scan(&record.RunID, &analysisType, &componentsJSON, &record.IsValid,
				&record.ValidationScore, &record.WarningCount, &record.ErrorCount, &record.RecordedAt); err != nil {
				return nil, fmt.Errorf("failed to scan formula record: %w", err)
			}
		}

		record.AnalysisType = schema.AnalysisType(analysisType)
		if err := json.Unmarshal([]byte(componentsJSON), &record.Components); err != nil {
			return nil, fmt.Errorf("failed to decode formula components: %w", err)
		}
		results = append(results, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating formula records: %w", err)
	}
	return results, nil
}

// GetStatus returns status information about the run store.
func (rs *StoreImpl) GetStatus() (schema.StoreStatus, error) {
	status := schema.StoreStatus{
		Backend:  rs.backend,
		Location: rs.location,
	}
	if rs.backend == schema.NoneBackend || rs.db == nil {
		return status, nil
	}

	runsQuery := fmt.Sprintf("SELECT COUNT(*) FROM %s", quoteTableName(generationRunsTable, rs.backend))
	if err := rs.db.QueryRow(runsQuery).Scan(&status.TotalRuns); err != nil {
		return status, fmt.Errorf("failed to get total runs: %w", err)
	}

	formulasQuery := fmt.Sprintf("SELECT COUNT(*) FROM %s", quoteTableName(formulasTable, rs.backend))
	if err := rs.db.QueryRow(formulasQuery).Scan(&status.TotalFormulas); err != nil {
		return status, fmt.Errorf("failed to get total formulas: %w", err)
	}

	if status.TotalRuns > 0 {
		lastRunQuery := fmt.Sprintf("SELECT start_time FROM %s ORDER BY run_id DESC LIMIT 1", quoteTableName(generationRunsTable, rs.backend))
		lastRunTime, err := scanTime(rs.db.QueryRow(lastRunQuery), rs.backend)
		if err != nil {
			return status, fmt.Errorf("failed to get last run time: %w", err)
		}
		status.LastRunTime = lastRunTime
	}
	return status, nil
}

// Clear removes all recorded runs and formulas.
func (rs *StoreImpl) Clear() error {
	if rs.backend == schema.NoneBackend || rs.db == nil {
		return nil
	}
	for _, table := range []string{formulasTable, generationRunsTable} {
		query := fmt.Sprintf("DELETE FROM %s", quoteTableName(table, rs.backend))
		if _, err := rs.db.Exec(query); err != nil {
			return fmt.Errorf("failed to clear table %s: %w", table, err)
		}
	}
	return nil
}

// Close closes the underlying connection.
func (rs *StoreImpl) Close() error {
	if rs.db != nil {
		return rs.db.Close()
	}
	return nil
}

// scanTime reads a single time column, handling the per-backend storage
// format: RFC3339 text for SQLite, native datetime elsewhere.
func scanTime(row *sql.Row, backend schema.DatabaseBackend) (time.Time, error) {
	if backend == schema.SQLiteBackend {
		var s string
		if err := row.Scan(&s); err != nil {
			return time.Time{}, err
		}
		return time.Parse(time.RFC3339Nano, s)
	}
	var t time.Time
	if err := row.Scan(&t); err != nil {
		return time.Time{}, err
	}
	return t, nil
}

// formatTime converts a time.Time to the appropriate format for the backend.
func formatTime(t time.Time, backend schema.DatabaseBackend) any {
	if backend == schema.SQLiteBackend {
		return t.Format(time.RFC3339Nano)
	}
	return t
}

var tableNamePattern = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// quoteTableName returns the properly quoted table name for the given backend.
// Table names are compile-time constants validated against a safe identifier
// pattern; the panic is a programming-error guard, not a runtime path.
func quoteTableName(name string, backend schema.DatabaseBackend) string {
	if !tableNamePattern.MatchString(name) {
		panic(fmt.Sprintf("invalid table name: %s", name))
	}
	switch backend {
	case schema.MySQLBackend:
		return fmt.Sprintf("`%s`", name)
	default: // SQLite and PostgreSQL
		return fmt.Sprintf("%q", name)
	}
}
