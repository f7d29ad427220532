package contract

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/quantgeo/scoresmith/schema"
)

// Default values for configuration.
const (
	DefaultTargetField    = "thematic_value"
	DefaultCandidateLimit = 15
	MaxCandidateLimit     = 200
	DefaultPrecision      = 2
	MaxPrecision          = 4
)

// DefaultExcludeFields is the deny-list of non-scoring fields: identifiers,
// audit metadata and geometry/description text that must never enter a
// formula regardless of apparent correlation.
var DefaultExcludeFields = []string{
	"OBJECTID",
	"FID",
	"ID",
	"GEOID",
	"CreationDate",
	"Creator",
	"EditDate",
	"Editor",
	"Shape__Area",
	"Shape__Length",
	"DESCRIPTION",
	"area_name",
	"admin_region",
}

// Config holds the runtime configuration for formula generation.
// This struct remains the "final, validated" config.
type Config struct {
	RecordsPath    string
	TargetField    string
	AnalysisTypes  []schema.AnalysisType
	CandidateLimit int
	Precision      int
	Output         schema.OutputMode
	OutputFile     string
	OutDir         string
	ExcludeFields  []string
	Width          int // Terminal width override (0 = auto-detect)

	StoreBackend   schema.DatabaseBackend
	StoreDBConnect string // Please use env var as this is plaintext

	// Profiles is the active relevance profile table: built-in defaults
	// merged with any per-type overrides from the config file.
	Profiles map[schema.AnalysisType]schema.RelevanceProfile

	UseColors bool // Enable colored labels in table output
}

// ProfileRawInput holds the per-analysis-type overrides from the YAML config
// file. Only fields that might be customized are included; pointers mark
// optional numeric fields.
type ProfileRawInput struct {
	Patterns           []string           `mapstructure:"patterns"`
	Bonuses            map[string]float64 `mapstructure:"bonuses"`
	MinComponents      *int               `mapstructure:"min_components"`
	MaxComponents      *int               `mapstructure:"max_components"`
	RequiredFieldTypes []string           `mapstructure:"required_field_types"`
	BusinessKeywords   []string           `mapstructure:"business_keywords"`
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// This is set manually from positional args, so no tag
	RecordsPathStr string

	// --- Fields from rootCmd.PersistentFlags() ---
	Target         string `mapstructure:"target"`
	Analysis       string `mapstructure:"analysis"`
	Limit          int    `mapstructure:"limit"`
	Precision      int    `mapstructure:"precision"`
	Output         string `mapstructure:"output"`
	OutputFile     string `mapstructure:"output-file"`
	OutDir         string `mapstructure:"out-dir"`
	Exclude        string `mapstructure:"exclude"`
	Width          int    `mapstructure:"width"`
	StoreBackend   string `mapstructure:"store-backend"`
	StoreDBConnect string `mapstructure:"store-db-connect"`
	Color          string `mapstructure:"color"`

	// --- Profile overrides from config file ---
	Profiles map[string]ProfileRawInput `mapstructure:"profiles"`
}

// Clone returns a deep copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	if c.AnalysisTypes != nil {
		clone.AnalysisTypes = slices.Clone(c.AnalysisTypes)
	}
	if c.ExcludeFields != nil {
		clone.ExcludeFields = slices.Clone(c.ExcludeFields)
	}
	if c.Profiles != nil {
		clone.Profiles = make(map[schema.AnalysisType]schema.RelevanceProfile, len(c.Profiles))
		maps.Copy(clone.Profiles, c.Profiles)
	}
	return &clone
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and updates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := processAnalysisTypes(cfg, input); err != nil {
		return err
	}
	if err := validateBackendConfig(cfg, input); err != nil {
		return err
	}
	if err := processProfileOverrides(cfg, input); err != nil {
		return err
	}
	return nil
}

// validateSimpleInputs processes and validates all scalar fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	cfg.RecordsPath = input.RecordsPathStr

	cfg.TargetField = strings.TrimSpace(input.Target)
	if cfg.TargetField == "" {
		cfg.TargetField = DefaultTargetField
	}

	if input.Limit < 1 {
		return fmt.Errorf("limit must be at least 1, got %d", input.Limit)
	}
	if input.Limit > MaxCandidateLimit {
		return fmt.Errorf("limit cannot exceed %d candidate features", MaxCandidateLimit)
	}
	cfg.CandidateLimit = input.Limit

	if input.Precision < 0 || input.Precision > MaxPrecision {
		return fmt.Errorf("precision must be between 0 and %d, got %d", MaxPrecision, input.Precision)
	}
	cfg.Precision = input.Precision

	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output mode '%s'. must be text, csv, json, parquet", input.Output)
	}
	cfg.OutputFile = input.OutputFile
	cfg.OutDir = input.OutDir
	cfg.Width = input.Width

	// Deny-list: defaults plus any user-supplied extras.
	cfg.ExcludeFields = slices.Clone(DefaultExcludeFields)
	if input.Exclude != "" {
		for p := range strings.SplitSeq(input.Exclude, ",") {
			p = strings.TrimSpace(p)
			if p != "" {
				cfg.ExcludeFields = append(cfg.ExcludeFields, p)
			}
		}
	}

	useColors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid color setting: %w", err)
	}
	cfg.UseColors = useColors

	return nil
}

// processAnalysisTypes resolves the --analysis selector into a concrete list.
// "all" (or empty) selects every known analysis type. Unrecognized names are
// kept with a warning: the scorer handles them through the explicit fallback
// profile rather than failing the whole batch.
func processAnalysisTypes(cfg *Config, input *ConfigRawInput) error {
	selector := strings.TrimSpace(strings.ToLower(input.Analysis))
	if selector == "" || selector == "all" {
		cfg.AnalysisTypes = slices.Clone(schema.AllAnalysisTypes)
		return nil
	}

	var types []schema.AnalysisType
	for part := range strings.SplitSeq(selector, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		at := schema.AnalysisType(part)
		if _, ok := schema.ValidAnalysisTypes[at]; !ok {
			LogWarn(fmt.Sprintf("unknown analysis type %q, using fallback relevance profile", part), nil)
		}
		types = append(types, at)
	}
	if len(types) == 0 {
		return fmt.Errorf("no analysis types selected from %q", input.Analysis)
	}
	cfg.AnalysisTypes = types
	return nil
}

// ValidateDatabaseConnectionString validates the format of database connection
// strings for MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("store-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("store-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' parameter")
		}
		if !strings.Contains(connStr, "dbname=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'dbname=' parameter")
		}
	}
	return nil
}

// validateBackendConfig validates the run-tracking backend configuration.
func validateBackendConfig(cfg *Config, input *ConfigRawInput) error {
	cfg.StoreBackend = schema.DatabaseBackend(strings.ToLower(input.StoreBackend))
	if _, ok := schema.ValidDatabaseBackends[cfg.StoreBackend]; !ok {
		return fmt.Errorf("invalid store backend '%s'. must be sqlite, mysql, postgresql, none", input.StoreBackend)
	}
	cfg.StoreDBConnect = input.StoreDBConnect
	return ValidateDatabaseConnectionString(cfg.StoreBackend, cfg.StoreDBConnect)
}

// processProfileOverrides merges config-file profile overrides on top of the
// built-in table. Overrides for unknown analysis types create new profiles,
// which keeps experimental types usable without a rebuild.
func processProfileOverrides(cfg *Config, input *ConfigRawInput) error {
	cfg.Profiles = schema.DefaultProfiles()

	for name, raw := range input.Profiles {
		at := schema.AnalysisType(strings.ToLower(strings.TrimSpace(name)))
		profile, ok := cfg.Profiles[at]
		if !ok {
			profile = schema.FallbackProfile(at)
		}

		if len(raw.Patterns) > 0 {
			profile.KeywordPatterns = lowercaseAll(raw.Patterns)
		}
		if len(raw.Bonuses) > 0 {
			bonuses := make(map[string]float64, len(raw.Bonuses))
			for k, v := range raw.Bonuses {
				if v < 0 || v > 1 {
					return fmt.Errorf("profile %s: bonus for %q must be in [0, 1], got %v", at, k, v)
				}
				bonuses[strings.ToLower(k)] = v
			}
			profile.SpecificBonuses = bonuses
		}
		if raw.MinComponents != nil {
			if *raw.MinComponents < 1 {
				return fmt.Errorf("profile %s: min_components must be at least 1", at)
			}
			profile.MinComponents = *raw.MinComponents
		}
		if raw.MaxComponents != nil {
			profile.MaxComponents = *raw.MaxComponents
		}
		if profile.MaxComponents < profile.MinComponents {
			return fmt.Errorf("profile %s: max_components (%d) below min_components (%d)",
				at, profile.MaxComponents, profile.MinComponents)
		}
		if len(raw.RequiredFieldTypes) > 0 {
			for _, ft := range raw.RequiredFieldTypes {
				if _, known := schema.FieldTypeKeywords[ft]; !known {
					return fmt.Errorf("profile %s: unknown required field type %q", at, ft)
				}
			}
			profile.RequiredFieldTypes = slices.Clone(raw.RequiredFieldTypes)
		}
		if len(raw.BusinessKeywords) > 0 {
			profile.BusinessKeywords = lowercaseAll(raw.BusinessKeywords)
		}

		if len(profile.KeywordPatterns) == 0 && at.IsKnown() {
			return fmt.Errorf("profile %s: at least one keyword pattern is required", at)
		}

		cfg.Profiles[at] = profile
	}
	return nil
}

// lowercaseAll returns a lowercase copy of the given strings.
func lowercaseAll(in []string) []string {
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = strings.ToLower(strings.TrimSpace(s))
	}
	return out
}
