// Package records loads flat labeled record snapshots from JSON files.
package records

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/quantgeo/scoresmith/schema"
)

// envelope is the export shape produced by the upstream endpoint dumps:
// a top-level object with the records under "results".
type envelope struct {
	Results []schema.Record `json:"results"`
}

// Load reads records from a JSON file. Both the enveloped form
// {"results": [...]} and a bare top-level array are accepted.
func Load(path string) ([]schema.Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read records file: %w", err)
	}
	return Parse(data)
}

// Parse decodes records from raw JSON bytes.
func Parse(data []byte) ([]schema.Record, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err == nil && env.Results != nil {
		return env.Results, nil
	}

	var recs []schema.Record
	if err := json.Unmarshal(data, &recs); err != nil {
		return nil, fmt.Errorf("decode records: expected {\"results\": [...]} or a JSON array: %w", err)
	}
	return recs, nil
}

// FieldSet returns the union of field names across all records. Records are
// sparse: a field present in any record is part of the schema.
func FieldSet(recs []schema.Record) map[string]struct{} {
	fields := make(map[string]struct{})
	for _, rec := range recs {
		for name := range rec {
			fields[name] = struct{}{}
		}
	}
	return fields
}

// RequireTarget verifies that the target field appears in at least one record.
func RequireTarget(recs []schema.Record, target string) error {
	for _, rec := range recs {
		if _, ok := rec[target]; ok {
			return nil
		}
	}
	return fmt.Errorf("target field %q not present in any record", target)
}
