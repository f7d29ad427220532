package records

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEnvelope(t *testing.T) {
	data := []byte(`{"results": [{"thematic_value": 42.5, "MP10020A_B_P": 17.2}]}`)
	recs, err := Parse(data)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, 42.5, recs[0]["thematic_value"])
}

func TestParseBareArray(t *testing.T) {
	data := []byte(`[{"thematic_value": 1}, {"thematic_value": 2, "INCOME": null}]`)
	recs, err := Parse(data)
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Nil(t, recs[1]["INCOME"])
}

func TestParseRejectsGarbage(t *testing.T) {
	_, err := Parse([]byte(`"just a string"`))
	assert.Error(t, err)

	_, err = Parse([]byte(`{broken`))
	assert.Error(t, err)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "records.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"results": [{"a": 1}]}`), 0o644))

	recs, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, recs, 1)

	_, err = Load(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestFieldSetUnion(t *testing.T) {
	recs, err := Parse([]byte(`[{"a": 1, "b": 2}, {"b": 3, "c": null}]`))
	require.NoError(t, err)

	fields := FieldSet(recs)
	assert.Len(t, fields, 3)
	assert.Contains(t, fields, "c")
}

func TestRequireTarget(t *testing.T) {
	recs, err := Parse([]byte(`[{"thematic_value": 1}, {"INCOME": 5}]`))
	require.NoError(t, err)

	assert.NoError(t, RequireTarget(recs, "thematic_value"))
	assert.Error(t, RequireTarget(recs, "absent_field"))
}
