package story

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/B16B1RD/cc-xp-kit/internal/criteria"
)

func TestParseFixSet(t *testing.T) {
	data := []byte(`{
		"story1": {"missingFeatures": ["ホールド", "ゴースト"]},
		"acceptanceCriteria": [{"given": "a", "when": "b", "then": "c"}],
		"implementationOrder": ["x", "y"],
		"comment": "ignored"
	}`)

	fs, err := ParseFixSet(data)
	require.NoError(t, err)
	assert.Equal(t, []string{"ホールド", "ゴースト"}, fs.Features())
	assert.Equal(t, []criteria.Criterion{{Given: "a", When: "b", Then: "c"}}, fs.AcceptanceCriteria)
	assert.Equal(t, []string{"x", "y"}, fs.ImplementationOrder)
}

func TestParseFixSet_PartialKeys(t *testing.T) {
	fs, err := ParseFixSet([]byte(`{"implementationOrder": ["only"]}`))
	require.NoError(t, err)
	assert.Nil(t, fs.Story1)
	assert.Nil(t, fs.Features())
	assert.Empty(t, fs.AcceptanceCriteria)
	assert.Equal(t, []string{"only"}, fs.ImplementationOrder)
}

func TestParseFixSet_Errors(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantErr string
	}{
		{"invalid json", `{"story1": `, "not valid JSON"},
		{"array at top level", `[]`, "top-level value must be an object"},
		{"story1 not object", `{"story1": []}`, "story1 must be an object"},
		{"features not array", `{"story1": {"missingFeatures": "a"}}`, "story1.missingFeatures must be an array"},
		{"feature not string", `{"story1": {"missingFeatures": ["a", 1]}}`, "story1.missingFeatures[1] must be a string"},
		{"criteria not array", `{"acceptanceCriteria": {}}`, "acceptanceCriteria must be an array"},
		{"criterion not object", `{"acceptanceCriteria": ["a"]}`, "acceptanceCriteria[0] must be an object"},
		{"criterion missing then", `{"acceptanceCriteria": [{"given": "a", "when": "b"}]}`, "acceptanceCriteria[0].then must be a string"},
		{"order item not string", `{"implementationOrder": [null]}`, "implementationOrder[0] must be a string"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseFixSet([]byte(tt.data))
			require.EqualError(t, err, tt.wantErr)
		})
	}
}

func TestLoadFixSet(t *testing.T) {
	dir := t.TempDir()

	good := filepath.Join(dir, "fix.json")
	require.NoError(t, os.WriteFile(good, []byte(`{"implementationOrder": ["a"]}`), 0o644))
	fs, err := LoadFixSet(good)
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, fs.ImplementationOrder)

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{oops}`), 0o644))
	_, err = LoadFixSet(bad)
	var parseErr *ConfigParseError
	require.True(t, errors.As(err, &parseErr))
	assert.Equal(t, bad, parseErr.Path)
	assert.Contains(t, parseErr.UserMessage(), "bad.json")

	_, err = LoadFixSet(filepath.Join(dir, "missing.json"))
	require.Error(t, err)
	assert.False(t, errors.As(err, &parseErr))
}

func TestFixSetJSON_RoundTrip(t *testing.T) {
	data, err := StandardFixSet().JSON()
	require.NoError(t, err)
	assert.Contains(t, string(data), `"missingFeatures"`)

	parsed, err := ParseFixSet(data)
	require.NoError(t, err)
	assert.Equal(t, StandardFixSet(), parsed)
}

func TestFixSetJSON_Empty(t *testing.T) {
	data, err := (&FixSet{}).JSON()
	require.NoError(t, err)

	parsed, err := ParseFixSet(data)
	require.NoError(t, err)
	assert.Equal(t, &FixSet{}, parsed)
}
