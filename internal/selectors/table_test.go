package selectors

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	table := Default()

	assert.Equal(t, 1, table.Version)

	rule, ok := table.Rule(FieldJobRole)
	require.True(t, ok)
	assert.Equal(t, "h1", rule.Selector)

	rule, ok = table.Rule(FieldCompany)
	require.True(t, ok)
	assert.Equal(t, "a.topcard__org-name-link", rule.Selector)

	rule, ok = table.Rule(FieldLocation)
	require.True(t, ok)
	assert.Equal(t, "span.topcard__flavor--bullet", rule.Selector)

	for _, field := range []FieldName{FieldExperience, FieldSalary, FieldSkills} {
		_, ok := table.Rule(field)
		assert.False(t, ok, "%s should have no rule", field)
	}
}

func TestParse_CustomTable(t *testing.T) {
	data := []byte(`
version: 2
name: greenhouse
fields:
  job_role:
    selector: .app-title
  salary:
    selector: .pay-range
`)

	table, err := Parse("custom.yaml", data)
	require.NoError(t, err)
	assert.Equal(t, 2, table.Version)
	assert.Equal(t, "greenhouse", table.Name)

	rule, ok := table.Rule(FieldSalary)
	require.True(t, ok)
	assert.Equal(t, ".pay-range", rule.Selector)

	_, ok = table.Rule(FieldCompany)
	assert.False(t, ok)
}

func TestParse_NoFields(t *testing.T) {
	table, err := Parse("empty.yaml", []byte("version: 1\nfields: {}\n"))
	require.NoError(t, err)
	assert.NotNil(t, table.Fields)
	_, ok := table.Rule(FieldJobRole)
	assert.False(t, ok)
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{name: "not yaml", data: "version: [1"},
		{name: "missing version", data: "fields: {}\n"},
		{name: "unknown field", data: "version: 1\nfields:\n  benefits:\n    selector: .perks\n"},
		{name: "empty selector", data: "version: 1\nfields:\n  company:\n    selector: \"\"\n"},
		{name: "version zero", data: "version: 0\nfields: {}\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse("bad.yaml", []byte(tt.data))
			require.Error(t, err)

			var loadErr *LoadError
			assert.ErrorAs(t, err, &loadErr)
			assert.Equal(t, "bad.yaml", loadErr.Source)
		})
	}
}

func TestLoadOrDefault(t *testing.T) {
	table, err := LoadOrDefault("")
	require.NoError(t, err)
	assert.Equal(t, Default().Fields, table.Fields)

	path := filepath.Join(t.TempDir(), "selectors.yaml")
	require.NoError(t, os.WriteFile(path, []byte("version: 3\nfields:\n  skills:\n    selector: ul.skills\n"), 0644))

	table, err = LoadOrDefault(path)
	require.NoError(t, err)
	assert.Equal(t, 3, table.Version)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
