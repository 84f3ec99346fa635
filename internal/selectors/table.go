// Package selectors holds the versioned table mapping job record fields to
// the markup selectors that extract them.
package selectors

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/jonathan/career-agent/internal/schemas"
	rootschemas "github.com/jonathan/career-agent/schemas"
	"gopkg.in/yaml.v3"
)

// FieldName identifies a JobRecord field.
type FieldName string

const (
	FieldJobRole    FieldName = "job_role"
	FieldCompany    FieldName = "company"
	FieldLocation   FieldName = "location"
	FieldExperience FieldName = "experience"
	FieldSalary     FieldName = "salary"
	FieldSkills     FieldName = "skills"
)

// Fields lists every JobRecord field in display order.
var Fields = []FieldName{
	FieldJobRole,
	FieldCompany,
	FieldLocation,
	FieldExperience,
	FieldSalary,
	FieldSkills,
}

const schemaFile = "selector_table.schema.json"

//go:embed default.yaml
var defaultTable []byte

// Rule selects the element whose text supplies a field. Only the first match is used.
type Rule struct {
	Selector string `yaml:"selector"`
}

// Table maps fields to rules.
type Table struct {
	Version int                `yaml:"version"`
	Name    string             `yaml:"name"`
	Fields  map[FieldName]Rule `yaml:"fields"`
}

// Rule returns the rule for field, if one is configured.
func (t *Table) Rule(field FieldName) (Rule, bool) {
	rule, ok := t.Fields[field]
	return rule, ok
}

// LoadError represents a selector table that could not be read or validated.
type LoadError struct {
	Source  string
	Message string
	Cause   error
}

func (e *LoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("selector table %s: %s: %v", e.Source, e.Message, e.Cause)
	}
	return fmt.Sprintf("selector table %s: %s", e.Source, e.Message)
}

func (e *LoadError) Unwrap() error {
	return e.Cause
}

// Default returns the built-in table.
func Default() *Table {
	table, err := Parse("(embedded)", defaultTable)
	if err != nil {
		panic(fmt.Sprintf("invalid embedded selector table: %v", err))
	}
	return table
}

// Load reads and validates a table from a YAML file.
func Load(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Source: path, Message: "failed to read file", Cause: err}
	}
	return Parse(path, data)
}

// LoadOrDefault loads path, or returns Default when path is empty.
func LoadOrDefault(path string) (*Table, error) {
	if path == "" {
		return Default(), nil
	}
	return Load(path)
}

// Parse decodes YAML and validates it against the selector table schema.
func Parse(source string, data []byte) (*Table, error) {
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, &LoadError{Source: source, Message: "invalid YAML", Cause: err}
	}

	schema, err := rootschemas.Get(schemaFile)
	if err != nil {
		return nil, &LoadError{Source: source, Message: "schema unavailable", Cause: err}
	}
	if err := schemas.ValidateDocument(schemaFile, schema, raw); err != nil {
		return nil, &LoadError{Source: source, Message: "does not match schema", Cause: err}
	}

	var table Table
	if err := yaml.Unmarshal(data, &table); err != nil {
		return nil, &LoadError{Source: source, Message: "invalid YAML", Cause: err}
	}
	if table.Fields == nil {
		table.Fields = map[FieldName]Rule{}
	}
	return &table, nil
}
