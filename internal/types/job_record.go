// Package types provides type definitions for structured data used throughout the career agent.
//
//nolint:revive // types is a standard Go package name pattern
package types

import "encoding/json"

// NotFound is the placeholder rendered for a field that could not be extracted.
const NotFound = "Not Found"

// Field is an extracted job field. Found distinguishes "absent" from a value
// that happens to equal the NotFound text.
type Field struct {
	Value string
	Found bool
}

// Found returns a present field holding value.
func Found(value string) Field {
	return Field{Value: value, Found: true}
}

// Missing returns an absent field.
func Missing() Field {
	return Field{}
}

// String renders the field, substituting NotFound when absent.
func (f Field) String() string {
	if !f.Found {
		return NotFound
	}
	return f.Value
}

// JobRecord is a normalized job posting summary. It is never rejected for
// missing fields; ApplyLink always holds the source URL.
type JobRecord struct {
	JobRole    Field
	Company    Field
	Location   Field
	Experience Field
	Salary     Field
	Skills     Field
	ApplyLink  string
}

// NewJobRecord returns a record with every field absent.
func NewJobRecord(sourceURL string) *JobRecord {
	return &JobRecord{ApplyLink: sourceURL}
}

// JobView is the presentation form of a JobRecord.
type JobView struct {
	JobRole    string `json:"job_role"`
	Company    string `json:"company"`
	Location   string `json:"location"`
	Experience string `json:"experience"`
	Salary     string `json:"salary"`
	Skills     string `json:"skills"`
	ApplyLink  string `json:"apply_link"`
}

// View renders the record with NotFound placeholders.
func (r *JobRecord) View() JobView {
	return JobView{
		JobRole:    r.JobRole.String(),
		Company:    r.Company.String(),
		Location:   r.Location.String(),
		Experience: r.Experience.String(),
		Salary:     r.Salary.String(),
		Skills:     r.Skills.String(),
		ApplyLink:  r.ApplyLink,
	}
}

// ErrorRecord replaces a JobRecord when a posting could not be fetched or parsed.
type ErrorRecord struct {
	URL   string `json:"url"`
	Error string `json:"error"`
}

// JobResult holds exactly one of Job or Err.
type JobResult struct {
	Job *JobRecord
	Err *ErrorRecord
}

// JobOK wraps a successfully parsed record.
func JobOK(record *JobRecord) JobResult {
	return JobResult{Job: record}
}

// JobFailed wraps a per-URL failure.
func JobFailed(url, message string) JobResult {
	return JobResult{Err: &ErrorRecord{URL: url, Error: message}}
}

// IsError reports whether the result is an ErrorRecord.
func (r JobResult) IsError() bool {
	return r.Err != nil
}

// MarshalJSON renders either the job view or the error record.
func (r JobResult) MarshalJSON() ([]byte, error) {
	if r.Err != nil {
		return json.Marshal(r.Err)
	}
	if r.Job == nil {
		return []byte("null"), nil
	}
	return json.Marshal(r.Job.View())
}
