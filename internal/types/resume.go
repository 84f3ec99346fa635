package types

import (
	"github.com/go-playground/validator/v10"
)

// DocumentFormat identifies the format of an uploaded résumé.
type DocumentFormat string

const (
	// FormatPDF is a PDF document
	FormatPDF DocumentFormat = "pdf"
	// FormatDOCX is an Office Open XML word-processing document
	FormatDOCX DocumentFormat = "docx"
	// FormatUnknown is any other upload; extraction yields no text
	FormatUnknown DocumentFormat = "unknown"
)

// UploadedDocument is a résumé file as received from the user.
type UploadedDocument struct {
	Name   string
	Format DocumentFormat
	Data   []byte
}

// OptimizationRequest pairs résumé text with a job description. Neither is
// length- or encoding-checked.
type OptimizationRequest struct {
	ResumeText     string `json:"resume_text"`
	JobDescription string `json:"job_description"`
}

// SearchJobsRequest is the body of a direct job search.
type SearchJobsRequest struct {
	Query      string `json:"query" validate:"required,min=1"`
	MaxResults int    `json:"max_results,omitempty" validate:"omitempty,min=1,max=10"`
}

// Validate validates the SearchJobsRequest using the validator.
func (r *SearchJobsRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// RecommendOptions carries the optional knobs of a résumé-based recommendation.
type RecommendOptions struct {
	MaxResults int `validate:"omitempty,min=1,max=10"`
}

// Validate validates the RecommendOptions using the validator.
func (r *RecommendOptions) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}
