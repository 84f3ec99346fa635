package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/jonathan/career-agent/internal/extraction"
	"github.com/jonathan/career-agent/internal/optimizer"
	"github.com/jonathan/career-agent/internal/search"
)

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var validationErr *ErrValidation
	var fieldErrs validator.ValidationErrors
	var extractErr *extraction.Error
	var searchErr *search.Error
	var genErr *optimizer.GenerationError

	switch {
	case errors.As(err, &validationErr), errors.As(err, &fieldErrs):
		return http.StatusBadRequest
	case errors.As(err, &extractErr):
		return http.StatusUnprocessableEntity
	case errors.As(err, &searchErr), errors.As(err, &genErr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// validationMessage flattens validator errors into one line
func validationMessage(err error) string {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return err.Error()
	}
	fe := fieldErrs[0]
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", jsonField(fe.Field()))
	case "min", "max":
		return fmt.Sprintf("%s must satisfy %s=%s", jsonField(fe.Field()), fe.Tag(), fe.Param())
	default:
		return fmt.Sprintf("%s is invalid (%s)", jsonField(fe.Field()), fe.Tag())
	}
}

// jsonField maps request struct fields to their JSON names
func jsonField(field string) string {
	switch field {
	case "Query":
		return "query"
	case "MaxResults":
		return "max_results"
	default:
		return field
	}
}
