package contact

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// SubmissionRequest is the contact form payload posted to /api/contact.
type SubmissionRequest struct {
	Name        string `json:"name" validate:"required"`
	Company     string `json:"company,omitempty"`
	Email       string `json:"email" validate:"required"`
	ProjectType string `json:"projectType" validate:"required"`
	Description string `json:"description" validate:"required"`
	Timeline    string `json:"timeline,omitempty"`
	Budget      string `json:"budget,omitempty"`
}

// Validate checks that every required field is present. Email shape is not
// checked; presence is the contract.
func (r *SubmissionRequest) Validate() error {
	if r == nil {
		return fmt.Errorf("%w: request body", ErrMissingRequiredFields)
	}
	if err := validate.Struct(r); err != nil {
		missing := MissingFields(err)
		if len(missing) == 0 {
			return fmt.Errorf("%w: %v", ErrMissingRequiredFields, err)
		}
		return fmt.Errorf("%w: %s", ErrMissingRequiredFields, strings.Join(missing, ", "))
	}
	return nil
}

// MissingFields extracts the JSON names of fields that failed validation.
func MissingFields(err error) []string {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return nil
	}
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, jsonName(fe.StructField()))
	}
	return fields
}

func jsonName(field string) string {
	switch field {
	case "ProjectType":
		return "projectType"
	case "":
		return field
	default:
		return strings.ToLower(field[:1]) + field[1:]
	}
}

// SuccessResponse is returned with 200 OK.
type SuccessResponse struct {
	Success bool `json:"success"`
}

// ErrorResponse is returned for every failed submission.
type ErrorResponse struct {
	Error string `json:"error"`
}
