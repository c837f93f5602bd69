package contactform

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/wolfman30/portfolio-contact/internal/contact"
)

var validate = validator.New()

// Fields are the raw form inputs, possibly empty.
type Fields struct {
	Name        string
	Company     string
	Email       string
	ProjectType string
	Description string
	Timeline    string
	Budget      string
}

// Request converts the fields into the endpoint payload.
func (f Fields) Request() contact.SubmissionRequest {
	return contact.SubmissionRequest{
		Name:        f.Name,
		Company:     f.Company,
		Email:       f.Email,
		ProjectType: f.ProjectType,
		Description: f.Description,
		Timeline:    f.Timeline,
		Budget:      f.Budget,
	}
}

// ValidationError lists the fields that blocked submission.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "contactform: invalid fields: " + strings.Join(e.Fields, ", ")
}

// ValidateFields applies the form's own constraints: required inputs must be
// non-empty and select values must come from the configured options.
func ValidateFields(f Fields, opts contact.Options) error {
	checks := []struct {
		name  string
		value string
		tag   string
	}{
		{"name", f.Name, "required"},
		{"email", f.Email, "required"},
		{"projectType", f.ProjectType, "required" + oneOf(opts.ProjectTypes)},
		{"description", f.Description, "required"},
		{"timeline", f.Timeline, "omitempty" + oneOf(opts.Timelines)},
		{"budget", f.Budget, "omitempty" + oneOf(opts.Budgets)},
	}

	var invalid []string
	for _, c := range checks {
		if err := validate.Var(c.value, c.tag); err != nil {
			invalid = append(invalid, c.name)
		}
	}
	if len(invalid) > 0 {
		return &ValidationError{Fields: invalid}
	}
	return nil
}

func oneOf(opts []contact.Option) string {
	if len(opts) == 0 {
		return ""
	}
	return fmt.Sprintf(",oneof=%s", strings.Join(contact.Values(opts), " "))
}
