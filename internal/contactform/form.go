package contactform

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/wolfman30/portfolio-contact/internal/contact"
	"github.com/wolfman30/portfolio-contact/pkg/logging"
)

// State is the form's submission state.
type State int

const (
	StateIdle State = iota
	StateSubmitting
	StateSuccess
	StateError
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSubmitting:
		return "submitting"
	case StateSuccess:
		return "success"
	case StateError:
		return "error"
	default:
		return "unknown"
	}
}

// FailureMessage is shown for every failed submission regardless of cause.
const FailureMessage = "Something went wrong. Please try again or email directly."

var (
	// ErrSubmissionInFlight is returned when Submit is called while a request is pending.
	ErrSubmissionInFlight = errors.New("contactform: submission in flight")
	// ErrAlreadySubmitted is returned once the form has succeeded.
	ErrAlreadySubmitted = errors.New("contactform: already submitted")
)

// Poster delivers a submission to the endpoint.
type Poster interface {
	Post(ctx context.Context, req contact.SubmissionRequest) error
}

// Form owns one contact form instance's submission state.
type Form struct {
	mu      sync.Mutex
	state   State
	errMsg  string
	poster  Poster
	options contact.Options
	logger  *logging.Logger
}

// NewForm creates a form in the idle state.
func NewForm(poster Poster, options contact.Options, logger *logging.Logger) *Form {
	if logger == nil {
		logger = logging.Default()
	}
	return &Form{
		poster:  poster,
		options: options,
		logger:  logger,
	}
}

// State returns the current state.
func (f *Form) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// ErrorMessage returns the user-facing error, empty unless in StateError.
func (f *Form) ErrorMessage() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.errMsg
}

// Disabled reports whether inputs and the submit control are disabled.
func (f *Form) Disabled() bool {
	return f.State() == StateSubmitting
}

// Submit sends fields once. While a submission is pending, or after one has
// succeeded, further calls return without issuing a request. Invalid fields
// are rejected before any state change.
func (f *Form) Submit(ctx context.Context, fields Fields) error {
	f.mu.Lock()
	switch f.state {
	case StateSubmitting:
		f.mu.Unlock()
		return ErrSubmissionInFlight
	case StateSuccess:
		f.mu.Unlock()
		return ErrAlreadySubmitted
	}
	if err := ValidateFields(fields, f.options); err != nil {
		f.mu.Unlock()
		return err
	}
	f.state = StateSubmitting
	f.errMsg = ""
	f.mu.Unlock()

	f.logger.Info("contact form submitted",
		"project_type", fields.ProjectType,
		"timeline", fields.Timeline,
	)

	err := f.poster.Post(ctx, fields.Request())

	f.mu.Lock()
	defer f.mu.Unlock()
	if err != nil {
		f.state = StateError
		f.errMsg = FailureMessage
		f.logger.Warn("contact form submission failed", "error", logging.RedactError(err))
		return fmt.Errorf("contactform: submit: %w", err)
	}
	f.state = StateSuccess
	return nil
}
