package contact

import (
	"errors"
	"net/http"
)

var (
	// ErrMissingRequiredFields is returned when name, email, projectType or description is empty.
	ErrMissingRequiredFields = errors.New("missing required fields")
	// ErrMalformedBody is returned when the request body cannot be decoded.
	ErrMalformedBody = errors.New("malformed request body")
)

// Kind classifies a failed submission. Each kind maps to exactly one HTTP
// status and one client-facing message.
type Kind int

const (
	KindValidation Kind = iota + 1
	KindConfiguration
	KindDispatch
	KindTransport
)

// Client-facing messages. Internal detail never goes past these.
const (
	MessageMissingFields = "Missing required fields"
	MessageSendFailed    = "Failed to send message"
	MessageInternal      = "Internal server error"
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindConfiguration:
		return "configuration"
	case KindDispatch:
		return "dispatch"
	case KindTransport:
		return "transport"
	default:
		return "unknown"
	}
}

// Status returns the HTTP status for the kind.
func (k Kind) Status() int {
	if k == KindValidation {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// Message returns the client-facing error text for the kind.
func (k Kind) Message() string {
	switch k {
	case KindValidation:
		return MessageMissingFields
	case KindDispatch:
		return MessageSendFailed
	default:
		return MessageInternal
	}
}

// Error is a submission failure tagged with its kind.
type Error struct {
	Kind Kind
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return "contact: " + e.Kind.String() + " error"
	}
	return "contact: " + e.Kind.String() + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newError(kind Kind, err error) *Error {
	return &Error{Kind: kind, Err: err}
}

// KindOf reports the kind of err. Untagged errors are treated as transport
// failures.
func KindOf(err error) Kind {
	var cerr *Error
	if errors.As(err, &cerr) {
		return cerr.Kind
	}
	return KindTransport
}
