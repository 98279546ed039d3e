package validation

import (
	"errors"
	"fmt"

	types "github.com/inference-gateway/a2a-conformance/types"
)

// Kind names one branch of the validation error taxonomy
type Kind string

// Kind enum values
const (
	KindInvalidField             Kind = "invalid_field"
	KindIllegalTransition        Kind = "illegal_transition"
	KindIncompleteSecurityScheme Kind = "incomplete_security_scheme"
	KindMissingRequiredExtension Kind = "missing_required_extension"
	KindMalformedRequest         Kind = "malformed_request"
)

// Error is implemented by every error of the taxonomy
type Error interface {
	error
	Kind() Kind
}

// KindOf returns the taxonomy kind of err, or the empty kind when err is not
// a validation error
func KindOf(err error) Kind {
	var verr Error
	if errors.As(err, &verr) {
		return verr.Kind()
	}
	return ""
}

// ValueClass classifies what is wrong with a rejected value
type ValueClass string

// ValueClass enum values
const (
	ClassEmpty       ValueClass = "empty"
	ClassTooLong     ValueClass = "too-long"
	ClassMalformed   ValueClass = "malformed"
	ClassForbidden   ValueClass = "forbidden"
	ClassUnsupported ValueClass = "unsupported"
)

// InvalidFieldError reports a field whose value violates a constraint
type InvalidFieldError struct {
	Field      string
	Class      ValueClass
	Constraint string
}

func (e *InvalidFieldError) Error() string {
	return fmt.Sprintf("invalid field %s (%s): %s", e.Field, e.Class, e.Constraint)
}

func (e *InvalidFieldError) Kind() Kind { return KindInvalidField }

// NewInvalidFieldError creates a new InvalidFieldError
func NewInvalidFieldError(field string, class ValueClass, constraint string) *InvalidFieldError {
	return &InvalidFieldError{Field: field, Class: class, Constraint: constraint}
}

// IllegalTransitionError reports an event that is not allowed in a state.
// Target is set instead of Event when an observed state change, rather than
// an event, was rejected.
type IllegalTransitionError struct {
	State  types.TaskState
	Event  string
	Target types.TaskState
}

func (e *IllegalTransitionError) Error() string {
	if e.Event == "" && e.Target != "" {
		return fmt.Sprintf("illegal transition: state %q cannot move to %q", e.State, e.Target)
	}
	return fmt.Sprintf("illegal transition: event %q is not allowed in state %q", e.Event, e.State)
}

func (e *IllegalTransitionError) Kind() Kind { return KindIllegalTransition }

// NewIllegalTransitionError creates a new IllegalTransitionError
func NewIllegalTransitionError(state types.TaskState, event string) *IllegalTransitionError {
	return &IllegalTransitionError{State: state, Event: event}
}

// NewIllegalStateChangeError creates an IllegalTransitionError for a rejected
// state change
func NewIllegalStateChangeError(from, to types.TaskState) *IllegalTransitionError {
	return &IllegalTransitionError{State: from, Target: to}
}

// IncompleteSecuritySchemeError reports a security scheme with a missing or
// invalid field. Flow is set for OAuth2 flow fields; Err carries the
// underlying field violation when the field was present but invalid.
type IncompleteSecuritySchemeError struct {
	Scheme types.SecuritySchemeType
	Flow   string
	Field  string
	Err    error
}

func (e *IncompleteSecuritySchemeError) Error() string {
	msg := fmt.Sprintf("incomplete %s security scheme", e.Scheme)
	if e.Flow != "" {
		msg += fmt.Sprintf(" (flow %s)", e.Flow)
	}
	msg += fmt.Sprintf(": field %s", e.Field)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	} else {
		msg += " is required"
	}
	return msg
}

func (e *IncompleteSecuritySchemeError) Unwrap() error { return e.Err }

func (e *IncompleteSecuritySchemeError) Kind() Kind { return KindIncompleteSecurityScheme }

// NewIncompleteSecuritySchemeError creates a new IncompleteSecuritySchemeError
func NewIncompleteSecuritySchemeError(scheme types.SecuritySchemeType, flow, field string, cause error) *IncompleteSecuritySchemeError {
	return &IncompleteSecuritySchemeError{Scheme: scheme, Flow: flow, Field: field, Err: cause}
}

// MissingRequiredExtensionError reports a required extension the caller does
// not support
type MissingRequiredExtensionError struct {
	URI string
}

func (e *MissingRequiredExtensionError) Error() string {
	return fmt.Sprintf("missing required extension %s", e.URI)
}

func (e *MissingRequiredExtensionError) Kind() Kind { return KindMissingRequiredExtension }

// NewMissingRequiredExtensionError creates a new MissingRequiredExtensionError
func NewMissingRequiredExtensionError(uri string) *MissingRequiredExtensionError {
	return &MissingRequiredExtensionError{URI: uri}
}

// MalformedRequestError reports a request whose method name is neither a
// canonical nor a legacy operation name
type MalformedRequestError struct {
	Method string
}

func (e *MalformedRequestError) Error() string {
	return fmt.Sprintf("malformed request: unrecognized method %q", e.Method)
}

func (e *MalformedRequestError) Kind() Kind { return KindMalformedRequest }

// NewMalformedRequestError creates a new MalformedRequestError
func NewMalformedRequestError(method string) *MalformedRequestError {
	return &MalformedRequestError{Method: method}
}

// Nest prefixes the field path of an InvalidFieldError so nested violations
// read as "history[0].parts[1].file.uri". Other errors are returned unchanged.
func Nest(prefix string, err error) error {
	fieldErr, ok := err.(*InvalidFieldError)
	if prefix == "" || !ok {
		return err
	}
	nested := *fieldErr
	if nested.Field == "" {
		nested.Field = prefix
	} else if nested.Field[0] == '[' {
		nested.Field = prefix + nested.Field
	} else {
		nested.Field = prefix + "." + nested.Field
	}
	return &nested
}
