package errs

import (
	"errors"
)

// Code is a harness error code.
type Code string

const (
	// SetupFailure means the shared fixture could not be established.
	// It is fatal: the whole ordered group aborts.
	SetupFailure Code = "setup_failure"
	// ElementNotFound means a targeted element never became ready
	// within its wait timeout.
	ElementNotFound Code = "element_not_found"
	// InteractionTimeout means a confirmation dialog or multi-step
	// action did not complete in time.
	InteractionTimeout Code = "interaction_timeout"
	// AssertionFailure means a workflow executed but produced the wrong
	// observable page state.
	AssertionFailure Code = "assertion_failure"

	InvalidArgument Code = "invalid_argument"
	Internal        Code = "internal"
)

// Error is a coded harness error. Step carries the logical step label
// (e.g. "fill category name") so visually identical wait failures stay
// distinguishable in reports.
type Error struct {
	Code    Code
	Step    string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	msg := e.Message
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	if msg == "" {
		msg = string(e.Code)
	}
	if e.Step != "" {
		return e.Step + ": " + msg
	}
	return msg
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// New creates a coded error with message.
func New(code Code, message string) error {
	return &Error{
		Code:    code,
		Message: message,
	}
}

// Wrap creates a coded error with message and cause.
func Wrap(code Code, message string, cause error) error {
	return &Error{
		Code:    code,
		Message: message,
		Err:     cause,
	}
}

// Step creates a coded error attributed to a logical workflow step.
func Step(code Code, step, message string) error {
	return &Error{
		Code:    code,
		Step:    step,
		Message: message,
	}
}

// CodeOf returns the error code, defaulting to internal.
func CodeOf(err error) Code {
	if err == nil {
		return Internal
	}
	var coded *Error
	if errors.As(err, &coded) {
		if coded.Code == "" {
			return Internal
		}
		return coded.Code
	}
	return Internal
}

// StepOf returns the logical step label, or "" for untyped errors.
func StepOf(err error) string {
	var coded *Error
	if errors.As(err, &coded) {
		return coded.Step
	}
	return ""
}

// MessageOf returns a report-facing error message. Untyped errors map to
// "internal error" so raw driver output does not leak into test reports.
func MessageOf(err error) string {
	if err == nil {
		return string(Internal)
	}
	var coded *Error
	if errors.As(err, &coded) && coded.Message != "" {
		return coded.Message
	}
	return "internal error"
}

// IsTimeout reports whether the error is a wait or dialog timeout.
func IsTimeout(err error) bool {
	code := CodeOf(err)
	return code == ElementNotFound || code == InteractionTimeout
}
