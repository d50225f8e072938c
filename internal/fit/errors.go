package fit

import (
	"errors"
	"fmt"
)

// Sentinels for the three caller-inspectable failure kinds. Match them with
// errors.Is against any error returned by the Engine.
var (
	// ErrInputValidity is returned when the observation is unusable, e.g.
	// its spread around the median is extremely asymmetric.
	ErrInputValidity = errors.New("input validity failure")

	// ErrComputation is returned when every candidate family was rejected.
	ErrComputation = errors.New("computation failure")

	// ErrEstimator is returned when the external estimation service fails.
	ErrEstimator = errors.New("estimator failure")
)

// ErrorKind categorizes engine failures.
type ErrorKind string

const (
	KindInputValidity ErrorKind = "input_validity"
	KindComputation   ErrorKind = "computation"
	KindEstimator     ErrorKind = "estimator"
)

// Error is the failure returned by SelectBestDistribution. It is never
// retried internally.
type Error struct {
	Kind    ErrorKind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches the sentinel of the error's kind.
func (e *Error) Is(target error) bool {
	switch e.Kind {
	case KindInputValidity:
		return target == ErrInputValidity
	case KindComputation:
		return target == ErrComputation
	case KindEstimator:
		return target == ErrEstimator
	}
	return false
}

func inputValidityError(msg string) error {
	return &Error{Kind: KindInputValidity, Message: msg}
}

func computationError(msg string, cause error) error {
	return &Error{Kind: KindComputation, Message: msg, Cause: cause}
}

func estimatorError(msg string, cause error) error {
	return &Error{Kind: KindEstimator, Message: msg, Cause: cause}
}

// KindOf returns the kind of an engine error, or "" for foreign errors.
func KindOf(err error) ErrorKind {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return ""
}
