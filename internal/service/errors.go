package service

import (
	"errors"
	"fmt"
)

// ErrorKind classifies every error surfaced to the operator.
type ErrorKind int

// Error kinds.
const (
	ErrNoTargetFound ErrorKind = iota + 1
	ErrUnitNotFound
	ErrBackendUnavailable
	ErrComposeFileUnreadable
	ErrSubStepFailed
	ErrHistoryWriteFailed
)

// String returns the kind name.
func (k ErrorKind) String() string {
	switch k {
	case ErrNoTargetFound:
		return "no target found"
	case ErrUnitNotFound:
		return "unit not found"
	case ErrBackendUnavailable:
		return "backend unavailable"
	case ErrComposeFileUnreadable:
		return "compose file unreadable"
	case ErrSubStepFailed:
		return "sub-step failed"
	case ErrHistoryWriteFailed:
		return "history write failed"
	}
	return "unknown error"
}

// ExitCode returns the process exit code for the kind.
func (k ErrorKind) ExitCode() int {
	switch k {
	case ErrNoTargetFound:
		return 2
	case ErrUnitNotFound:
		return 3
	case ErrBackendUnavailable:
		return 4
	case ErrComposeFileUnreadable:
		return 5
	case ErrSubStepFailed, ErrHistoryWriteFailed:
		return 1
	}
	return 1
}

// Step names the backend action that failed.
type Step int

// Steps.
const (
	StepNone Step = iota
	StepRestart
	StepStop
	StepStart
	StepDown
	StepUp
)

// String returns the step name.
func (s Step) String() string {
	switch s {
	case StepRestart:
		return "restart"
	case StepStop:
		return "stop"
	case StepStart:
		return "start"
	case StepDown:
		return "down"
	case StepUp:
		return "up"
	case StepNone:
		return ""
	}
	return ""
}

// Error is a classified error. Step is set for ErrSubStepFailed only.
type Error struct {
	Kind   ErrorKind
	Step   Step
	Target string
	Cause  error
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := e.Kind.String()
	if e.Kind == ErrSubStepFailed && e.Step != StepNone {
		msg = e.Step.String() + " failed"
	}
	if e.Target != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Target)
	}
	if e.Cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Cause
}

// NewError creates an Error of the given kind.
func NewError(kind ErrorKind, target string, cause error) *Error {
	return &Error{Kind: kind, Target: target, Cause: cause}
}

// NewStepError creates an ErrSubStepFailed error for step.
func NewStepError(step Step, target string, cause error) *Error {
	return &Error{Kind: ErrSubStepFailed, Step: step, Target: target, Cause: cause}
}

// KindOf returns the kind of the first *Error in err's chain, or 0.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

// IsKind reports whether err carries an *Error of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	return KindOf(err) == kind
}

// IsUnitNotFound reports whether err is an ErrUnitNotFound error.
func IsUnitNotFound(err error) bool {
	return IsKind(err, ErrUnitNotFound)
}

// IsBackendUnavailable reports whether err is an ErrBackendUnavailable error.
func IsBackendUnavailable(err error) bool {
	return IsKind(err, ErrBackendUnavailable)
}
