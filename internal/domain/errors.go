package domain

import (
	"errors"
	"fmt"
)

// ErrorKind distinguishes failures originating in external collaborators.
// The analysis engine itself never produces domain errors; malformed input
// degrades to a valid result instead.
type ErrorKind string

const (
	ErrKindServiceUnavailable     ErrorKind = "service_unavailable"
	ErrKindPermissionDenied       ErrorKind = "permission_denied"
	ErrKindUnsupportedEnvironment ErrorKind = "unsupported_environment"
)

// CollaboratorError wraps a failure from an external collaborator (speech
// service, verse API, audio tooling) with a kind callers can switch on.
type CollaboratorError struct {
	Kind ErrorKind
	Op   string
	Err  error
}

func (e *CollaboratorError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Op, e.Kind)
	}
	return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
}

func (e *CollaboratorError) Unwrap() error {
	return e.Err
}

// NewCollaboratorError creates a kinded collaborator error wrapping err.
func NewCollaboratorError(kind ErrorKind, op string, err error) error {
	return &CollaboratorError{Kind: kind, Op: op, Err: err}
}

// ErrorKindOf extracts the collaborator error kind from err, or "" when err
// carries no kind.
func ErrorKindOf(err error) ErrorKind {
	var ce *CollaboratorError
	if errors.As(err, &ce) {
		return ce.Kind
	}
	return ""
}
