package core

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by core operations. The web layer maps
// these to HTTP statuses.
var (
	// ErrNotFound indicates the requested entity does not exist or is
	// not owned by the caller. Ownership mismatches are reported as
	// not-found so callers cannot probe for other teachers' data.
	ErrNotFound = errors.New("not found")

	// ErrForbidden indicates the caller referenced entities it does
	// not own in a batch operation.
	ErrForbidden = errors.New("forbidden")

	// ErrUnsupportedFileType indicates an import upload whose file
	// name does not carry a .csv extension.
	ErrUnsupportedFileType = errors.New("unsupported file type: only .csv files are accepted")
)

// NotFoundError is a not-found error that names the missing entity,
// e.g. "class" or "student". It matches ErrNotFound via errors.Is.
type NotFoundError struct {
	Entity string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found", e.Entity)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// StorageError wraps a persistence failure that is not a semantic
// outcome (not-found, conflict). Callers see it as a generic failure;
// the core never retries internally.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return e.Op + ": " + e.Err.Error()
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// ValidationError reports one or more invalid fields on a request.
// It carries user-facing messages and maps to HTTP 400.
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	if len(e.Messages) == 1 {
		return e.Messages[0]
	}
	return fmt.Sprintf("%d validation errors: %v", len(e.Messages), e.Messages)
}

// NewValidationError builds a ValidationError from a format string.
func NewValidationError(format string, args ...any) *ValidationError {
	return &ValidationError{Messages: []string{fmt.Sprintf(format, args...)}}
}
