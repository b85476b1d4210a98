// Package apperrors defines the error taxonomy shared by the service
// layer and the HTTP error handler. Not-found is deliberately absent:
// services signal it by returning a nil result, leaving the transport
// layer to pick the status code.
package apperrors

import "fmt"

// ValidationError covers malformed or out-of-range input. Raised before
// any write happens.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// ConflictError covers uniqueness violations that have a user-facing
// meaning, e.g. a duplicate group name for the same owner.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string {
	return e.Message
}

func NewConflictError(message string) *ConflictError {
	return &ConflictError{Message: message}
}

// ArchiveError wraps a storage failure that happened during archival.
// The status-update path logs and swallows it; direct archive endpoints
// surface it.
type ArchiveError struct {
	Err error
}

func (e *ArchiveError) Error() string {
	return fmt.Sprintf("archive operation failed: %v", e.Err)
}

func (e *ArchiveError) Unwrap() error {
	return e.Err
}

func NewArchiveError(err error) *ArchiveError {
	return &ArchiveError{Err: err}
}
