package model

import (
	"errors"
	"strings"
)

// Common errors used across the application
var (
	// Participant errors
	ErrNameTaken           = errors.New("participant name already taken")
	ErrParticipantNotFound = errors.New("participant not found")

	// Message errors
	ErrMessageNotFound   = errors.New("message not found")
	ErrNotMessageOwner   = errors.New("message belongs to another participant")
	ErrSenderNotLoggedIn = errors.New("sender is not a logged-in participant")
)

// ValidationError carries every violation found in a single validation
// pass, so callers report them all at once instead of one at a time.
type ValidationError struct {
	Problems []string
}

// NewValidationError creates a ValidationError from a list of problems
func NewValidationError(problems ...string) *ValidationError {
	return &ValidationError{Problems: problems}
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Problems, "; ")
}
