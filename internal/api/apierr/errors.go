package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/uolchat/batepapo/internal/model"
)

// APIError represents an API error response. Details carries the
// collected validation problems when the code is VALIDATION_FAILED.
type APIError struct {
	Code    string   `json:"code"`
	Message string   `json:"message"`
	Details []string `json:"details,omitempty"`
}

// ErrorResponse wraps an APIError
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Common error codes
const (
	CodeInvalidRequest      = "INVALID_REQUEST"
	CodeValidationFailed    = "VALIDATION_FAILED"
	CodeIdentityRequired    = "IDENTITY_REQUIRED"
	CodeNameTaken           = "NAME_TAKEN"
	CodeParticipantNotFound = "PARTICIPANT_NOT_FOUND"
	CodeMessageNotFound     = "MESSAGE_NOT_FOUND"
	CodeNotOwner            = "NOT_OWNER"
	CodeSenderNotLoggedIn   = "SENDER_NOT_LOGGED_IN"
	CodeInternalError       = "INTERNAL_ERROR"
)

// httpError combines an HTTP status code with an APIError
type httpError struct {
	status   int
	apiError APIError
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.apiError.Message
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.apiError})
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	// Check for specific error types
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	// Validation errors carry their collected problems to the caller
	var ve *model.ValidationError
	if errors.As(err, &ve) {
		return &httpError{
			http.StatusUnprocessableEntity,
			APIError{CodeValidationFailed, "Validation failed", ve.Problems},
		}
	}

	// Map model errors
	switch {
	case errors.Is(err, model.ErrNameTaken):
		return &httpError{http.StatusConflict, APIError{CodeNameTaken, "Name is already in use", nil}}
	case errors.Is(err, model.ErrParticipantNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeParticipantNotFound, "Participant not found", nil}}
	case errors.Is(err, model.ErrMessageNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeMessageNotFound, "Message not found", nil}}
	case errors.Is(err, model.ErrNotMessageOwner):
		return &httpError{http.StatusUnauthorized, APIError{CodeNotOwner, "Only the author can modify this message", nil}}
	case errors.Is(err, model.ErrSenderNotLoggedIn):
		return &httpError{http.StatusUnprocessableEntity, APIError{CodeSenderNotLoggedIn, "Sender is not logged in", nil}}

	default:
		return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error", nil}}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, message, nil}}
}

// NewIdentityRequiredError creates an error for requests missing the identity header
func NewIdentityRequiredError() error {
	return &httpError{http.StatusBadRequest, APIError{CodeIdentityRequired, "User header is required", nil}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error", nil}}
}
