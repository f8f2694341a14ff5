package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/darknight08zz/protocol456/internal/model"
	"github.com/darknight08zz/protocol456/internal/services/admin"
	"github.com/darknight08zz/protocol456/internal/storage"
)

// APIError represents an API error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an APIError
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Common error codes
const (
	CodeInvalidRequest     = "INVALID_REQUEST"
	CodeInvalidChoice      = "INVALID_CHOICE"
	CodeTeamNotFound       = "TEAM_NOT_FOUND"
	CodeRoundNotFound      = "ROUND_NOT_FOUND"
	CodeNameTaken          = "NAME_TAKEN"
	CodeGameFull           = "GAME_FULL"
	CodeWrongRound         = "WRONG_ROUND"
	CodeRoundClosed        = "ROUND_CLOSED"
	CodeGameNotStarted     = "GAME_NOT_STARTED"
	CodeGameNotFinished    = "GAME_NOT_FINISHED"
	CodeUnauthorized       = "UNAUTHORIZED"
	CodeStorageUnavailable = "STORAGE_UNAVAILABLE"
	CodeInternalError      = "INTERNAL_ERROR"
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

	// Map model errors
	switch {
	case errors.Is(err, model.ErrInvalidInput):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, err.Error()}}
	case errors.Is(err, model.ErrInvalidChoice):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidChoice, "Choice must be cooperate or selfish"}}
	case errors.Is(err, model.ErrTeamNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeTeamNotFound, "Team not found"}}
	case errors.Is(err, model.ErrRoundNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeRoundNotFound, "Round not found"}}
	case errors.Is(err, model.ErrNameTaken):
		return &httpError{http.StatusConflict, APIError{CodeNameTaken, "Team name already taken"}}
	case errors.Is(err, model.ErrGameFull):
		return &httpError{http.StatusConflict, APIError{CodeGameFull, "Team capacity reached"}}
	case errors.Is(err, model.ErrWrongRound):
		return &httpError{http.StatusConflict, APIError{CodeWrongRound, "Submission is not for the current round"}}
	case errors.Is(err, model.ErrRoundClosed):
		return &httpError{http.StatusConflict, APIError{CodeRoundClosed, "Round is closed"}}
	case errors.Is(err, model.ErrGameNotInitialized):
		return &httpError{http.StatusConflict, APIError{CodeGameNotStarted, "Game has not started"}}
	case errors.Is(err, model.ErrGameNotFinished):
		return &httpError{http.StatusConflict, APIError{CodeGameNotFinished, "Final round has not been settled"}}

	// Map admin errors
	case errors.Is(err, admin.ErrInvalidPassphrase), errors.Is(err, admin.ErrNotConfigured):
		return &httpError{http.StatusUnauthorized, APIError{CodeUnauthorized, "Admin authentication required"}}

	// Storage contention: safe to retry, nothing was committed
	case errors.Is(err, storage.ErrConflict):
		return &httpError{http.StatusServiceUnavailable, APIError{CodeStorageUnavailable, "Storage busy, retry the request"}}

	default:
		return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, message}}
}

// NewUnauthorizedError creates an unauthorized error
func NewUnauthorizedError() error {
	return &httpError{http.StatusUnauthorized, APIError{CodeUnauthorized, "Admin authentication required"}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
}
