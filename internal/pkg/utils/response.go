package utils

import (
	"encoding/json"
	"net/http"

	"github.com/pratik-mahalle/cloudmgr/internal/pkg/errors"
)

// ErrorResponse represents an error API response
type ErrorResponse struct {
	Success bool        `json:"success"`
	Error   ErrorDetail `json:"error"`
}

// ErrorDetail contains error details
type ErrorDetail struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

// MessageResponse is the body of operations that return only a message.
type MessageResponse struct {
	Message string `json:"message"`
}

// WriteJSON writes a JSON response
func WriteJSON(w http.ResponseWriter, status int, data interface{}) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(data)
}

// WriteMessage writes {"message": msg}
func WriteMessage(w http.ResponseWriter, status int, msg string) error {
	return WriteJSON(w, status, MessageResponse{Message: msg})
}

// WriteError writes an error JSON response from AppError
func WriteError(w http.ResponseWriter, err *errors.AppError) error {
	return WriteJSON(w, err.StatusCode, ErrorResponse{
		Success: false,
		Error: ErrorDetail{
			Code:    err.Code,
			Message: err.Message,
			Details: err.Details,
		},
	})
}

// WriteErr writes any error, falling back to a 500 for errors that are not AppErrors.
func WriteErr(w http.ResponseWriter, err error) error {
	if appErr, ok := errors.As(err); ok {
		return WriteError(w, appErr)
	}
	return WriteError(w, errors.Internal("Internal server error", err))
}
