package apperr

import "net/http"

// Error is the operational error type surfaced to clients. IsOperational
// separates expected failures (safe to expose) from misconfiguration and
// bugs, whose details must stay in the logs.
type Error struct {
	Message       string
	StatusCode    int
	IsOperational bool
}

func (e *Error) Error() string {
	return e.Message
}

// New builds an operational error with an explicit status code.
func New(message string, statusCode int) *Error {
	return &Error{Message: message, StatusCode: statusCode, IsOperational: true}
}

// Validation marks malformed or missing input.
func Validation(message string) *Error {
	return New(message, http.StatusBadRequest)
}

// Unauthorized marks missing or failed authentication.
func Unauthorized(message string) *Error {
	return New(message, http.StatusUnauthorized)
}

// Forbidden marks a valid identity lacking access, including stale or
// superseded refresh tokens.
func Forbidden(message string) *Error {
	return New(message, http.StatusForbidden)
}

// Conflict marks a uniqueness violation.
func Conflict(message string) *Error {
	return New(message, http.StatusConflict)
}

// NotFound marks a missing resource.
func NotFound(message string) *Error {
	return New(message, http.StatusNotFound)
}

// Internal marks an unexpected downstream failure.
func Internal(message string) *Error {
	return New(message, http.StatusInternalServerError)
}

// Config marks a misconfiguration such as a missing signing secret. It is
// never user-triggerable, so it is not operational.
func Config(message string) *Error {
	return &Error{Message: message, StatusCode: http.StatusInternalServerError}
}
