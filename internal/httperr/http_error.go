package httperr

import "net/http"

// HTTPError represents an error with an associated HTTP status code.
type HTTPError struct {
	Code    int    `json:"-"`
	Message string `json:"message"`
}

func (e *HTTPError) Error() string {
	return e.Message
}

// New creates a new HTTPError with the given code and message.
func New(code int, message string) *HTTPError {
	return &HTTPError{
		Code:    code,
		Message: message,
	}
}

// Helpers for common errors
func BadRequest(msg string) *HTTPError {
	return New(http.StatusBadRequest, msg)
}

func Unauthorized(msg string) *HTTPError {
	return New(http.StatusUnauthorized, msg)
}

func NotFound(msg string) *HTTPError {
	return New(http.StatusNotFound, msg)
}

func Internal(msg string) *HTTPError {
	return New(http.StatusInternalServerError, msg)
}
