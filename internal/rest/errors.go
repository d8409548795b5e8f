package rest

import (
	"errors"
	"fmt"
	"net/http"
)

// Error is an error answered with a specific HTTP status. Message is sent to
// the client; Err is the underlying cause and is only logged.
type Error struct {
	Status  int
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%d %s: %v", e.Status, e.Message, e.Err)
	}
	return fmt.Sprintf("%d %s", e.Status, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) StatusCode() int {
	return e.Status
}

// ErrorBody is the JSON body written for every failed request.
type ErrorBody struct {
	Status  int    `json:"status"`
	Error   string `json:"error"`
	Message string `json:"message"`
}

func NewError(status int, message string, err error) *Error {
	return &Error{Status: status, Message: message, Err: err}
}

func BadRequest(message string, err error) *Error {
	return NewError(http.StatusBadRequest, message, err)
}

func NotFound(message string, err error) *Error {
	return NewError(http.StatusNotFound, message, err)
}

func UnsupportedMediaType(message string) *Error {
	return NewError(http.StatusUnsupportedMediaType, message, nil)
}

func Internal(message string, err error) *Error {
	return NewError(http.StatusInternalServerError, message, err)
}

// AsError returns err as an *Error, treating anything unrecognised as a 500
// so internal details never reach the client.
func AsError(err error) *Error {
	var restErr *Error
	if errors.As(err, &restErr) {
		return restErr
	}
	return Internal("internal server error", err)
}
