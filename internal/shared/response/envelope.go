// Package response writes the uniform JSON envelope used by every endpoint.
package response

import (
	"fmt"
	"net/http"
)

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Envelope is the body of every response.
type Envelope struct {
	Status  string `json:"status"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
}

// Problem is an error with the HTTP status it should be reported with.
type Problem struct {
	Status  int
	Message string
}

// Error implements the error interface.
func (p Problem) Error() string {
	return fmt.Sprintf("%d: %s", p.Status, p.Message)
}

// WithMessage returns a copy with the given message.
func (p Problem) WithMessage(message string) Problem {
	p.Message = message
	return p
}

// Common problem templates.
var (
	ErrBadRequest = Problem{Status: http.StatusBadRequest, Message: "The request could not be understood."}
	ErrNotFound   = Problem{Status: http.StatusNotFound, Message: "The requested resource was not found."}
	ErrInternal   = Problem{Status: http.StatusInternalServerError, Message: "An unexpected error occurred."}
)

// Success builds a success envelope.
func Success(data any) Envelope {
	return Envelope{Status: StatusSuccess, Data: data}
}

// Failure builds an error envelope.
func Failure(message string) Envelope {
	return Envelope{Status: StatusError, Message: message}
}
