package graphql

import (
	"errors"
	"fmt"
)

// ErrUnknownOperation is returned by Lookup for a name with no handler.
var ErrUnknownOperation = errors.New("unknown operation")

// InternalErrorMessage is the only detail a client sees for a 500.
const InternalErrorMessage = "Internal server error"

// ValidationError reports a malformed or missing variable. Its message is
// safe to show the client.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Invalidf builds a ValidationError for field.
func Invalidf(field, format string, args ...interface{}) error {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// Error is one entry of the errors envelope.
type Error struct {
	Message string `json:"message"`
}

// Response is the envelope written for every operation: exactly one of
// Data or Errors is set.
type Response struct {
	Data   map[string]interface{} `json:"data,omitempty"`
	Errors []Error                `json:"errors,omitempty"`
}

// ErrorResponse wraps a single message.
func ErrorResponse(message string) Response {
	return Response{Errors: []Error{{Message: message}}}
}
