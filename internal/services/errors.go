package services

import (
	"errors"
	"strings"
)

// ErrorKind classifies every failure a service operation can produce.
// Handlers map kinds to HTTP status classes at one point; no other
// error shape crosses the service boundary.
type ErrorKind string

const (
	KindValidation ErrorKind = "validation"
	KindNotFound   ErrorKind = "not_found"
	KindConflict   ErrorKind = "conflict"
	KindUnexpected ErrorKind = "unexpected"
)

// ServiceError is the uniform error shape of all student operations.
// Messages holds one entry per violation for validation failures and
// exactly one entry for every other kind.
type ServiceError struct {
	Kind     ErrorKind `json:"kind"`
	Messages []string  `json:"messages"`
}

func (e *ServiceError) Error() string {
	return strings.Join(e.Messages, "; ")
}

func NewValidationError(messages ...string) *ServiceError {
	return &ServiceError{Kind: KindValidation, Messages: messages}
}

func NewNotFoundError(message string) *ServiceError {
	return &ServiceError{Kind: KindNotFound, Messages: []string{message}}
}

func NewConflictError(message string) *ServiceError {
	return &ServiceError{Kind: KindConflict, Messages: []string{message}}
}

// NewUnexpectedError carries a fixed public message; the underlying
// cause is logged server-side and never exposed to the caller.
func NewUnexpectedError(message string) *ServiceError {
	return &ServiceError{Kind: KindUnexpected, Messages: []string{message}}
}

// AsServiceError unwraps err into a ServiceError when it is one.
func AsServiceError(err error) (*ServiceError, bool) {
	var se *ServiceError
	if errors.As(err, &se) {
		return se, true
	}
	return nil, false
}
