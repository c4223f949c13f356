package utils

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorKind classifies failures surfaced at the HTTP boundary.
type ErrorKind string

const (
	KindValidation  ErrorKind = "VALIDATION_FAILED"
	KindNotFound    ErrorKind = "NOT_FOUND"
	KindConsistency ErrorKind = "CONSISTENCY_ERROR"
	KindStore       ErrorKind = "STORE_ERROR"
)

// DomainError standardizes application errors.
type DomainError struct {
	Kind       ErrorKind
	Message    string
	HTTPStatus int
	Details    string
	Err        error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewValidationError reports missing or malformed caller input.
func NewValidationError(message string) error {
	return &DomainError{Kind: KindValidation, Message: message, HTTPStatus: http.StatusBadRequest}
}

// NewRequiredFieldError names the missing field in the message.
func NewRequiredFieldError(field string) error {
	return NewValidationError(field + " is required")
}

func NewNotFound(resource string) error {
	return &DomainError{
		Kind:       KindNotFound,
		Message:    fmt.Sprintf("%s not found", resource),
		HTTPStatus: http.StatusNotFound,
	}
}

// NewConsistencyError signals a read-after-write that found nothing.
func NewConsistencyError(message string) error {
	return &DomainError{
		Kind:       KindConsistency,
		Message:    message,
		HTTPStatus: http.StatusInternalServerError,
		Details:    message,
	}
}

// NewStoreError wraps a data-access failure; op is the user-facing summary.
func NewStoreError(op string, err error) error {
	if err == nil {
		return nil
	}
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	return &DomainError{
		Kind:       KindStore,
		Message:    op,
		HTTPStatus: http.StatusInternalServerError,
		Details:    err.Error(),
		Err:        err,
	}
}

// ToDomainError converts generic errors to DomainError.
func ToDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	return &DomainError{
		Kind:       KindStore,
		Message:    "Internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Details:    err.Error(),
		Err:        err,
	}
}

// IsKind reports whether err is a DomainError of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var domainErr *DomainError
	return errors.As(err, &domainErr) && domainErr.Kind == kind
}

// ErrorResponse is the JSON body of every failed request.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}
