// Package common defines the error taxonomy and header names shared by the
// jobboard client layers. Callers should use errors.Is / errors.As to match
// these values.
package common

import (
	"errors"
	"fmt"
	"net/http"
)

// GenericErrorMessage is shown when a failure carries no usable message.
const GenericErrorMessage = "An unexpected error occurred"

var (
	// Bad input shape or range. Caught before network dispatch where possible.
	ErrValidation = errors.New("validation error")

	// 401/403: caller unauthenticated or lacks role/ownership.
	ErrAuth = errors.New("unauthorized")

	// 404: referenced job/application does not exist.
	ErrNotFound = errors.New("not found")

	// Business-rule violation, e.g. a duplicate application.
	ErrConflict = errors.New("conflict")

	// Transport failure, timeout or an unusable server response.
	ErrNetwork = errors.New("network error")

	// A submit was attempted while the previous one is still in flight.
	ErrBusy = errors.New("request already in progress")
)

// APIError is a failure reported by the backend. Kind is one of the
// sentinels above; Message is the envelope's "error" field, if any.
type APIError struct {
	Kind    error
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%v (%d): %s", e.Kind, e.Status, e.Message)
	}
	return fmt.Sprintf("%v (%d)", e.Kind, e.Status)
}

func (e *APIError) Unwrap() error { return e.Kind }

// ValidationError reports a rejected form field. It matches ErrValidation.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NewValidationError builds a *ValidationError for field.
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// KindForStatus maps an HTTP status code onto the error taxonomy.
func KindForStatus(status int) error {
	switch status {
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return ErrValidation
	case http.StatusUnauthorized, http.StatusForbidden:
		return ErrAuth
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusConflict:
		return ErrConflict
	default:
		return ErrNetwork
	}
}

// UserMessage renders err as the single line shown to the user: the
// validation message, the backend's error text, or a generic fallback.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}

	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Message
	}

	var ae *APIError
	if errors.As(err, &ae) && ae.Message != "" {
		return ae.Message
	}

	if errors.Is(err, ErrBusy) {
		return "Please wait for the current request to finish"
	}

	return GenericErrorMessage
}
