// Package server provides the HTTP REST API for the premium calculator.
package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jonathan/premium-calculator/internal/premium"
	"github.com/jonathan/premium-calculator/internal/schemas"
)

// FieldError is a single field-level problem reported to clients.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ErrorResponse is the JSON body of every non-2xx response.
type ErrorResponse struct {
	Error   string       `json:"error"`
	Details []FieldError `json:"details,omitempty"`
}

// ErrBadRequest indicates a request body that could not be read or parsed
type ErrBadRequest struct {
	Cause error
}

func (e *ErrBadRequest) Error() string {
	return fmt.Sprintf("invalid request body: %v", e.Cause)
}

func (e *ErrBadRequest) Unwrap() error {
	return e.Cause
}

// ErrInternal indicates an unexpected failure while calculating
type ErrInternal struct {
	Cause any
}

func (e *ErrInternal) Error() string {
	return fmt.Sprintf("error calculating premium: %v", e.Cause)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		badRequest  *ErrBadRequest
		schemaErr   *schemas.ValidationError
		premiumErr  *premium.ValidationError
		maxBytesErr *http.MaxBytesError
	)
	switch {
	case errors.As(err, &maxBytesErr):
		return http.StatusRequestEntityTooLarge
	case errors.As(err, &badRequest):
		return http.StatusBadRequest
	case errors.As(err, &schemaErr), errors.As(err, &premiumErr):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// fieldErrors flattens the validation error types into client-facing details.
func fieldErrors(err error) []FieldError {
	var (
		schemaErr  *schemas.ValidationError
		premiumErr *premium.ValidationError
	)
	var out []FieldError
	switch {
	case errors.As(err, &schemaErr):
		for _, fe := range schemaErr.Errors {
			out = append(out, FieldError{Field: fe.Field, Message: fe.Message})
		}
	case errors.As(err, &premiumErr):
		for _, fe := range premiumErr.Errors {
			out = append(out, FieldError{Field: fe.Field, Message: fe.Message})
		}
	}
	return out
}
