// Package errors provides application-level error types and utilities.
// It defines the error taxonomy of the issue lifecycle core: validation,
// jurisdiction, transition, assignee, precondition and not-found errors.
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorType represents the type of error
type ErrorType string

const (
	ErrorTypeValidation          ErrorType = "validation_error"
	ErrorTypeNotFound            ErrorType = "not_found"
	ErrorTypeConflict            ErrorType = "conflict"
	ErrorTypeForbidden           ErrorType = "forbidden"
	ErrorTypeInternal            ErrorType = "internal_error"
	ErrorTypeOutsideJurisdiction ErrorType = "outside_jurisdiction"
	ErrorTypeInvalidTransition   ErrorType = "invalid_transition"
	ErrorTypeInvalidAssignee     ErrorType = "invalid_assignee"
	ErrorTypePreconditionFailed  ErrorType = "precondition_failed"
)

// AppError represents an application error with additional context
type AppError struct {
	Type    ErrorType `json:"type"`
	Message string    `json:"message"`
	Code    int       `json:"code"`
	Details string    `json:"details,omitempty"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Type, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

func newAppError(errType ErrorType, code int, message string, details ...string) *AppError {
	detail := ""
	if len(details) > 0 {
		detail = details[0]
	}
	return &AppError{
		Type:    errType,
		Message: message,
		Code:    code,
		Details: detail,
	}
}

// NewValidationError creates a new validation error
func NewValidationError(message string, details ...string) *AppError {
	return newAppError(ErrorTypeValidation, http.StatusBadRequest, message, details...)
}

// NewNotFoundError creates a new not found error
func NewNotFoundError(message string, details ...string) *AppError {
	return newAppError(ErrorTypeNotFound, http.StatusNotFound, message, details...)
}

// NewConflictError creates a new conflict error
func NewConflictError(message string, details ...string) *AppError {
	return newAppError(ErrorTypeConflict, http.StatusConflict, message, details...)
}

// NewForbiddenError creates a new forbidden error
func NewForbiddenError(message string, details ...string) *AppError {
	return newAppError(ErrorTypeForbidden, http.StatusForbidden, message, details...)
}

// NewInternalError creates a new internal error
func NewInternalError(message string, details ...string) *AppError {
	return newAppError(ErrorTypeInternal, http.StatusInternalServerError, message, details...)
}

// NewOutsideJurisdictionError is returned when a reported location is not
// contained by any ward boundary. Issue creation must treat this as a hard
// validation failure, never a retryable condition.
func NewOutsideJurisdictionError(lat, lon float64) *AppError {
	return newAppError(
		ErrorTypeOutsideJurisdiction,
		http.StatusUnprocessableEntity,
		"location is outside municipal jurisdiction",
		fmt.Sprintf("lat=%.6f lon=%.6f", lat, lon),
	)
}

// NewInvalidTransitionError is returned when the current status disallows the
// requested status. The message names the allowed target set so callers can act.
func NewInvalidTransitionError(from, to string, allowed []string) *AppError {
	return newAppError(
		ErrorTypeInvalidTransition,
		http.StatusConflict,
		fmt.Sprintf("cannot transition from %s to %s", from, to),
		fmt.Sprintf("allowed targets: %v", allowed),
	)
}

// NewInvalidAssigneeError is returned when a reassignment target is inactive
// or not scoped to the issue's ward.
func NewInvalidAssigneeError(message string, details ...string) *AppError {
	return newAppError(ErrorTypeInvalidAssignee, http.StatusUnprocessableEntity, message, details...)
}

// NewPreconditionFailedError is returned when an operation's data precondition
// does not hold, e.g. verifying a resolution without AFTER media.
func NewPreconditionFailedError(message string, details ...string) *AppError {
	return newAppError(ErrorTypePreconditionFailed, http.StatusPreconditionFailed, message, details...)
}

// IsAppError checks if the error is an AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// GetAppError extracts AppError from error
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return nil
}

func isType(err error, t ErrorType) bool {
	appErr := GetAppError(err)
	return appErr != nil && appErr.Type == t
}

// IsValidationError checks if the error is a validation error
func IsValidationError(err error) bool {
	return isType(err, ErrorTypeValidation)
}

// IsNotFoundError checks if the error is a not found error
func IsNotFoundError(err error) bool {
	return isType(err, ErrorTypeNotFound)
}

// IsOutsideJurisdictionError checks if the error signals a point outside all wards
func IsOutsideJurisdictionError(err error) bool {
	return isType(err, ErrorTypeOutsideJurisdiction)
}

// IsInvalidTransitionError checks if the error is an invalid status transition
func IsInvalidTransitionError(err error) bool {
	return isType(err, ErrorTypeInvalidTransition)
}

// IsInvalidAssigneeError checks if the error is an invalid assignee error
func IsInvalidAssigneeError(err error) bool {
	return isType(err, ErrorTypeInvalidAssignee)
}

// IsPreconditionFailedError checks if the error is a failed precondition
func IsPreconditionFailedError(err error) bool {
	return isType(err, ErrorTypePreconditionFailed)
}
