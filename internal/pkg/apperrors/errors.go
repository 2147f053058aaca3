package apperrors

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound = errors.New("resource not found")

	ErrInvalidInput = errors.New("invalid input")

	ErrValidation = errors.New("validation failed")

	ErrRemoteService = errors.New("remote service error")

	ErrRendering = errors.New("letter rendering error")

	ErrSessionExpired = errors.New("session expired")

	ErrInternalServer = errors.New("internal server error")
)

type ValidationError struct {
	Field   string
	Message string
	Cause   error
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for field '%s': %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

func (e *ValidationError) Unwrap() error {
	return e.Cause
}

func NewValidationError(field, message string) error {
	return fmt.Errorf("%w: %w", ErrValidation, &ValidationError{Field: field, Message: message})
}

type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("[%s] %s", e.Code, e.Message)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

func WrapRemoteError(cause error, message string) error {
	return &AppError{
		Code:    "REMOTE_ERROR",
		Message: message,
		Cause:   fmt.Errorf("%w: %w", ErrRemoteService, cause),
	}
}

func WrapRenderingError(cause error, message string) error {
	return &AppError{
		Code:    "RENDER_ERROR",
		Message: message,
		Cause:   fmt.Errorf("%w: %w", ErrRendering, cause),
	}
}
