package apperrors

import (
	"errors"
	"testing"
)

func TestAppErrorError(t *testing.T) {
	tests := []struct {
		name     string
		appError *AppError
		expected string
	}{
		{
			name: "With Code",
			appError: &AppError{
				Code:    "TEST_CODE",
				Message: "This is a test error",
			},
			expected: "[TEST_CODE] This is a test error",
		},
		{
			name: "Without Code",
			appError: &AppError{
				Message: "This is a test error without code",
			},
			expected: "This is a test error without code",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.appError.Error()
			if result != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, result)
			}
		})
	}
}

func TestValidationErrorError(t *testing.T) {
	withField := &ValidationError{Field: "phone", Message: "must be 10 digits"}
	if withField.Error() != "validation failed for field 'phone': must be 10 digits" {
		t.Errorf("unexpected message: %q", withField.Error())
	}

	withoutField := &ValidationError{Message: "bad input"}
	if withoutField.Error() != "validation failed: bad input" {
		t.Errorf("unexpected message: %q", withoutField.Error())
	}
}

func TestNewValidationErrorWrapsSentinel(t *testing.T) {
	err := NewValidationError("amount", "must be positive")
	if !errors.Is(err, ErrValidation) {
		t.Error("expected error to wrap ErrValidation")
	}

	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatal("expected error to unwrap to *ValidationError")
	}
	if ve.Field != "amount" {
		t.Errorf("expected field 'amount', got %q", ve.Field)
	}
}

func TestWrapRemoteError(t *testing.T) {
	cause := errors.New("connection refused")
	err := WrapRemoteError(cause, "credit bureau unreachable")

	if !errors.Is(err, ErrRemoteService) {
		t.Error("expected error to wrap ErrRemoteService")
	}
	if !errors.Is(err, cause) {
		t.Error("expected error to wrap original cause")
	}

	var appErr *AppError
	if !errors.As(err, &appErr) {
		t.Fatal("expected *AppError")
	}
	if appErr.Code != "REMOTE_ERROR" {
		t.Errorf("expected code REMOTE_ERROR, got %q", appErr.Code)
	}
}

func TestWrapRenderingError(t *testing.T) {
	cause := errors.New("disk full")
	err := WrapRenderingError(cause, "could not write sanction letter")

	if !errors.Is(err, ErrRendering) {
		t.Error("expected error to wrap ErrRendering")
	}
}
