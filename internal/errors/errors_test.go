package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestAppErrorMessage(t *testing.T) {
	t.Run("without cause", func(t *testing.T) {
		err := NewValidationError(ErrCodeInvalidRequest, "Resume text is required", nil)
		expected := "INVALID_REQUEST: Resume text is required"
		if err.Error() != expected {
			t.Errorf("Expected %q, got %q", expected, err.Error())
		}
	})

	t.Run("with cause", func(t *testing.T) {
		cause := errors.New("connection refused")
		err := NewGatewayError(ErrCodeAIServiceFailed, "Provider unavailable", cause)
		expected := "AI_SERVICE_FAILED: Provider unavailable (caused by: connection refused)"
		if err.Error() != expected {
			t.Errorf("Expected %q, got %q", expected, err.Error())
		}
		if !errors.Is(err, cause) {
			t.Error("Expected cause to be unwrappable")
		}
	})
}

func TestTypeOf(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected ErrorType
	}{
		{"validation", NewValidationError("C", "m", nil), ErrorTypeValidation},
		{"gateway", NewGatewayError("C", "m", nil), ErrorTypeGateway},
		{"format", NewFormatError("C", "m", nil), ErrorTypeFormat},
		{"notfound", NewNotFoundError("C", "m", nil), ErrorTypeNotFound},
		{"storage", NewStorageError("C", "m", nil), ErrorTypeStorage},
		{"auth", NewAuthError("C", "m", nil), ErrorTypeAuth},
		{"conflict", NewConflictError("C", "m", nil), ErrorTypeConflict},
		{"wrapped app error", fmt.Errorf("outer: %w", NewGatewayError("C", "m", nil)), ErrorTypeGateway},
		{"plain error", errors.New("boom"), ErrorTypeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TypeOf(tt.err); got != tt.expected {
				t.Errorf("TypeOf() = %s, want %s", got, tt.expected)
			}
		})
	}
}

func TestIsRecoverableAnalysisError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{"gateway is recoverable", NewGatewayError(ErrCodeAIServiceFailed, "down", nil), true},
		{"format is recoverable", NewFormatError(ErrCodeAnalysisUnparsable, "garbage", nil), true},
		{"validation is not", NewValidationError(ErrCodeInvalidRequest, "bad", nil), false},
		{"storage is not", NewStorageError("QUERY_FAILED", "db", nil), false},
		{"plain error is not", errors.New("boom"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsRecoverableAnalysisError(tt.err); got != tt.expected {
				t.Errorf("IsRecoverableAnalysisError() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestWithContext(t *testing.T) {
	err := NewNotFoundError(ErrCodeJobNotFound, "no job", nil).
		WithContext("job_id", "abc").
		WithContext("recruiter_id", "def")

	if err.Context["job_id"] != "abc" {
		t.Errorf("Expected context job_id=abc, got %v", err.Context["job_id"])
	}
	if err.Context["recruiter_id"] != "def" {
		t.Errorf("Expected context recruiter_id=def, got %v", err.Context["recruiter_id"])
	}
}
