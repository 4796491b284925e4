package store

import (
	"errors"
	"fmt"
	"testing"

	hiremateErrors "hiremate/internal/errors"
	"hiremate/internal/types"

	"github.com/lib/pq"
)

func TestIsUniqueViolation(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{
			name:     "unique violation",
			err:      &pq.Error{Code: "23505"},
			expected: true,
		},
		{
			name:     "wrapped unique violation",
			err:      fmt.Errorf("insert failed: %w", &pq.Error{Code: "23505"}),
			expected: true,
		},
		{
			name:     "other pq error",
			err:      &pq.Error{Code: "23503"},
			expected: false,
		},
		{
			name:     "plain error",
			err:      errors.New("connection refused"),
			expected: false,
		},
		{
			name:     "nil error",
			err:      nil,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isUniqueViolation(tt.err); got != tt.expected {
				t.Errorf("isUniqueViolation() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestStorageError(t *testing.T) {
	cause := errors.New("connection reset")
	err := storageError("create job", cause)

	var appErr *hiremateErrors.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("Expected AppError, got %T", err)
	}
	if appErr.Type != hiremateErrors.ErrorTypeStorage {
		t.Errorf("Expected storage error type, got %s", appErr.Type)
	}
	if appErr.Code != "QUERY_FAILED" {
		t.Errorf("Expected code QUERY_FAILED, got %s", appErr.Code)
	}
	if !errors.Is(err, cause) {
		t.Error("Expected wrapped cause to be preserved")
	}
}

func TestSalaryColumns(t *testing.T) {
	t.Run("zero range stored as NULLs", func(t *testing.T) {
		salaryMin, salaryMax, salaryCurrency := salaryColumns(types.SalaryRange{})
		if salaryMin.Valid || salaryMax.Valid || salaryCurrency.Valid {
			t.Errorf("Expected all NULL columns, got min=%v max=%v currency=%v",
				salaryMin, salaryMax, salaryCurrency)
		}
	})

	t.Run("populated range", func(t *testing.T) {
		salaryMin, salaryMax, salaryCurrency := salaryColumns(types.SalaryRange{
			Min:      90000,
			Max:      140000,
			Currency: "USD",
		})
		if !salaryMin.Valid || salaryMin.Int64 != 90000 {
			t.Errorf("Expected min 90000, got %v", salaryMin)
		}
		if !salaryMax.Valid || salaryMax.Int64 != 140000 {
			t.Errorf("Expected max 140000, got %v", salaryMax)
		}
		if !salaryCurrency.Valid || salaryCurrency.String != "USD" {
			t.Errorf("Expected currency USD, got %v", salaryCurrency)
		}
	})

	t.Run("currency only still stores range", func(t *testing.T) {
		salaryMin, _, salaryCurrency := salaryColumns(types.SalaryRange{Currency: "EUR"})
		if !salaryCurrency.Valid || salaryCurrency.String != "EUR" {
			t.Errorf("Expected currency EUR, got %v", salaryCurrency)
		}
		if !salaryMin.Valid || salaryMin.Int64 != 0 {
			t.Errorf("Expected min 0, got %v", salaryMin)
		}
	})
}
