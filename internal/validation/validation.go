// Package validation provides input validation for API requests.
package validation

import (
	"fmt"

	"github.com/google/uuid"
)

// Common validation errors
var (
	ErrInvalidUUID      = fmt.Errorf("invalid UUID format")
	ErrInvalidDateRange = fmt.Errorf("invalid date range")
	ErrEmptyField       = fmt.Errorf("field cannot be empty")
)

// ValidateUUID checks if a string is a valid UUID
func ValidateUUID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidUUID, id)
	}
	return nil
}

// ValidateRequired checks that a string field is non-empty
func ValidateRequired(field, value string) error {
	if value == "" {
		return fmt.Errorf("%w: %s", ErrEmptyField, field)
	}
	return nil
}

// ValidatePositive checks that a numeric field is strictly positive
func ValidatePositive(field string, value float64) error {
	if value <= 0 {
		return fmt.Errorf("%s must be positive, got %v", field, value)
	}
	return nil
}

// ValidateNonNegative checks that a numeric field is zero or positive
func ValidateNonNegative(field string, value float64) error {
	if value < 0 {
		return fmt.Errorf("%s cannot be negative, got %v", field, value)
	}
	return nil
}
