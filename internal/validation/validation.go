package validation

import (
	"fmt"
	"strings"
)

const (
	MinHeightCm = 100
	MaxHeightCm = 250
	MinWeightKg = 30
	MaxWeightKg = 250
)

// ValidationError represents a validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateName checks if a profile name is valid
func ValidateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return ValidationError{Field: "name", Message: "name is required"}
	}
	return nil
}

// ValidateHeight checks the height is within a realistic range
func ValidateHeight(heightCm float64) error {
	if heightCm < MinHeightCm || heightCm > MaxHeightCm {
		return ValidationError{Field: "heightCm", Message: fmt.Sprintf("height must be between %d and %d cm", MinHeightCm, MaxHeightCm)}
	}
	return nil
}

// ValidateWeight checks the weight is within a realistic range
func ValidateWeight(weightKg float64) error {
	if weightKg < MinWeightKg || weightKg > MaxWeightKg {
		return ValidationError{Field: "weightKg", Message: fmt.Sprintf("weight must be between %d and %d kg", MinWeightKg, MaxWeightKg)}
	}
	return nil
}
