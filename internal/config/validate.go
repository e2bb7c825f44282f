package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ValidationError represents a configuration validation error with context
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s (%s): %s", e.Field, EnvVar(e.Field), e.Message)
	}
	return e.Message
}

// ValidateConfigValues validates configuration values against their struct tags.
// Returns nil if valid, or a ValidationError naming the first invalid field.
func ValidateConfigValues(cfg *Configuration) error {
	validate := validator.New()
	if err := validate.Struct(cfg); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			fieldErr := validationErrors[0]
			return &ValidationError{
				Field:   toSnakeCase(fieldErr.Field()),
				Message: formatValidationError(fieldErr),
			}
		}
		return &ValidationError{Message: err.Error()}
	}
	return nil
}

// formatValidationError formats a validation error for a specific field.
func formatValidationError(fieldErr validator.FieldError) string {
	switch fieldErr.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must be at least %s", fieldErr.Param())
	case "oneof":
		return fmt.Sprintf("must be one of %s, got %q",
			strings.Join(strings.Fields(fieldErr.Param()), ", "), fmt.Sprint(fieldErr.Value()))
	default:
		return fmt.Sprintf("failed validation: %s", fieldErr.Tag())
	}
}

// toSnakeCase converts a CamelCase field name to snake_case.
func toSnakeCase(s string) string {
	var result strings.Builder
	for i, r := range s {
		if i > 0 && r >= 'A' && r <= 'Z' {
			result.WriteRune('_')
		}
		result.WriteRune(r)
	}
	return strings.ToLower(result.String())
}
