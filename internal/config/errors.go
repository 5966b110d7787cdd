package config

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig is matched by every FieldError.
var ErrInvalidConfig = errors.New("invalid configuration")

// FieldError describes a setting that could not be applied or validated.
type FieldError struct {
	// Path is the dot-separated setting path.
	Path string
	// Value is the offending value.
	Value any
	// Message describes the problem.
	Message string
}

// Error implements the error interface.
func (e *FieldError) Error() string {
	return fmt.Sprintf("config %s: %s (got %v)", e.Path, e.Message, e.Value)
}

// Is reports whether target is ErrInvalidConfig.
func (e *FieldError) Is(target error) bool {
	return target == ErrInvalidConfig
}

func fieldError(path string, value any, format string, args ...any) *FieldError {
	return &FieldError{Path: path, Value: value, Message: fmt.Sprintf(format, args...)}
}
