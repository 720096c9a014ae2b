package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidParameter indicates an input the simulation cannot accept.
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrDivisionUndefined indicates a ratio over zero invested capital.
	ErrDivisionUndefined = errors.New("division undefined: nothing invested")
)

// ParameterError names the rejected field. It unwraps to ErrInvalidParameter.
type ParameterError struct {
	Field  string
	Reason string
}

func (e *ParameterError) Error() string {
	return fmt.Sprintf("%s: %s: %s", ErrInvalidParameter, e.Field, e.Reason)
}

func (e *ParameterError) Unwrap() error {
	return ErrInvalidParameter
}

// InvalidParameter is a shorthand for building a *ParameterError.
func InvalidParameter(field, format string, args ...any) error {
	return &ParameterError{Field: field, Reason: fmt.Sprintf(format, args...)}
}
