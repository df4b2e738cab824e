package types

import (
	"errors"
	"fmt"
)

// Error kinds for a steady solve. All of them are fatal for the run, callers
// match them with errors.Is.
var (
	// ErrConfiguration is an unsupported element type, order or quadrature
	// point count combination
	ErrConfiguration = errors.New("configuration error")
	// ErrInput is malformed or out of range mesh or boundary condition data
	ErrInput = errors.New("input error")
	// ErrGeometry is a non-positive Jacobian determinant inside an element
	ErrGeometry = errors.New("geometry error")
	// ErrNumerical is a singular or non-converged linear system
	ErrNumerical = errors.New("numerical error")
)

func NewConfigurationError(format string, args ...interface{}) error {
	return wrap(ErrConfiguration, format, args...)
}

func NewInputError(format string, args ...interface{}) error {
	return wrap(ErrInput, format, args...)
}

func NewGeometryError(format string, args ...interface{}) error {
	return wrap(ErrGeometry, format, args...)
}

// NewNumericalError marks the failure as belonging to the solve phase, so
// it reads differently from anything raised during assembly.
func NewNumericalError(format string, args ...interface{}) error {
	return wrap(ErrNumerical, "solve phase: "+format, args...)
}

func wrap(kind error, format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", kind, fmt.Sprintf(format, args...))
}
