// SPDX-License-Identifier: MPL-2.0

package sigfile

import (
	"errors"
	"fmt"
)

// Sentinel errors wrapped by the structured error types below.
var (
	// ErrTargetNotFound indicates the target path does not resolve to an
	// invocable script.
	ErrTargetNotFound = errors.New("target script not found")
	// ErrTargetShape indicates the target exists but its declared parameter
	// set cannot be determined.
	ErrTargetShape = errors.New("target parameter signature cannot be determined")
	// ErrUnknownParameter indicates the parameter file supplies a name the
	// target does not declare.
	ErrUnknownParameter = errors.New("unknown parameter")
	// ErrMissingScriptName indicates the parameter file lacks the reserved
	// identity label.
	ErrMissingScriptName = errors.New("missing ScriptName")
)

type (
	// TargetNotFoundError is returned when the target path cannot be resolved.
	TargetNotFoundError struct {
		Path  string
		Cause error
	}

	// TargetShapeError is returned when no provider can determine the
	// target's declared parameter set, or the declaration itself is invalid.
	TargetShapeError struct {
		Path  string
		Cause error
	}

	// DuplicateParameterError is returned when a target declares the same
	// parameter name twice.
	DuplicateParameterError struct {
		Name       string
		TargetPath string
	}

	// UnknownParameterError is returned when a parameter file supplies a
	// name absent from the target's signature. Name is the first unknown
	// name in file order.
	UnknownParameterError struct {
		Name       string
		TargetPath string
	}

	// MissingScriptNameError is returned when a parameter file lacks a
	// non-empty ScriptName label.
	MissingScriptNameError struct {
		ParamsPath string
	}
)

// Error implements the error interface for TargetNotFoundError.
func (e *TargetNotFoundError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("target script not found at %s: %v", e.Path, e.Cause)
	}
	return fmt.Sprintf("target script not found at %s", e.Path)
}

// Unwrap returns the sentinel and cause for errors.Is() compatibility.
func (e *TargetNotFoundError) Unwrap() []error {
	if e.Cause != nil {
		return []error{ErrTargetNotFound, e.Cause}
	}
	return []error{ErrTargetNotFound}
}

// Error implements the error interface for TargetShapeError.
func (e *TargetShapeError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("cannot determine parameter signature of %s: %v", e.Path, e.Cause)
	}
	return fmt.Sprintf("cannot determine parameter signature of %s", e.Path)
}

// Unwrap returns the sentinel and cause for errors.Is() compatibility.
func (e *TargetShapeError) Unwrap() []error {
	if e.Cause != nil {
		return []error{ErrTargetShape, e.Cause}
	}
	return []error{ErrTargetShape}
}

// Error implements the error interface for DuplicateParameterError.
func (e *DuplicateParameterError) Error() string {
	return fmt.Sprintf("target %s declares parameter %q more than once", e.TargetPath, e.Name)
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e *DuplicateParameterError) Unwrap() error {
	return ErrTargetShape
}

// Error implements the error interface for UnknownParameterError.
func (e *UnknownParameterError) Error() string {
	return fmt.Sprintf("parameter %q is not declared by target %s", e.Name, e.TargetPath)
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e *UnknownParameterError) Unwrap() error {
	return ErrUnknownParameter
}

// Error implements the error interface for MissingScriptNameError.
func (e *MissingScriptNameError) Error() string {
	return fmt.Sprintf("parameter file %s has no non-empty ScriptName label", e.ParamsPath)
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e *MissingScriptNameError) Unwrap() error {
	return ErrMissingScriptName
}
