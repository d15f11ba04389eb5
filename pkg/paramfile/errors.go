// SPDX-License-Identifier: MPL-2.0

package paramfile

import (
	"errors"
	"fmt"
)

// ErrInvalidParameterFile is the sentinel wrapped by InvalidParameterFileError.
var ErrInvalidParameterFile = errors.New("invalid parameter file")

type (
	// InvalidParameterFileError is returned when a parameter file cannot be
	// read or parsed as a structured record. It wraps ErrInvalidParameterFile
	// for errors.Is() compatibility.
	InvalidParameterFileError struct {
		Path  string
		Cause error
	}

	// NotARecordError is returned when the top level of a parameter file is
	// not a structured record (e.g. a bare list or string).
	NotARecordError struct {
		Kind string
	}

	// UnsupportedValueError is returned for value shapes the tagged variant
	// has no case for (bytes, disjunctions left open, etc.).
	UnsupportedValueError struct {
		Kind string
	}
)

// Error implements the error interface for InvalidParameterFileError.
func (e *InvalidParameterFileError) Error() string {
	return fmt.Sprintf("invalid parameter file %s: %v", e.Path, e.Cause)
}

// Unwrap returns the sentinel and cause for errors.Is() compatibility.
func (e *InvalidParameterFileError) Unwrap() []error {
	return []error{ErrInvalidParameterFile, e.Cause}
}

// Error implements the error interface for NotARecordError.
func (e *NotARecordError) Error() string {
	return fmt.Sprintf("top level must be a record of parameter values, got %s", e.Kind)
}

// Error implements the error interface for UnsupportedValueError.
func (e *UnsupportedValueError) Error() string {
	return fmt.Sprintf("unsupported parameter value shape %q", e.Kind)
}
