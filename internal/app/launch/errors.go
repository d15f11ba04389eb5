// SPDX-License-Identifier: MPL-2.0

package launch

import (
	"errors"
	"fmt"
)

var (
	// ErrParameterFileNotFound is the sentinel wrapped by ParameterFileNotFoundError.
	ErrParameterFileNotFound = errors.New("parameter file not found")
	// ErrUnsupportedParameterFile is the sentinel wrapped by UnsupportedParameterFileError.
	ErrUnsupportedParameterFile = errors.New("unsupported parameter file type")
	// ErrRunnerNotAvailable is the sentinel wrapped by RunnerNotAvailableError.
	ErrRunnerNotAvailable = errors.New("runner not available")
)

type (
	// ParameterFileNotFoundError is returned when the parameter-file path
	// does not exist. It wraps ErrParameterFileNotFound for errors.Is()
	// compatibility.
	ParameterFileNotFoundError struct {
		Path string
	}

	// UnsupportedParameterFileError is returned when the parameter file has
	// an extension other than .cue or .json. It wraps
	// ErrUnsupportedParameterFile for errors.Is() compatibility.
	UnsupportedParameterFileError struct {
		Path string
	}

	// RunnerNotAvailableError is returned when the selected runner cannot be
	// used on this system. It wraps ErrRunnerNotAvailable for errors.Is()
	// compatibility.
	RunnerNotAvailableError struct {
		Runner string
		Cause  error
	}
)

// Error implements the error interface for ParameterFileNotFoundError.
func (e *ParameterFileNotFoundError) Error() string {
	return fmt.Sprintf("parameter file not found: %s", e.Path)
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e *ParameterFileNotFoundError) Unwrap() error {
	return ErrParameterFileNotFound
}

// Error implements the error interface for UnsupportedParameterFileError.
func (e *UnsupportedParameterFileError) Error() string {
	return fmt.Sprintf("unsupported parameter file type: %s (expected .cue or .json)", e.Path)
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e *UnsupportedParameterFileError) Unwrap() error {
	return ErrUnsupportedParameterFile
}

// Error implements the error interface for RunnerNotAvailableError.
func (e *RunnerNotAvailableError) Error() string {
	return fmt.Sprintf("runner %q not available: %v", e.Runner, e.Cause)
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e *RunnerNotAvailableError) Unwrap() error {
	return ErrRunnerNotAvailable
}
