// SPDX-License-Identifier: MPL-2.0

package job

import (
	"errors"
	"fmt"
)

// Job lifecycle states. Transitions:
//
//	NotStarted → Blocked               (mandatory parameter unmet at launch)
//	NotStarted → Running → Succeeded
//	NotStarted → Running → Failed
//
// Blocked is distinguished from Failed because it marks an input-contract
// violation rather than a runtime fault; both are reported as failures.
const (
	StateNotStarted State = "not_started"
	StateBlocked    State = "blocked"
	StateRunning    State = "running"
	StateSucceeded  State = "succeeded"
	StateFailed     State = "failed"
)

// ErrInvalidState is the sentinel wrapped by InvalidStateError.
var ErrInvalidState = errors.New("invalid job state")

type (
	// State identifies where a job is in its lifecycle.
	State string

	// InvalidStateError is returned when a State value is not recognized.
	// It wraps ErrInvalidState for errors.Is() compatibility.
	InvalidStateError struct {
		Value State
	}
)

// Error implements the error interface for InvalidStateError.
func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("invalid job state %q", e.Value)
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e *InvalidStateError) Unwrap() error {
	return ErrInvalidState
}

// IsValid returns whether the State is one of the defined lifecycle states,
// and a list of validation errors if it is not.
func (s State) IsValid() (bool, []error) {
	switch s {
	case StateNotStarted, StateBlocked, StateRunning, StateSucceeded, StateFailed:
		return true, nil
	default:
		return false, []error{&InvalidStateError{Value: s}}
	}
}

// IsTerminal reports whether the state ends supervision. Blocked is
// terminal: a launch blocked on an unmet mandatory parameter is presumed
// permanently unable to proceed.
func (s State) IsTerminal() bool {
	switch s {
	case StateBlocked, StateSucceeded, StateFailed:
		return true
	default:
		return false
	}
}
