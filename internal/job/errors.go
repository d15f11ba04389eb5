// SPDX-License-Identifier: MPL-2.0

package job

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for the supervision failure taxonomy. A blocked launch and
// a failed execution both abort the invocation, but callers distinguish them
// with errors.Is(): a blocked launch never ran the target at all.
var (
	ErrBlockedLaunch   = errors.New("launch blocked")
	ErrExecutionFailed = errors.New("target execution failed")
)

type (
	// BlockedLaunchError is returned when a job never left the blocked state
	// within the grace period: a mandatory parameter of the target had no
	// value from any source. It wraps ErrBlockedLaunch for errors.Is()
	// compatibility.
	BlockedLaunchError struct {
		Identity string
		Missing  []string
	}

	// ExecutionFailedError is returned when the target ran and terminated
	// unsuccessfully. It wraps ErrExecutionFailed for errors.Is()
	// compatibility.
	ExecutionFailedError struct {
		Identity string
		Reason   string
		ExitCode int
	}
)

// Error implements the error interface for BlockedLaunchError.
func (e *BlockedLaunchError) Error() string {
	return fmt.Sprintf("launch of %q blocked on unset mandatory parameter(s): %s",
		e.Identity, strings.Join(e.Missing, ", "))
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e *BlockedLaunchError) Unwrap() error {
	return ErrBlockedLaunch
}

// Error implements the error interface for ExecutionFailedError.
func (e *ExecutionFailedError) Error() string {
	return fmt.Sprintf("target %q failed: %s", e.Identity, e.Reason)
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e *ExecutionFailedError) Unwrap() error {
	return ErrExecutionFailed
}
