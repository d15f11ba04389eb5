// SPDX-License-Identifier: MPL-2.0

// Package job launches a target script as an isolated asynchronous unit of
// execution and supervises it to a terminal state.
//
// Exactly one job exists per invocation. The supervising flow suspends at
// two points only: a bounded wait for launch acknowledgement (long enough to
// observe a launch blocked on an unmet mandatory parameter) and an unbounded
// wait for completion. The handle must be released on every exit path.
package job
