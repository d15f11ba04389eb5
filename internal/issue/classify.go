// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"errors"

	"paralaunch/internal/job"
	"paralaunch/pkg/paramfile"
	"paralaunch/pkg/sigfile"
)

// Classify maps a failure to its catalog entry. Every sentinel in the
// launch failure taxonomy has exactly one issue; unmatched errors fall
// back to the execution-failed entry.
func Classify(err error) Id {
	switch {
	case errors.Is(err, sigfile.ErrTargetNotFound):
		return TargetNotFoundId
	case errors.Is(err, sigfile.ErrTargetShape):
		return TargetShapeId
	case errors.Is(err, paramfile.ErrInvalidParameterFile):
		return InvalidParameterFileId
	case errors.Is(err, sigfile.ErrUnknownParameter):
		return UnknownParameterId
	case errors.Is(err, sigfile.ErrMissingScriptName):
		return MissingScriptNameId
	case errors.Is(err, job.ErrBlockedLaunch):
		return BlockedLaunchId
	case errors.Is(err, job.ErrExecutionFailed):
		return ExecutionFailedId
	default:
		return ExecutionFailedId
	}
}
