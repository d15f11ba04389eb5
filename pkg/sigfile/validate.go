// SPDX-License-Identifier: MPL-2.0

package sigfile

import (
	"paralaunch/pkg/paramfile"
)

// Validate checks a parsed parameter set against the target's signature.
// Two independent contract checks, both fatal:
//
//  1. Every supplied name other than the reserved ScriptName label must be
//     declared by the target. The first unknown name in file order is
//     reported.
//  2. The set must carry a non-empty ScriptName label.
//
// Validation runs strictly after the parameter file has parsed; a parse
// failure surfaces earlier as InvalidParameterFileError.
func Validate(sig Signature, set *paramfile.Set) error {
	for _, name := range set.Keys() {
		if name == paramfile.ScriptNameField {
			continue
		}
		if !sig.Has(name) {
			return &UnknownParameterError{Name: name, TargetPath: sig.TargetPath()}
		}
	}

	if set.ScriptName() == "" {
		return &MissingScriptNameError{ParamsPath: set.Path()}
	}

	return nil
}
