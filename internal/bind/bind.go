// SPDX-License-Identifier: MPL-2.0

// Package bind resolves the ordered argument vector for one launch.
//
// Binding is total: it never fails. Shape mismatches are deliberately left
// for the target's own launch-time validation — the supervisor observes them
// later as a blocked or failed job.
package bind

import (
	"os"
	"strings"

	"paralaunch/pkg/paramfile"
	"paralaunch/pkg/sigfile"
)

type (
	// Environ is an explicit environment snapshot used for placeholder
	// expansion. Capturing it once at bind time keeps Bind pure: expansion
	// is a point-in-time substitution, never a late-bound reference.
	Environ map[string]string

	// Argument pairs a declared parameter with its resolved value.
	Argument struct {
		Param sigfile.Param
		Value paramfile.Value
	}

	// Vector is the ordered argument list, index-aligned with the target's
	// declared parameter order. Positional alignment is the single most
	// safety-critical invariant in the system: entry i always corresponds
	// to signature parameter i.
	Vector []Argument
)

// SnapshotEnviron captures the current process environment.
func SnapshotEnviron() Environ {
	env := make(Environ)
	for _, kv := range os.Environ() {
		if key, value, found := strings.Cut(kv, "="); found {
			env[key] = value
		}
	}
	return env
}

// Lookup returns the value for a placeholder name. Unknown names expand to
// the empty string, matching shell semantics.
func (e Environ) Lookup(name string) string {
	return e[name]
}

// Bind produces the ordered argument vector for the given signature.
// Per parameter, in declaration order:
//
//  1. Start absent.
//  2. A script-declared default, when present, replaces the absent value.
//  3. A non-empty user-supplied value overrides the default.
//  4. Scalar text undergoes environment-placeholder expansion ($NAME and
//     ${NAME}) against the provided snapshot, recursing into lists and
//     records so every string leaf is expanded.
//  5. A generic record bound to a map-typed parameter is flattened into
//     key-value entries; every other category/shape combination passes
//     through unchanged.
func Bind(sig sigfile.Signature, defaults sigfile.DefaultValues, set *paramfile.Set, env Environ) Vector {
	params := sig.Params()
	vector := make(Vector, 0, len(params))

	for _, param := range params {
		value := paramfile.Absent()

		if def, ok := defaults[param.Name]; ok {
			value = def
		}
		if set != nil {
			if user, ok := set.Get(param.Name); ok && !user.IsEmpty() {
				value = user
			}
		}

		value = value.MapScalars(func(s string) string {
			return os.Expand(s, env.Lookup)
		})

		if param.GetType() == sigfile.TypeMap {
			value = value.AsMap()
		}

		vector = append(vector, Argument{Param: param, Value: value})
	}

	return vector
}

// Values returns the bare value sequence, index-aligned with the signature.
func (v Vector) Values() []paramfile.Value {
	out := make([]paramfile.Value, len(v))
	for i, arg := range v {
		out[i] = arg.Value
	}
	return out
}

// Encode renders the vector as argv entries for a process boundary:
// scalars verbatim, absent values as empty strings, lists and records as
// JSON tokens.
func (v Vector) Encode() []string {
	out := make([]string, len(v))
	for i, arg := range v {
		out[i] = arg.Value.EncodeArg()
	}
	return out
}

// MissingRequired returns the names of mandatory parameters whose resolved
// value is empty, in declaration order. A non-empty result blocks the launch.
func (v Vector) MissingRequired() []string {
	var missing []string
	for _, arg := range v {
		if arg.Param.Required && arg.Value.IsEmpty() {
			missing = append(missing, arg.Param.Name)
		}
	}
	return missing
}
