// SPDX-License-Identifier: MPL-2.0

package sigfile

import (
	"errors"
	"fmt"

	"paralaunch/pkg/paramfile"
)

// Parameter type categories. The category describes the shape a bound value
// is expected to take, not a validation rule: binding is best-effort and a
// mismatched shape is the target's problem to reject at launch.
const (
	// TypeScalar is a single string, number, or bool.
	TypeScalar TypeCategory = "scalar"
	// TypeList is an ordered sequence.
	TypeList TypeCategory = "list"
	// TypeMap is a key-value mapping; generic records bound to a map-typed
	// parameter are flattened into entries by the binder.
	TypeMap TypeCategory = "map"
	// TypeStruct is a generic structured record, passed through unchanged.
	TypeStruct TypeCategory = "struct"
)

// ErrInvalidTypeCategory is the sentinel wrapped by InvalidTypeCategoryError.
var ErrInvalidTypeCategory = errors.New("invalid parameter type category")

type (
	// TypeCategory is the declared shape of a parameter.
	TypeCategory string

	// InvalidTypeCategoryError is returned when a TypeCategory value is not
	// recognized. It wraps ErrInvalidTypeCategory for errors.Is() compatibility.
	InvalidTypeCategoryError struct {
		Value TypeCategory
	}

	// Param is one declared parameter of a target script.
	Param struct {
		// Name is the parameter name, unique within a signature.
		Name string
		// Type is the declared shape (defaults to "scalar" when omitted).
		Type TypeCategory
		// Required marks a mandatory parameter; a launch with no value bound
		// to it parks the job in the blocked state.
		Required bool
		// Description provides optional help text for inspect output.
		Description string
	}

	// Signature is the ordered parameter contract declared by one target.
	// Ordering is the positional calling convention: slot i of the bound
	// argument vector goes to parameter i. Immutable once constructed.
	Signature struct {
		targetPath string
		params     []Param
		index      map[string]int
	}

	// DefaultValues maps parameter names to script-declared default values.
	// Kept separate from the Signature so the binder can consume it directly.
	DefaultValues map[string]paramfile.Value

	// Inspection is the full result of discovering one target's contract.
	Inspection struct {
		Signature Signature
		Defaults  DefaultValues
	}
)

// Error implements the error interface for InvalidTypeCategoryError.
func (e *InvalidTypeCategoryError) Error() string {
	return fmt.Sprintf("invalid parameter type category %q (valid: scalar, list, map, struct)", e.Value)
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e *InvalidTypeCategoryError) Unwrap() error {
	return ErrInvalidTypeCategory
}

// IsValid returns whether the TypeCategory is one of the defined categories,
// and a list of validation errors if it is not.
// The zero value ("") is valid — it is treated as "scalar" by GetType().
func (tc TypeCategory) IsValid() (bool, []error) {
	switch tc {
	case TypeScalar, TypeList, TypeMap, TypeStruct, "":
		return true, nil
	default:
		return false, []error{&InvalidTypeCategoryError{Value: tc}}
	}
}

// GetType returns the effective category (defaults to "scalar" if not specified).
func (p Param) GetType() TypeCategory {
	if p.Type == "" {
		return TypeScalar
	}
	return p.Type
}

// reservedNames is the framework-defined exclusion set: control parameters
// that belong to the invocation machinery, never to the target's own
// contract. Providers drop them from discovered signatures.
var reservedNames = map[string]struct{}{
	"Verbose":             {},
	"Debug":               {},
	"ErrorAction":         {},
	"WarningAction":       {},
	"InformationAction":   {},
	"ErrorVariable":       {},
	"WarningVariable":     {},
	"InformationVariable": {},
	"OutVariable":         {},
	"OutBuffer":           {},
	"PipelineVariable":    {},
	"WhatIf":              {},
	"Confirm":             {},
}

// IsReservedName reports whether the given parameter name belongs to the
// invocation framework rather than to a target's own contract.
func IsReservedName(name string) bool {
	_, ok := reservedNames[name]
	return ok
}

// NewSignature builds a validated Signature from the declared parameter list.
// Framework-reserved names are excluded; duplicate names among the remaining
// parameters are rejected; declaration order is preserved exactly.
func NewSignature(targetPath string, params []Param) (Signature, error) {
	kept := make([]Param, 0, len(params))
	index := make(map[string]int, len(params))

	for _, p := range params {
		if IsReservedName(p.Name) {
			continue
		}
		if isValid, errs := p.Type.IsValid(); !isValid {
			return Signature{}, errs[0]
		}
		if _, dup := index[p.Name]; dup {
			return Signature{}, &DuplicateParameterError{Name: p.Name, TargetPath: targetPath}
		}
		index[p.Name] = len(kept)
		kept = append(kept, p)
	}

	return Signature{targetPath: targetPath, params: kept, index: index}, nil
}

// TargetPath returns the script path this signature was discovered from.
func (s Signature) TargetPath() string {
	return s.targetPath
}

// Len returns the number of declared parameters.
func (s Signature) Len() int {
	return len(s.params)
}

// Params returns the declared parameters in declaration order.
func (s Signature) Params() []Param {
	out := make([]Param, len(s.params))
	copy(out, s.params)
	return out
}

// Lookup returns the parameter with the given name, if declared.
func (s Signature) Lookup(name string) (Param, bool) {
	i, ok := s.index[name]
	if !ok {
		return Param{}, false
	}
	return s.params[i], true
}

// Has reports whether a parameter with the given name is declared.
func (s Signature) Has(name string) bool {
	_, ok := s.index[name]
	return ok
}
