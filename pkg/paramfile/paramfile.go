// SPDX-License-Identifier: MPL-2.0

package paramfile

import (
	"os"
	"strconv"

	"paralaunch/pkg/cueutil"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
)

// ScriptNameField is the reserved top-level attribute labeling the run.
// It is mandatory in every parameter file but is only passed positionally
// when the target itself declares a parameter of the same name.
const ScriptNameField = "ScriptName"

// Set is the user-supplied parameter set parsed from one parameter file.
// Key order matches file order; unknown-parameter diagnostics depend on it.
type Set struct {
	path   string
	keys   []string
	values map[string]Value
}

// Parse reads and parses a parameter file from the given path.
func Parse(path string) (*Set, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &InvalidParameterFileError{Path: path, Cause: err}
	}
	return ParseBytes(data, path)
}

// ParseBytes parses parameter file content from bytes. The content must be a
// CUE (or JSON) struct; anything else is an InvalidParameterFileError.
func ParseBytes(data []byte, path string) (*Set, error) {
	if err := cueutil.CheckFileSize(data, cueutil.DefaultMaxFileSize, path); err != nil {
		return nil, &InvalidParameterFileError{Path: path, Cause: err}
	}

	ctx := cuecontext.New()
	root := ctx.CompileBytes(data, cue.Filename(path))
	if root.Err() != nil {
		return nil, &InvalidParameterFileError{Path: path, Cause: cueutil.FormatError(root.Err(), path)}
	}

	if root.Kind() != cue.StructKind {
		return nil, &InvalidParameterFileError{Path: path, Cause: &NotARecordError{Kind: root.Kind().String()}}
	}

	iter, err := root.Fields()
	if err != nil {
		return nil, &InvalidParameterFileError{Path: path, Cause: cueutil.FormatError(err, path)}
	}

	set := &Set{path: path, values: make(map[string]Value)}
	for iter.Next() {
		name := fieldName(iter.Selector())
		val, decodeErr := decodeValue(iter.Value())
		if decodeErr != nil {
			return nil, &InvalidParameterFileError{Path: path, Cause: decodeErr}
		}
		if _, seen := set.values[name]; !seen {
			set.keys = append(set.keys, name)
		}
		set.values[name] = val
	}

	return set, nil
}

// Path returns the parameter file path this set was parsed from.
func (s *Set) Path() string {
	return s.path
}

// Keys returns the parameter names in file order, including ScriptName.
func (s *Set) Keys() []string {
	out := make([]string, len(s.keys))
	copy(out, s.keys)
	return out
}

// Has reports whether a value was supplied for the given parameter name.
func (s *Set) Has(name string) bool {
	_, ok := s.values[name]
	return ok
}

// Get returns the supplied value for the given parameter name.
func (s *Set) Get(name string) (Value, bool) {
	v, ok := s.values[name]
	return v, ok
}

// ScriptName returns the reserved identity label, or "" when the file does
// not carry one (a contract violation surfaced by Validate, not by parsing).
func (s *Set) ScriptName() string {
	v, ok := s.values[ScriptNameField]
	if !ok {
		return ""
	}
	text, _ := v.ScalarText()
	return text
}

// FromCUE lowers a concrete CUE value into the tagged Value variant. It is
// used by signature providers to decode script-declared default values, which
// share the parameter file's shape vocabulary.
func FromCUE(v cue.Value) (Value, error) {
	return decodeValue(v)
}

func fieldName(sel cue.Selector) string {
	if sel.LabelType() == cue.StringLabel {
		return sel.Unquoted()
	}
	return sel.String()
}

// decodeValue lowers a concrete CUE value into the tagged Value variant.
// Scalars keep their textual rendering; numbers use CUE's JSON form so
// "1.50" survives as written in JSON input.
func decodeValue(v cue.Value) (Value, error) {
	switch v.Kind() {
	case cue.NullKind:
		return Absent(), nil
	case cue.BoolKind:
		b, err := v.Bool()
		if err != nil {
			return Absent(), err
		}
		return Scalar(strconv.FormatBool(b)), nil
	case cue.StringKind:
		s, err := v.String()
		if err != nil {
			return Absent(), err
		}
		return Scalar(s), nil
	case cue.IntKind, cue.FloatKind, cue.NumberKind:
		data, err := v.MarshalJSON()
		if err != nil {
			return Absent(), err
		}
		return Scalar(string(data)), nil
	case cue.ListKind:
		iter, err := v.List()
		if err != nil {
			return Absent(), err
		}
		var items []Value
		for iter.Next() {
			item, itemErr := decodeValue(iter.Value())
			if itemErr != nil {
				return Absent(), itemErr
			}
			items = append(items, item)
		}
		return List(items...), nil
	case cue.StructKind:
		iter, err := v.Fields()
		if err != nil {
			return Absent(), err
		}
		var fields []Field
		for iter.Next() {
			fv, fieldErr := decodeValue(iter.Value())
			if fieldErr != nil {
				return Absent(), fieldErr
			}
			fields = append(fields, Field{Key: fieldName(iter.Selector()), Val: fv})
		}
		return Struct(fields...), nil
	default:
		return Absent(), &UnsupportedValueError{Kind: v.Kind().String()}
	}
}
