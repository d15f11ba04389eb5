// SPDX-License-Identifier: MPL-2.0

package paramfile

import (
	"encoding/json"
	"fmt"
)

// Value kinds, one per shape a parameter file attribute can take.
// KindMap never appears straight out of a parameter file; it is produced by
// coercing a KindStruct record against a map-typed parameter.
const (
	// KindAbsent is the zero value: no value was supplied or defaulted.
	KindAbsent Kind = "absent"
	// KindScalar is a single string, number, or bool (stored as its text form).
	KindScalar Kind = "scalar"
	// KindList is an ordered sequence of values.
	KindList Kind = "list"
	// KindMap is a key-value mapping with deterministic key order.
	KindMap Kind = "map"
	// KindStruct is a generic structured record (attribute/value pairs).
	KindStruct Kind = "struct"
)

type (
	// Kind tags the active case of a Value.
	Kind string

	// Field is one key-value pair of a struct or map value.
	Field struct {
		Key string
		Val Value
	}

	// Value is a tagged variant over the shapes a bound argument can take.
	// The zero Value is Absent. Fields are unexported for immutability; use
	// the constructors and accessors.
	Value struct {
		kind   Kind
		scalar string
		items  []Value
		fields []Field
	}
)

// IsValid returns whether the Kind is one of the defined value kinds,
// and a list of validation errors if it is not.
func (k Kind) IsValid() (bool, []error) {
	switch k {
	case KindAbsent, KindScalar, KindList, KindMap, KindStruct:
		return true, nil
	default:
		return false, []error{fmt.Errorf("invalid value kind %q", string(k))}
	}
}

// Absent returns the empty value.
func Absent() Value {
	return Value{kind: KindAbsent}
}

// Scalar returns a scalar value holding the given text.
func Scalar(s string) Value {
	return Value{kind: KindScalar, scalar: s}
}

// List returns a list value over the given items.
func List(items ...Value) Value {
	return Value{kind: KindList, items: items}
}

// Struct returns a structured record value with the given ordered fields.
func Struct(fields ...Field) Value {
	return Value{kind: KindStruct, fields: fields}
}

// Map returns a map value with the given ordered entries.
func Map(fields ...Field) Value {
	return Value{kind: KindMap, fields: fields}
}

// Kind returns the active case tag.
func (v Value) Kind() Kind {
	if v.kind == "" {
		return KindAbsent
	}
	return v.kind
}

// IsAbsent reports whether no value is present.
func (v Value) IsAbsent() bool {
	return v.Kind() == KindAbsent
}

// IsEmpty reports whether the value is absent, an empty scalar, an empty
// list, or an empty record. Empty values never override a script default and
// never satisfy a mandatory parameter.
func (v Value) IsEmpty() bool {
	switch v.Kind() {
	case KindAbsent:
		return true
	case KindScalar:
		return v.scalar == ""
	case KindList:
		return len(v.items) == 0
	case KindMap, KindStruct:
		return len(v.fields) == 0
	default:
		return true
	}
}

// ScalarText returns the scalar payload and whether the value is a scalar.
func (v Value) ScalarText() (string, bool) {
	if v.Kind() != KindScalar {
		return "", false
	}
	return v.scalar, true
}

// Items returns a copy of the list payload. Empty for non-list values.
func (v Value) Items() []Value {
	if v.Kind() != KindList {
		return nil
	}
	out := make([]Value, len(v.items))
	copy(out, v.items)
	return out
}

// Fields returns a copy of the ordered fields of a struct or map value.
func (v Value) Fields() []Field {
	k := v.Kind()
	if k != KindStruct && k != KindMap {
		return nil
	}
	out := make([]Field, len(v.fields))
	copy(out, v.fields)
	return out
}

// AsMap converts a struct value into a map value, copying each attribute into
// a key-value entry. Values that are already maps are returned unchanged; all
// other kinds pass through untouched.
func (v Value) AsMap() Value {
	if v.Kind() != KindStruct {
		return v
	}
	fields := make([]Field, len(v.fields))
	copy(fields, v.fields)
	return Value{kind: KindMap, fields: fields}
}

// AsStruct converts a map value back into a struct record. The inverse of
// AsMap; round-tripping preserves every key-value pair.
func (v Value) AsStruct() Value {
	if v.Kind() != KindMap {
		return v
	}
	fields := make([]Field, len(v.fields))
	copy(fields, v.fields)
	return Value{kind: KindStruct, fields: fields}
}

// MapScalars returns a copy of the value with f applied to every scalar leaf,
// recursing through lists and records. Absent values are returned unchanged.
func (v Value) MapScalars(f func(string) string) Value {
	switch v.Kind() {
	case KindScalar:
		return Value{kind: KindScalar, scalar: f(v.scalar)}
	case KindList:
		items := make([]Value, len(v.items))
		for i, item := range v.items {
			items[i] = item.MapScalars(f)
		}
		return Value{kind: KindList, items: items}
	case KindMap, KindStruct:
		fields := make([]Field, len(v.fields))
		for i, fld := range v.fields {
			fields[i] = Field{Key: fld.Key, Val: fld.Val.MapScalars(f)}
		}
		return Value{kind: v.kind, fields: fields}
	default:
		return v
	}
}

// Equal reports whether two values have the same kind and payload.
// Map and struct comparison is order-sensitive on purpose: field order is
// part of the positional rendering contract.
func (v Value) Equal(other Value) bool {
	if v.Kind() != other.Kind() {
		return false
	}
	switch v.Kind() {
	case KindAbsent:
		return true
	case KindScalar:
		return v.scalar == other.scalar
	case KindList:
		if len(v.items) != len(other.items) {
			return false
		}
		for i := range v.items {
			if !v.items[i].Equal(other.items[i]) {
				return false
			}
		}
		return true
	case KindMap, KindStruct:
		if len(v.fields) != len(other.fields) {
			return false
		}
		for i := range v.fields {
			if v.fields[i].Key != other.fields[i].Key {
				return false
			}
			if !v.fields[i].Val.Equal(other.fields[i].Val) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// EncodeArg renders the value as a single argv entry. Scalars pass through
// verbatim, absent values become the empty string, and lists and records are
// serialized as JSON so the target receives one well-formed token per
// parameter position.
func (v Value) EncodeArg() string {
	switch v.Kind() {
	case KindAbsent:
		return ""
	case KindScalar:
		return v.scalar
	default:
		data, err := json.Marshal(v.toAny())
		if err != nil {
			// Value payloads are strings all the way down; Marshal cannot
			// fail on them. Keep the argv slot aligned regardless.
			return ""
		}
		return string(data)
	}
}

// String renders the value for logs and diagnostics.
func (v Value) String() string {
	if v.Kind() == KindScalar {
		return v.scalar
	}
	return v.EncodeArg()
}

// MarshalJSON serializes the value by shape: scalars as JSON strings, lists
// as arrays, maps and structs as objects, absent as null.
func (v Value) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.toAny())
}

func (v Value) toAny() any {
	switch v.Kind() {
	case KindAbsent:
		return nil
	case KindScalar:
		return v.scalar
	case KindList:
		out := make([]any, len(v.items))
		for i, item := range v.items {
			out[i] = item.toAny()
		}
		return out
	case KindMap, KindStruct:
		out := make(map[string]any, len(v.fields))
		for _, fld := range v.fields {
			out[fld.Key] = fld.Val.toAny()
		}
		return out
	default:
		return nil
	}
}
