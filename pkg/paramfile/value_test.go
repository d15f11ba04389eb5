// SPDX-License-Identifier: MPL-2.0

package paramfile

import (
	"strings"
	"testing"
)

func TestValueKind(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		val  Value
		want Kind
	}{
		{name: "zero value is absent", val: Value{}, want: KindAbsent},
		{name: "explicit absent", val: Absent(), want: KindAbsent},
		{name: "scalar", val: Scalar("x"), want: KindScalar},
		{name: "empty scalar is still scalar", val: Scalar(""), want: KindScalar},
		{name: "list", val: List(Scalar("a")), want: KindList},
		{name: "struct", val: Struct(Field{Key: "k", Val: Scalar("v")}), want: KindStruct},
		{name: "map", val: Map(Field{Key: "k", Val: Scalar("v")}), want: KindMap},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := tt.val.Kind(); got != tt.want {
				t.Errorf("Kind() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestValueIsEmpty(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		val  Value
		want bool
	}{
		{name: "absent", val: Absent(), want: true},
		{name: "empty scalar", val: Scalar(""), want: true},
		{name: "non-empty scalar", val: Scalar("x"), want: false},
		{name: "empty list", val: List(), want: true},
		{name: "non-empty list", val: List(Scalar("a")), want: false},
		{name: "empty struct", val: Struct(), want: true},
		{name: "non-empty struct", val: Struct(Field{Key: "k", Val: Scalar("v")}), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := tt.val.IsEmpty(); got != tt.want {
				t.Errorf("IsEmpty() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestValueAsMapRoundTrip(t *testing.T) {
	t.Parallel()

	rec := Struct(
		Field{Key: "host", Val: Scalar("localhost")},
		Field{Key: "port", Val: Scalar("8080")},
	)

	m := rec.AsMap()
	if m.Kind() != KindMap {
		t.Fatalf("AsMap() kind = %q, want %q", m.Kind(), KindMap)
	}

	// Coercion is idempotent.
	if again := m.AsMap(); !again.Equal(m) {
		t.Error("AsMap() on a map should be a no-op")
	}

	back := m.AsStruct()
	if !back.Equal(rec) {
		t.Error("AsStruct(AsMap(v)) should round-trip to the original record")
	}
}

func TestValueAsMapPassThrough(t *testing.T) {
	t.Parallel()

	for _, v := range []Value{Absent(), Scalar("x"), List(Scalar("a"))} {
		if got := v.AsMap(); !got.Equal(v) {
			t.Errorf("AsMap(%v) should pass through unchanged, got %v", v, got)
		}
	}
}

func TestValueMapScalars(t *testing.T) {
	t.Parallel()

	upper := strings.ToUpper

	t.Run("recurses into lists and records", func(t *testing.T) {
		t.Parallel()

		v := Struct(
			Field{Key: "name", Val: Scalar("ada")},
			Field{Key: "tags", Val: List(Scalar("a"), Scalar("b"))},
		)
		got := v.MapScalars(upper)

		fields := got.Fields()
		if text, _ := fields[0].Val.ScalarText(); text != "ADA" {
			t.Errorf("nested scalar = %q, want %q", text, "ADA")
		}
		items := fields[1].Val.Items()
		if text, _ := items[1].ScalarText(); text != "B" {
			t.Errorf("nested list scalar = %q, want %q", text, "B")
		}
	})

	t.Run("absent passes through", func(t *testing.T) {
		t.Parallel()

		if got := Absent().MapScalars(upper); !got.IsAbsent() {
			t.Errorf("MapScalars on absent = %v, want absent", got)
		}
	})

	t.Run("original is not mutated", func(t *testing.T) {
		t.Parallel()

		v := List(Scalar("x"))
		_ = v.MapScalars(upper)
		if text, _ := v.Items()[0].ScalarText(); text != "x" {
			t.Errorf("original mutated to %q", text)
		}
	})
}

func TestValueEncodeArg(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		val  Value
		want string
	}{
		{name: "absent is empty string", val: Absent(), want: ""},
		{name: "scalar passes verbatim", val: Scalar("hello world"), want: "hello world"},
		{name: "list becomes JSON array", val: List(Scalar("a"), Scalar("b")), want: `["a","b"]`},
		{
			name: "record becomes JSON object",
			val:  Struct(Field{Key: "k", Val: Scalar("v")}),
			want: `{"k":"v"}`,
		},
		{
			name: "map becomes JSON object",
			val:  Map(Field{Key: "k", Val: Scalar("v")}),
			want: `{"k":"v"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := tt.val.EncodeArg(); got != tt.want {
				t.Errorf("EncodeArg() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestValueEqual(t *testing.T) {
	t.Parallel()

	a := Struct(Field{Key: "x", Val: Scalar("1")}, Field{Key: "y", Val: Scalar("2")})
	b := Struct(Field{Key: "y", Val: Scalar("2")}, Field{Key: "x", Val: Scalar("1")})

	if a.Equal(b) {
		t.Error("Equal should be order-sensitive for record fields")
	}
	if !a.Equal(a) {
		t.Error("value should equal itself")
	}
	if Scalar("x").Equal(List(Scalar("x"))) {
		t.Error("different kinds should not be equal")
	}
}
