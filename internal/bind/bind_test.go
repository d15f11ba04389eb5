// SPDX-License-Identifier: MPL-2.0

package bind

import (
	"reflect"
	"testing"

	"paralaunch/pkg/paramfile"
	"paralaunch/pkg/sigfile"
)

func sig(t *testing.T, params ...sigfile.Param) sigfile.Signature {
	t.Helper()
	s, err := sigfile.NewSignature("job.sh", params)
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func set(t *testing.T, content string) *paramfile.Set {
	t.Helper()
	s, err := paramfile.ParseBytes([]byte(content), "p.cue")
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func TestBindPrecedence(t *testing.T) {
	t.Parallel()

	s := sig(t,
		sigfile.Param{Name: "A"},
		sigfile.Param{Name: "B"},
		sigfile.Param{Name: "C"},
	)
	defaults := sigfile.DefaultValues{
		"A": paramfile.Scalar("default-a"),
		"B": paramfile.Scalar("default-b"),
	}
	user := set(t, `
ScriptName: "run"
B:          "user-b"
C:          "user-c"
`)

	vector := Bind(s, defaults, user, Environ{})

	want := []string{"default-a", "user-b", "user-c"}
	if got := vector.Encode(); !reflect.DeepEqual(got, want) {
		t.Errorf("Encode() = %v, want %v", got, want)
	}
}

func TestBindEmptyUserValueKeepsDefault(t *testing.T) {
	t.Parallel()

	s := sig(t, sigfile.Param{Name: "A"})
	defaults := sigfile.DefaultValues{"A": paramfile.Scalar("kept")}
	user := set(t, `
ScriptName: "run"
A:          ""
`)

	vector := Bind(s, defaults, user, Environ{})
	if got := vector.Encode()[0]; got != "kept" {
		t.Errorf("empty user value overrode the default: got %q, want %q", got, "kept")
	}
}

func TestBindPositionalAlignment(t *testing.T) {
	t.Parallel()

	// Only the middle parameter has a value; the vector must still carry
	// one slot per declared parameter, in declaration order.
	s := sig(t,
		sigfile.Param{Name: "First"},
		sigfile.Param{Name: "Second"},
		sigfile.Param{Name: "Third"},
	)
	user := set(t, `
ScriptName: "run"
Second:     "mid"
`)

	vector := Bind(s, nil, user, Environ{})
	if len(vector) != 3 {
		t.Fatalf("len(vector) = %d, want 3", len(vector))
	}

	want := []string{"", "mid", ""}
	if got := vector.Encode(); !reflect.DeepEqual(got, want) {
		t.Errorf("Encode() = %v, want %v", got, want)
	}
	for i, name := range []string{"First", "Second", "Third"} {
		if vector[i].Param.Name != name {
			t.Errorf("vector[%d].Param.Name = %q, want %q", i, vector[i].Param.Name, name)
		}
	}
}

func TestBindEnvironmentExpansion(t *testing.T) {
	t.Parallel()

	env := Environ{"HOME": "/home/ada", "REGION": "eu-1"}

	tests := []struct {
		name  string
		value string
		want  string
	}{
		{name: "dollar name", value: "$HOME/data", want: "/home/ada/data"},
		{name: "braced name", value: "${REGION}-bucket", want: "eu-1-bucket"},
		{name: "unknown expands empty", value: "$MISSING/x", want: "/x"},
		{name: "no placeholder", value: "plain", want: "plain"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			s := sig(t, sigfile.Param{Name: "P"})
			user := set(t, "ScriptName: \"run\"\nP: \""+tt.value+"\"\n")

			vector := Bind(s, nil, user, env)
			if got := vector.Encode()[0]; got != tt.want {
				t.Errorf("expansion of %q = %q, want %q", tt.value, got, tt.want)
			}
		})
	}
}

func TestBindExpansionRecursesIntoRecords(t *testing.T) {
	t.Parallel()

	s := sig(t, sigfile.Param{Name: "Options", Type: sigfile.TypeStruct})
	user := set(t, `
ScriptName: "run"
Options: {
	root: "$BASE/data"
	tags: ["$BASE/a"]
}
`)
	env := Environ{"BASE": "/srv"}

	vector := Bind(s, nil, user, env)
	if got := vector.Encode()[0]; got != `{"root":"/srv/data","tags":["/srv/a"]}` {
		t.Errorf("Encode() = %q, want nested expansion applied", got)
	}
}

func TestBindSnapshotIsPointInTime(t *testing.T) {
	t.Parallel()

	s := sig(t, sigfile.Param{Name: "P"})
	user := set(t, "ScriptName: \"run\"\nP: \"$X\"\n")

	env := Environ{"X": "before"}
	vector := Bind(s, nil, user, env)

	// Mutating the snapshot after Bind must not change the bound vector.
	env["X"] = "after"
	if got := vector.Encode()[0]; got != "before" {
		t.Errorf("bound value = %q, want point-in-time %q", got, "before")
	}
}

func TestBindMapCoercion(t *testing.T) {
	t.Parallel()

	t.Run("record coerces for map-typed parameter", func(t *testing.T) {
		t.Parallel()

		s := sig(t, sigfile.Param{Name: "Options", Type: sigfile.TypeMap})
		user := set(t, `
ScriptName: "run"
Options: {a: "1"}
`)
		vector := Bind(s, nil, user, Environ{})
		if vector[0].Value.Kind() != paramfile.KindMap {
			t.Errorf("kind = %q, want map", vector[0].Value.Kind())
		}
	})

	t.Run("record passes through for struct-typed parameter", func(t *testing.T) {
		t.Parallel()

		s := sig(t, sigfile.Param{Name: "Options", Type: sigfile.TypeStruct})
		user := set(t, `
ScriptName: "run"
Options: {a: "1"}
`)
		vector := Bind(s, nil, user, Environ{})
		if vector[0].Value.Kind() != paramfile.KindStruct {
			t.Errorf("kind = %q, want struct", vector[0].Value.Kind())
		}
	})

	t.Run("scalar bound to map-typed parameter passes through", func(t *testing.T) {
		t.Parallel()

		s := sig(t, sigfile.Param{Name: "Options", Type: sigfile.TypeMap})
		user := set(t, `
ScriptName: "run"
Options:    "not a record"
`)
		vector := Bind(s, nil, user, Environ{})
		if vector[0].Value.Kind() != paramfile.KindScalar {
			t.Errorf("kind = %q, want scalar pass-through", vector[0].Value.Kind())
		}
	})
}

func TestBindNilSet(t *testing.T) {
	t.Parallel()

	s := sig(t, sigfile.Param{Name: "A"})
	defaults := sigfile.DefaultValues{"A": paramfile.Scalar("d")}

	vector := Bind(s, defaults, nil, Environ{})
	if got := vector.Encode()[0]; got != "d" {
		t.Errorf("Encode() = %q, want default applied with nil set", got)
	}
}

func TestMissingRequired(t *testing.T) {
	t.Parallel()

	s := sig(t,
		sigfile.Param{Name: "A", Required: true},
		sigfile.Param{Name: "B", Required: true},
		sigfile.Param{Name: "C"},
	)
	defaults := sigfile.DefaultValues{"B": paramfile.Scalar("covered")}
	user := set(t, `ScriptName: "run"`)

	vector := Bind(s, defaults, user, Environ{})
	if got := vector.MissingRequired(); !reflect.DeepEqual(got, []string{"A"}) {
		t.Errorf("MissingRequired() = %v, want [A]", got)
	}
}

func TestSnapshotEnviron(t *testing.T) {
	// No t.Parallel: t.Setenv forbids it.
	t.Setenv("PARALAUNCH_TEST_VAR", "snapshot-me")

	env := SnapshotEnviron()
	if env.Lookup("PARALAUNCH_TEST_VAR") != "snapshot-me" {
		t.Error("SnapshotEnviron should capture the current process environment")
	}
	if env.Lookup("PARALAUNCH_TEST_UNSET") != "" {
		t.Error("unknown names should look up to empty")
	}
}
