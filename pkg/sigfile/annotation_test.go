// SPDX-License-Identifier: MPL-2.0

package sigfile

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"paralaunch/pkg/paramfile"
)

func writeScript(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o755); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestAnnotationProviderSupports(t *testing.T) {
	t.Parallel()

	p := NewAnnotationProvider()

	tests := []struct {
		path string
		want bool
	}{
		{path: "job.sh", want: true},
		{path: "job.bash", want: true},
		{path: "JOB.SH", want: true},
		{path: "job.py", want: false},
		{path: "job", want: false},
	}

	for _, tt := range tests {
		if got := p.Supports(tt.path); got != tt.want {
			t.Errorf("Supports(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestAnnotationProviderInspect(t *testing.T) {
	t.Parallel()

	script := `#!/usr/bin/env bash
# Nightly sync job.
#
# @param Source scalar required
# @param Targets list
# @param Options map
# @param DryRun default=false
# @param Verbose
echo "body"
# @param Ignored scalar
`
	path := writeScript(t, "sync.sh", script)

	insp, err := NewAnnotationProvider().Inspect(path)
	if err != nil {
		t.Fatalf("Inspect() error: %v", err)
	}

	sig := insp.Signature
	wantNames := []string{"Source", "Targets", "Options", "DryRun"}
	if sig.Len() != len(wantNames) {
		t.Fatalf("Len() = %d, want %d (Verbose reserved, body annotation ignored)", sig.Len(), len(wantNames))
	}
	for i, p := range sig.Params() {
		if p.Name != wantNames[i] {
			t.Errorf("params[%d].Name = %q, want %q", i, p.Name, wantNames[i])
		}
	}

	src, _ := sig.Lookup("Source")
	if !src.Required || src.GetType() != TypeScalar {
		t.Errorf("Source = %+v, want required scalar", src)
	}
	if p, _ := sig.Lookup("Targets"); p.GetType() != TypeList {
		t.Errorf("Targets type = %q, want list", p.GetType())
	}

	if def, ok := insp.Defaults["DryRun"]; !ok || !def.Equal(paramfile.Scalar("false")) {
		t.Errorf("DryRun default = %v, want scalar false", def)
	}
	if _, ok := insp.Defaults["Source"]; ok {
		t.Error("Source should have no default")
	}
}

func TestAnnotationProviderNoAnnotations(t *testing.T) {
	t.Parallel()

	path := writeScript(t, "plain.sh", "#!/bin/sh\necho hi\n")

	insp, err := NewAnnotationProvider().Inspect(path)
	if err != nil {
		t.Fatalf("Inspect() error: %v", err)
	}
	if insp.Signature.Len() != 0 {
		t.Errorf("Len() = %d, want 0 for unannotated script", insp.Signature.Len())
	}
}

func TestParseAnnotation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		decl        string
		wantParam   Param
		wantDefault string
		hasDefault  bool
		wantErr     bool
	}{
		{
			name:      "bare name",
			decl:      "Source",
			wantParam: Param{Name: "Source"},
		},
		{
			name:      "typed and required",
			decl:      "Source scalar required",
			wantParam: Param{Name: "Source", Type: TypeScalar, Required: true},
		},
		{
			name:      "required before type",
			decl:      "Source required list",
			wantParam: Param{Name: "Source", Type: TypeList, Required: true},
		},
		{
			name:        "default with spaces",
			decl:        `Paper default=A4 paper`,
			wantParam:   Param{Name: "Paper"},
			wantDefault: "A4 paper",
			hasDefault:  true,
		},
		{
			name:        "quoted default",
			decl:        `Greeting default="hello there"`,
			wantParam:   Param{Name: "Greeting"},
			wantDefault: "hello there",
			hasDefault:  true,
		},
		{name: "empty declaration", decl: "", wantErr: true},
		{name: "default only", decl: "default=x", wantErr: true},
		{name: "unknown type", decl: "X blob", wantErr: true},
		{name: "two types", decl: "X list map", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			param, def, hasDefault, err := parseAnnotation(tt.decl)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("parseAnnotation(%q) error: %v", tt.decl, err)
			}
			if param != tt.wantParam {
				t.Errorf("param = %+v, want %+v", param, tt.wantParam)
			}
			if hasDefault != tt.hasDefault {
				t.Errorf("hasDefault = %v, want %v", hasDefault, tt.hasDefault)
			}
			if tt.hasDefault {
				if text, _ := def.ScalarText(); text != tt.wantDefault {
					t.Errorf("default = %q, want %q", text, tt.wantDefault)
				}
			}
		})
	}
}

func TestAnnotationProviderBadDeclaration(t *testing.T) {
	t.Parallel()

	path := writeScript(t, "bad.sh", "# @param X blob\n")

	_, err := NewAnnotationProvider().Inspect(path)
	if !errors.Is(err, ErrTargetShape) {
		t.Errorf("expected ErrTargetShape, got %v", err)
	}
}
