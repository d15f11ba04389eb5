// SPDX-License-Identifier: MPL-2.0

package artifact

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"paralaunch/internal/diagnostic"
)

func TestNewStoreCreatesDirectory(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "nested", "artifacts")
	store, err := NewStore(dir)
	if err != nil {
		t.Fatalf("NewStore() error: %v", err)
	}
	if store.Dir() != dir {
		t.Errorf("Dir() = %q, want %q", store.Dir(), dir)
	}
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		t.Errorf("store directory was not created: %v", err)
	}
}

func TestArtifactNaming(t *testing.T) {
	t.Parallel()

	store, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	got := store.ParamsCopyPath("ab12cd34", "/some/where/params.cue")
	if filepath.Base(got) != "ab12cd34_params.cue" {
		t.Errorf("ParamsCopyPath base = %q, want %q", filepath.Base(got), "ab12cd34_params.cue")
	}

	got = store.DiagnosticPath("ab12cd34")
	if filepath.Base(got) != "ab12cd34_diagnostic.json" {
		t.Errorf("DiagnosticPath base = %q, want %q", filepath.Base(got), "ab12cd34_diagnostic.json")
	}
}

func TestSaveParamsCopy(t *testing.T) {
	t.Parallel()

	content := "ScriptName: \"run\"\nBroken: [unclosed\n"
	src := filepath.Join(t.TempDir(), "params.cue")
	if err := os.WriteFile(src, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	store, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	// The copy is verbatim: even a file that will fail parsing later must
	// survive byte for byte.
	dst, err := store.SaveParamsCopy("ab12cd34", src)
	if err != nil {
		t.Fatalf("SaveParamsCopy() error: %v", err)
	}

	copied, err := os.ReadFile(dst)
	if err != nil {
		t.Fatal(err)
	}
	if string(copied) != content {
		t.Errorf("copied content = %q, want %q", copied, content)
	}
}

func TestSaveParamsCopyMissingSource(t *testing.T) {
	t.Parallel()

	store, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if _, err := store.SaveParamsCopy("ab12cd34", filepath.Join(t.TempDir(), "nope.cue")); err == nil {
		t.Error("expected error for missing source file")
	}
}

func TestSaveDiagnostic(t *testing.T) {
	t.Parallel()

	store, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	rec := diagnostic.Build(diagnostic.Input{
		RunID:          "ab12cd34",
		ScriptIdentity: "nightly",
	})
	path, err := store.SaveDiagnostic("ab12cd34", rec)
	if err != nil {
		t.Fatalf("SaveDiagnostic() error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("diagnostic artifact is not valid JSON: %v", err)
	}
	if decoded["runId"] != "ab12cd34" {
		t.Errorf("runId = %v, want ab12cd34", decoded["runId"])
	}
}
