// SPDX-License-Identifier: MPL-2.0

package diagnostic

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"paralaunch/internal/bind"
	"paralaunch/pkg/paramfile"
	"paralaunch/pkg/sigfile"
)

func TestBuildEmptyInput(t *testing.T) {
	t.Parallel()

	// A failure before any discovery has only a run ID; Build must still
	// produce a well-formed record.
	rec := Build(Input{RunID: "ab12cd34"})

	if rec.RunID != "ab12cd34" {
		t.Errorf("RunID = %q", rec.RunID)
	}
	if _, err := time.Parse(time.RFC3339, rec.Timestamp); err != nil {
		t.Errorf("Timestamp %q is not RFC3339: %v", rec.Timestamp, err)
	}
	if rec.ErrorMessage != "" || rec.Parameters != nil || rec.ArgumentVector != nil {
		t.Errorf("empty fragments should stay empty: %+v", rec)
	}

	if _, err := rec.MarshalIndent(); err != nil {
		t.Errorf("MarshalIndent() error: %v", err)
	}
}

func TestBuildFullInput(t *testing.T) {
	t.Parallel()

	sig, err := sigfile.NewSignature("job.sh", []sigfile.Param{
		{Name: "Source", Type: sigfile.TypeScalar, Required: true},
		{Name: "Targets", Type: sigfile.TypeList},
	})
	if err != nil {
		t.Fatal(err)
	}

	set, err := paramfile.ParseBytes([]byte(`
ScriptName: "nightly"
Source:     "/in"
`), "p.cue")
	if err != nil {
		t.Fatal(err)
	}
	vector := bind.Bind(sig, nil, set, bind.Environ{})

	rec := Build(Input{
		RunID:             "ab12cd34",
		ScriptIdentity:    "nightly",
		ScriptPath:        "/srv/job.sh",
		ParameterFilePath: "/srv/p.cue",
		Err:               errors.New("target \"nightly\" failed: exit status 2"),
		Signature:         &sig,
		Vector:            vector,
	})

	if rec.ErrorMessage != "target \"nightly\" failed: exit status 2" {
		t.Errorf("ErrorMessage = %q", rec.ErrorMessage)
	}
	if len(rec.Parameters) != 2 {
		t.Fatalf("len(Parameters) = %d, want 2", len(rec.Parameters))
	}
	if p := rec.Parameters[0]; p.Name != "Source" || p.Type != "scalar" || !p.Required {
		t.Errorf("Parameters[0] = %+v", p)
	}
	if len(rec.ArgumentVector) != 2 {
		t.Fatalf("len(ArgumentVector) = %d, want 2", len(rec.ArgumentVector))
	}
	if a := rec.ArgumentVector[0]; a.Name != "Source" || a.Value != "/in" {
		t.Errorf("ArgumentVector[0] = %+v", a)
	}
	if a := rec.ArgumentVector[1]; a.Name != "Targets" || a.Value != "" {
		t.Errorf("ArgumentVector[1] = %+v, want empty rendering for absent", a)
	}
}

func TestRecordJSONLayout(t *testing.T) {
	t.Parallel()

	rec := Build(Input{RunID: "ab12cd34", ScriptIdentity: "nightly"})
	data, err := rec.MarshalIndent()
	if err != nil {
		t.Fatal(err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatal(err)
	}
	for _, key := range []string{"timestamp", "runId", "scriptIdentity", "scriptPath", "parameterFilePath", "errorMessage"} {
		if _, ok := decoded[key]; !ok {
			t.Errorf("JSON document is missing key %q", key)
		}
	}
}
