// SPDX-License-Identifier: MPL-2.0

package runlog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRecorderLogfile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	rec := NewRecorder(Options{
		RunID:  "ab12cd34",
		Name:   "nightly",
		LogDir: dir,
	})

	wantPath := filepath.Join(dir, "ab12cd34_nightly.log")
	if rec.LogfilePath() != wantPath {
		t.Errorf("LogfilePath() = %q, want %q", rec.LogfilePath(), wantPath)
	}

	rec.EmitStart("/srv/job.sh", "/srv/params.cue")
	rec.EmitOutcome(false, "exit status 2")
	rec.EmitEnd()

	data, err := os.ReadFile(wantPath)
	if err != nil {
		t.Fatal(err)
	}
	content := string(data)
	for _, want := range []string{"run started", "run failed", "run ended", "ab12cd34", "exit status 2"} {
		if !strings.Contains(content, want) {
			t.Errorf("logfile missing %q", want)
		}
	}
}

func TestRecorderConsoleOnly(t *testing.T) {
	t.Parallel()

	rec := NewRecorder(Options{RunID: "ab12cd34", Name: "nightly"})
	if rec.LogfilePath() != "" {
		t.Errorf("LogfilePath() = %q, want empty without a log dir", rec.LogfilePath())
	}

	// Nothing to flush; the framing calls must still be safe.
	rec.EmitStart("/srv/job.sh", "/srv/params.cue")
	rec.EmitOutcome(true, "")
	rec.EmitEnd()
}

func TestRecorderFramingIsIdempotent(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	rec := NewRecorder(Options{RunID: "ab12cd34", Name: "repeat", LogDir: dir})

	rec.EmitStart("/a", "/b")
	rec.EmitStart("/a", "/b")
	rec.EmitEnd()
	rec.EmitEnd()

	data, err := os.ReadFile(filepath.Join(dir, "ab12cd34_repeat.log"))
	if err != nil {
		t.Fatal(err)
	}
	if got := strings.Count(string(data), "run started"); got != 1 {
		t.Errorf("run started logged %d times, want 1", got)
	}
	if got := strings.Count(string(data), "run ended"); got != 1 {
		t.Errorf("run ended logged %d times, want 1", got)
	}
}

func TestRecorderDebugLevel(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	quiet := NewRecorder(Options{RunID: "r1", Name: "quiet", LogDir: dir})
	quiet.Debug("hidden detail")
	quiet.EmitEnd()

	verbose := NewRecorder(Options{RunID: "r2", Name: "loud", LogDir: dir, Verbose: true})
	verbose.Debug("visible detail")
	verbose.EmitEnd()

	quietLog, err := os.ReadFile(filepath.Join(dir, "r1_quiet.log"))
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(quietLog), "hidden detail") {
		t.Error("debug output should be suppressed without verbose")
	}

	loudLog, err := os.ReadFile(filepath.Join(dir, "r2_loud.log"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(loudLog), "visible detail") {
		t.Error("debug output should appear with verbose")
	}
}
