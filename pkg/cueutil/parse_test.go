// SPDX-License-Identifier: MPL-2.0

package cueutil

import (
	"errors"
	"strings"
	"testing"
)

const testSchema = `
#Job: {
	name:   string
	count?: int & >=0
}
`

type testJob struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestParseAndDecode(t *testing.T) {
	t.Parallel()

	res, err := ParseAndDecode[testJob](testSchema, []byte(`
name:  "sync"
count: 3
`), "#Job", WithFilename("job.cue"))
	if err != nil {
		t.Fatalf("ParseAndDecode() error: %v", err)
	}
	if res.Value.Name != "sync" || res.Value.Count != 3 {
		t.Errorf("Value = %+v", res.Value)
	}
	if !res.Unified.Exists() {
		t.Error("Unified value should be retained for metadata lookups")
	}
}

func TestParseAndDecodeSchemaViolation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		data string
	}{
		{name: "wrong type", data: `name: 42`},
		{name: "constraint violation", data: "name: \"x\"\ncount: -1"},
		{name: "unknown field", data: "name: \"x\"\nextra: true"},
		{name: "syntax error", data: `name: "x`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := ParseAndDecode[testJob](testSchema, []byte(tt.data), "#Job", WithFilename("job.cue"))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), "job.cue") {
				t.Errorf("error %q should carry the filename", err)
			}
		})
	}
}

func TestParseAndDecodeFileSizeLimit(t *testing.T) {
	t.Parallel()

	data := []byte(`name: "` + strings.Repeat("x", 64) + `"`)
	_, err := ParseAndDecode[testJob](testSchema, data, "#Job", WithMaxFileSize(16))

	var sizeErr *FileTooLargeError
	if !errors.As(err, &sizeErr) {
		t.Fatalf("expected FileTooLargeError, got %v", err)
	}
	if sizeErr.Limit != 16 {
		t.Errorf("Limit = %d, want 16", sizeErr.Limit)
	}
}

func TestCheckFileSize(t *testing.T) {
	t.Parallel()

	if err := CheckFileSize(make([]byte, 10), 10, "f.cue"); err != nil {
		t.Errorf("CheckFileSize at the limit should pass: %v", err)
	}
	if err := CheckFileSize(make([]byte, 11), 10, "f.cue"); err == nil {
		t.Error("CheckFileSize over the limit should fail")
	}
}

func TestFormatError(t *testing.T) {
	t.Parallel()

	if err := FormatError(nil, "f.cue"); err != nil {
		t.Errorf("FormatError(nil) = %v, want nil", err)
	}

	plain := errors.New("boom")
	got := FormatError(plain, "f.cue")
	if got == nil || !strings.Contains(got.Error(), "f.cue") {
		t.Errorf("FormatError(plain) = %v, want file prefix", got)
	}
	if !errors.Is(got, plain) {
		t.Error("non-CUE errors should stay unwrappable")
	}
}
