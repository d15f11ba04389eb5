// SPDX-License-Identifier: MPL-2.0

// Package artifact persists a run's durable files: the verbatim copy of the
// parameter file taken early in every run, and the diagnostic record written
// on failure. Names are derived deterministically from the run identity so
// an operator can pair artifacts with log entries after the fact.
package artifact

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"paralaunch/internal/diagnostic"
)

// DiagnosticName is the fixed basename suffix of the diagnostic artifact.
const DiagnosticName = "diagnostic.json"

// Store writes run artifacts under a single directory.
type Store struct {
	dir string
}

// NewStore creates a store rooted at dir, creating it if needed.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create artifact directory %q: %w", dir, err)
	}
	return &Store{dir: dir}, nil
}

// Dir returns the store's root directory.
func (s *Store) Dir() string {
	return s.dir
}

// ParamsCopyPath returns the deterministic destination for a run's verbatim
// parameter-file copy: <runID>_<originalName>.
func (s *Store) ParamsCopyPath(runID, paramsPath string) string {
	return filepath.Join(s.dir, runID+"_"+filepath.Base(paramsPath))
}

// DiagnosticPath returns the deterministic destination for a run's
// diagnostic record: <runID>_diagnostic.json.
func (s *Store) DiagnosticPath(runID string) string {
	return filepath.Join(s.dir, runID+"_"+DiagnosticName)
}

// SaveParamsCopy copies the parameter file verbatim into the store. It runs
// early in every invocation so the exact input survives even when parsing
// fails later.
func (s *Store) SaveParamsCopy(runID, paramsPath string) (string, error) {
	src, err := os.Open(paramsPath)
	if err != nil {
		return "", fmt.Errorf("failed to open parameter file %q: %w", paramsPath, err)
	}
	defer src.Close()

	dstPath := s.ParamsCopyPath(runID, paramsPath)
	dst, err := os.Create(dstPath)
	if err != nil {
		return "", fmt.Errorf("failed to create artifact %q: %w", dstPath, err)
	}

	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		return "", fmt.Errorf("failed to copy parameter file to %q: %w", dstPath, err)
	}
	if err := dst.Close(); err != nil {
		return "", fmt.Errorf("failed to finalize artifact %q: %w", dstPath, err)
	}
	return dstPath, nil
}

// SaveDiagnostic writes the diagnostic record for a failed run.
func (s *Store) SaveDiagnostic(runID string, rec diagnostic.Record) (string, error) {
	data, err := rec.MarshalIndent()
	if err != nil {
		return "", fmt.Errorf("failed to encode diagnostic record: %w", err)
	}

	dstPath := s.DiagnosticPath(runID)
	if err := os.WriteFile(dstPath, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write diagnostic artifact %q: %w", dstPath, err)
	}
	return dstPath, nil
}
