// SPDX-License-Identifier: MPL-2.0

// Package runlog provides the run-scoped logger. One Recorder exists per
// invocation; EmitStart, EmitOutcome and EmitEnd are each called exactly
// once, framing the run in both the console stream and the per-run logfile.
package runlog

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
)

// Recorder is the run-scoped logger. It writes to the console and, when a
// log directory is configured, to a per-run logfile named from the run
// identity.
type Recorder struct {
	logger  *log.Logger
	file    *os.File
	runID   string
	name    string
	started bool
	ended   bool
}

// Options configures a Recorder.
type Options struct {
	// RunID is the unique run identifier.
	RunID string
	// Name is the run label from the parameter file's ScriptName.
	Name string
	// LogDir holds per-run logfiles ("" disables the logfile).
	LogDir string
	// Verbose enables debug-level output.
	Verbose bool
}

// NewRecorder creates the run's Recorder. The per-run logfile is named
// <runID>_<name>.log; a logfile that cannot be opened degrades to
// console-only logging with a warning rather than failing the run.
func NewRecorder(opts Options) *Recorder {
	r := &Recorder{runID: opts.RunID, name: opts.Name}

	writers := []io.Writer{os.Stderr}
	if opts.LogDir != "" {
		path := filepath.Join(opts.LogDir, opts.RunID+"_"+opts.Name+".log")
		if err := os.MkdirAll(opts.LogDir, 0o755); err == nil {
			if f, err := os.Create(path); err == nil {
				r.file = f
				writers = append(writers, f)
			}
		}
	}

	r.logger = log.NewWithOptions(io.MultiWriter(writers...), log.Options{
		Prefix:          opts.Name,
		ReportTimestamp: true,
	})
	if opts.Verbose {
		r.logger.SetLevel(log.DebugLevel)
	}
	if r.file == nil && opts.LogDir != "" {
		r.logger.Warn("per-run logfile unavailable, logging to console only", "dir", opts.LogDir)
	}

	return r
}

// EmitStart records the start of the run. Called exactly once.
func (r *Recorder) EmitStart(scriptPath, paramsPath string) {
	if r.started {
		return
	}
	r.started = true
	r.logger.Info("run started",
		"run_id", r.runID,
		"script", scriptPath,
		"params", paramsPath,
	)
}

// EmitOutcome records the run's verdict. Called exactly once.
func (r *Recorder) EmitOutcome(success bool, detail string) {
	if success {
		r.logger.Info("run succeeded", "run_id", r.runID)
		return
	}
	r.logger.Error("run failed", "run_id", r.runID, "reason", detail)
}

// EmitEnd records the end of the run and closes the logfile. Called exactly
// once, last.
func (r *Recorder) EmitEnd() {
	if r.ended {
		return
	}
	r.ended = true
	r.logger.Info("run ended", "run_id", r.runID)
	if r.file != nil {
		r.file.Close()
		r.file = nil
	}
}

// Debug logs a debug-level message with key-value pairs.
func (r *Recorder) Debug(msg string, kv ...any) {
	r.logger.Debug(msg, kv...)
}

// Info logs an info-level message with key-value pairs.
func (r *Recorder) Info(msg string, kv ...any) {
	r.logger.Info(msg, kv...)
}

// Warn logs a warning with key-value pairs.
func (r *Recorder) Warn(msg string, kv ...any) {
	r.logger.Warn(msg, kv...)
}

// Error logs an error-level message with key-value pairs.
func (r *Recorder) Error(msg string, kv ...any) {
	r.logger.Error(msg, kv...)
}

// LogfilePath returns the per-run logfile path, or "" when console-only.
func (r *Recorder) LogfilePath() string {
	if r.file == nil {
		return ""
	}
	return r.file.Name()
}

// String implements fmt.Stringer for debug output.
func (r *Recorder) String() string {
	return fmt.Sprintf("runlog(%s/%s)", r.runID, r.name)
}
