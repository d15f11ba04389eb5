// SPDX-License-Identifier: MPL-2.0

package launch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"paralaunch/internal/artifact"
	"paralaunch/internal/bind"
	"paralaunch/internal/config"
	"paralaunch/internal/diagnostic"
	"paralaunch/internal/job"
	"paralaunch/internal/notify"
	"paralaunch/internal/runlog"
	"paralaunch/pkg/paramfile"
	"paralaunch/pkg/sigfile"
)

type (
	// Options are the per-run inputs from the CLI.
	Options struct {
		// ScriptPath is the target script (mandatory).
		ScriptPath string
		// ParamsPath is the parameter file (mandatory).
		ParamsPath string
		// RunName overrides the ScriptName identity from the parameter file.
		RunName string
		// LogDir overrides the configured log directory.
		LogDir string
		// Recipients overrides the configured notification recipients.
		Recipients []string
		// Grace overrides the configured launch-acknowledgement grace period
		// (0 keeps the configured value).
		Grace time.Duration
		// Runner overrides the configured default runner ("" keeps it).
		Runner string
		// Verbose enables debug-level run logging.
		Verbose bool
		// WorkDir is the target's working directory ("" keeps the caller's).
		WorkDir string
	}

	// Deps are the orchestrator's collaborators, injected so tests can
	// substitute fakes at every seam.
	Deps struct {
		Config    *config.Config
		Providers *sigfile.Registry
		Runners   *job.Registry
		Notifier  notify.Notifier
	}

	// Outcome is the result of a successful run.
	Outcome struct {
		// RunID is the generated run identifier.
		RunID string
		// Identity is the resolved run label.
		Identity string
		// Output is the target's captured stdout.
		Output string
	}

	// runState accumulates the fragments the pipeline has produced so far.
	// The failure path folds whatever exists into the diagnostic record.
	runState struct {
		runID     string
		identity  string
		signature *sigfile.Signature
		vector    bind.Vector
	}
)

// Run executes one supervised launch end to end. Every failure path
// converges: diagnostic artifact (best-effort), operator notification
// (best-effort), terminal log entry, and a non-nil error for the CLI to
// turn into exit code 1.
func Run(ctx context.Context, deps Deps, opts Options) (*Outcome, error) {
	st := &runState{runID: newRunID()}

	// Parse eagerly so the run identity is known before any logging; the
	// parse error itself is surfaced later, inside the supervised pipeline,
	// so it flows through the converged failure path.
	set, parseErr := preflightParse(opts.ParamsPath)
	st.identity = resolveIdentity(opts.RunName, set, opts.ScriptPath)

	rec := runlog.NewRecorder(runlog.Options{
		RunID:   st.runID,
		Name:    st.identity,
		LogDir:  resolveLogDir(deps.Config, opts),
		Verbose: opts.Verbose || deps.Config.UI.Verbose,
	})
	defer rec.EmitEnd()

	rec.EmitStart(opts.ScriptPath, opts.ParamsPath)

	store, storeErr := artifact.NewStore(resolveArtifactDir(deps.Config, opts))
	if storeErr != nil {
		rec.Warn("artifact store unavailable", "error", storeErr)
	} else if parseErr == nil || fileExists(opts.ParamsPath) {
		if copyPath, err := store.SaveParamsCopy(st.runID, opts.ParamsPath); err != nil {
			rec.Warn("parameter-file copy failed", "error", err)
		} else {
			rec.Debug("parameter file preserved", "path", copyPath)
		}
	}

	out, err := supervise(ctx, deps, opts, st, set, parseErr, rec)
	if err != nil {
		converge(ctx, deps, opts, st, store, rec, err)
		return nil, err
	}

	rec.EmitOutcome(true, "")
	return &Outcome{RunID: st.runID, Identity: st.identity, Output: out}, nil
}

// supervise runs the fallible portion of the pipeline. It returns the
// target's output on success; on any failure the caller converges.
func supervise(ctx context.Context, deps Deps, opts Options, st *runState, set *paramfile.Set, parseErr error, rec *runlog.Recorder) (string, error) {
	insp, err := deps.Providers.Inspect(opts.ScriptPath)
	if err != nil {
		return "", err
	}
	st.signature = &insp.Signature
	rec.Debug("signature discovered", "params", insp.Signature.Len())

	if parseErr != nil {
		return "", parseErr
	}
	if err := sigfile.Validate(insp.Signature, set); err != nil {
		return "", err
	}

	st.vector = bind.Bind(insp.Signature, insp.Defaults, set, bind.SnapshotEnviron())
	rec.Debug("arguments bound", "argv", st.vector.Encode())

	runner, err := resolveRunner(deps, opts)
	if err != nil {
		return "", err
	}

	handle := job.Launch(ctx, runner, job.LaunchSpec{
		TargetPath: opts.ScriptPath,
		Identity:   st.identity,
		Vector:     st.vector,
		Env:        os.Environ(),
		Dir:        opts.WorkDir,
	})
	defer handle.Release()

	if err := handle.AwaitAck(resolveGrace(deps.Config, opts)); err != nil {
		return "", err
	}
	rec.Debug("launch acknowledged", "runner", runner.Name())

	record := handle.AwaitCompletion()
	rec.Debug("target terminated", "state", string(record.State))

	return handle.CollectResult()
}

// converge is the single failure path: diagnostic artifact, operator
// notification, terminal log entry. Both side effects are best-effort;
// their own failures are logged and swallowed so the original error is
// what the caller reports.
func converge(ctx context.Context, deps Deps, opts Options, st *runState, store *artifact.Store, rec *runlog.Recorder, cause error) {
	record := diagnostic.Build(diagnostic.Input{
		RunID:             st.runID,
		ScriptIdentity:    st.identity,
		ScriptPath:        opts.ScriptPath,
		ParameterFilePath: opts.ParamsPath,
		Err:               cause,
		Signature:         st.signature,
		Vector:            st.vector,
	})

	var attachments []string
	if store != nil {
		if path, err := store.SaveDiagnostic(st.runID, record); err != nil {
			rec.Warn("diagnostic artifact write failed", "error", err)
		} else {
			rec.Info("diagnostic artifact written", "path", path)
			attachments = append(attachments, path)
		}
	}

	recipients := opts.Recipients
	if len(recipients) == 0 {
		recipients = deps.Config.Notification.Recipients
	}
	if deps.Notifier != nil && len(recipients) > 0 {
		err := deps.Notifier.Notify(ctx, notify.Message{
			Recipients:  recipients,
			Subject:     fmt.Sprintf("paralaunch: run %s failed", st.identity),
			Body:        fmt.Sprintf("Run %s (%s) failed.\n\nScript: %s\nParameter file: %s\nError: %v\n", st.identity, st.runID, opts.ScriptPath, opts.ParamsPath, cause),
			Priority:    notify.PriorityHigh,
			Attachments: attachments,
		})
		if err != nil {
			rec.Warn("operator notification failed", "error", err)
		}
	}

	rec.EmitOutcome(false, cause.Error())
}

// preflightParse checks the parameter-file path and parses it. The checks
// run before parsing so a bad path is reported as not-found rather than as
// a parse failure.
func preflightParse(paramsPath string) (*paramfile.Set, error) {
	if !fileExists(paramsPath) {
		return nil, &ParameterFileNotFoundError{Path: paramsPath}
	}
	switch strings.ToLower(filepath.Ext(paramsPath)) {
	case ".cue", ".json":
	default:
		return nil, &UnsupportedParameterFileError{Path: paramsPath}
	}
	return paramfile.Parse(paramsPath)
}

func resolveIdentity(runName string, set *paramfile.Set, scriptPath string) string {
	if runName != "" {
		return runName
	}
	if set != nil && set.ScriptName() != "" {
		return set.ScriptName()
	}
	base := filepath.Base(scriptPath)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func resolveLogDir(cfg *config.Config, opts Options) string {
	if opts.LogDir != "" {
		return opts.LogDir
	}
	return cfg.LogDir
}

func resolveArtifactDir(cfg *config.Config, opts Options) string {
	if cfg.ArtifactDir != "" {
		return cfg.ArtifactDir
	}
	if dir := resolveLogDir(cfg, opts); dir != "" {
		return dir
	}
	return "."
}

func resolveGrace(cfg *config.Config, opts Options) time.Duration {
	if opts.Grace > 0 {
		return opts.Grace
	}
	if d, err := cfg.GracePeriod.Duration(); err == nil && d > 0 {
		return d
	}
	return job.DefaultGracePeriod
}

func resolveRunner(deps Deps, opts Options) (job.Runner, error) {
	mode := opts.Runner
	if mode == "" {
		mode = deps.Config.DefaultRunner.String()
	}
	runner, err := deps.Runners.Get(job.RunnerType(mode))
	if err != nil {
		return nil, &RunnerNotAvailableError{Runner: mode, Cause: err}
	}
	return runner, nil
}

func newRunID() string {
	// Full UUIDs make artifact names unwieldy; the first group is unique
	// enough for pairing artifacts with log entries.
	id := uuid.New().String()
	return id[:8]
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
