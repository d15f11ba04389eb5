// SPDX-License-Identifier: MPL-2.0

package job

import (
	"context"
	"fmt"
	"sync"
	"time"

	"paralaunch/internal/bind"
)

// DefaultGracePeriod is how long AwaitAck waits for the target to reach a
// stable launched state before giving up on a blocked launch. The duration
// is a heuristic carried as configuration, not a load-bearing constant.
const DefaultGracePeriod = 5 * time.Second

type (
	// LaunchSpec describes one target launch.
	LaunchSpec struct {
		// TargetPath is the script to execute.
		TargetPath string
		// Identity is the run label from the parameter file's ScriptName.
		Identity string
		// Vector is the bound argument vector, index-aligned with the
		// target's declared parameter order.
		Vector bind.Vector
		// Env is the complete child environment in KEY=value form.
		Env []string
		// Dir is the working directory ("" keeps the caller's).
		Dir string
	}

	// Record is a snapshot of a job's terminal observation.
	Record struct {
		// Identity is the run label.
		Identity string
		// State is the state at observation time.
		State State
		// Output is the captured stdout of a finished target.
		Output string
		// FailureReason describes the fault of a failed target.
		FailureReason string
	}

	// Handle is the supervisor's view of one launched job. It is owned by
	// exactly one logical supervisor for the duration of the invocation;
	// the internal mutex only guards against the job's own goroutine.
	Handle struct {
		identity string
		runner   Runner
		spec     LaunchSpec

		mu       sync.Mutex
		state    State
		result   *Result
		missing  []string
		released bool

		running chan struct{}
		blocked chan struct{}
		done    chan struct{}

		releaseOnce sync.Once
	}
)

// Launch starts the target as an isolated asynchronous unit of execution.
// It never blocks: the mandatory-parameter check and the execution itself
// happen on the job's own goroutine, observed through the handle.
func Launch(ctx context.Context, runner Runner, spec LaunchSpec) *Handle {
	h := &Handle{
		identity: spec.Identity,
		runner:   runner,
		spec:     spec,
		state:    StateNotStarted,
		running:  make(chan struct{}),
		blocked:  make(chan struct{}),
		done:     make(chan struct{}),
	}
	go h.run(ctx)
	return h
}

func (h *Handle) run(ctx context.Context) {
	defer close(h.done)
	defer func() {
		if r := recover(); r != nil {
			// A fault inside the target must never take the supervisor
			// down; it terminates this job as a runtime failure.
			h.setResult(StateFailed, &Result{
				ExitCode: 1,
				Error:    fmt.Errorf("target fault: %v", r),
			})
		}
	}()

	if missing := h.spec.Vector.MissingRequired(); len(missing) > 0 {
		h.setBlocked(missing)
		return
	}

	h.setState(StateRunning)
	close(h.running)

	result := h.runner.Run(ctx, RunSpec{
		ScriptPath: h.spec.TargetPath,
		Args:       h.spec.Vector.Encode(),
		Env:        h.spec.Env,
		Dir:        h.spec.Dir,
	})

	if result.Success() {
		h.setResult(StateSucceeded, result)
	} else {
		h.setResult(StateFailed, result)
	}
}

// State returns the job's current state.
func (h *Handle) State() State {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.state
}

// AwaitAck waits up to grace for the target to reach a stable launched
// state. A launch still blocked on an unmet mandatory parameter when the
// verdict is due fails with BlockedLaunchError: the target is presumed
// permanently unable to proceed, and supervision must not wait further.
func (h *Handle) AwaitAck(grace time.Duration) error {
	timer := time.NewTimer(grace)
	defer timer.Stop()

	select {
	case <-h.running:
		return nil
	case <-h.blocked:
	case <-timer.C:
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.state == StateBlocked {
		return &BlockedLaunchError{Identity: h.identity, Missing: h.missing}
	}
	return nil
}

// AwaitCompletion blocks the calling flow until the job reaches a terminal
// state. It has no timeout of its own: completion is bounded only by the
// target's own termination.
func (h *Handle) AwaitCompletion() Record {
	<-h.done
	return h.snapshot()
}

// CollectResult returns the target's output if it succeeded, or the
// classified failure if it did not. Must be called after a terminal state
// has been observed.
func (h *Handle) CollectResult() (string, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	switch h.state {
	case StateSucceeded:
		return h.result.Output, nil
	case StateBlocked:
		return "", &BlockedLaunchError{Identity: h.identity, Missing: h.missing}
	case StateFailed:
		return "", &ExecutionFailedError{
			Identity: h.identity,
			Reason:   h.result.FailureReason(),
			ExitCode: h.result.ExitCode,
		}
	default:
		return "", fmt.Errorf("job %q has not reached a terminal state", h.identity)
	}
}

// Release frees the resources associated with the job. It is idempotent and
// must be invoked exactly once per invocation path, typically deferred right
// after Launch so it runs on every exit path.
func (h *Handle) Release() {
	h.releaseOnce.Do(func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		h.released = true
		// Captured output buffers are the only retained resource; the job
		// goroutine exits on its own once the runner returns.
		if h.state.IsTerminal() {
			h.result = nil
		}
	})
}

// Released reports whether Release has been invoked.
func (h *Handle) Released() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.released
}

func (h *Handle) setState(s State) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.state = s
}

func (h *Handle) setBlocked(missing []string) {
	h.mu.Lock()
	h.state = StateBlocked
	h.missing = missing
	h.mu.Unlock()
	close(h.blocked)
}

func (h *Handle) setResult(s State, result *Result) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.state = s
	h.result = result
}

func (h *Handle) snapshot() Record {
	h.mu.Lock()
	defer h.mu.Unlock()

	rec := Record{Identity: h.identity, State: h.state}
	switch h.state {
	case StateBlocked:
		rec.FailureReason = (&BlockedLaunchError{Identity: h.identity, Missing: h.missing}).Error()
	case StateSucceeded:
		if h.result != nil {
			rec.Output = h.result.Output
		}
	case StateFailed:
		if h.result != nil {
			rec.Output = h.result.Output
			rec.FailureReason = h.result.FailureReason()
		}
	}
	return rec
}
