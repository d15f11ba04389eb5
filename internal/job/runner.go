// SPDX-License-Identifier: MPL-2.0

package job

import (
	"context"
	"fmt"
	"io"
)

// Runner type constants for the supported execution environments.
const (
	RunnerTypeVirtual RunnerType = "virtual"
	RunnerTypeNative  RunnerType = "native"
)

type (
	// RunnerType identifies a runner implementation.
	RunnerType string

	// RunSpec contains everything a runner needs to execute one target.
	RunSpec struct {
		// ScriptPath is the target script on disk.
		ScriptPath string
		// Args are the positional arguments, index-aligned with the
		// target's declared parameter order.
		Args []string
		// Env is the complete child environment in KEY=value form.
		Env []string
		// Dir is the working directory ("" keeps the caller's).
		Dir string
		// Stdin feeds the target's standard input (nil for none).
		Stdin io.Reader
	}

	// Result contains the outcome of one target execution. Output is always
	// captured: the supervisor returns it on success and folds it into the
	// diagnostic artifact on failure.
	Result struct {
		// ExitCode is the target's exit code.
		ExitCode int
		// Error contains any fault that prevented or aborted execution.
		Error error
		// Output contains captured stdout.
		Output string
		// ErrOutput contains captured stderr.
		ErrOutput string
	}

	// Runner executes a target script to completion in one isolation style.
	Runner interface {
		// Name returns the runner name.
		Name() string
		// Available reports whether this runner can execute on this system.
		Available() bool
		// Run executes the target and captures its output. It blocks until
		// the target terminates; callers wanting asynchrony wrap it in a
		// job handle via Launch.
		Run(ctx context.Context, spec RunSpec) *Result
	}

	// Registry holds the available runners.
	Registry struct {
		runners map[RunnerType]Runner
	}
)

// Success returns true if the target executed and exited zero.
func (r *Result) Success() bool {
	return r.ExitCode == 0 && r.Error == nil
}

// FailureReason renders the underlying fault for the failure taxonomy:
// the target's own error when there is one, otherwise stderr context, and
// the bare exit code as a last resort.
func (r *Result) FailureReason() string {
	if r.Error != nil {
		return r.Error.Error()
	}
	if r.ErrOutput != "" {
		return fmt.Sprintf("exit status %d: %s", r.ExitCode, r.ErrOutput)
	}
	return fmt.Sprintf("exit status %d", r.ExitCode)
}

// NewRegistry creates an empty runner registry.
func NewRegistry() *Registry {
	return &Registry{runners: make(map[RunnerType]Runner)}
}

// DefaultRegistry returns the built-in runner set.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(RunnerTypeVirtual, NewVirtualRunner())
	r.Register(RunnerTypeNative, NewNativeRunner())
	return r
}

// Register adds a runner to the registry.
func (r *Registry) Register(typ RunnerType, runner Runner) {
	r.runners[typ] = runner
}

// Get returns a runner by type.
func (r *Registry) Get(typ RunnerType) (Runner, error) {
	runner, ok := r.runners[typ]
	if !ok {
		return nil, fmt.Errorf("runner %q not registered", typ)
	}
	if !runner.Available() {
		return nil, fmt.Errorf("runner %q is not available on this system", typ)
	}
	return runner, nil
}

// Available returns the types of all runners usable on this system.
func (r *Registry) Available() []RunnerType {
	var types []RunnerType
	for typ, runner := range r.runners {
		if runner.Available() {
			types = append(types, typ)
		}
	}
	return types
}
