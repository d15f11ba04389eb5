// SPDX-License-Identifier: MPL-2.0

package job

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"

	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/interp"
	"mvdan.cc/sh/v3/syntax"
)

// VirtualRunner executes the target with the embedded mvdan/sh interpreter.
// Running in-process gives the strongest supervision: no fork, deterministic
// capture, and the job handle's recover boundary contains any fault.
type VirtualRunner struct{}

// NewVirtualRunner creates a new virtual runner.
func NewVirtualRunner() *VirtualRunner {
	return &VirtualRunner{}
}

// Name returns the runner name.
func (r *VirtualRunner) Name() string {
	return string(RunnerTypeVirtual)
}

// Available returns whether this runner is available.
func (r *VirtualRunner) Available() bool {
	// Built-in interpreter, always available.
	return true
}

// Run executes the target script with the embedded interpreter, passing the
// argument vector as shell positional parameters ($1, $2, ...).
func (r *VirtualRunner) Run(ctx context.Context, spec RunSpec) *Result {
	script, err := os.ReadFile(spec.ScriptPath)
	if err != nil {
		return &Result{ExitCode: 1, Error: fmt.Errorf("failed to read target script: %w", err)}
	}

	prog, err := syntax.NewParser().Parse(bytes.NewReader(script), spec.ScriptPath)
	if err != nil {
		return &Result{ExitCode: 1, Error: fmt.Errorf("target script syntax error: %w", err)}
	}

	var stdout, stderr bytes.Buffer

	opts := []interp.RunnerOption{
		interp.Env(expand.ListEnviron(spec.Env...)),
		interp.StdIO(spec.Stdin, &stdout, &stderr),
	}
	if spec.Dir != "" {
		opts = append(opts, interp.Dir(spec.Dir))
	}

	// Prepend "--" to mark end of options; without it an argument like
	// "-v" would be taken as a shell option by interp.Params().
	if len(spec.Args) > 0 {
		params := append([]string{"--"}, spec.Args...)
		opts = append(opts, interp.Params(params...))
	}

	runner, err := interp.New(opts...)
	if err != nil {
		return &Result{ExitCode: 1, Error: fmt.Errorf("failed to create interpreter: %w", err)}
	}

	result := &Result{}
	runErr := runner.Run(ctx, prog)
	result.Output = stdout.String()
	result.ErrOutput = stderr.String()

	if runErr != nil {
		var exitStatus interp.ExitStatus
		if errors.As(runErr, &exitStatus) {
			result.ExitCode = int(exitStatus)
		} else {
			result.ExitCode = 1
			result.Error = runErr
		}
	}

	return result
}
