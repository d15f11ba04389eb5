// SPDX-License-Identifier: MPL-2.0

package job

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"runtime"
)

// NativeRunner executes the target with the system shell as a separate
// process. Process isolation means a crashing target can never take the
// supervisor down with it.
type NativeRunner struct {
	// Shell overrides shell discovery (used by tests).
	Shell string
}

// NewNativeRunner creates a new native runner.
func NewNativeRunner() *NativeRunner {
	return &NativeRunner{}
}

// Name returns the runner name.
func (r *NativeRunner) Name() string {
	return string(RunnerTypeNative)
}

// Available returns whether a usable shell exists on this system.
func (r *NativeRunner) Available() bool {
	_, err := r.getShell()
	return err == nil
}

// Run executes the target script via the system shell, passing the argument
// vector as shell positional parameters ($1, $2, ...).
func (r *NativeRunner) Run(ctx context.Context, spec RunSpec) *Result {
	shell, err := r.getShell()
	if err != nil {
		return &Result{ExitCode: 1, Error: err}
	}

	args := append([]string{spec.ScriptPath}, spec.Args...)
	cmd := exec.CommandContext(ctx, shell, args...)
	cmd.Env = spec.Env
	cmd.Stdin = spec.Stdin
	if spec.Dir != "" {
		cmd.Dir = spec.Dir
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	result := &Result{}
	runErr := cmd.Run()
	result.Output = stdout.String()
	result.ErrOutput = stderr.String()

	if runErr != nil {
		var exitErr *exec.ExitError
		if errors.As(runErr, &exitErr) {
			result.ExitCode = exitErr.ExitCode()
		} else {
			result.ExitCode = 1
			result.Error = fmt.Errorf("failed to execute target: %w", runErr)
		}
	}

	return result
}

// getShell resolves the shell used to invoke the target.
func (r *NativeRunner) getShell() (string, error) {
	if r.Shell != "" {
		return r.Shell, nil
	}

	if runtime.GOOS != "windows" {
		if shell := os.Getenv("SHELL"); shell != "" {
			if _, err := os.Stat(shell); err == nil {
				return shell, nil
			}
		}
	}

	for _, candidate := range shellCandidates() {
		if path, err := exec.LookPath(candidate); err == nil {
			return path, nil
		}
	}

	return "", fmt.Errorf("no suitable shell found for the native runner")
}

func shellCandidates() []string {
	if runtime.GOOS == "windows" {
		return []string{"pwsh", "powershell"}
	}
	return []string{"bash", "sh"}
}
