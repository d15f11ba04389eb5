// SPDX-License-Identifier: MPL-2.0

package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"paralaunch/internal/app/launch"
	"paralaunch/internal/config"
	"paralaunch/internal/issue"
	"paralaunch/internal/job"
	"paralaunch/internal/notify"
	"paralaunch/pkg/sigfile"
)

var (
	runName    string
	runLogDir  string
	runNotify  []string
	runGrace   time.Duration
	runRunner  string
	runWorkDir string

	runCmd = &cobra.Command{
		Use:   "run <script> <paramfile>",
		Short: "Launch a script under supervision",
		Long: `Launch a script under supervision.

The script's parameter signature is discovered from its sidecar file
(<script>.sig.cue) or its # @param header annotations. The parameter file
(CUE or JSON) supplies the run's values and its ScriptName identity.

Exit code is 0 when the script succeeds and 1 on any failure. Every failed
run leaves a diagnostic artifact next to the run's parameter-file copy.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLaunch(cmd, args[0], args[1])
		},
	}
)

func init() {
	runCmd.Flags().StringVar(&runName, "run-name", "", "override the run identity from the parameter file")
	runCmd.Flags().StringVar(&runLogDir, "log-dir", "", "directory for per-run logfiles")
	runCmd.Flags().StringArrayVar(&runNotify, "notify", nil, "notification recipient (repeatable)")
	runCmd.Flags().DurationVar(&runGrace, "grace", 0, "launch-acknowledgement grace period (e.g. 5s)")
	runCmd.Flags().StringVar(&runRunner, "runner", "", "execution runner: virtual or native")
	runCmd.Flags().StringVar(&runWorkDir, "workdir", "", "working directory for the script")
}

func runLaunch(cmd *cobra.Command, scriptPath, paramsPath string) error {
	ctx := cmd.Context()
	cfg := loadConfig(ctx)

	deps := launch.Deps{
		Config:    cfg,
		Providers: sigfile.DefaultRegistry(),
		Runners:   job.DefaultRegistry(),
		Notifier:  newNotifier(cfg),
	}

	outcome, err := launch.Run(ctx, deps, launch.Options{
		ScriptPath: scriptPath,
		ParamsPath: paramsPath,
		RunName:    runName,
		LogDir:     runLogDir,
		Recipients: runNotify,
		Grace:      runGrace,
		Runner:     runRunner,
		Verbose:    verbose,
		WorkDir:    runWorkDir,
	})
	if err != nil {
		if rendered, renderErr := issue.Get(classifyLaunchError(err)).Render("dark"); renderErr == nil {
			fmt.Fprint(os.Stderr, rendered)
		}
		fmt.Fprintln(os.Stderr, ErrorStyle.Render("Error: ")+formatErrorForDisplay(err, verbose))
		return &ExitError{Code: 1, Err: err}
	}

	if outcome.Output != "" {
		fmt.Print(outcome.Output)
	}
	return nil
}

// classifyLaunchError extends the shared failure classification with the
// orchestration-level sentinels the catalog package cannot see.
func classifyLaunchError(err error) issue.Id {
	switch {
	case errors.Is(err, launch.ErrParameterFileNotFound):
		return issue.ParameterFileNotFoundId
	case errors.Is(err, launch.ErrUnsupportedParameterFile):
		return issue.InvalidParameterFileId
	case errors.Is(err, launch.ErrRunnerNotAvailable):
		return issue.RunnerNotAvailableId
	default:
		return issue.Classify(err)
	}
}

func newNotifier(cfg *config.Config) notify.Notifier {
	if !cfg.Notification.Enabled {
		return notify.Noop{}
	}
	n, err := notify.NewSMTPNotifier(notify.SMTPConfig{
		Host:     cfg.Notification.SMTPHost,
		Port:     cfg.Notification.SMTPPort,
		From:     cfg.Notification.From,
		Username: cfg.Notification.Username,
		Password: cfg.Notification.Password,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, WarningStyle.Render("Warning: ")+"notifications disabled: "+err.Error())
		return notify.Noop{}
	}
	return n
}
