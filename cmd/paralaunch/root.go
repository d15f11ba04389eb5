// SPDX-License-Identifier: MPL-2.0

package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"paralaunch/internal/config"
	"paralaunch/internal/issue"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"

	// verbose enables verbose output
	verbose bool
	// cfgFile allows specifying a custom config file
	cfgFile string

	// rootCmd represents the base command when called without any subcommands
	rootCmd = &cobra.Command{
		Use:   "paralaunch",
		Short: "A parameter-binding launcher and supervisor for scripts",
		Long: TitleStyle.Render("paralaunch") + SubtitleStyle.Render(" - A parameter-binding launcher and supervisor for scripts") + `

paralaunch discovers the parameter signature a script declares, binds a
structured parameter file against it (user values over script defaults,
with environment-placeholder expansion), and supervises the launched run
to a clear verdict. Failed runs leave a diagnostic artifact and can
notify an operator by mail.

` + SubtitleStyle.Render("Quick Start:") + `
  1. Declare the script's parameters in a sidecar (script.sh.sig.cue)
     or with # @param header annotations
  2. Put the run's values in a parameter file (CUE or JSON) with a
     ScriptName identity field
  3. Launch with: paralaunch run <script> <paramfile>

` + SubtitleStyle.Render("Examples:") + `
  paralaunch run sync.sh nightly.cue       Launch a supervised run
  paralaunch inspect sync.sh               Show the declared signature
  paralaunch config show                   Show current configuration`,
	}
)

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/paralaunch/config.cue)")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(configCmd)
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	// Use fang.Execute for enhanced Cobra styling
	// Pass version via fang.WithVersion() since fang overrides rootCmd.Version
	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		os.Exit(1)
	}
}

// loadConfig loads the configuration, honoring the --config flag. A load
// failure is surfaced as a warning and falls back to defaults so a broken
// config file never prevents a launch.
func loadConfig(ctx context.Context) *config.Config {
	cfg, err := config.NewProvider().Load(ctx, config.LoadOptions{ConfigFilePath: cfgFile})
	if err != nil {
		fmt.Fprintln(os.Stderr, WarningStyle.Render("Warning: ")+formatErrorForDisplay(err, verbose))
		return config.DefaultConfig()
	}
	if !verbose {
		verbose = cfg.UI.Verbose
	}
	return cfg
}

// formatErrorForDisplay formats an error for user display.
// If the error is an ActionableError, it uses the Format method.
// In verbose mode, shows the full error chain.
func formatErrorForDisplay(err error, verboseMode bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verboseMode)
	}
	return err.Error()
}
