// SPDX-License-Identifier: MPL-2.0

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"paralaunch/internal/issue"
	"paralaunch/pkg/sigfile"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <script>",
	Short: "Show the parameter signature a script declares",
	Long: `Show the parameter signature a script declares.

The signature is discovered the same way 'run' discovers it: from the
script's sidecar file (<script>.sig.cue) when one exists, otherwise from
# @param annotations in the script header. Framework-reserved parameter
names are excluded.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runInspect(args[0])
	},
}

func runInspect(scriptPath string) error {
	insp, err := sigfile.DefaultRegistry().Inspect(scriptPath)
	if err != nil {
		if rendered, renderErr := issue.Get(issue.Classify(err)).Render("dark"); renderErr == nil {
			fmt.Fprint(os.Stderr, rendered)
		}
		return &ExitError{Code: 1, Err: err}
	}

	fmt.Println(TitleStyle.Render("Signature: ") + scriptPath)
	fmt.Println()

	params := insp.Signature.Params()
	if len(params) == 0 {
		fmt.Println(SubtitleStyle.Render("  (no parameters declared)"))
		return nil
	}

	for i, p := range params {
		line := fmt.Sprintf("  %2d. %s", i+1, ParamStyle.Render(p.Name))
		line += SubtitleStyle.Render(" " + string(p.GetType()))
		if p.Required {
			line += WarningStyle.Render(" required")
		}
		if def, ok := insp.Defaults[p.Name]; ok {
			line += SubtitleStyle.Render(" default=") + def.String()
		}
		fmt.Println(line)
		if p.Description != "" {
			fmt.Println(SubtitleStyle.Render("      " + p.Description))
		}
	}

	return nil
}
