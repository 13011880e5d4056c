package cmd

import (
	"github.com/spf13/cobra"
)

var lintCmdFlags lintFlags

// lintCmd represents the lint command.
var lintCmd = newLintCmd()

const lintLongDescription = `Lint Go source files with the enabled rules.

Findings are printed per file and stored in the reports directory. With
--fix, automatic fixes are applied repeatedly until none is left and the
files are written back. With --cache, files whose content and rule
configuration did not change since the last run reuse their stored reports.

The command exits with a non-zero status when findings of error severity
remain.`

func newLintCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lint [paths...]",
		Short: "Lint Go source files",
		Long:  lintLongDescription,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLint(cmd, args, lintCmdFlags)
		},
	}
	addLintFlags(cmd, &lintCmdFlags)

	return cmd
}

func init() {
	rootCmd.AddCommand(lintCmd)
}
