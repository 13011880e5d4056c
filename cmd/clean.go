package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mouse-blink/gorule/internal/domain"
	m "github.com/mouse-blink/gorule/internal/model"
)

// cleanCmd represents the clean command.
var cleanCmd = newCleanCmd()

func newCleanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clean [files...]",
		Short: "Remove stored lint reports",
		Long:  "Remove the stored reports of the given files, or the whole reports directory index when no file is given.",
		RunE: func(_ *cobra.Command, args []string) error {
			var paths []m.Path
			if len(args) > 0 {
				paths = parsePaths(args)
			}

			return workflow.Clean(domain.CleanArgs{Reports: m.Path(reportsOutputDirFlag), Paths: paths})
		},
	}

	return cmd
}

func init() {
	rootCmd.AddCommand(cleanCmd)
}
