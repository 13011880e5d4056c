package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mouse-blink/gorule/internal/domain"
)

// rulesCmd represents the rules command.
var rulesCmd = newRulesCmd()

func newRulesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rules",
		Short: "List the available rules",
		Long:  "List every rule with its category, fix support and the severity resolved from the configuration.",
		Args:  cobra.ExactArgs(0),
		RunE: func(_ *cobra.Command, _ []string) error {
			return workflow.Rules(domain.RulesArgs{Config: cfg})
		},
	}

	return cmd
}

func init() {
	rootCmd.AddCommand(rulesCmd)
}
