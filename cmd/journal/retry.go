package main

import (
	"github.com/spf13/cobra"
)

var retryCmd = &cobra.Command{
	Use:   "retry <entry>",
	Short: "Resume a failed entry from its first missing stage",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, err := appStore.Lookup(args[0])
		if err != nil {
			return err
		}
		return printResult(cmd.OutOrStdout(), appPipeline.Resume(commandContext(cmd), raw))
	},
}
