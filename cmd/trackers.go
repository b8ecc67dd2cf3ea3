package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/DaniruKun/multitracker/tracking"
)

var trackersCmd = &cobra.Command{
	Use:   "trackers",
	Short: "List available tracker types",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), "Available trackers are:")
		for _, t := range tracking.Available {
			fmt.Fprintln(cmd.OutOrStdout(), t)
		}
	},
}

func init() {
	rootCmd.AddCommand(trackersCmd)
}
