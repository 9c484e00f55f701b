package cmd

import (
	"github.com/devpulse/devpulse/internal/contract"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:     "status",
	Short:   "Show event counts and time span of the store.",
	Long:    `Show the number of stored events per category and the overall time span.`,
	PreRunE: sharedSetup,
	Run: func(_ *cobra.Command, _ []string) {
		status, err := store.Status(rootCtx)
		if err != nil {
			contract.LogFatal("Cannot query store status", err)
		}
		if err := writer.WriteStatus(status, cfg); err != nil {
			contract.LogFatal("Cannot write results", err)
		}
	},
}
