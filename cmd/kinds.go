package cmd

import (
	"github.com/devpulse/devpulse/internal/contract"
	"github.com/spf13/cobra"
)

var kindsCmd = &cobra.Command{
	Use:     "kinds",
	Short:   "List the supported metric kinds.",
	Long:    `List every supported metric kind with its description and polarity.`,
	PreRunE: lightSetup,
	Run: func(_ *cobra.Command, _ []string) {
		if err := writer.WriteKinds(cfg); err != nil {
			contract.LogFatal("Cannot write results", err)
		}
	},
}
