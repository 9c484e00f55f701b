package cmd

import (
	"github.com/devpulse/devpulse/internal/contract"
	"github.com/devpulse/devpulse/internal/eventstore"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database schema migrations.",
	Long: `Run database schema migrations for the configured backend. Without
--target-version the schema is migrated to the latest version.

Examples:
  devpulse migrate
  devpulse migrate --backend mysql --db-connect "user:pass@tcp(localhost:3306)/devpulse"
  devpulse migrate --target-version 1`,
	PreRunE: migrateSetup,
	Run: func(_ *cobra.Command, _ []string) {
		// Migrate reports the precise outcome (migrated, rolled back, no-op).
		targetVersion := viper.GetInt("target-version")
		if err := eventstore.Migrate(cfg.Backend, cfg.DBConnect, targetVersion); err != nil {
			contract.LogFatal("Cannot run migrations", err)
		}
	},
}
