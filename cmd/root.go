package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/devpulse/devpulse/core"
	"github.com/devpulse/devpulse/internal/contract"
	"github.com/devpulse/devpulse/internal/eventstore"
	"github.com/devpulse/devpulse/internal/outwriter"
	"github.com/devpulse/devpulse/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// All linker flags will be set by goreleaser infra at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// rootCtx is the root context for all operations.
var rootCtx = context.Background()

// cfg will hold the validated, final configuration.
var cfg = &contract.Config{}

// input holds the raw, unvalidated configuration from all sources (file, env, flags).
// Viper will unmarshal into this struct.
var input = &contract.ConfigRawInput{}

// store is the event store opened by sharedSetup.
var store contract.EventStore

// engine is the metric computation engine bound to the store.
var engine *core.Engine

// writer renders results in the configured output format.
var writer = outwriter.NewOutWriter()

// rootCmd is the command-line entrypoint for all other commands.
var rootCmd = &cobra.Command{
	Use:                "devpulse",
	Short:              "Compute developer productivity metrics from recorded events.",
	Long:               `DevPulse turns a stream of timestamped engineering events into normalized productivity metrics, composite scores and cross-metric correlations.`,
	Version:            version,
	SilenceErrors:      true,
	SilenceUsage:       true,
	DisableSuggestions: true,
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
	PersistentPostRun: func(_ *cobra.Command, _ []string) {
		if store != nil {
			_ = store.Close()
		}
	},
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	// Check if a specific config file is provided
	if configFile := viper.GetString("config"); configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		viper.SetConfigName(".devpulse") // Name of config file (without extension)
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")     // Look in the current directory
		viper.AddConfigPath("$HOME") // Look in the home directory
	}

	// Set environment variable prefix
	viper.SetEnvPrefix("DEVPULSE")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv() // Read in environment variables that match

	// Set defaults in Viper
	viper.SetDefault("backend", schema.SQLiteBackend)
	viper.SetDefault("db-connect", "")
	viper.SetDefault("output", schema.TextOut)
	viper.SetDefault("precision", contract.DefaultPrecision)
	viper.SetDefault("intervals", contract.DefaultIntervals)
	viper.SetDefault("emoji", "yes")
	viper.SetDefault("color", "yes")
}

// loadConfigFile handles config file loading logic common to all setup functions.
func loadConfigFile() error {
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// Config file was found but another error was produced
			return fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found, which is fine; we'll use defaults/env/flags.
	}
	return nil
}

// baseSetup unmarshals config and runs validation without touching storage.
func baseSetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}
	if err := viper.Unmarshal(input); err != nil {
		return fmt.Errorf("unable to unmarshal config: %w", err)
	}
	return contract.ProcessAndValidate(cfg, input)
}

// sharedSetup runs baseSetup and opens the event store. Used by every
// command that reads or writes events.
func sharedSetup(_ *cobra.Command, _ []string) error {
	if err := baseSetup(); err != nil {
		return err
	}

	s, err := eventstore.NewEventStore(cfg.Backend, cfg.DBConnect)
	if err != nil {
		return fmt.Errorf("failed to open event store: %w", err)
	}
	store = s
	engine = core.NewEngine(store)
	return nil
}

// lightSetup runs config validation only, for commands that never touch events.
func lightSetup(_ *cobra.Command, _ []string) error {
	return baseSetup()
}

// migrateSetup validates config without opening the store, so migrations can
// run against a fresh database before any table exists.
func migrateSetup(_ *cobra.Command, _ []string) error {
	if err := baseSetup(); err != nil {
		return err
	}
	if cfg.Backend == schema.SQLiteBackend && cfg.DBConnect == "" {
		cfg.DBConnect = contract.GetDefaultDBFilePath()
	}
	return nil
}

// requireWindow ensures the command received an explicit time window.
func requireWindow() error {
	if cfg.StartTime.IsZero() || cfg.EndTime.IsZero() {
		return fmt.Errorf("--start and --end are required")
	}
	return nil
}

// windowStrings renders the validated window back into the canonical form
// the engine accepts.
func windowStrings() (string, string) {
	return contract.FormatTimestamp(cfg.StartTime), contract.FormatTimestamp(cfg.EndTime)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
