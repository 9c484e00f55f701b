// Package cmd wires the devpulse command-line interface together.
package cmd

import (
	"github.com/devpulse/devpulse/internal/contract"
	"github.com/devpulse/devpulse/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.AddCommand(metricCmd)
	rootCmd.AddCommand(metricsCmd)
	rootCmd.AddCommand(cpsCmd)
	rootCmd.AddCommand(kindsCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(ingestCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("backend", string(schema.SQLiteBackend), "Storage backend: sqlite, mysql or postgresql")
	rootCmd.PersistentFlags().String("db-connect", "", "Database connection string, or file path for sqlite")
	rootCmd.PersistentFlags().StringP("output", "o", string(schema.TextOut), "Output format: text, csv or json")
	rootCmd.PersistentFlags().String("output-file", "", "Write output to a file instead of stdout")
	rootCmd.PersistentFlags().Int("precision", contract.DefaultPrecision, "Decimal precision for numeric columns")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override for tables (0 = auto-detect)")
	rootCmd.PersistentFlags().String("emoji", "yes", "Enable emojis in table titles (yes/no)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored trend labels (yes/no)")
	rootCmd.PersistentFlags().String("start", "", "Window start, e.g. '2025-06-01 00:00:00'")
	rootCmd.PersistentFlags().String("end", "", "Window end, e.g. '2025-06-30 23:59:59'")
	rootCmd.PersistentFlags().IntP("intervals", "n", contract.DefaultIntervals, "Number of sub-intervals to split the window into")
	rootCmd.PersistentFlags().String("export-file", "", "Also write results to a Parquet file at this path")
	rootCmd.PersistentFlags().String("config", "", "Path to config file (default is $HOME/.devpulse.yaml)")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	metricCmd.Flags().StringP("metric", "m", "", "Metric kind to compute")
	if err := viper.BindPFlags(metricCmd.Flags()); err != nil {
		contract.LogFatal("Error binding metric flags", err)
	}

	metricsCmd.Flags().String("metrics", "", "Comma-separated list of metric kinds")
	if err := viper.BindPFlags(metricsCmd.Flags()); err != nil {
		contract.LogFatal("Error binding metrics flags", err)
	}

	cpsCmd.Flags().String("weights", "", "Comma-separated METRIC:WEIGHT pairs, weights within [0, 1]")
	if err := viper.BindPFlags(cpsCmd.Flags()); err != nil {
		contract.LogFatal("Error binding cps flags", err)
	}

	ingestCmd.Flags().StringP("file", "f", "", "Semicolon-delimited CSV file to ingest")
	if err := viper.BindPFlags(ingestCmd.Flags()); err != nil {
		contract.LogFatal("Error binding ingest flags", err)
	}

	migrateCmd.Flags().Int("target-version", -1, "Target schema version (-1 migrates to latest)")
	if err := viper.BindPFlags(migrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding migrate flags", err)
	}
}
